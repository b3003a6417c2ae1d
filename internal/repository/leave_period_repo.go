package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
)

// LeavePeriodRepository 休假申请窗口数据访问接口
type LeavePeriodRepository interface {
	GetByMonth(ctx context.Context, clinicID string, year, month int) (*model.LeavePeriod, error)
	List(ctx context.Context, clinicID string, year int) ([]model.LeavePeriod, error)
	Create(ctx context.Context, period *model.LeavePeriod) error
	Update(ctx context.Context, period *model.LeavePeriod) error
	Delete(ctx context.Context, id string) error
}

type leavePeriodRepo struct {
	db *gorm.DB
}

func NewLeavePeriodRepo(db *gorm.DB) LeavePeriodRepository {
	return &leavePeriodRepo{db: db}
}

func (r *leavePeriodRepo) GetByMonth(ctx context.Context, clinicID string, year, month int) (*model.LeavePeriod, error) {
	var period model.LeavePeriod
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND year = ? AND month = ?", clinicID, year, month).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *leavePeriodRepo) List(ctx context.Context, clinicID string, year int) ([]model.LeavePeriod, error) {
	var periods []model.LeavePeriod
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND year = ?", clinicID, year).
		Order("month ASC").
		Find(&periods).Error
	return periods, err
}

func (r *leavePeriodRepo) Create(ctx context.Context, period *model.LeavePeriod) error {
	period.StartDate = model.NormalizeDate(period.StartDate)
	period.EndDate = model.NormalizeDate(period.EndDate)
	return r.db.WithContext(ctx).Create(period).Error
}

func (r *leavePeriodRepo) Update(ctx context.Context, period *model.LeavePeriod) error {
	return r.db.WithContext(ctx).
		Model(period).
		Where("leave_period_id = ?", period.LeavePeriodID).
		Updates(map[string]interface{}{
			"start_date": model.NormalizeDate(period.StartDate),
			"end_date":   model.NormalizeDate(period.EndDate),
			"updated_by": period.UpdatedBy,
		}).Error
}

func (r *leavePeriodRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("leave_period_id = ?", id).
		Delete(&model.LeavePeriod{}).Error
}
