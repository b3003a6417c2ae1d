package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
)

// HolidayRepository 公休日数据访问接口
type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	BatchCreate(ctx context.Context, holidays []model.Holiday) error
	GetByID(ctx context.Context, id string) (*model.Holiday, error)
	GetByDate(ctx context.Context, clinicID string, date time.Time) (*model.Holiday, error)
	// ListByRange 返回 [from, to] 内的公休日，按日期升序
	ListByRange(ctx context.Context, clinicID string, from, to time.Time) ([]model.Holiday, error)
	Delete(ctx context.Context, id string) error
}

type holidayRepo struct {
	db *gorm.DB
}

func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, holiday *model.Holiday) error {
	holiday.HolidayDate = model.NormalizeDate(holiday.HolidayDate)
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *holidayRepo) BatchCreate(ctx context.Context, holidays []model.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}
	for i := range holidays {
		holidays[i].HolidayDate = model.NormalizeDate(holidays[i].HolidayDate)
	}
	return r.db.WithContext(ctx).Create(&holidays).Error
}

func (r *holidayRepo) GetByID(ctx context.Context, id string) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		First(&holiday).Error
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepo) GetByDate(ctx context.Context, clinicID string, date time.Time) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND holiday_date = ?", clinicID, model.NormalizeDate(date)).
		First(&holiday).Error
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepo) ListByRange(ctx context.Context, clinicID string, from, to time.Time) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND holiday_date >= ? AND holiday_date <= ?",
			clinicID, model.NormalizeDate(from), model.NormalizeDate(to)).
		Order("holiday_date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		Delete(&model.Holiday{}).Error
}
