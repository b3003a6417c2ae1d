package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
)

// StaffAssignmentRepository 员工排班结果数据访问接口（只读）
type StaffAssignmentRepository interface {
	// LastDate 返回最后一条排班结果的日期；无数据返回 gorm.ErrRecordNotFound
	LastDate(ctx context.Context, clinicID string) (time.Time, error)
}

type staffAssignmentRepo struct {
	db *gorm.DB
}

func NewStaffAssignmentRepo(db *gorm.DB) StaffAssignmentRepository {
	return &staffAssignmentRepo{db: db}
}

func (r *staffAssignmentRepo) LastDate(ctx context.Context, clinicID string) (time.Time, error) {
	var assignment model.StaffAssignment
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("work_date DESC").
		First(&assignment).Error
	if err != nil {
		return time.Time{}, err
	}
	return model.NormalizeDate(assignment.WorkDate), nil
}
