package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
)

// DoctorCombinationRepository 医生组合需求模板数据访问接口
type DoctorCombinationRepository interface {
	// GetByKey 精确匹配组合键 + 夜诊标记；未命中返回 gorm.ErrRecordNotFound
	GetByKey(ctx context.Context, clinicID, combinationKey string, hasNightShift bool) (*model.DoctorCombination, error)
	List(ctx context.Context, clinicID string) ([]model.DoctorCombination, error)
	Create(ctx context.Context, combination *model.DoctorCombination) error
	Update(ctx context.Context, combination *model.DoctorCombination) error
	Delete(ctx context.Context, id string) error
}

type doctorCombinationRepo struct {
	db *gorm.DB
}

func NewDoctorCombinationRepo(db *gorm.DB) DoctorCombinationRepository {
	return &doctorCombinationRepo{db: db}
}

func (r *doctorCombinationRepo) GetByKey(ctx context.Context, clinicID, combinationKey string, hasNightShift bool) (*model.DoctorCombination, error) {
	var combination model.DoctorCombination
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND combination_key = ? AND has_night_shift = ?", clinicID, combinationKey, hasNightShift).
		First(&combination).Error
	if err != nil {
		return nil, err
	}
	return &combination, nil
}

func (r *doctorCombinationRepo) List(ctx context.Context, clinicID string) ([]model.DoctorCombination, error) {
	var combinations []model.DoctorCombination
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("combination_key ASC").
		Find(&combinations).Error
	return combinations, err
}

func (r *doctorCombinationRepo) Create(ctx context.Context, combination *model.DoctorCombination) error {
	return r.db.WithContext(ctx).Create(combination).Error
}

func (r *doctorCombinationRepo) Update(ctx context.Context, combination *model.DoctorCombination) error {
	return r.db.WithContext(ctx).
		Model(combination).
		Where("doctor_combination_id = ?", combination.DoctorCombinationID).
		Updates(map[string]interface{}{
			"combination_key": combination.CombinationKey,
			"has_night_shift": combination.HasNightShift,
			"requirements":    combination.Requirements,
			"updated_by":      combination.UpdatedBy,
		}).Error
}

func (r *doctorCombinationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("doctor_combination_id = ?", id).
		Delete(&model.DoctorCombination{}).Error
}
