package dto

// ── 公平性设置 ──

// UpdateFairnessSettingsRequest 更新公平性设置（nil 字段不更新）
type UpdateFairnessSettingsRequest struct {
	CheckingEnabled        *bool `json:"checking_enabled"`
	WeekendEnabled         *bool `json:"weekend_enabled"`
	NightEnabled           *bool `json:"night_enabled"`
	HolidayEnabled         *bool `json:"holiday_enabled"`
	HolidayAdjacentEnabled *bool `json:"holiday_adjacent_enabled"`
	TotalDaysEnabled       *bool `json:"total_days_enabled"`

	NightShiftWeight  *float64 `json:"night_shift_weight"  binding:"omitempty,gt=0"`
	WeekendWeight     *float64 `json:"weekend_weight"      binding:"omitempty,gt=0"`
	HolidayWeight     *float64 `json:"holiday_weight"      binding:"omitempty,gt=0"`
	FairnessThreshold *float64 `json:"fairness_threshold"  binding:"omitempty,gte=0,lt=1"`
}

// FairnessSettingsResponse 公平性设置响应
// Defaulted 表示该诊所尚未落库设置、返回的是配置默认值
type FairnessSettingsResponse struct {
	ClinicID               string  `json:"clinic_id"`
	CheckingEnabled        bool    `json:"checking_enabled"`
	WeekendEnabled         bool    `json:"weekend_enabled"`
	NightEnabled           bool    `json:"night_enabled"`
	HolidayEnabled         bool    `json:"holiday_enabled"`
	HolidayAdjacentEnabled bool    `json:"holiday_adjacent_enabled"`
	TotalDaysEnabled       bool    `json:"total_days_enabled"`
	NightShiftWeight       float64 `json:"night_shift_weight"`
	WeekendWeight          float64 `json:"weekend_weight"`
	HolidayWeight          float64 `json:"holiday_weight"`
	FairnessThreshold      float64 `json:"fairness_threshold"`
	Defaulted              bool    `json:"defaulted"`
}
