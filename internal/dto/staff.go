package dto

// ── 员工 ──

// CreateStaffRequest 创建员工请求
type CreateStaffRequest struct {
	Name         string `json:"name"          binding:"required,max=100"`
	Email        string `json:"email"         binding:"required,email"`
	Password     string `json:"password"      binding:"required,min=6"`
	Role         string `json:"role"          binding:"omitempty,oneof=admin manager staff"`
	CategoryName string `json:"category_name" binding:"required,max=100"`
}

// UpdateStaffRequest 更新员工请求（nil 字段不更新）
type UpdateStaffRequest struct {
	Name         *string `json:"name"          binding:"omitempty,max=100"`
	CategoryName *string `json:"category_name" binding:"omitempty,max=100"`
	IsActive     *bool   `json:"is_active"`
}

// StaffResponse 员工响应
type StaffResponse struct {
	StaffID      string `json:"staff_id"`
	ClinicID     string `json:"clinic_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	CategoryName string `json:"category_name"`
	IsActive     bool   `json:"is_active"`

	FairnessScoreWeekend         float64 `json:"fairness_score_weekend"`
	FairnessScoreNight           float64 `json:"fairness_score_night"`
	FairnessScoreHoliday         float64 `json:"fairness_score_holiday"`
	FairnessScoreHolidayAdjacent float64 `json:"fairness_score_holiday_adjacent"`
	FairnessScoreTotalDays       float64 `json:"fairness_score_total_days"`
}

// StaffListResponse 员工列表响应
type StaffListResponse struct {
	Items []StaffResponse `json:"items"`
	Total int64           `json:"total"`
}
