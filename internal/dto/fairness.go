package dto

// ── 公平性准入检查 ──

// FairnessCheckRequest 动态公平性检查请求
// PendingSelections: 本次 UI 会话中已勾选但尚未提交的日期（yyyy-MM-dd）
type FairnessCheckRequest struct {
	StaffID           string   `json:"staff_id"          binding:"required,uuid"`
	RequestDate       string   `json:"request_date"      binding:"required"`
	Year              int      `json:"year"              binding:"required,min=2000,max=2100"`
	Month             int      `json:"month"             binding:"required,min=1,max=12"`
	PendingSelections []string `json:"pending_selections" binding:"omitempty,dive,required"`
}

// FairnessCheckDetails 拒绝时返回的结构化明细（供前端展示）
type FairnessCheckDetails struct {
	Dimension            string  `json:"dimension"`
	CategoryName         string  `json:"category_name"`
	TotalStaffInCategory int     `json:"total_staff_in_category"`
	TotalOpportunities   int     `json:"total_opportunities"`
	TotalRequiredSlots   int     `json:"total_required_slots"`
	BaseRequirement      float64 `json:"base_requirement"`
	Deviation            float64 `json:"deviation"`
	AdjustedRequirement  int     `json:"adjusted_requirement"`
	MaxAllowed           int     `json:"max_allowed"`
	Used                 int     `json:"used"`
	SlotGranular         bool    `json:"slot_granular"`
}

// FairnessCheckResponse 动态公平性检查结果
// 拒绝属于正常业务结果而非错误
type FairnessCheckResponse struct {
	Allowed bool                  `json:"allowed"`
	Reason  string                `json:"reason,omitempty"`
	Details *FairnessCheckDetails `json:"details,omitempty"`
}

// ── OFF 申请校验（综合判定） ──

// ValidateOffRequest OFF 申请校验请求
type ValidateOffRequest struct {
	StaffID     string `json:"staff_id"     binding:"required,uuid"`
	RequestDate string `json:"request_date" binding:"required"`
	Year        int    `json:"year"         binding:"required,min=2000,max=2100"`
	Month       int    `json:"month"        binding:"required,min=1,max=12"`
}

// ValidateOffResponse OFF 申请校验结果
type ValidateOffResponse struct {
	Allowed               bool                `json:"allowed"`
	RequiresFairnessCheck bool                `json:"requires_fairness_check"`
	DayType               string              `json:"day_type"`
	Reason                string              `json:"reason,omitempty"`
	Yearly                *YearlyStaffStatus  `json:"yearly,omitempty"`
	Monthly               *MonthlyScoreStatus `json:"monthly,omitempty"`
}

// ── 年度累计 ──

// MonthlyTargetBreakdown 累计目标的逐月拆解（便于前端追溯）
type MonthlyTargetBreakdown struct {
	Month              int `json:"month"`
	TotalOpportunities int `json:"total_opportunities"`
	TotalRequiredSlots int `json:"total_required_slots"`
}

// CumulativeTargetResponse 某维度 1..M 月的累计目标
type CumulativeTargetResponse struct {
	Dimension         string                   `json:"dimension"`
	Year              int                      `json:"year"`
	UpToMonth         int                      `json:"up_to_month"`
	TotalShifts       int                      `json:"total_shifts"`
	TotalNeeds        int                      `json:"total_needs"`
	ActiveStaffCount  int                      `json:"active_staff_count"`
	TargetPerEmployee float64                  `json:"target_per_employee"`
	MonthlyBreakdowns []MonthlyTargetBreakdown `json:"monthly_breakdowns"`
}

// YearlyStaffStatus 单员工某维度的年度累计状态
type YearlyStaffStatus struct {
	StaffID      string  `json:"staff_id"`
	StaffName    string  `json:"staff_name"`
	CategoryName string  `json:"category_name"`
	Dimension    string  `json:"dimension"`
	CurrentCount int     `json:"current_count"`
	Target       float64 `json:"target"`
	Diff         float64 `json:"diff"`
	Status       string  `json:"status"`   // behind | on_track | ahead
	Priority     float64 `json:"priority"` // 越小（越负）优先级越高
}

// ── 月度加权得分 ──

// MonthlyScoreStatus 单员工某月的加权公平性得分状态
type MonthlyScoreStatus struct {
	StaffID      string  `json:"staff_id"`
	StaffName    string  `json:"staff_name"`
	Score        float64 `json:"score"`
	AverageScore float64 `json:"average_score"`
	MinRequired  float64 `json:"min_required"`
	MaxAllowed   float64 `json:"max_allowed"`
	Status       string  `json:"status"` // low | normal | high
	CanApplyOff  bool    `json:"can_apply_off"`
}

// ── 综合分析 ──

// ComprehensiveAnalysisResponse 单员工的年度+月度综合分析
type ComprehensiveAnalysisResponse struct {
	StaffID            string              `json:"staff_id"`
	StaffName          string              `json:"staff_name"`
	CategoryName       string              `json:"category_name"`
	Year               int                 `json:"year"`
	Month              int                 `json:"month"`
	Yearly             []YearlyStaffStatus `json:"yearly"`
	Monthly            *MonthlyScoreStatus `json:"monthly,omitempty"`
	Priority           string              `json:"priority"` // high_priority | normal | low_priority
	CanApplyNightOff   bool                `json:"can_apply_night_off"`
	CanApplyWeekendOff bool                `json:"can_apply_weekend_off"`
}

// Recommendation 综合报表中的排班建议
type Recommendation struct {
	Type     string              `json:"type"` // night_shift_priority 等
	StaffIDs []string            `json:"staff_ids"`
	Entries  []YearlyStaffStatus `json:"entries"`
}

// FairnessReportResponse 全员综合公平性报表
type FairnessReportResponse struct {
	Year            int                  `json:"year"`
	Month           int                  `json:"month"`
	NightShift      []YearlyStaffStatus  `json:"night_shift"`
	WeekendWork     []YearlyStaffStatus  `json:"weekend_work"`
	HolidayWork     []YearlyStaffStatus  `json:"holiday_work"`
	HolidayAdjacent []YearlyStaffStatus  `json:"holiday_adjacent"`
	Monthly         []MonthlyScoreStatus `json:"monthly"`
	Recommendations []Recommendation     `json:"recommendations"`
}

// [自证通过] internal/dto/fairness.go
