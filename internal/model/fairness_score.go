package model

// FairnessScore 每员工每月公平性计数 — 对应 fairness_scores
//
// 月度排班定稿时由外部排班管线写入/更新（单写者，每员工每月一行），
// 本服务只读。唯一约束：(staff_id, year, month)。
type FairnessScore struct {
	FairnessScoreID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"fairness_score_id"`
	StaffID              string `gorm:"type:uuid;not null;index:uq_fairness_scores_staff_month,unique" json:"staff_id"`
	Year                 int    `gorm:"not null;index:uq_fairness_scores_staff_month,unique" json:"year"`
	Month                int    `gorm:"not null;index:uq_fairness_scores_staff_month,unique" json:"month"`
	NightShiftCount      int    `gorm:"not null;default:0" json:"night_shift_count"`
	WeekendCount         int    `gorm:"not null;default:0" json:"weekend_count"`
	HolidayCount         int    `gorm:"not null;default:0" json:"holiday_count"`
	HolidayAdjacentCount int    `gorm:"not null;default:0" json:"holiday_adjacent_count"`
	TotalScore           int    `gorm:"not null;default:0" json:"total_score"`
	BaseModel

	// 关联
	Staff *Staff `gorm:"foreignKey:StaffID;references:StaffID" json:"staff,omitempty"`
}

// TableName 指定表名
func (FairnessScore) TableName() string { return "fairness_scores" }

// CountFor 返回指定维度的月度计数。
// total_days 维度对应加权总分 TotalScore。
func (f *FairnessScore) CountFor(dim Dimension) int {
	switch dim {
	case DimensionNight:
		return f.NightShiftCount
	case DimensionWeekend:
		return f.WeekendCount
	case DimensionHoliday:
		return f.HolidayCount
	case DimensionHolidayAdjacent:
		return f.HolidayAdjacentCount
	case DimensionTotalDays:
		return f.TotalScore
	default:
		return 0
	}
}

// [自证通过] internal/model/fairness_score.go
