package model

import "time"

// StaffAssignment 员工排班结果 — 对应 staff_assignments
//
// 由外部排班管线写入。公平性核心只读取其最后日期，
// 用于裁剪休假申请窗口的起点（已排班日期不再参与评估）。
type StaffAssignment struct {
	StaffAssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_assignment_id"`
	ClinicID          string    `gorm:"type:uuid;not null;index:idx_staff_assignments_date" json:"clinic_id"`
	StaffID           string    `gorm:"type:uuid;not null"                             json:"staff_id"`
	WorkDate          time.Time `gorm:"type:date;not null;index:idx_staff_assignments_date" json:"work_date"`
	ShiftType         string    `gorm:"type:varchar(30);not null;default:'day'"        json:"shift_type"`
	BaseModel
}

// TableName 指定表名
func (StaffAssignment) TableName() string { return "staff_assignments" }
