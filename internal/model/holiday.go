package model

import "time"

// Holiday 公休日 — 对应 holidays，诊所范围内唯一 (clinic_id, holiday_date)
type Holiday struct {
	HolidayID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	ClinicID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_holidays_clinic_date" json:"clinic_id"`
	HolidayDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_holidays_clinic_date" json:"holiday_date"`
	Name        string    `gorm:"type:varchar(100);not null;default:''"          json:"name"`
	BaseModel
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }
