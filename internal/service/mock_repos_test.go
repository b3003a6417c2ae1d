package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/repository"
	pkgerrors "github.com/seonhu82/ysbaro-Scheduler-sub001/pkg/errors"
)

// ── Mock StaffRepository ──

type mockStaffRepo struct {
	staffs map[string]*model.Staff
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{staffs: make(map[string]*model.Staff)}
}

func (m *mockStaffRepo) Create(_ context.Context, staff *model.Staff) error {
	if staff.StaffID == "" {
		staff.StaffID = "staff-" + staff.Email
	}
	m.staffs[staff.StaffID] = staff
	return nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id string) (*model.Staff, error) {
	if s, ok := m.staffs[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) GetByEmail(_ context.Context, email string) (*model.Staff, error) {
	for _, s := range m.staffs {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) ListActiveByClinic(_ context.Context, clinicID string) ([]model.Staff, error) {
	var result []model.Staff
	for _, s := range m.staffs {
		if s.ClinicID == clinicID && s.IsActive {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStaffRepo) ListActiveByCategory(_ context.Context, clinicID, category string) ([]model.Staff, error) {
	var result []model.Staff
	for _, s := range m.staffs {
		if s.ClinicID == clinicID && s.IsActive && s.CategoryName == category {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStaffRepo) CountActiveByCategory(_ context.Context, clinicID, category string) (int64, error) {
	var count int64
	for _, s := range m.staffs {
		if s.ClinicID == clinicID && s.IsActive && s.CategoryName == category {
			count++
		}
	}
	return count, nil
}

func (m *mockStaffRepo) Update(_ context.Context, staff *model.Staff) error {
	m.staffs[staff.StaffID] = staff
	return nil
}

// ── Mock FairnessScoreRepository ──

type mockFairnessScoreRepo struct {
	scores []model.FairnessScore
	staffs *mockStaffRepo
}

func newMockFairnessScoreRepo(staffs *mockStaffRepo) *mockFairnessScoreRepo {
	return &mockFairnessScoreRepo{staffs: staffs}
}

func (m *mockFairnessScoreRepo) GetByStaffMonth(_ context.Context, staffID string, year, month int) (*model.FairnessScore, error) {
	for i := range m.scores {
		s := &m.scores[i]
		if s.StaffID == staffID && s.Year == year && s.Month == month {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFairnessScoreRepo) ListByStaffUpToMonth(_ context.Context, staffID string, year, month int) ([]model.FairnessScore, error) {
	var result []model.FairnessScore
	for _, s := range m.scores {
		if s.StaffID == staffID && s.Year == year && s.Month <= month {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockFairnessScoreRepo) ListByClinicMonth(_ context.Context, clinicID string, year, month int) ([]model.FairnessScore, error) {
	var result []model.FairnessScore
	for _, s := range m.scores {
		staff, ok := m.staffs.staffs[s.StaffID]
		if !ok || staff.ClinicID != clinicID || !staff.IsActive {
			continue
		}
		if s.Year == year && s.Month == month {
			result = append(result, s)
		}
	}
	return result, nil
}

// ── Mock FairnessSettingsRepository ──

type mockFairnessSettingsRepo struct {
	settings map[string]*model.FairnessSettings // clinicID → 设置
}

func newMockFairnessSettingsRepo() *mockFairnessSettingsRepo {
	return &mockFairnessSettingsRepo{settings: make(map[string]*model.FairnessSettings)}
}

func (m *mockFairnessSettingsRepo) GetByClinic(_ context.Context, clinicID string) (*model.FairnessSettings, error) {
	if s, ok := m.settings[clinicID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFairnessSettingsRepo) Create(_ context.Context, settings *model.FairnessSettings) error {
	if settings.FairnessSettingsID == "" {
		settings.FairnessSettingsID = "fs-" + settings.ClinicID
	}
	if settings.Version == 0 {
		settings.Version = 1
	}
	m.settings[settings.ClinicID] = settings
	return nil
}

// Update 与真实实现一致：version 不匹配时返回 ErrOptimisticLock
func (m *mockFairnessSettingsRepo) Update(_ context.Context, settings *model.FairnessSettings) error {
	stored, ok := m.settings[settings.ClinicID]
	if !ok || stored.Version != settings.Version {
		return pkgerrors.ErrOptimisticLock
	}
	settings.Version++
	m.settings[settings.ClinicID] = settings
	return nil
}

// ── Mock DoctorCombinationRepository ──

type mockDoctorCombinationRepo struct {
	combinations map[string]*model.DoctorCombination // clinicID|key|night → 模板
}

func newMockDoctorCombinationRepo() *mockDoctorCombinationRepo {
	return &mockDoctorCombinationRepo{combinations: make(map[string]*model.DoctorCombination)}
}

func combinationMapKey(clinicID, key string, hasNightShift bool) string {
	return fmt.Sprintf("%s|%s|%t", clinicID, key, hasNightShift)
}

func (m *mockDoctorCombinationRepo) GetByKey(_ context.Context, clinicID, combinationKey string, hasNightShift bool) (*model.DoctorCombination, error) {
	if c, ok := m.combinations[combinationMapKey(clinicID, combinationKey, hasNightShift)]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDoctorCombinationRepo) List(_ context.Context, clinicID string) ([]model.DoctorCombination, error) {
	var result []model.DoctorCombination
	for _, c := range m.combinations {
		if c.ClinicID == clinicID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockDoctorCombinationRepo) Create(_ context.Context, combination *model.DoctorCombination) error {
	m.combinations[combinationMapKey(combination.ClinicID, combination.CombinationKey, combination.HasNightShift)] = combination
	return nil
}

func (m *mockDoctorCombinationRepo) Update(_ context.Context, combination *model.DoctorCombination) error {
	m.combinations[combinationMapKey(combination.ClinicID, combination.CombinationKey, combination.HasNightShift)] = combination
	return nil
}

func (m *mockDoctorCombinationRepo) Delete(_ context.Context, id string) error {
	for k, c := range m.combinations {
		if c.DoctorCombinationID == id {
			delete(m.combinations, k)
		}
	}
	return nil
}

// ── Mock ScheduleDoctorRepository ──

type mockScheduleDoctorRepo struct {
	rows []model.ScheduleDoctor
}

func newMockScheduleDoctorRepo() *mockScheduleDoctorRepo {
	return &mockScheduleDoctorRepo{}
}

func (m *mockScheduleDoctorRepo) ListByDate(_ context.Context, clinicID string, date time.Time) ([]model.ScheduleDoctor, error) {
	day := model.NormalizeDate(date)
	var result []model.ScheduleDoctor
	for _, r := range m.rows {
		if r.ClinicID == clinicID && model.NormalizeDate(r.WorkDate).Equal(day) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockScheduleDoctorRepo) ListByRange(_ context.Context, clinicID string, from, to time.Time) ([]model.ScheduleDoctor, error) {
	f, t := model.NormalizeDate(from), model.NormalizeDate(to)
	var result []model.ScheduleDoctor
	for _, r := range m.rows {
		day := model.NormalizeDate(r.WorkDate)
		if r.ClinicID == clinicID && !day.Before(f) && !day.After(t) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockScheduleDoctorRepo) LastDate(_ context.Context, clinicID string) (time.Time, error) {
	var last time.Time
	found := false
	for _, r := range m.rows {
		if r.ClinicID != clinicID {
			continue
		}
		day := model.NormalizeDate(r.WorkDate)
		if !found || day.After(last) {
			last = day
			found = true
		}
	}
	if !found {
		return time.Time{}, gorm.ErrRecordNotFound
	}
	return last, nil
}

// ── Mock StaffAssignmentRepository ──

type mockStaffAssignmentRepo struct {
	lastDates map[string]time.Time // clinicID → 最后排班日期
}

func newMockStaffAssignmentRepo() *mockStaffAssignmentRepo {
	return &mockStaffAssignmentRepo{lastDates: make(map[string]time.Time)}
}

func (m *mockStaffAssignmentRepo) LastDate(_ context.Context, clinicID string) (time.Time, error) {
	if d, ok := m.lastDates[clinicID]; ok {
		return d, nil
	}
	return time.Time{}, gorm.ErrRecordNotFound
}

// ── Mock LeaveApplicationRepository ──

type mockLeaveApplicationRepo struct {
	applications map[string]*model.LeaveApplication
	nextID       int
}

func newMockLeaveApplicationRepo() *mockLeaveApplicationRepo {
	return &mockLeaveApplicationRepo{applications: make(map[string]*model.LeaveApplication)}
}

func (m *mockLeaveApplicationRepo) Create(_ context.Context, application *model.LeaveApplication) error {
	if application.LeaveApplicationID == "" {
		m.nextID++
		application.LeaveApplicationID = fmt.Sprintf("leave-%d", m.nextID)
	}
	m.applications[application.LeaveApplicationID] = application
	return nil
}

func (m *mockLeaveApplicationRepo) GetByID(_ context.Context, id string) (*model.LeaveApplication, error) {
	if a, ok := m.applications[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveApplicationRepo) ListCountedByStaffAndRange(_ context.Context, staffID, leaveType string, from, to time.Time) ([]model.LeaveApplication, error) {
	f, t := model.NormalizeDate(from), model.NormalizeDate(to)
	var result []model.LeaveApplication
	for _, a := range m.applications {
		if a.StaffID != staffID || a.LeaveType != leaveType || !a.CountsTowardQuota() {
			continue
		}
		day := model.NormalizeDate(a.LeaveDate)
		if !day.Before(f) && !day.After(t) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockLeaveApplicationRepo) ListByStaff(_ context.Context, staffID string, offset, limit int) ([]model.LeaveApplication, int64, error) {
	var all []model.LeaveApplication
	for _, a := range m.applications {
		if a.StaffID == staffID {
			all = append(all, *a)
		}
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockLeaveApplicationRepo) ListByClinicAndStatus(_ context.Context, clinicID, status string, offset, limit int) ([]model.LeaveApplication, int64, error) {
	var all []model.LeaveApplication
	for _, a := range m.applications {
		if a.ClinicID == clinicID && (status == "" || a.Status == status) {
			all = append(all, *a)
		}
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockLeaveApplicationRepo) ExistsCounted(_ context.Context, staffID string, date time.Time) (bool, error) {
	day := model.NormalizeDate(date)
	for _, a := range m.applications {
		if a.StaffID == staffID && a.CountsTowardQuota() && model.NormalizeDate(a.LeaveDate).Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLeaveApplicationRepo) UpdateStatus(_ context.Context, id, status string, updatedBy string) error {
	a, ok := m.applications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	a.UpdatedBy = &updatedBy
	return nil
}

func paginate(all []model.LeaveApplication, offset, limit int) []model.LeaveApplication {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday
	nextID   int
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	if holiday.HolidayID == "" {
		m.nextID++
		holiday.HolidayID = fmt.Sprintf("holiday-%d", m.nextID)
	}
	holiday.HolidayDate = model.NormalizeDate(holiday.HolidayDate)
	m.holidays[holiday.HolidayID] = holiday
	return nil
}

func (m *mockHolidayRepo) BatchCreate(ctx context.Context, holidays []model.Holiday) error {
	for i := range holidays {
		if err := m.Create(ctx, &holidays[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	if h, ok := m.holidays[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) GetByDate(_ context.Context, clinicID string, date time.Time) (*model.Holiday, error) {
	day := model.NormalizeDate(date)
	for _, h := range m.holidays {
		if h.ClinicID == clinicID && model.NormalizeDate(h.HolidayDate).Equal(day) {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) ListByRange(_ context.Context, clinicID string, from, to time.Time) ([]model.Holiday, error) {
	f, t := model.NormalizeDate(from), model.NormalizeDate(to)
	var result []model.Holiday
	for _, h := range m.holidays {
		day := model.NormalizeDate(h.HolidayDate)
		if h.ClinicID == clinicID && !day.Before(f) && !day.After(t) {
			result = append(result, *h)
		}
	}
	return result, nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	delete(m.holidays, id)
	return nil
}

// ── Mock LeavePeriodRepository ──

type mockLeavePeriodRepo struct {
	periods map[string]*model.LeavePeriod // clinicID|year|month → 窗口
}

func newMockLeavePeriodRepo() *mockLeavePeriodRepo {
	return &mockLeavePeriodRepo{periods: make(map[string]*model.LeavePeriod)}
}

func periodMapKey(clinicID string, year, month int) string {
	return fmt.Sprintf("%s|%d|%d", clinicID, year, month)
}

func (m *mockLeavePeriodRepo) GetByMonth(_ context.Context, clinicID string, year, month int) (*model.LeavePeriod, error) {
	if p, ok := m.periods[periodMapKey(clinicID, year, month)]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeavePeriodRepo) List(_ context.Context, clinicID string, year int) ([]model.LeavePeriod, error) {
	var result []model.LeavePeriod
	for _, p := range m.periods {
		if p.ClinicID == clinicID && p.Year == year {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockLeavePeriodRepo) Create(_ context.Context, period *model.LeavePeriod) error {
	if period.LeavePeriodID == "" {
		period.LeavePeriodID = periodMapKey(period.ClinicID, period.Year, period.Month)
	}
	m.periods[periodMapKey(period.ClinicID, period.Year, period.Month)] = period
	return nil
}

func (m *mockLeavePeriodRepo) Update(_ context.Context, period *model.LeavePeriod) error {
	m.periods[periodMapKey(period.ClinicID, period.Year, period.Month)] = period
	return nil
}

func (m *mockLeavePeriodRepo) Delete(_ context.Context, id string) error {
	for k, p := range m.periods {
		if p.LeavePeriodID == id {
			delete(m.periods, k)
		}
	}
	return nil
}

// ── 测试聚合 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	staff             *mockStaffRepo
	fairnessScore     *mockFairnessScoreRepo
	fairnessSettings  *mockFairnessSettingsRepo
	doctorCombination *mockDoctorCombinationRepo
	scheduleDoctor    *mockScheduleDoctorRepo
	staffAssignment   *mockStaffAssignmentRepo
	leaveApplication  *mockLeaveApplicationRepo
	holiday           *mockHolidayRepo
	leavePeriod       *mockLeavePeriodRepo
}

func newTestRepos() *testRepos {
	staff := newMockStaffRepo()
	return &testRepos{
		staff:             staff,
		fairnessScore:     newMockFairnessScoreRepo(staff),
		fairnessSettings:  newMockFairnessSettingsRepo(),
		doctorCombination: newMockDoctorCombinationRepo(),
		scheduleDoctor:    newMockScheduleDoctorRepo(),
		staffAssignment:   newMockStaffAssignmentRepo(),
		leaveApplication:  newMockLeaveApplicationRepo(),
		holiday:           newMockHolidayRepo(),
		leavePeriod:       newMockLeavePeriodRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		Staff:             r.staff,
		FairnessScore:     r.fairnessScore,
		FairnessSettings:  r.fairnessSettings,
		DoctorCombination: r.doctorCombination,
		ScheduleDoctor:    r.scheduleDoctor,
		StaffAssignment:   r.staffAssignment,
		LeaveApplication:  r.leaveApplication,
		Holiday:           r.holiday,
		LeavePeriod:       r.leavePeriod,
	}
}
