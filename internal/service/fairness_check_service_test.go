package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/dto"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
)

// ── 测试辅助 ──

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setupFairnessCheckService(repos *testRepos) FairnessCheckService {
	repo := repos.toRepository()
	logger := zap.NewNop()
	requirement := NewRequirementService(repo, "treatment", logger)
	opportunity := NewOpportunityService(repo, requirement, logger)
	return NewFairnessCheckService(repo, requirement, opportunity, logger)
}

// seedQuotaScenario 种子数据：2026 年 3 月，诊所 clinic-1。
// 4 名在职护士；周六白诊（医生 A）、周三夜诊（医生 N），
// 每个出诊日需要 2 名护士；申请窗口覆盖全月。
//
// 2026-03 的周六为 7/14/21/28，周三为 4/11/18/25。
// 周末维度：总需求槽位 8，人均 2，上限 = 8-2 = 6 槽；
// 夜诊维度：机会日 4 天，人均 2，上限 = 4-2 = 2 天。
func seedQuotaScenario(repos *testRepos) {
	repos.fairnessSettings.settings["clinic-1"] = &model.FairnessSettings{
		FairnessSettingsID:     "fs-1",
		ClinicID:               "clinic-1",
		CheckingEnabled:        true,
		WeekendEnabled:         true,
		NightEnabled:           true,
		HolidayEnabled:         true,
		HolidayAdjacentEnabled: true,
		TotalDaysEnabled:       true,
		NightShiftWeight:       2.0,
		WeekendWeight:          1.5,
		HolidayWeight:          2.0,
		FairnessThreshold:      0.2,
	}

	for i, name := range []string{"张三", "李四", "王五", "赵六"} {
		id := fmt.Sprintf("staff-%d", i+1)
		repos.staff.staffs[id] = &model.Staff{
			StaffID:      id,
			ClinicID:     "clinic-1",
			Name:         name,
			Email:        id + "@clinic.test",
			CategoryName: "护士",
			IsActive:     true,
		}
	}

	repos.leavePeriod.periods[periodMapKey("clinic-1", 2026, 3)] = &model.LeavePeriod{
		LeavePeriodID: "lp-1",
		ClinicID:      "clinic-1",
		Year:          2026,
		Month:         3,
		StartDate:     day(2026, time.March, 1),
		EndDate:       day(2026, time.March, 31),
	}

	for _, d := range []int{7, 14, 21, 28} {
		repos.scheduleDoctor.rows = append(repos.scheduleDoctor.rows, model.ScheduleDoctor{
			ClinicID:        "clinic-1",
			WorkDate:        day(2026, time.March, d),
			DoctorShortName: "A",
		})
	}
	for _, d := range []int{4, 11, 18, 25} {
		repos.scheduleDoctor.rows = append(repos.scheduleDoctor.rows, model.ScheduleDoctor{
			ClinicID:        "clinic-1",
			WorkDate:        day(2026, time.March, d),
			DoctorShortName: "N",
			HasNightShift:   true,
		})
	}

	nurse2 := model.RequirementMap{"treatment": {"护士": {Count: 2}}}
	repos.doctorCombination.combinations[combinationMapKey("clinic-1", "A", false)] = &model.DoctorCombination{
		DoctorCombinationID: "dc-1",
		ClinicID:            "clinic-1",
		CombinationKey:      "A",
		Requirements:        nurse2,
	}
	repos.doctorCombination.combinations[combinationMapKey("clinic-1", "N", true)] = &model.DoctorCombination{
		DoctorCombinationID: "dc-2",
		ClinicID:            "clinic-1",
		CombinationKey:      "N",
		HasNightShift:       true,
		Requirements:        nurse2,
	}
}

// addOffApplication 种子一条 OFF 申请
func addOffApplication(repos *testRepos, staffID string, d time.Time, status string) {
	id := fmt.Sprintf("seed-%s-%s", staffID, d.Format("0102"))
	repos.leaveApplication.applications[id] = &model.LeaveApplication{
		LeaveApplicationID: id,
		ClinicID:           "clinic-1",
		StaffID:            staffID,
		LeaveDate:          d,
		LeaveType:          model.LeaveTypeOff,
		Status:             status,
	}
}

func addHoliday(repos *testRepos, d time.Time, name string) {
	_ = repos.holiday.Create(context.Background(), &model.Holiday{
		ClinicID:    "clinic-1",
		HolidayDate: d,
		Name:        name,
	})
}

func checkRequest(staffID, date string) *dto.FairnessCheckRequest {
	return &dto.FairnessCheckRequest{
		StaffID:     staffID,
		RequestDate: date,
		Year:        2026,
		Month:       3,
	}
}

// ════════════════════════════════════════════════════════════
// CheckDynamicFairness — 失败开放 / 失败关闭
// ════════════════════════════════════════════════════════════

func TestCheckDynamicFairness_NoSettingsFailOpen(t *testing.T) {
	repos := newTestRepos()
	svc := setupFairnessCheckService(repos)

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-21"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if !resp.Allowed {
		t.Error("设置缺失时应失败开放放行")
	}
}

func TestCheckDynamicFairness_CheckingDisabled(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	repos.fairnessSettings.settings["clinic-1"].CheckingEnabled = false
	svc := setupFairnessCheckService(repos)

	// 即便配额已满也应放行
	addOffApplication(repos, "staff-1", day(2026, time.March, 7), model.LeaveStatusPending)
	addOffApplication(repos, "staff-1", day(2026, time.March, 14), model.LeaveStatusPending)

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-21"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if !resp.Allowed {
		t.Error("总开关关闭时应放行")
	}
}

func TestCheckDynamicFairness_StaffNotFound(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	svc := setupFairnessCheckService(repos)

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("ghost", "2026-03-21"))
	if err != nil {
		t.Fatalf("员工缺失应返回正常响应而非错误: %v", err)
	}
	if resp.Allowed {
		t.Error("员工缺失时应失败关闭拒绝")
	}
	if resp.Reason != ReasonStaffNotFound {
		t.Errorf("原因码 = %q, 期望 %q", resp.Reason, ReasonStaffNotFound)
	}
}

func TestCheckDynamicFairness_StaffWrongClinic(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	repos.staff.staffs["staff-9"] = &model.Staff{
		StaffID: "staff-9", ClinicID: "clinic-2", Name: "外院员工", CategoryName: "护士", IsActive: true,
	}
	svc := setupFairnessCheckService(repos)

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-9", "2026-03-21"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if resp.Allowed || resp.Reason != ReasonStaffNotFound {
		t.Errorf("跨诊所员工应按 STAFF_NOT_FOUND 拒绝, got allowed=%v reason=%q", resp.Allowed, resp.Reason)
	}
}

func TestCheckDynamicFairness_LeavePeriodNotFound(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	svc := setupFairnessCheckService(repos)

	req := &dto.FairnessCheckRequest{StaffID: "staff-1", RequestDate: "2026-04-04", Year: 2026, Month: 4}
	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", req)
	if err != nil {
		t.Fatalf("窗口缺失应返回正常响应而非错误: %v", err)
	}
	if resp.Allowed || resp.Reason != ReasonLeavePeriodNotFound {
		t.Errorf("窗口缺失应按 LEAVE_PERIOD_NOT_FOUND 拒绝, got allowed=%v reason=%q", resp.Allowed, resp.Reason)
	}
}

func TestCheckDynamicFairness_InvalidDate(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	svc := setupFairnessCheckService(repos)

	_, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026/03/21"))
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate, got %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// CheckDynamicFairness — 周末维度（槽位粒度）
// ════════════════════════════════════════════════════════════

func TestCheckDynamicFairness_WeekendWithinQuota(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	svc := setupFairnessCheckService(repos)

	// 已占用 1 个周六（2 槽）+ 本次申请（2 槽）= 4 < 6
	addOffApplication(repos, "staff-1", day(2026, time.March, 7), model.LeaveStatusConfirmed)

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-21"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if !resp.Allowed {
		t.Errorf("配额内申请应放行, reason=%q", resp.Reason)
	}
}

func TestCheckDynamicFairness_WeekendQuotaExhausted(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	svc := setupFairnessCheckService(repos)

	// 已占用 2 个周六（4 槽）+ 本次申请（2 槽）= 6 >= 6 → 拒绝
	addOffApplication(repos, "staff-1", day(2026, time.March, 7), model.LeaveStatusPending)
	addOffApplication(repos, "staff-1", day(2026, time.March, 14), model.LeaveStatusConfirmed)

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-21"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if resp.Allowed {
		t.Fatal("周末配额耗尽应拒绝")
	}
	d := resp.Details
	if d == nil {
		t.Fatal("拒绝响应缺少明细")
	}
	if d.Dimension != string(model.DimensionWeekend) {
		t.Errorf("维度 = %q, 期望 weekend", d.Dimension)
	}
	if d.Used != 6 || d.MaxAllowed != 6 {
		t.Errorf("used/max = %d/%d, 期望 6/6", d.Used, d.MaxAllowed)
	}
	if d.TotalStaffInCategory != 4 || d.TotalRequiredSlots != 8 {
		t.Errorf("类别人数/总槽位 = %d/%d, 期望 4/8", d.TotalStaffInCategory, d.TotalRequiredSlots)
	}
	if d.BaseRequirement != 2.0 || d.AdjustedRequirement != 2 {
		t.Errorf("基准/调整后 = %v/%d, 期望 2.0/2", d.BaseRequirement, d.AdjustedRequirement)
	}
	if !d.SlotGranular {
		t.Error("周末维度应按槽位粒度计量")
	}
}

func TestCheckDynamicFairness_PendingSelectionsOccupy(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	svc := setupFairnessCheckService(repos)

	// 无已落库申请，但会话内已勾选 2 个周六
	req := checkRequest("staff-1", "2026-03-21")
	req.PendingSelections = []string{"2026-03-07", "2026-03-14"}

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", req)
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if resp.Allowed {
		t.Error("会话内勾选日期应计入已占用配额")
	}
}

func TestCheckDynamicFairness_CancelledNotCounted(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	svc := setupFairnessCheckService(repos)

	// CANCELLED/REJECTED 不计入配额
	addOffApplication(repos, "staff-1", day(2026, time.March, 7), model.LeaveStatusCancelled)
	addOffApplication(repos, "staff-1", day(2026, time.March, 14), model.LeaveStatusRejected)

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-21"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if !resp.Allowed {
		t.Errorf("已取消的申请不应占用配额, reason=%q", resp.Reason)
	}
}

func TestCheckDynamicFairness_DeviationTightensQuota(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	// 正偏差 +2：调整后承担量 4，上限降为 8-4 = 4 槽
	repos.staff.staffs["staff-2"].FairnessScoreWeekend = 2
	svc := setupFairnessCheckService(repos)

	addOffApplication(repos, "staff-2", day(2026, time.March, 7), model.LeaveStatusConfirmed)

	// 1 个周六（2 槽）+ 本次（2 槽）= 4 >= 4 → 拒绝
	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-2", "2026-03-21"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if resp.Allowed {
		t.Fatal("正偏差应收紧配额并拒绝")
	}
	if resp.Details.AdjustedRequirement != 4 || resp.Details.MaxAllowed != 4 {
		t.Errorf("调整后/上限 = %d/%d, 期望 4/4", resp.Details.AdjustedRequirement, resp.Details.MaxAllowed)
	}

	// 无偏差的同事在同样占用下仍可放行
	addOffApplication(repos, "staff-1", day(2026, time.March, 7), model.LeaveStatusConfirmed)
	resp, err = svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-21"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if !resp.Allowed {
		t.Errorf("无偏差员工应放行, reason=%q", resp.Reason)
	}
}

func TestCheckDynamicFairness_WindowClippedByLastAssignment(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	// 最后排班到 3/10 → 窗口起点裁剪为 3/11，周六只剩 14/21/28（6 槽）
	repos.staffAssignment.lastDates["clinic-1"] = day(2026, time.March, 10)
	svc := setupFairnessCheckService(repos)

	addOffApplication(repos, "staff-1", day(2026, time.March, 14), model.LeaveStatusPending)

	// 1.5 取整为 2 → 上限 6-2 = 4；已占用 2+2 = 4 >= 4 → 拒绝
	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-21"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if resp.Allowed {
		t.Fatal("裁剪后窗口内配额耗尽应拒绝")
	}
	if resp.Details.TotalRequiredSlots != 6 {
		t.Errorf("裁剪后总槽位 = %d, 期望 6", resp.Details.TotalRequiredSlots)
	}
}

// ════════════════════════════════════════════════════════════
// CheckDynamicFairness — 夜诊维度（天数粒度，比较符为严格 >）
// ════════════════════════════════════════════════════════════

func TestCheckDynamicFairness_NightAtBoundaryAllowed(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	svc := setupFairnessCheckService(repos)

	// 已占用 1 个夜诊日 + 本次 = 2 天，上限 2：2 > 2 不成立 → 放行
	addOffApplication(repos, "staff-1", day(2026, time.March, 4), model.LeaveStatusConfirmed)

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-18"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if !resp.Allowed {
		t.Errorf("天数维度恰达上限应放行, reason=%q", resp.Reason)
	}
}

func TestCheckDynamicFairness_NightOverQuotaRejected(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	svc := setupFairnessCheckService(repos)

	addOffApplication(repos, "staff-1", day(2026, time.March, 4), model.LeaveStatusConfirmed)
	addOffApplication(repos, "staff-1", day(2026, time.March, 11), model.LeaveStatusPending)

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-18"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if resp.Allowed {
		t.Fatal("夜诊天数超限应拒绝")
	}
	d := resp.Details
	if d.Dimension != string(model.DimensionNight) {
		t.Errorf("维度 = %q, 期望 night", d.Dimension)
	}
	if d.Used != 3 || d.MaxAllowed != 2 {
		t.Errorf("used/max = %d/%d, 期望 3/2", d.Used, d.MaxAllowed)
	}
	if d.SlotGranular {
		t.Error("夜诊维度应按天数粒度计量")
	}
}

// ════════════════════════════════════════════════════════════
// CheckDynamicFairness — 公休日 / 公休日邻近维度
// ════════════════════════════════════════════════════════════

func TestCheckDynamicFairness_HolidayRejected(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	// 周六 3/14 同时是公休日：周末检查先过（2 槽 < 6），
	// 公休维度机会仅 1 天、人均 0.5 取整为 1 → 上限 0 → 拒绝
	addHoliday(repos, day(2026, time.March, 14), "临时公休")
	svc := setupFairnessCheckService(repos)

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-14"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if resp.Allowed {
		t.Fatal("公休日配额不足应拒绝")
	}
	if resp.Details.Dimension != string(model.DimensionHoliday) {
		t.Errorf("维度 = %q, 期望 holiday", resp.Details.Dimension)
	}
}

func TestCheckDynamicFairness_HolidayAdjacentRejected(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	// 周二 3/10 公休：3/9（周一）为其邻近日，
	// 但周二公休不产生跨周末邻近机会 → 上限 0 → 拒绝
	addHoliday(repos, day(2026, time.March, 10), "临时公休")
	svc := setupFairnessCheckService(repos)

	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-09"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if resp.Allowed {
		t.Fatal("公休日邻近配额不足应拒绝")
	}
	if resp.Details.Dimension != string(model.DimensionHolidayAdjacent) {
		t.Errorf("维度 = %q, 期望 holiday_adjacent", resp.Details.Dimension)
	}
}

func TestCheckDynamicFairness_PlainWeekdayAllowed(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	svc := setupFairnessCheckService(repos)

	// 3/17 周二：无出诊、非周六、非公休 → 仅总天数维度适用且远未达上限
	resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-17"))
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if !resp.Allowed {
		t.Errorf("普通平日应放行, reason=%q", resp.Reason)
	}
}

// ════════════════════════════════════════════════════════════
// CheckDimension — 单维度边界
// ════════════════════════════════════════════════════════════

func TestCheckDimension_DimensionDisabled(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	repos.fairnessSettings.settings["clinic-1"].WeekendEnabled = false
	svc := setupFairnessCheckService(repos)

	resp, err := svc.CheckDimension(context.Background(), &DimensionCheckInput{
		ClinicID:  "clinic-1",
		Staff:     repos.staff.staffs["staff-1"],
		Settings:  repos.fairnessSettings.settings["clinic-1"],
		Dimension: model.DimensionWeekend,
		Year:      2026,
		Month:     3,
		UsedDates: []time.Time{day(2026, time.March, 7), day(2026, time.March, 14), day(2026, time.March, 21)},
	})
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if !resp.Allowed {
		t.Error("维度关闭时应无条件放行")
	}
}

func TestCheckDimension_NoCategoryAllows(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	staff := &model.Staff{StaffID: "staff-x", ClinicID: "clinic-1", Name: "无类别", IsActive: true}
	repos.staff.staffs["staff-x"] = staff
	svc := setupFairnessCheckService(repos)

	resp, err := svc.CheckDimension(context.Background(), &DimensionCheckInput{
		ClinicID:  "clinic-1",
		Staff:     staff,
		Settings:  repos.fairnessSettings.settings["clinic-1"],
		Dimension: model.DimensionWeekend,
		Year:      2026,
		Month:     3,
		UsedDates: []time.Time{day(2026, time.March, 7)},
	})
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if !resp.Allowed {
		t.Error("无类别员工不参与配额检查，应放行")
	}
}

// ════════════════════════════════════════════════════════════
// CheckDynamicFairness — 不变量属性
// ════════════════════════════════════════════════════════════

// 其他类别的人数与需求变化不得影响本类别员工的判定结果
func TestCheckDynamicFairness_CategoryIsolation(t *testing.T) {
	run := func(extraAssistants int) *dto.FairnessCheckResponse {
		t.Helper()
		repos := newTestRepos()
		seedQuotaScenario(repos)
		addOffApplication(repos, "staff-1", day(2026, time.March, 7), model.LeaveStatusConfirmed)
		addOffApplication(repos, "staff-1", day(2026, time.March, 14), model.LeaveStatusConfirmed)

		// 扩充助理类别：新增人头 + 每个模板新增助理槽位
		for i := 0; i < extraAssistants; i++ {
			id := fmt.Sprintf("assist-%d", i+1)
			repos.staff.staffs[id] = &model.Staff{
				StaffID:      id,
				ClinicID:     "clinic-1",
				Name:         fmt.Sprintf("助理%d", i+1),
				Email:        id + "@clinic.test",
				CategoryName: "助理",
				IsActive:     true,
			}
		}
		if extraAssistants > 0 {
			for _, combo := range repos.doctorCombination.combinations {
				combo.Requirements["treatment"]["助理"] = model.CategoryRequirement{Count: 3}
			}
		}

		svc := setupFairnessCheckService(repos)
		resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-21"))
		if err != nil {
			t.Fatalf("检查失败 (助理数=%d): %v", extraAssistants, err)
		}
		return resp
	}

	baseline := run(0)
	enriched := run(9)

	if baseline.Allowed != enriched.Allowed || baseline.Reason != enriched.Reason {
		t.Errorf("判定结果随他类别变化: %v/%q vs %v/%q",
			baseline.Allowed, baseline.Reason, enriched.Allowed, enriched.Reason)
	}
	if !reflect.DeepEqual(baseline.Details, enriched.Details) {
		t.Errorf("明细随他类别变化: %+v vs %+v", baseline.Details, enriched.Details)
	}
}

// 增加同维度占用只能从放行走向拒绝，不能反向
func TestCheckDynamicFairness_Monotonicity(t *testing.T) {
	saturdays := []int{7, 14, 28}
	rejected := false
	for priors := 0; priors <= len(saturdays); priors++ {
		repos := newTestRepos()
		seedQuotaScenario(repos)
		for _, d := range saturdays[:priors] {
			addOffApplication(repos, "staff-1", day(2026, time.March, d), model.LeaveStatusConfirmed)
		}
		svc := setupFairnessCheckService(repos)

		resp, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-21"))
		if err != nil {
			t.Fatalf("检查失败 (已占用=%d): %v", priors, err)
		}
		if rejected && resp.Allowed {
			t.Fatalf("占用增加后不应由拒绝转为放行 (已占用=%d)", priors)
		}
		if !resp.Allowed {
			rejected = true
		}
	}
	if !rejected {
		t.Error("占用增长到配额之外应最终拒绝")
	}
}

// 相同输入重复检查必须得到相同结果
func TestCheckDynamicFairness_Idempotence(t *testing.T) {
	repos := newTestRepos()
	seedQuotaScenario(repos)
	addOffApplication(repos, "staff-1", day(2026, time.March, 7), model.LeaveStatusConfirmed)
	addOffApplication(repos, "staff-1", day(2026, time.March, 14), model.LeaveStatusConfirmed)
	svc := setupFairnessCheckService(repos)

	first, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-21"))
	if err != nil {
		t.Fatalf("首次检查失败: %v", err)
	}
	second, err := svc.CheckDynamicFairness(context.Background(), "clinic-1", checkRequest("staff-1", "2026-03-21"))
	if err != nil {
		t.Fatalf("二次检查失败: %v", err)
	}

	if first.Allowed != second.Allowed || first.Reason != second.Reason {
		t.Errorf("重复检查结果不一致: %v/%q vs %v/%q",
			first.Allowed, first.Reason, second.Allowed, second.Reason)
	}
	if !reflect.DeepEqual(first.Details, second.Details) {
		t.Errorf("重复检查明细不一致: %+v vs %+v", first.Details, second.Details)
	}
}

// [自证通过] internal/service/fairness_check_service_test.go
