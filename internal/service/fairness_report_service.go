package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/config"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/dto"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/repository"
)

// ── 月度得分状态 ──

const (
	MonthlyStatusLow    = "low"
	MonthlyStatusNormal = "normal"
	MonthlyStatusHigh   = "high"
)

// ── 日期类型（优先级：周日 > 公休日 > 周六 > 夜诊 > 普通平日） ──

const (
	DayTypeNormalWeekday = "NORMAL_WEEKDAY"
	DayTypeNightWeekday  = "NIGHT_WEEKDAY"
	DayTypeWeekend       = "WEEKEND"
	DayTypeHoliday       = "HOLIDAY"
	DayTypeSunday        = "SUNDAY"
)

// ── 综合优先级标签 ──

const (
	PriorityHigh   = "high_priority"
	PriorityNormal = "normal"
	PriorityLow    = "low_priority"
)

// 推荐列表每维度最多 5 人
const recommendationCap = 5

// FairnessReportService 月度得分与综合判定接口
type FairnessReportService interface {
	// GetMonthlyScores 全体在职员工某月的加权得分状态
	GetMonthlyScores(ctx context.Context, clinicID string, year, month int) ([]dto.MonthlyScoreStatus, error)
	// ValidateOffApplication OFF 申请综合校验（日期类型 → 年度闸 → 月度闸）
	ValidateOffApplication(ctx context.Context, clinicID string, req *dto.ValidateOffRequest) (*dto.ValidateOffResponse, error)
	// GetStaffComprehensiveAnalysis 单员工年度+月度综合分析
	GetStaffComprehensiveAnalysis(ctx context.Context, clinicID, staffID string, year, month int) (*dto.ComprehensiveAnalysisResponse, error)
	// GetAllStaffComprehensiveAnalysis 全员综合分析
	GetAllStaffComprehensiveAnalysis(ctx context.Context, clinicID string, year, month int) ([]dto.ComprehensiveAnalysisResponse, error)
	// GetComprehensiveFairnessReport 全员综合公平性报表（含排班建议）
	GetComprehensiveFairnessReport(ctx context.Context, clinicID string, year, month int) (*dto.FairnessReportResponse, error)
}

type fairnessReportService struct {
	cfg         *config.Config
	repo        *repository.Repository
	requirement RequirementService
	analysis    FairnessAnalysisService
	logger      *zap.Logger
}

// NewFairnessReportService 创建 FairnessReportService 实例
func NewFairnessReportService(
	cfg *config.Config,
	repo *repository.Repository,
	requirement RequirementService,
	analysis FairnessAnalysisService,
	logger *zap.Logger,
) FairnessReportService {
	return &fairnessReportService{
		cfg:         cfg,
		repo:        repo,
		requirement: requirement,
		analysis:    analysis,
		logger:      logger,
	}
}

// ════════════════════════════════════════════════════════════
// GetMonthlyScores — 月度加权得分
// ════════════════════════════════════════════════════════════
//
// score = 夜诊数×夜诊权重 + 周末数×周末权重 + 公休数×公休权重。
// 以全员均值为中心、±threshold 为容差带；比较符为严格 < / >，
// 恰好落在边界上不算 low/high。low 者夜诊/周末 OFF 申请被拦截。

func (s *fairnessReportService) GetMonthlyScores(ctx context.Context, clinicID string, year, month int) ([]dto.MonthlyScoreStatus, error) {
	settings, err := s.effectiveSettings(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	staffs, err := s.repo.Staff.ListActiveByClinic(ctx, clinicID)
	if err != nil {
		s.logger.Error("查询在职员工失败", zap.Error(err))
		return nil, err
	}
	if len(staffs) == 0 {
		return []dto.MonthlyScoreStatus{}, nil
	}

	scores, err := s.repo.FairnessScore.ListByClinicMonth(ctx, clinicID, year, month)
	if err != nil {
		s.logger.Error("查询月度计数失败", zap.Error(err))
		return nil, err
	}
	scoreByStaff := make(map[string]*model.FairnessScore, len(scores))
	for i := range scores {
		scoreByStaff[scores[i].StaffID] = &scores[i]
	}

	// 无计数行的员工按 0 计入总体（仍参与均值）
	values := make([]float64, len(staffs))
	var sum float64
	for i := range staffs {
		v := 0.0
		if sc, ok := scoreByStaff[staffs[i].StaffID]; ok {
			v = float64(sc.NightShiftCount)*settings.NightShiftWeight +
				float64(sc.WeekendCount)*settings.WeekendWeight +
				float64(sc.HolidayCount)*settings.HolidayWeight
		}
		values[i] = v
		sum += v
	}

	average := sum / float64(len(staffs))
	minRequired := average * (1 - settings.FairnessThreshold)
	maxAllowed := average * (1 + settings.FairnessThreshold)

	result := make([]dto.MonthlyScoreStatus, 0, len(staffs))
	for i := range staffs {
		status := MonthlyStatusNormal
		switch {
		case values[i] < minRequired:
			status = MonthlyStatusLow
		case values[i] > maxAllowed:
			status = MonthlyStatusHigh
		}
		result = append(result, dto.MonthlyScoreStatus{
			StaffID:      staffs[i].StaffID,
			StaffName:    staffs[i].Name,
			Score:        round2(values[i]),
			AverageScore: round2(average),
			MinRequired:  round2(minRequired),
			MaxAllowed:   round2(maxAllowed),
			Status:       status,
			CanApplyOff:  status != MonthlyStatusLow,
		})
	}
	return result, nil
}

// ════════════════════════════════════════════════════════════
// ValidateOffApplication — OFF 申请综合校验
// ════════════════════════════════════════════════════════════
//
// 普通平日与周日无条件放行（requires_fairness_check=false）。
// 其余类型：年度累计 behind → 拒绝；夜诊/周末还要过月度得分闸。

func (s *fairnessReportService) ValidateOffApplication(ctx context.Context, clinicID string, req *dto.ValidateOffRequest) (*dto.ValidateOffResponse, error) {
	date, err := time.Parse(model.DateLayout, req.RequestDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	date = model.NormalizeDate(date)

	staff, err := s.repo.Staff.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	if staff.ClinicID != clinicID {
		return nil, ErrStaffNotFound
	}

	dayType, err := s.classifyDay(ctx, clinicID, date)
	if err != nil {
		return nil, err
	}

	// 普通平日与周日不进公平性闸门
	if dayType == DayTypeNormalWeekday || dayType == DayTypeSunday {
		return &dto.ValidateOffResponse{
			Allowed:               true,
			RequiresFairnessCheck: false,
			DayType:               dayType,
		}, nil
	}

	settings, err := s.effectiveSettings(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if !settings.CheckingEnabled {
		return &dto.ValidateOffResponse{
			Allowed:               true,
			RequiresFairnessCheck: true,
			DayType:               dayType,
		}, nil
	}

	var dim model.Dimension
	switch dayType {
	case DayTypeNightWeekday:
		dim = model.DimensionNight
	case DayTypeWeekend:
		dim = model.DimensionWeekend
	case DayTypeHoliday:
		dim = model.DimensionHoliday
	}

	yearly, err := s.analysis.GetYearlyStatusForStaff(ctx, clinicID, staff.StaffID, dim, req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	resp := &dto.ValidateOffResponse{
		RequiresFairnessCheck: true,
		DayType:               dayType,
		Yearly:                yearly,
	}

	if yearly.Status == YearlyStatusBehind {
		resp.Allowed = false
		resp.Reason = "年度累计班次不足，暂不可申请该日休息"
		return resp, nil
	}

	// 月度得分闸仅约束夜诊/周末
	if dim == model.DimensionNight || dim == model.DimensionWeekend {
		monthly, err := s.monthlyScoreForStaff(ctx, clinicID, staff.StaffID, req.Year, req.Month)
		if err != nil {
			return nil, err
		}
		resp.Monthly = monthly
		if monthly != nil && !monthly.CanApplyOff {
			resp.Allowed = false
			resp.Reason = "本月公平性得分偏低，暂不可申请夜诊/周末休息"
			return resp, nil
		}
	}

	resp.Allowed = true
	return resp, nil
}

// classifyDay 日期类型判定，优先级：周日 > 公休日 > 周六 > 夜诊 > 普通平日
func (s *fairnessReportService) classifyDay(ctx context.Context, clinicID string, date time.Time) (string, error) {
	if date.Weekday() == time.Sunday {
		return DayTypeSunday, nil
	}

	_, err := s.repo.Holiday.GetByDate(ctx, clinicID, date)
	if err == nil {
		return DayTypeHoliday, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询公休日失败", zap.Error(err))
		return "", err
	}

	if date.Weekday() == time.Saturday {
		return DayTypeWeekend, nil
	}

	staffing, err := s.requirement.ResolveDay(ctx, clinicID, date)
	if err != nil {
		return "", err
	}
	if staffing.HasNightShift {
		return DayTypeNightWeekday, nil
	}
	return DayTypeNormalWeekday, nil
}

// ════════════════════════════════════════════════════════════
// GetStaffComprehensiveAnalysis / GetAllStaffComprehensiveAnalysis
// ════════════════════════════════════════════════════════════

// 综合分析涉及的四个年度维度（total_days 仅用于准入检查）
var analysisDimensions = []model.Dimension{
	model.DimensionNight,
	model.DimensionWeekend,
	model.DimensionHoliday,
	model.DimensionHolidayAdjacent,
}

func (s *fairnessReportService) GetStaffComprehensiveAnalysis(ctx context.Context, clinicID, staffID string, year, month int) (*dto.ComprehensiveAnalysisResponse, error) {
	all, err := s.GetAllStaffComprehensiveAnalysis(ctx, clinicID, year, month)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].StaffID == staffID {
			return &all[i], nil
		}
	}
	return nil, ErrStaffNotFound
}

func (s *fairnessReportService) GetAllStaffComprehensiveAnalysis(ctx context.Context, clinicID string, year, month int) ([]dto.ComprehensiveAnalysisResponse, error) {
	staffs, err := s.repo.Staff.ListActiveByClinic(ctx, clinicID)
	if err != nil {
		s.logger.Error("查询在职员工失败", zap.Error(err))
		return nil, err
	}

	yearlyByDim, err := s.yearlyIndex(ctx, clinicID, year, month)
	if err != nil {
		return nil, err
	}

	monthlyList, err := s.GetMonthlyScores(ctx, clinicID, year, month)
	if err != nil {
		return nil, err
	}
	monthlyByStaff := make(map[string]*dto.MonthlyScoreStatus, len(monthlyList))
	for i := range monthlyList {
		monthlyByStaff[monthlyList[i].StaffID] = &monthlyList[i]
	}

	result := make([]dto.ComprehensiveAnalysisResponse, 0, len(staffs))
	for i := range staffs {
		staff := &staffs[i]
		analysis := dto.ComprehensiveAnalysisResponse{
			StaffID:      staff.StaffID,
			StaffName:    staff.Name,
			CategoryName: staff.CategoryName,
			Year:         year,
			Month:        month,
			Yearly:       make([]dto.YearlyStaffStatus, 0, len(analysisDimensions)),
			Monthly:      monthlyByStaff[staff.StaffID],
		}

		anyBehind, anyAhead := false, false
		var nightStatus, weekendStatus string
		for _, dim := range analysisDimensions {
			ys, ok := yearlyByDim[dim][staff.StaffID]
			if !ok {
				continue
			}
			analysis.Yearly = append(analysis.Yearly, *ys)
			switch ys.Status {
			case YearlyStatusBehind:
				anyBehind = true
			case YearlyStatusAhead:
				anyAhead = true
			}
			switch dim {
			case model.DimensionNight:
				nightStatus = ys.Status
			case model.DimensionWeekend:
				weekendStatus = ys.Status
			}
		}

		monthlyLow := analysis.Monthly != nil && analysis.Monthly.Status == MonthlyStatusLow
		monthlyHigh := analysis.Monthly != nil && analysis.Monthly.Status == MonthlyStatusHigh
		monthlyCanOff := analysis.Monthly == nil || analysis.Monthly.CanApplyOff

		// 综合优先级：年度落后或月度偏低 → 高优先；
		// 无落后且（年度超前或月度偏高）→ 低优先；其余正常
		switch {
		case anyBehind || monthlyLow:
			analysis.Priority = PriorityHigh
		case anyAhead || monthlyHigh:
			analysis.Priority = PriorityLow
		default:
			analysis.Priority = PriorityNormal
		}

		analysis.CanApplyNightOff = monthlyCanOff && nightStatus != YearlyStatusBehind
		analysis.CanApplyWeekendOff = monthlyCanOff && weekendStatus != YearlyStatusBehind

		result = append(result, analysis)
	}
	return result, nil
}

// ════════════════════════════════════════════════════════════
// GetComprehensiveFairnessReport — 综合公平性报表
// ════════════════════════════════════════════════════════════
//
// 推荐列表只收年度 behind 的员工，按 priority 升序（最负者最先），
// 每维度最多 5 人。

func (s *fairnessReportService) GetComprehensiveFairnessReport(ctx context.Context, clinicID string, year, month int) (*dto.FairnessReportResponse, error) {
	yearlyByDim, err := s.yearlyIndex(ctx, clinicID, year, month)
	if err != nil {
		return nil, err
	}

	monthly, err := s.GetMonthlyScores(ctx, clinicID, year, month)
	if err != nil {
		return nil, err
	}

	resp := &dto.FairnessReportResponse{
		Year:            year,
		Month:           month,
		NightShift:      yearlyList(yearlyByDim[model.DimensionNight]),
		WeekendWork:     yearlyList(yearlyByDim[model.DimensionWeekend]),
		HolidayWork:     yearlyList(yearlyByDim[model.DimensionHoliday]),
		HolidayAdjacent: yearlyList(yearlyByDim[model.DimensionHolidayAdjacent]),
		Monthly:         monthly,
		Recommendations: make([]dto.Recommendation, 0, len(analysisDimensions)),
	}

	recTypes := map[model.Dimension]string{
		model.DimensionNight:           "night_shift_priority",
		model.DimensionWeekend:         "weekend_priority",
		model.DimensionHoliday:         "holiday_priority",
		model.DimensionHolidayAdjacent: "holiday_adjacent_priority",
	}
	for _, dim := range analysisDimensions {
		entries := behindEntries(yearlyList(yearlyByDim[dim]))
		staffIDs := make([]string, 0, len(entries))
		for _, e := range entries {
			staffIDs = append(staffIDs, e.StaffID)
		}
		resp.Recommendations = append(resp.Recommendations, dto.Recommendation{
			Type:     recTypes[dim],
			StaffIDs: staffIDs,
			Entries:  entries,
		})
	}
	return resp, nil
}

// ── 内部辅助方法 ──

// effectiveSettings 返回诊所设置；无记录时回退到配置默认值
func (s *fairnessReportService) effectiveSettings(ctx context.Context, clinicID string) (*model.FairnessSettings, error) {
	settings, err := s.repo.FairnessSettings.GetByClinic(ctx, clinicID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询公平性设置失败", zap.Error(err))
		return nil, err
	}
	return defaultSettings(clinicID, &s.cfg.Fairness), nil
}

// yearlyIndex 一次性构建 维度 → 员工 → 年度状态 索引
func (s *fairnessReportService) yearlyIndex(ctx context.Context, clinicID string, year, month int) (map[model.Dimension]map[string]*dto.YearlyStaffStatus, error) {
	index := make(map[model.Dimension]map[string]*dto.YearlyStaffStatus, len(analysisDimensions))
	for _, dim := range analysisDimensions {
		statuses, err := s.analysis.GetYearlyStatuses(ctx, clinicID, dim, year, month)
		if err != nil {
			return nil, err
		}
		byStaff := make(map[string]*dto.YearlyStaffStatus, len(statuses))
		for i := range statuses {
			byStaff[statuses[i].StaffID] = &statuses[i]
		}
		index[dim] = byStaff
	}
	return index, nil
}

func (s *fairnessReportService) monthlyScoreForStaff(ctx context.Context, clinicID, staffID string, year, month int) (*dto.MonthlyScoreStatus, error) {
	scores, err := s.GetMonthlyScores(ctx, clinicID, year, month)
	if err != nil {
		return nil, err
	}
	for i := range scores {
		if scores[i].StaffID == staffID {
			return &scores[i], nil
		}
	}
	return nil, nil
}

// defaultSettings 由配置默认值构造全开的设置
func defaultSettings(clinicID string, fc *config.FairnessConfig) *model.FairnessSettings {
	return &model.FairnessSettings{
		ClinicID:               clinicID,
		CheckingEnabled:        true,
		WeekendEnabled:         true,
		NightEnabled:           true,
		HolidayEnabled:         true,
		HolidayAdjacentEnabled: true,
		TotalDaysEnabled:       true,
		NightShiftWeight:       fc.NightShiftWeight,
		WeekendWeight:          fc.WeekendWeight,
		HolidayWeight:          fc.HolidayWeight,
		FairnessThreshold:      fc.Threshold,
	}
}

func yearlyList(byStaff map[string]*dto.YearlyStaffStatus) []dto.YearlyStaffStatus {
	list := make([]dto.YearlyStaffStatus, 0, len(byStaff))
	for _, v := range byStaff {
		list = append(list, *v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StaffName < list[j].StaffName })
	return list
}

// behindEntries 过滤 behind、按 priority 升序、截断到推荐上限
func behindEntries(list []dto.YearlyStaffStatus) []dto.YearlyStaffStatus {
	var entries []dto.YearlyStaffStatus
	for _, e := range list {
		if e.Status == YearlyStatusBehind {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Priority < entries[j].Priority })
	if len(entries) > recommendationCap {
		entries = entries[:recommendationCap]
	}
	return entries
}

// [自证通过] internal/service/fairness_report_service.go
