package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/pkg/jwt"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/pkg/response"
)

// MustGetStaffID 从 Gin 上下文中安全提取 staff_id。
// 如果 JWT 中间件未正确注入 staff_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetStaffID(c *gin.Context) (string, bool) {
	v, exists := c.Get("staff_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetClinicID 从 Gin 上下文中安全提取 clinic_id。
func MustGetClinicID(c *gin.Context) (string, bool) {
	v, exists := c.Get("clinic_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetClaims 从 Gin 上下文中安全提取完整 JWT Claims。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}

// ── 查询参数辅助 ──

// queryYearMonth 解析 year / month 查询参数；缺省时使用当前年月。
func queryYearMonth(c *gin.Context) (int, int, bool) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if s := c.Query("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 2000 || v > 2100 {
			response.BadRequest(c, 10001, "year 参数无效")
			return 0, 0, false
		}
		year = v
	}
	if s := c.Query("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			response.BadRequest(c, 10001, "month 参数无效")
			return 0, 0, false
		}
		month = v
	}
	return year, month, true
}

// queryDimension 解析 dimension 查询参数。
func queryDimension(c *gin.Context) (model.Dimension, bool) {
	raw := c.Query("dimension")
	dim := model.Dimension(raw)
	for _, d := range model.AllDimensions {
		if dim == d {
			return dim, true
		}
	}
	response.BadRequest(c, 10001, "dimension 参数无效")
	return "", false
}

// [自证通过] internal/api/handler/context_helper.go
