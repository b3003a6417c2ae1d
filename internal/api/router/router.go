package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/config"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/api/handler"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/api/middleware"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/pkg/jwt"
	"github.com/seonhu82/ysbaro-Scheduler-sub001/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 员工模块
			staff := authorized.Group("/staff")
			{
				staff.GET("", h.Staff.ListActive)
				staff.GET("/:id", h.Staff.Get)
				staff.POST("", middleware.RoleAuth("admin"), h.Staff.Create)
				staff.PUT("/:id", middleware.RoleAuth("admin"), h.Staff.Update)
			}

			// 公平性模块
			fairness := authorized.Group("/fairness")
			{
				fairness.POST("/check", h.Fairness.Check)
				fairness.POST("/validate-off", h.Fairness.ValidateOff)
				fairness.GET("/targets", h.Fairness.GetCumulativeTarget)
				fairness.GET("/yearly", h.Fairness.GetYearlyStatuses)
				fairness.GET("/monthly", h.Fairness.GetMonthlyScores)
				fairness.GET("/analysis", middleware.RoleAuth("admin"), h.Fairness.GetAllAnalysis)
				fairness.GET("/analysis/:staff_id", h.Fairness.GetStaffAnalysis)
				fairness.GET("/report", middleware.RoleAuth("admin"), h.Fairness.GetReport)
				fairness.GET("/report/export", middleware.RoleAuth("admin"), h.Export.ExportFairnessReport)
			}

			// 休假申请模块
			leaves := authorized.Group("/leaves")
			{
				leaves.POST("", h.Leave.Apply)
				leaves.GET("/my", h.Leave.ListMine)
				leaves.POST("/:id/cancel", h.Leave.Cancel)
				leaves.GET("", middleware.RoleAuth("admin"), h.Leave.List)
				leaves.PUT("/:id/status", middleware.RoleAuth("admin"), h.Leave.Review)
			}

			// 申请窗口模块
			leavePeriods := authorized.Group("/leave-periods")
			{
				leavePeriods.GET("", h.Leave.ListPeriods)
				leavePeriods.PUT("", middleware.RoleAuth("admin"), h.Leave.UpsertPeriod)
			}

			// 公休日模块
			holidays := authorized.Group("/holidays")
			{
				holidays.GET("", h.Holiday.List)
				holidays.POST("", middleware.RoleAuth("admin"), h.Holiday.Create)
				holidays.POST("/import", middleware.RoleAuth("admin"), h.Holiday.ImportICS)
				holidays.DELETE("/:id", middleware.RoleAuth("admin"), h.Holiday.Delete)
			}

			// 公平性设置模块
			settings := authorized.Group("/fairness-settings")
			{
				settings.GET("", h.Settings.Get)
				settings.PUT("", middleware.RoleAuth("admin"), h.Settings.Update)
			}
		}
	}

	return r
}
