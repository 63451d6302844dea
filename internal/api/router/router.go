package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"staff-registry/config"
	"staff-registry/internal/api/handler"
	"staff-registry/internal/api/middleware"
)

// maxBodyBytes 请求体大小上限（1MB，员工记录远小于此）
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 员工模块
		employees := v1.Group("/employees")
		{
			employees.GET("", h.Employee.ListEmployees)
			employees.GET("/export", h.Export.ExportRoster)
			employees.GET("/:id", h.Employee.GetEmployee)
			employees.POST("", h.Employee.CreateEmployee)
			employees.PUT("/:id", h.Employee.UpdateEmployee)
			employees.DELETE("/:id", h.Employee.DeleteEmployee)
		}
	}

	return r
}
