package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/PrinceKarma/swe-642-hw3/config"
	"github.com/PrinceKarma/swe-642-hw3/internal/api/handler"
	"github.com/PrinceKarma/swe-642-hw3/internal/api/middleware"
	"github.com/PrinceKarma/swe-642-hw3/pkg/database"
	"github.com/PrinceKarma/swe-642-hw3/pkg/redis"
	"github.com/PrinceKarma/swe-642-hw3/pkg/response"
	"github.com/PrinceKarma/swe-642-hw3/pkg/validation"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时写接口不限流
func Setup(cfg *config.Config, h *handler.Handler, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), db); err != nil {
			logger.Error("健康检查：数据库不可用", zap.Error(err))
			response.Error(c, http.StatusServiceUnavailable, response.CodeServiceDegraded, "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── 写接口限流 ──
	var writeLimit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled && rdb != nil {
		writeLimit = middleware.RateLimit(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger)
	}

	// ── 问卷模块 ──
	surveys := r.Group("/api/surveys")
	{
		surveys.GET("", h.Survey.ListSurveys)
		surveys.GET("/count", h.Survey.CountSurveys)
		surveys.GET("/export", h.Export.ExportSurveys)
		surveys.GET("/:id", h.Survey.GetSurvey)
		surveys.POST("", writeLimit, h.Survey.CreateSurvey)
		surveys.PUT("/:id", writeLimit, h.Survey.UpdateSurvey)
		surveys.DELETE("/:id", writeLimit, h.Survey.DeleteSurvey)
	}

	return r, nil
}
