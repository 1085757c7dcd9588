package controller

import (
	"context"
	"exam_hub_backend/internal/service"
	"exam_hub_backend/internal/util"
	"exam_hub_backend/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthController struct {
	DB      *gorm.DB
	Storage service.BlobStore
}

func NewHealthController(db *gorm.DB, storage service.BlobStore) *HealthController {
	return &HealthController{DB: db, Storage: storage}
}

// @Summary 健康检查
// @Description 检查数据库与文件存储状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := sqlDB.PingContext(reqCtx); err != nil {
		logger.Log.Warn("database ping failed", zap.Error(err))
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	if err := c.Storage.Ready(reqCtx); err != nil {
		logger.Log.Warn("storage not ready", zap.Error(err))
		util.Error(ctx, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"storage":  "up",
		},
	})
}
