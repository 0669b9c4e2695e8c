package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"hearmenow/internal/config"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	config *config.Config
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{config: cfg}
}

// HandleHealth 处理 GET /health。
// hasKey 暴露合成凭证是否就位，方便前端提前提示配置问题
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"provider": "elevenlabs",
		"hasKey":   h.config.ElevenLabs.APIKey != "",
	})
}
