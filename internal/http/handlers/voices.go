package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"hearmenow/internal/tts"
)

// VoicesHandler 处理声音列表请求
type VoicesHandler struct {
	ttsService tts.Service
}

// NewVoicesHandler 创建一个新的声音列表处理器
func NewVoicesHandler(service tts.Service) *VoicesHandler {
	return &VoicesHandler{ttsService: service}
}

// HandleVoices 处理 GET /voices，用于挑选有效的声音ID
func (h *VoicesHandler) HandleVoices(c *gin.Context) {
	voices, err := h.ttsService.ListVoices(c.Request.Context())
	if err != nil {
		getLoggerWithTraceID(c).WithError(err).Error("获取声音列表失败")
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"voices": voices})
}
