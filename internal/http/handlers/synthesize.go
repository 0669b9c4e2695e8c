package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"hearmenow/internal/config"
	custom_errors "hearmenow/internal/errors"
	"hearmenow/internal/metrics"
	"hearmenow/internal/models"
	"hearmenow/internal/tts"
)

// SynthesizeHandler 处理语音合成请求
type SynthesizeHandler struct {
	ttsService tts.Service
	config     *config.Config
}

// NewSynthesizeHandler 创建一个新的合成处理器
func NewSynthesizeHandler(service tts.Service, cfg *config.Config) *SynthesizeHandler {
	return &SynthesizeHandler{
		ttsService: service,
		config:     cfg,
	}
}

// HandleSynthesize 处理 POST /synthesize。
// 成功时返回二进制音频，Content-Type 取请求指定的格式，
// Content-Length 为准确的字节数；失败时交给错误中间件映射状态码
func (h *SynthesizeHandler) HandleSynthesize(c *gin.Context) {
	startTime := time.Now()
	logger := getLoggerWithTraceID(c)

	var req models.SynthesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Error("JSON解析错误")
		_ = c.Error(fmt.Errorf("%w: invalid JSON body: %v", custom_errors.ErrInvalidInput, err))
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		_ = c.Error(fmt.Errorf("%w: missing 'text' in request body", custom_errors.ErrInvalidInput))
		return
	}

	logger.WithFields(logrus.Fields{
		"emotion":     req.EmotionLabel(),
		"voice":       req.VoiceID,
		"format":      req.Format,
		"text_length": utf8.RuneCountInString(req.Text),
		"text":        truncateForLog(req.Text, 60),
	}).Info("合成请求")

	resp, err := h.ttsService.Synthesize(c.Request.Context(), req)
	synthTime := time.Since(startTime)
	metrics.GlobalMetrics.RecordSynthesis(synthTime, err)

	if err != nil {
		logger.WithError(err).Error("合成失败")
		_ = c.Error(err)
		return
	}

	c.Header("Content-Type", resp.ContentType)
	c.Header("Content-Length", strconv.Itoa(len(resp.AudioContent)))
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write(resp.AudioContent); err != nil {
		logger.WithError(err).Error("写入响应失败")
		return
	}

	logger.WithFields(logrus.Fields{
		"duration":   synthTime,
		"audio_size": formatFileSize(len(resp.AudioContent)),
		"cache_hit":  resp.CacheHit,
	}).Info("合成完成")
}
