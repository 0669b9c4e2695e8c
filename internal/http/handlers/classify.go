package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"hearmenow/internal/classify"
	custom_errors "hearmenow/internal/errors"
	"hearmenow/internal/metrics"
	"hearmenow/internal/models"
)

// ClassifyHandler 处理情感分类请求
type ClassifyHandler struct {
	classifier *classify.Service
}

// NewClassifyHandler 创建一个新的分类处理器
func NewClassifyHandler(classifier *classify.Service) *ClassifyHandler {
	return &ClassifyHandler{classifier: classifier}
}

// HandleClassify 处理 POST /classify-emotion。
// 除输入为空和真正的配置错误外总是 200：降级在服务内部完成，
// 调用方永远拿得到一个标签
func (h *ClassifyHandler) HandleClassify(c *gin.Context) {
	logger := getLoggerWithTraceID(c)

	var req models.ClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Error("JSON解析错误")
		_ = c.Error(fmt.Errorf("%w: invalid JSON body: %v", custom_errors.ErrInvalidInput, err))
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		_ = c.Error(fmt.Errorf("%w: missing 'text' in request body", custom_errors.ErrInvalidInput))
		return
	}

	result, err := h.classifier.Classify(c.Request.Context(), req.Text)
	metrics.GlobalMetrics.RecordClassification(result.Provider, err)

	if err != nil {
		logger.WithError(err).Error("分类失败")
		_ = c.Error(err)
		return
	}

	logger.WithFields(logrus.Fields{
		"emotion":  result.Emotion,
		"provider": result.Provider,
		"reason":   result.Reason,
		"text":     truncateForLog(req.Text, 60),
	}).Info("分类完成")

	c.JSON(http.StatusOK, result)
}
