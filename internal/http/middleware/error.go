package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	custom_errors "hearmenow/internal/errors"
)

// ErrorHandler 是一个处理错误的 Gin 中间件。
// 按错误分类映射到 HTTP 状态码：调用方错误 4xx，配置缺失 5xx
// 并在消息里点名缺失的设置，上游错误原样镜像状态码
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // 先执行后续的处理函数

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		// 记录错误日志
		traceID := "unknown"
		if v, ok := c.Get("trace_id"); ok {
			if s, ok := v.(string); ok && s != "" {
				traceID = s
			}
		}
		log := getLogger().With().Str("trace_id", traceID).Logger()
		log.Error().Err(err).Msg("请求处理时发生错误")

		var httpStatus int
		var errorMsg string

		var upstream *custom_errors.UpstreamError
		switch {
		case errors.Is(err, custom_errors.ErrInvalidInput):
			httpStatus = http.StatusBadRequest
			errorMsg = err.Error()
		case errors.Is(err, custom_errors.ErrUnconfigured):
			// 配置错误必须可见，消息里点名缺失的设置
			httpStatus = http.StatusInternalServerError
			errorMsg = err.Error()
		case errors.As(err, &upstream):
			// 镜像上游状态码和错误文本
			httpStatus = upstream.Status
			errorMsg = upstream.Message
			if errorMsg == "" {
				errorMsg = err.Error()
			}
		case errors.Is(err, custom_errors.ErrUpstream):
			httpStatus = http.StatusBadGateway
			errorMsg = err.Error()
		case errors.Is(err, custom_errors.ErrNotFound):
			httpStatus = http.StatusNotFound
			errorMsg = err.Error()
		default:
			httpStatus = http.StatusInternalServerError
			errorMsg = "internal server error"
		}

		// 如果响应尚未提交，则发送JSON错误响应
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(httpStatus, gin.H{"error": errorMsg})
		}
	}
}
