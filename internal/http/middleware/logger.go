package middleware

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"hearmenow/internal/config"
)

// 全局 zerolog 实例，使用惰性初始化
var (
	logger      zerolog.Logger
	initialized bool
)

// InitZerologWithConfig 使用配置初始化 zerolog 实例
func InitZerologWithConfig(logConfig *config.LogConfig) {
	var zerologLevel zerolog.Level
	switch logConfig.Level {
	case "debug":
		zerologLevel = zerolog.DebugLevel
	case "info":
		zerologLevel = zerolog.InfoLevel
	case "warn":
		zerologLevel = zerolog.WarnLevel
	case "error":
		zerologLevel = zerolog.ErrorLevel
	default:
		zerologLevel = zerolog.InfoLevel
	}

	if logConfig.Format == "json" {
		logger = zerolog.New(os.Stdout).Level(zerologLevel).With().Timestamp().Logger()
	} else {
		// 控制台友好格式输出
		output := zerolog.ConsoleWriter{Out: os.Stdout}
		logger = zerolog.New(output).Level(zerologLevel).With().Timestamp().Logger()
	}

	initialized = true
}

// initZerolog 初始化 zerolog 实例（惰性初始化，使用默认配置）
func initZerolog() {
	output := zerolog.ConsoleWriter{Out: os.Stdout}
	logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	initialized = true
}

// getLogger 获取 zerolog 实例（惰性初始化）
func getLogger() zerolog.Logger {
	if !initialized {
		initZerolog()
	}
	return logger
}

// Logger 是一个HTTP中间件，记录请求的详细信息
// 使用 zerolog 实现高性能日志记录，减少内存分配
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// 为每个请求创建一个trace_id
		traceID := uuid.New().String()
		c.Set("trace_id", traceID)

		c.Next()

		duration := time.Since(start)

		log := getLogger()
		event := log.Info().
			Str("trace_id", traceID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("user_agent", c.Request.UserAgent())

		if len(c.Errors) > 0 {
			event.Err(c.Errors.Last()).Msg("request completed with errors")
		} else {
			event.Msg("request completed")
		}
	}
}
