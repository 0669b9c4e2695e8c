package routes

import (
	"github.com/gin-gonic/gin"
	"hearmenow/internal/classify"
	"hearmenow/internal/config"
	"hearmenow/internal/http/handlers"
	"hearmenow/internal/http/middleware"
	"hearmenow/internal/tts"
)

// SetupRoutes 配置所有API路由
func SetupRoutes(cfg *config.Config, ttsService tts.Service, classifier *classify.Service) *gin.Engine {
	router := gin.New()

	// 创建处理器
	synthesizeHandler := handlers.NewSynthesizeHandler(ttsService, cfg)
	classifyHandler := handlers.NewClassifyHandler(classifier)
	voicesHandler := handlers.NewVoicesHandler(ttsService)
	healthHandler := handlers.NewHealthHandler(cfg)
	metricsHandler := handlers.NewMetricsHandler()

	// 应用中间件
	router.Use(middleware.Logger())       // 日志中间件
	router.Use(middleware.CORS())         // CORS中间件
	router.Use(middleware.ErrorHandler()) // 错误处理中间件

	// 应用基础路径前缀
	var baseRouter gin.IRoutes
	if cfg.Server.BasePath != "" {
		baseRouter = router.Group(cfg.Server.BasePath)
	} else {
		baseRouter = router
	}

	baseRouter.POST("/synthesize", synthesizeHandler.HandleSynthesize)
	baseRouter.POST("/classify-emotion", classifyHandler.HandleClassify)
	baseRouter.GET("/voices", voicesHandler.HandleVoices)
	baseRouter.GET("/health", healthHandler.HandleHealth)

	baseRouter.GET("/metrics", metricsHandler.GetMetrics)
	baseRouter.POST("/metrics/reset", metricsHandler.ResetMetrics)

	return router
}
