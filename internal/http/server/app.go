package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"hearmenow/internal/classify"
	"hearmenow/internal/config"
	"hearmenow/internal/http/routes"
	"hearmenow/internal/tts"
	"hearmenow/internal/tts/elevenlabs"
)

// App 表示整个应用程序
type App struct {
	server     *Server
	cfg        *config.Config
	ttsService tts.Service
}

// NewApp 创建一个新的应用程序实例
func NewApp(cfg *config.Config) (*App, error) {
	// 初始化服务。凭证缺失不阻止启动：合成在调用时返回
	// 配置错误，分类按契约降级到本地启发式
	var ttsService tts.Service = elevenlabs.NewClient(cfg)

	// 如果启用了缓存，则包装原始服务
	if cfg.Cache.Enabled {
		logrus.Info("启用音频缓存")
		ttsService = tts.NewCachingService(
			ttsService,
			time.Duration(cfg.Cache.ExpirationMinutes)*time.Minute,
			time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute,
			cfg.Cache.MaxTotalSizeMB*1024*1024,
		)
	}

	classifier := classify.NewService(cfg)

	// 设置Gin路由
	router := routes.SetupRoutes(cfg, ttsService, classifier)

	// 创建HTTP服务器
	server := New(cfg, router)

	return &App{
		server:     server,
		cfg:        cfg,
		ttsService: ttsService,
	}, nil
}

// Start 启动应用程序
func (a *App) Start() error {
	errChan := make(chan error, 1)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 在一个goroutine中启动服务器
	go func() {
		logrus.Infof("启动HearMeNow服务，监听端口 %d...", a.cfg.Server.Port)
		errChan <- a.server.Start()
	}()

	// 等待退出信号或错误
	select {
	case err := <-errChan:
		return err
	case <-quit:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(ctx); err != nil {
			logrus.Errorf("服务器关闭出错: %v", err)
		}

		logrus.Info("服务器已优雅关闭")
		return nil
	}
}
