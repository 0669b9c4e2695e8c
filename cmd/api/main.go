package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"hearmenow/internal/config"
	"hearmenow/internal/http/middleware"
	"hearmenow/internal/http/server"
)

// initLog 初始化日志记录器
func initLog(logConfig *config.LogConfig) {
	if logConfig.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	level, err := logrus.ParseLevel(logConfig.Level)
	if err != nil {
		logrus.WithError(err).Warnf("无效的日志级别 '%s'，回退到 'info'", logConfig.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logrus.SetOutput(os.Stdout)
}

func main() {
	// 先加载 .env.local 再加载 .env，允许本地覆盖
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	// 如果没有指定配置文件，尝试默认位置；都不存在时
	// 只依赖默认值和环境变量运行
	if *configPath == "" {
		possiblePaths := []string{
			"./configs/config.yaml",
			"../configs/config.yaml",
			"/etc/hearmenow/config.yaml",
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				*configPath = path
				break
			}
		}
	}

	if *configPath != "" {
		absConfigPath, err := filepath.Abs(*configPath)
		if err != nil {
			logrus.Fatalf("无法获取配置文件的绝对路径: %v", err)
		}
		*configPath = absConfigPath
	}

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("无法加载配置: %v", err)
	}

	// 初始化日志
	initLog(&cfg.Log)
	middleware.InitZerologWithConfig(&cfg.Log)

	if *configPath != "" {
		logrus.Infof("使用配置文件: %s", *configPath)
	} else {
		logrus.Info("未找到配置文件，使用默认值和环境变量")
	}

	// 创建并启动应用
	app, err := server.NewApp(cfg)
	if err != nil {
		logrus.Fatalf("初始化应用失败: %v", err)
	}

	if err := app.Start(); err != nil {
		logrus.Fatalf("应用运行出错: %v", err)
	}
}
