package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config 包含应用程序的所有配置
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	ElevenLabs ElevenLabsConfig `mapstructure:"elevenlabs"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Log        LogConfig        `mapstructure:"log"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

// ServerConfig 包含HTTP服务器配置
type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	BasePath     string `mapstructure:"base_path"`
}

// ElevenLabsConfig 包含语音合成服务配置
type ElevenLabsConfig struct {
	APIKey         string `mapstructure:"api_key"`
	VoiceID        string `mapstructure:"voice_id"`
	ModelID        string `mapstructure:"model_id"`
	BaseURL        string `mapstructure:"base_url"`
	RequestTimeout int    `mapstructure:"request_timeout"`
}

// OpenAIConfig 包含远程情感分类服务配置。
// Disabled 为管理开关：置位后完全跳过远程调用，直接走本地启发式
type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	BaseURL        string `mapstructure:"base_url"`
	Disabled       bool   `mapstructure:"disabled"`
	RequestTimeout int    `mapstructure:"request_timeout"`
}

// LogConfig 包含日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CacheConfig 包含音频缓存配置
type CacheConfig struct {
	Enabled                bool  `mapstructure:"enabled"`
	ExpirationMinutes      int   `mapstructure:"expiration_minutes"`
	CleanupIntervalMinutes int   `mapstructure:"cleanup_interval_minutes"`
	MaxTotalSizeMB         int64 `mapstructure:"max_total_size_mb"`
}

var (
	config Config
	once   sync.Once
)

// Load 从指定路径加载配置文件。configPath 为空时只依赖默认值和环境变量，
// 凭证缺失不在这里报错——按各组件的契约在调用时降级或拒绝
func Load(configPath string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setDefaults(v)

		// 从配置文件加载（可选）
		if configPath != "" {
			v.SetConfigFile(configPath)
			if err = v.ReadInConfig(); err != nil {
				err = fmt.Errorf("加载配置文件失败: %w", err)
				return
			}
		}

		// 将配置绑定到结构体
		if err = v.Unmarshal(&config); err != nil {
			err = fmt.Errorf("解析配置失败: %w", err)
			return
		}

		// 从环境变量覆盖配置（优先级最高）
		loadFromEnvironment(&config)
	})

	if err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("elevenlabs.base_url", "https://api.elevenlabs.io")
	v.SetDefault("elevenlabs.request_timeout", 30)
	v.SetDefault("openai.base_url", "https://api.openai.com")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.request_timeout", 15)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.expiration_minutes", 30)
	v.SetDefault("cache.cleanup_interval_minutes", 10)
	v.SetDefault("cache.max_total_size_mb", 0)
}

// loadFromEnvironment 从环境变量加载并覆盖配置
func loadFromEnvironment(cfg *Config) {
	// 服务器配置
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if basePath := os.Getenv("HMN_SERVER_BASE_PATH"); basePath != "" {
		cfg.Server.BasePath = basePath
	}
	if readTimeout := os.Getenv("HMN_SERVER_READ_TIMEOUT"); readTimeout != "" {
		if t, err := strconv.Atoi(readTimeout); err == nil {
			cfg.Server.ReadTimeout = t
		}
	}
	if writeTimeout := os.Getenv("HMN_SERVER_WRITE_TIMEOUT"); writeTimeout != "" {
		if t, err := strconv.Atoi(writeTimeout); err == nil {
			cfg.Server.WriteTimeout = t
		}
	}

	// 语音合成配置
	if apiKey := os.Getenv("ELEVENLABS_API_KEY"); apiKey != "" {
		cfg.ElevenLabs.APIKey = apiKey
	}
	if voiceID := os.Getenv("ELEVENLABS_VOICE_ID"); voiceID != "" {
		cfg.ElevenLabs.VoiceID = voiceID
	}
	if modelID := os.Getenv("ELEVENLABS_MODEL_ID"); modelID != "" {
		cfg.ElevenLabs.ModelID = modelID
	}
	if baseURL := os.Getenv("ELEVENLABS_BASE_URL"); baseURL != "" {
		cfg.ElevenLabs.BaseURL = baseURL
	}

	// 情感分类配置
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAI.APIKey = apiKey
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAI.Model = model
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.OpenAI.BaseURL = baseURL
	}
	if disabled := os.Getenv("DISABLE_OPENAI"); disabled != "" {
		cfg.OpenAI.Disabled = strings.ToLower(disabled) == "true" || disabled == "1"
	}

	// 日志配置
	if logLevel := os.Getenv("HMN_LOG_LEVEL"); logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat := os.Getenv("HMN_LOG_FORMAT"); logFormat != "" {
		cfg.Log.Format = logFormat
	}

	// 缓存配置
	if cacheEnabled := os.Getenv("HMN_CACHE_ENABLED"); cacheEnabled != "" {
		cfg.Cache.Enabled = strings.ToLower(cacheEnabled) == "true"
	}
	if cacheExpiration := os.Getenv("HMN_CACHE_EXPIRATION_MINUTES"); cacheExpiration != "" {
		if e, err := strconv.Atoi(cacheExpiration); err == nil {
			cfg.Cache.ExpirationMinutes = e
		}
	}
	if cacheCleanup := os.Getenv("HMN_CACHE_CLEANUP_INTERVAL_MINUTES"); cacheCleanup != "" {
		if c, err := strconv.Atoi(cacheCleanup); err == nil {
			cfg.Cache.CleanupIntervalMinutes = c
		}
	}
	if cacheMaxSize := os.Getenv("HMN_CACHE_MAX_TOTAL_SIZE_MB"); cacheMaxSize != "" {
		if m, err := strconv.ParseInt(cacheMaxSize, 10, 64); err == nil {
			cfg.Cache.MaxTotalSizeMB = m
		}
	}
}

// Get 返回已加载的配置
func Get() *Config {
	return &config
}
