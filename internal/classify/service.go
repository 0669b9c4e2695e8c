package classify

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"hearmenow/internal/classify/openai"
	"hearmenow/internal/config"
	"hearmenow/internal/emotion"
	custom_errors "hearmenow/internal/errors"
	"hearmenow/internal/models"
)

// RemoteClassifier 抽象远程分类客户端，便于测试替换
type RemoteClassifier interface {
	Classify(ctx context.Context, text string) (emotion.Label, error)
}

// Service 实现情感分类的链式解析：
// 管理开关 → 凭证检查 → 远程分类 → 配额/服务端错误降级。
// 除了真正的配置错误（例如凭证无效）之外不向外失败，
// 调用方总能拿到一个可用的标签
type Service struct {
	cfg    *config.Config
	remote RemoteClassifier
}

// NewService 创建分类服务
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:    cfg,
		remote: openai.NewClient(cfg),
	}
}

// NewServiceWithRemote 用指定的远程客户端创建分类服务（测试用）
func NewServiceWithRemote(cfg *config.Config, remote RemoteClassifier) *Service {
	return &Service{cfg: cfg, remote: remote}
}

// Classify 将文本解析为情感标签。解析顺序固定，第一条适用的分支胜出
func (s *Service) Classify(ctx context.Context, text string) (models.ClassificationResult, error) {
	// 1. 管理开关：完全跳过远程调用
	if s.cfg.OpenAI.Disabled {
		return models.ClassificationResult{
			Emotion:  emotion.Heuristic(text),
			Provider: models.ProviderDisabledFallback,
		}, nil
	}

	// 2. 未配置凭证：本地启发式
	if s.cfg.OpenAI.APIKey == "" {
		return models.ClassificationResult{
			Emotion:  emotion.Heuristic(text),
			Provider: models.ProviderFallback,
		}, nil
	}

	// 3. 远程分类
	label, err := s.remote.Classify(ctx, text)
	if err == nil {
		return models.ClassificationResult{
			Emotion:  label,
			Provider: models.ProviderOpenAI,
		}, nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsQuotaExhausted():
			// 配额耗尽是预期的运行状态，静默降级
			logrus.WithField("status", apiErr.Status).Warn("分类配额耗尽，降级到本地启发式")
			return models.ClassificationResult{
				Emotion:  emotion.Heuristic(text),
				Provider: models.ProviderOpenAIFallback,
				Reason:   models.ReasonInsufficientQuota,
			}, nil
		case apiErr.IsServerError():
			logrus.WithField("status", apiErr.Status).Warn("分类服务端错误，降级到本地启发式")
			return models.ClassificationResult{
				Emotion:  emotion.Heuristic(text),
				Provider: models.ProviderOpenAIFallback,
				Reason:   models.ReasonServerError,
			}, nil
		default:
			// 其余非 2xx（例如凭证无效）是真正的配置问题，必须可见
			return models.ClassificationResult{}, custom_errors.NewUpstreamError(apiErr.Status, apiErr.Message)
		}
	}

	// 传输层错误：服务不可达等同于服务端错误，降级而非失败
	logrus.WithError(err).Warn("分类服务不可达，降级到本地启发式")
	return models.ClassificationResult{
		Emotion:  emotion.Heuristic(text),
		Provider: models.ProviderOpenAIFallback,
		Reason:   models.ReasonServerError,
	}, nil
}
