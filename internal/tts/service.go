package tts

import (
	"context"

	"hearmenow/internal/models"
)

// Service 定义语音合成服务接口
type Service interface {
	// Synthesize 合成一段语音，返回原始音频字节
	Synthesize(ctx context.Context, req models.SynthesisRequest) (*models.SynthesisResponse, error)
	// ListVoices 列出可用的声音
	ListVoices(ctx context.Context) ([]models.Voice, error)
}
