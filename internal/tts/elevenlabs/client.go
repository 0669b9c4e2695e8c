package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"hearmenow/internal/config"
	"hearmenow/internal/emotion"
	custom_errors "hearmenow/internal/errors"
	"hearmenow/internal/models"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// Client 是 ElevenLabs 语音合成 REST API 的客户端
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	defaultVoice string
	modelID      string
}

// NewClient 从配置创建客户端。凭证缺失不在这里报错，
// 而是在每次调用时按契约返回 Unconfigured
func NewClient(cfg *config.Config) *Client {
	baseURL := strings.TrimRight(cfg.ElevenLabs.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := time.Duration(cfg.ElevenLabs.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      baseURL,
		apiKey:       cfg.ElevenLabs.APIKey,
		defaultVoice: cfg.ElevenLabs.VoiceID,
		modelID:      cfg.ElevenLabs.ModelID,
	}
}

// synthesisBody 发往合成接口的请求体。voice_settings
// 必须与参数映射表的输出完全一致，不允许在这里二次调整
type synthesisBody struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id,omitempty"`
	VoiceSettings emotion.VoiceParameters `json:"voice_settings"`
}

// Synthesize 执行一次合成调用。单次尽力而为，不重试；
// 上游非 2xx 时原样携带状态码和错误文本返回
func (c *Client) Synthesize(ctx context.Context, req models.SynthesisRequest) (*models.SynthesisResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: missing 'text' in request body", custom_errors.ErrInvalidInput)
	}

	// 配置校验先于任何网络调用
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: ELEVENLABS_API_KEY not configured", custom_errors.ErrUnconfigured)
	}
	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = c.defaultVoice
	}
	if voiceID == "" {
		return nil, fmt.Errorf("%w: ELEVENLABS_VOICE_ID not configured", custom_errors.ErrUnconfigured)
	}

	format := req.Format
	if format == "" {
		format = models.DefaultFormat
	}

	body := synthesisBody{
		Text:          req.Text,
		ModelID:       c.modelID,
		VoiceSettings: emotion.ParamsFor(req.EmotionLabel()),
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, voiceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	httpReq.Header.Set("xi-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", format)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText, _ := io.ReadAll(resp.Body)
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"voice":  voiceID,
		}).Error("合成服务返回错误")
		return nil, custom_errors.NewUpstreamError(resp.StatusCode, strings.TrimSpace(string(errText)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesis response: %w", err)
	}

	return &models.SynthesisResponse{
		AudioContent: audio,
		ContentType:  format,
	}, nil
}

// voicesPayload 声音列表接口的响应体，只取用到的字段
type voicesPayload struct {
	Voices []struct {
		VoiceID  string `json:"voice_id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	} `json:"voices"`
}

// ListVoices 获取可用声音列表，返回裁剪后的投影
func (c *Client) ListVoices(ctx context.Context) ([]models.Voice, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: ELEVENLABS_API_KEY not configured", custom_errors.ErrUnconfigured)
	}

	url := c.baseURL + "/v1/voices"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build voices request: %w", err)
	}
	httpReq.Header.Set("xi-api-key", c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText, _ := io.ReadAll(resp.Body)
		return nil, custom_errors.NewUpstreamError(resp.StatusCode, strings.TrimSpace(string(errText)))
	}

	var payload voicesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode voices response: %w", err)
	}

	voices := make([]models.Voice, 0, len(payload.Voices))
	for _, v := range payload.Voices {
		voices = append(voices, models.Voice{
			ID:       v.VoiceID,
			Name:     v.Name,
			Category: v.Category,
		})
	}
	return voices, nil
}
