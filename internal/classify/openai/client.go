package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hearmenow/internal/config"
	"hearmenow/internal/emotion"
)

const defaultBaseURL = "https://api.openai.com"

// classifyPrompt 封闭词表提示，约束模型只输出七个标签之一
const classifyPrompt = "You are an emotion classifier. Classify the emotion of the user's text. " +
	"Respond with exactly one word from this list and nothing else: " +
	"happy, sad, angry, calm, surprised, excited, neutral."

// Client 是远程文本分类服务的 REST 客户端
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// APIError 表示分类服务返回的非 2xx 响应。
// 调用方根据 Status/Code/Message 决定是降级还是向外传播
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("classification api status %d (code=%s): %s", e.Status, e.Code, e.Message)
}

// IsQuotaExhausted 判断是否为配额耗尽信号。
// 配额耗尽是预期的运行状态而非故障：429、provider 的
// insufficient_quota 错误码、或错误文本中出现 quota 都算
func (e *APIError) IsQuotaExhausted() bool {
	if e.Status == http.StatusTooManyRequests {
		return true
	}
	if e.Code == "insufficient_quota" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "quota")
}

// IsServerError 判断是否为服务端错误（5xx）
func (e *APIError) IsServerError() bool {
	return e.Status >= 500
}

// NewClient 从配置创建客户端
func NewClient(cfg *config.Config) *Client {
	baseURL := strings.TrimRight(cfg.OpenAI.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := time.Duration(cfg.OpenAI.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.OpenAI.APIKey,
		model:      cfg.OpenAI.Model,
	}
}

// classifyRequest 发往分类接口的请求体
type classifyRequest struct {
	Model           string `json:"model"`
	Instructions    string `json:"instructions"`
	Input           string `json:"input"`
	MaxOutputTokens int    `json:"max_output_tokens"`
}

// classifyPayload 覆盖分类接口可能返回的几种响应形态。
// 不同 API 版本的字段不同，提取时按顺序逐一尝试
type classifyPayload struct {
	// 扁平文本字段
	OutputText string `json:"output_text"`
	// 结构化内容数组
	Output []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	// 旧版 chat 消息字段
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// extractor 从响应体中提取标签文本的一种策略
type extractor func(p *classifyPayload) (string, bool)

// extractors 提取策略按声明顺序尝试，取第一个非空结果
var extractors = []extractor{
	func(p *classifyPayload) (string, bool) {
		if s := strings.TrimSpace(p.OutputText); s != "" {
			return s, true
		}
		return "", false
	},
	func(p *classifyPayload) (string, bool) {
		for _, out := range p.Output {
			for _, c := range out.Content {
				if s := strings.TrimSpace(c.Text); s != "" {
					return s, true
				}
			}
		}
		return "", false
	},
	func(p *classifyPayload) (string, bool) {
		if len(p.Choices) > 0 {
			if s := strings.TrimSpace(p.Choices[0].Message.Content); s != "" {
				return s, true
			}
		}
		return "", false
	},
}

// errorPayload 分类接口错误响应体
type errorPayload struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Classify 发起一次远程分类调用并归一化结果。
// 成功但提取不到文本或无词干匹配时返回 neutral，绝不传播解析失败；
// 非 2xx 以 *APIError 返回，降级与否由上层链路决定
func (c *Client) Classify(ctx context.Context, text string) (emotion.Label, error) {
	reqBody := classifyRequest{
		Model:           c.model,
		Instructions:    classifyPrompt,
		Input:           text,
		MaxOutputTokens: 16,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return emotion.Neutral, fmt.Errorf("encode classify request: %w", err)
	}

	url := c.baseURL + "/v1/responses"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return emotion.Neutral, fmt.Errorf("build classify request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return emotion.Neutral, fmt.Errorf("classify http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{Status: resp.StatusCode}

		var ep errorPayload
		if json.Unmarshal(body, &ep) == nil && ep.Error.Message != "" {
			apiErr.Code = ep.Error.Code
			apiErr.Message = ep.Error.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return emotion.Neutral, apiErr
	}

	var payload classifyPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		// 响应体不可解析等同于提取不到文本
		return emotion.Neutral, nil
	}

	for _, extract := range extractors {
		if raw, ok := extract(&payload); ok {
			return emotion.FromModelOutput(raw), nil
		}
	}
	return emotion.Neutral, nil
}
