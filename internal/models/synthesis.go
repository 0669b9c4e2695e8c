package models

import "hearmenow/internal/emotion"

// SynthesisRequest 表示一次语音合成请求。
// Emotion 为空时默认 neutral；VoiceID 为空时使用配置的默认声音
type SynthesisRequest struct {
	Text    string `json:"text"`
	Emotion string `json:"emotion"`
	VoiceID string `json:"voiceId"`
	Format  string `json:"format"`
}

// EmotionLabel 返回请求中情感字段解析后的标签
func (r SynthesisRequest) EmotionLabel() emotion.Label {
	return emotion.Parse(r.Emotion)
}

// SynthesisResponse 表示一次语音合成响应
type SynthesisResponse struct {
	AudioContent []byte `json:"-"`
	ContentType  string `json:"content_type"`
	CacheHit     bool   `json:"cache_hit"`
}

// 音频输出格式，accept 头原样传给合成服务
const (
	FormatMP3 = "audio/mpeg"
	FormatWAV = "audio/wav"
	FormatOGG = "audio/ogg"
)

// DefaultFormat 未指定时使用的音频格式
const DefaultFormat = FormatMP3
