package models

import "hearmenow/internal/emotion"

// 分类结果的来源标识。provider 字段告诉调用方这个标签是
// 远程分类器给出的，还是某一级回退给出的
const (
	ProviderOpenAI           = "openai"            // 远程分类成功
	ProviderFallback         = "fallback"          // 未配置凭证，本地启发式
	ProviderOpenAIFallback   = "openai_fallback"   // 远程失败（配额/服务端错误）后降级
	ProviderDisabledFallback = "disabled_fallback" // 管理开关禁用了远程分类
	ProviderClientFallback   = "client_fallback"   // 离线客户端本地回退（服务端不产生）
)

// 降级原因，仅在 openai_fallback 时填写
const (
	ReasonInsufficientQuota = "insufficient_quota"
	ReasonServerError       = "server_error"
)

// ClassificationResult 表示一次情感分类的结果
type ClassificationResult struct {
	Emotion  emotion.Label `json:"emotion"`
	Provider string        `json:"provider"`
	Reason   string        `json:"reason,omitempty"`
}

// ClassificationRequest 分类接口的请求体
type ClassificationRequest struct {
	Text string `json:"text"`
}
