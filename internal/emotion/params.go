package emotion

// VoiceParameters 是驱动语音合成引擎的四元组控制参数。
// stability 与 style 刻意负相关：高能量情感（excited/angry/surprised）
// 用接近零的 stability 配接近满格的 style，低能量情感（sad/calm）反之。
// 这是一张人工调校表，数值是协议可见的，不能重新推导。
type VoiceParameters struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// paramsTable 进程启动时构造一次，之后只读
var paramsTable = map[Label]VoiceParameters{
	Happy:     {Stability: 0.35, SimilarityBoost: 0.92, Style: 0.85, UseSpeakerBoost: true},
	Excited:   {Stability: 0.12, SimilarityBoost: 0.70, Style: 1.00, UseSpeakerBoost: true},
	Angry:     {Stability: 0.08, SimilarityBoost: 0.40, Style: 0.98, UseSpeakerBoost: true},
	Sad:       {Stability: 0.97, SimilarityBoost: 1.00, Style: 0.02, UseSpeakerBoost: true},
	Calm:      {Stability: 1.00, SimilarityBoost: 0.97, Style: 0.01, UseSpeakerBoost: true},
	Surprised: {Stability: 0.09, SimilarityBoost: 0.65, Style: 1.00, UseSpeakerBoost: true},
	Neutral:   {Stability: 0.65, SimilarityBoost: 0.90, Style: 0.50, UseSpeakerBoost: true},
}

// ParamsFor 返回情感对应的合成参数。全函数：未知标签返回 neutral 行，
// 绝不报错，保证调用方总能拿到可用参数
func ParamsFor(label Label) VoiceParameters {
	if p, ok := paramsTable[label]; ok {
		return p
	}
	return paramsTable[Neutral]
}
