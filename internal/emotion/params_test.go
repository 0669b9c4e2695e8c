package emotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsForExactTable(t *testing.T) {
	// 参数表是协议可见的，必须逐行精确匹配
	cases := []struct {
		label  Label
		expect VoiceParameters
	}{
		{Happy, VoiceParameters{0.35, 0.92, 0.85, true}},
		{Excited, VoiceParameters{0.12, 0.70, 1.00, true}},
		{Angry, VoiceParameters{0.08, 0.40, 0.98, true}},
		{Sad, VoiceParameters{0.97, 1.00, 0.02, true}},
		{Calm, VoiceParameters{1.00, 0.97, 0.01, true}},
		{Surprised, VoiceParameters{0.09, 0.65, 1.00, true}},
		{Neutral, VoiceParameters{0.65, 0.90, 0.50, true}},
	}

	for _, tc := range cases {
		t.Run(string(tc.label), func(t *testing.T) {
			assert.Equal(t, tc.expect, ParamsFor(tc.label))
		})
	}
}

func TestParamsForUnknownFallsBackToNeutral(t *testing.T) {
	neutral := ParamsFor(Neutral)

	assert.Equal(t, neutral, ParamsFor(Label("ecstatic")))
	assert.Equal(t, neutral, ParamsFor(Label("")))
	assert.Equal(t, neutral, ParamsFor(Label("HAPPY "))) // 未归一化的输入不识别
}

func TestParse(t *testing.T) {
	assert.Equal(t, Happy, Parse("happy"))
	assert.Equal(t, Sad, Parse("  SAD  "))
	assert.Equal(t, Neutral, Parse("melancholy"))
	assert.Equal(t, Neutral, Parse(""))
}

func TestAllCoversTable(t *testing.T) {
	assert.Len(t, All(), 7)
	for _, l := range All() {
		assert.True(t, l.IsValid())
	}
}
