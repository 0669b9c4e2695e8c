package emotion

import "strings"

// Label 表示一个封闭集合的情感标签
type Label string

const (
	Happy     Label = "happy"
	Sad       Label = "sad"
	Angry     Label = "angry"
	Calm      Label = "calm"
	Surprised Label = "surprised"
	Excited   Label = "excited"
	Neutral   Label = "neutral"
)

// All 返回全部七个标签，顺序固定
func All() []Label {
	return []Label{Happy, Sad, Angry, Calm, Surprised, Excited, Neutral}
}

// IsValid 判断是否为已知标签
func (l Label) IsValid() bool {
	switch l {
	case Happy, Sad, Angry, Calm, Surprised, Excited, Neutral:
		return true
	}
	return false
}

// Parse 将任意字符串解析为标签，未知值回退到 neutral
func Parse(s string) Label {
	l := Label(strings.ToLower(strings.TrimSpace(s)))
	if l.IsValid() {
		return l
	}
	return Neutral
}

// FromModelOutput 将远程分类器返回的自由文本归一化为标签。
// 先小写并去除空白，再按词干匹配；"surpris" 词干覆盖
// surprise/surprised/surprising 等变体。无匹配时返回 neutral。
func FromModelOutput(s string) Label {
	lc := strings.ToLower(strings.TrimSpace(s))
	if lc == "" {
		return Neutral
	}
	for _, stem := range []struct {
		substr string
		label  Label
	}{
		{"happy", Happy},
		{"sad", Sad},
		{"angry", Angry},
		{"calm", Calm},
		{"surpris", Surprised},
		{"excited", Excited},
		{"neutral", Neutral},
	} {
		if strings.Contains(lc, stem.substr) {
			return stem.label
		}
	}
	return Neutral
}
