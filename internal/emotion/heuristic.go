package emotion

import "strings"

// heuristicRule 关键词规则，按声明顺序匹配
type heuristicRule struct {
	keywords []string
	label    Label
}

// heuristicRules 离线关键词分类规则表。
// 顺序即优先级，第一条命中的规则胜出；必须与各离线客户端
// 的实现逐字节一致，网络不可达时两侧才能得到相同结果。
// 注意 sad 桶排在 angry 桶之前：同时包含 "sorry" 和 "hate"
// 的文本会命中 sad，这是既有行为，不要调整顺序。
var heuristicRules = []heuristicRule{
	{[]string{"happy", "thank", "love", "great", "amazing"}, Happy},
	{[]string{"sorry", "sad", "depressed", "unhappy"}, Sad},
	{[]string{"angry", "hate", "frustrat"}, Angry},
	{[]string{"calm", "relax", "peace"}, Calm},
	{[]string{"wow", "surpris", "what!?"}, Surprised},
	{[]string{"excited", "thrill", "pump"}, Excited},
}

// Heuristic 确定性的关键词回退分类器。
// 大小写不敏感的子串匹配，任何输入都有结果，默认 neutral
func Heuristic(text string) Label {
	lc := strings.ToLower(text)
	for _, rule := range heuristicRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lc, kw) {
				return rule.label
			}
		}
	}
	return Neutral
}
