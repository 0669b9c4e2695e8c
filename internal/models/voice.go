package models

// Voice 表示合成服务提供的一个声音
type Voice struct {
	ID       string `json:"id"`       // 声音唯一标识符
	Name     string `json:"name"`     // 显示名称
	Category string `json:"category"` // 类别，例如 premade / cloned
}
