package ranking

import "fmt"

// ConfigInvariantError 表示职业规则表在加载期校验失败。
// 该错误在任何角色被计分之前就会让启动失败，
// 避免带着悄悄偏斜的权重产出排名。
type ConfigInvariantError struct {
	Class  string
	Reason string
}

func (e *ConfigInvariantError) Error() string {
	return fmt.Sprintf("职业 %s 的规则表违反不变量: %s", e.Class, e.Reason)
}
