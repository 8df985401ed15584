package item

import (
	"strings"

	"gorm.io/gorm"
)

// FocusEffect 定义了数据库中"物品→法术聚焦效果"的数据结构。
// 数据来自物品数据库导出，一件物品可以有多条聚焦效果。
type FocusEffect struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// FocusName 是聚焦效果名，例如 "Fury of Ro"
	FocusName string `json:"focusName"`

	// Category 是数据源中的聚焦大类，例如 "Spell Damage"
	Category string `json:"category"`

	// Percentage 是聚焦效果的百分比幅度
	Percentage float64 `json:"percentage"`

	// ItemID 是携带该效果的物品ID
	ItemID string `gorm:"index" json:"itemId"`

	// ItemName 是物品原名
	ItemName string `json:"itemName"`

	// NormalizedName 是规整后的物品名，装备清单按它匹配
	NormalizedName string `gorm:"index" json:"-"`
}

// NormalizeItemName 规整物品名用于匹配：
// 转小写、去掉各种撇号/反引号、压缩空白。
// 导出数据和物品数据库对特殊字符的处理并不一致，规整后才能对上。
func NormalizeItemName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, ch := range []string{"'", "’", "`"} {
		normalized = strings.ReplaceAll(normalized, ch, "")
	}
	return strings.Join(strings.Fields(normalized), " ")
}
