package item

import (
	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
)

// 具名聚焦物品的游戏内ID。
// 这些物品定义了特定职业的毕业档，不走聚焦大类映射，按物品身份直接识别。
const (
	// Darkblade of the Warlord，战士主手
	ItemIDDarkblade = "22999"
	// Raex's Chestplate of Destruction，战士胸甲
	ItemIDRaexChest = "32129"
	// Shield of Strife，骑士/死骑副手
	ItemIDShieldOfStrife = "27298"
	// Serpent of Vindication，附魔师投掷位
	ItemIDSerpent = "22959"
)

// NamedItemFlags 记录具名聚焦物品的持有情况。
// 与聚焦扫描不同，具名物品要求装备在正确的槽位上才算数。
type NamedItemFlags struct {
	HasDarkblade      bool `json:"hasDarkblade"`
	HasRaexChest      bool `json:"hasRaexChest"`
	HasShieldOfStrife bool `json:"hasShieldOfStrife"`
	HasSerpent        bool `json:"hasSerpent"`
}

// CheckNamedItems 检查装备清单中具名聚焦物品的持有情况
func CheckNamedItems(inventory []character.EquippedItem) NamedItemFlags {
	var flags NamedItemFlags
	for _, equipped := range inventory {
		switch {
		case equipped.SlotID == character.SlotMainHand && equipped.ItemID == ItemIDDarkblade:
			flags.HasDarkblade = true
		case equipped.SlotID == character.SlotChest && equipped.ItemID == ItemIDRaexChest:
			flags.HasRaexChest = true
		case equipped.SlotID == character.SlotSecondary && equipped.ItemID == ItemIDShieldOfStrife:
			flags.HasShieldOfStrife = true
		case equipped.SlotID == character.SlotRange && equipped.ItemID == ItemIDSerpent:
			flags.HasSerpent = true
		}
	}
	return flags
}

// WarriorFocusScore 计算战士的具名聚焦综合得分。
// 两件具名物品占2/3权重（一件算一半），满急速占1/3权重。
// 急速是二元判定：物品急速>=30（70%增益+30%物品=100%总急速）即为满。
func WarriorFocusScore(flags NamedItemFlags, hasteItem int) float64 {
	itemsScore := 0.0
	switch {
	case flags.HasDarkblade && flags.HasRaexChest:
		itemsScore = 100.0
	case flags.HasDarkblade || flags.HasRaexChest:
		itemsScore = 50.0
	}

	hasteScore := 0.0
	if hasteItem >= character.MaxHasteThreshold {
		hasteScore = 100.0
	}

	return (itemsScore*2 + hasteScore) / 3
}
