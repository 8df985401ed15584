package character

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingDataError 表示一条角色记录完全无法解析。
// 携带该错误的角色会被排除出本次排名，但运行对其他角色继续。
type MissingDataError struct {
	CharacterID string
	Reason      string
}

func (e *MissingDataError) Error() string {
	if e.CharacterID == "" {
		return fmt.Sprintf("角色记录无法解析: %s", e.Reason)
	}
	return fmt.Sprintf("角色 %s 的记录无法解析: %s", e.CharacterID, e.Reason)
}

// safeInt 解析导出数据中的整数字段。
// 空串、"NULL"或任何非法值都按0处理，而不是让整条记录失败。
func safeInt(value string) int {
	value = strings.TrimSpace(value)
	if value == "" || value == "NULL" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

// parseCapped 解析 "当前值 / 上限" 形式的复合字段（如 "180 / 250"）。
// 只给出单个数字时按当前值处理，解析失败按0处理。
func parseCapped(value string) int {
	value = strings.TrimSpace(value)
	if idx := strings.Index(value, "/"); idx >= 0 {
		value = value[:idx]
	}
	return safeInt(value)
}

// clamp 将v限制在[0, cap]区间内
func clamp(v, cap int) int {
	if v < 0 {
		return 0
	}
	if v > cap {
		return cap
	}
	return v
}

// ParseCharacterRecord 将一行导出的角色数据解析为Character。
// 输入是按表头列名索引的一行字段。
// 记录缺少身份字段时返回MissingDataError；缺少单个属性字段时按0处理。
func ParseCharacterRecord(row map[string]string) (*Character, error) {
	if len(row) == 0 {
		return nil, &MissingDataError{Reason: "空记录"}
	}

	id := strings.TrimSpace(row["id"])
	if id == "" {
		return nil, &MissingDataError{Reason: "缺少id字段"}
	}
	name := strings.TrimSpace(row["name"])
	if name == "" {
		return nil, &MissingDataError{CharacterID: id, Reason: "缺少name字段"}
	}
	className := strings.TrimSpace(row["class"])
	if className == "" {
		return nil, &MissingDataError{CharacterID: id, Reason: "缺少class字段"}
	}

	c := &Character{
		CharacterID: id,
		Name:        name,
		Guild:       strings.TrimSpace(row["guild_name"]),
		Race:        strings.TrimSpace(row["race"]),
		Class:       className,
		Level:       safeInt(row["level"]),
		HP:          safeInt(row["hp_max_total"]),
		Mana:        safeInt(row["mana_max_total"]),
		AC:          safeInt(row["ac_total"]),
		// ATK与FT是 "x / cap" 形式的复合字段
		ATKItem:   parseCapped(row["atk_item"]),
		HasteItem: safeInt(row["haste_item"]),
		FTItem:    parseCapped(row["mana_regen_item"]),
		MR:        safeInt(row["MR_total"]),
		FR:        safeInt(row["FR_total"]),
		CR:        safeInt(row["CR_total"]),
		DR:        safeInt(row["DR_total"]),
		PR:        safeInt(row["PR_total"]),
	}

	// 属性不变量：全部非负，FT不超过硬上限
	c.FTItem = clamp(c.FTItem, FTCap)
	for _, v := range []*int{&c.HP, &c.Mana, &c.AC, &c.ATKItem, &c.HasteItem, &c.MR, &c.FR, &c.CR, &c.DR, &c.PR} {
		if *v < 0 {
			*v = 0
		}
	}

	return c, nil
}

// ParseInventoryRecord 将一行导出的装备数据解析为EquippedItem。
// 未知物品ID不是错误，它只是在聚焦扫描时贡献零效果。
func ParseInventoryRecord(row map[string]string) (*EquippedItem, error) {
	if len(row) == 0 {
		return nil, &MissingDataError{Reason: "空记录"}
	}
	id := strings.TrimSpace(row["id"])
	if id == "" {
		return nil, &MissingDataError{Reason: "装备记录缺少角色id"}
	}
	return &EquippedItem{
		CharacterID: id,
		SlotID:      safeInt(row["slot_id"]),
		ItemID:      strings.TrimSpace(row["item_id"]),
		ItemName:    strings.TrimSpace(row["item_name"]),
	}, nil
}
