package character

import "gorm.io/gorm"

// 属性值的固定上限
const (
	// ATKCap 是物品ATK参与计分的上限
	ATKCap = 250
	// FTCap 是FT（Flowing Thought）的硬上限
	FTCap = 15
	// MaxHasteThreshold 是满急速的物品急速门槛：
	// 70%增益急速+30%物品急速=100%总急速，因此>=30视为满
	MaxHasteThreshold = 30
)

// Character 定义了数据库中角色快照的数据结构
// 每次导入都会整表重建，排名运行期间视为不可变
type Character struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// CharacterID 是角色在游戏数据库中的唯一ID
	// 我们将使用它作为业务逻辑中的主键
	CharacterID string `gorm:"uniqueIndex;not null" json:"id"`

	// Name 是角色名
	Name string `json:"name"`

	// Guild 是角色所在公会
	Guild string `json:"guild"`

	// Race 是角色种族（仅用于展示）
	Race string `json:"race"`

	// Class 是角色职业名，必须能被 ParseClass 识别
	Class string `json:"class"`

	// Level 是角色等级
	Level int `json:"level"`

	// --- 以下是参与计分的原始属性 ---

	HP   int `json:"hp"`
	Mana int `json:"mana"`
	AC   int `json:"ac"`

	// ATKItem 是物品提供的ATK，计分上限250
	ATKItem int `json:"atkItem"`

	// HasteItem 是物品急速百分比，>=30视为满急速
	HasteItem int `json:"hasteItem"`

	// FTItem 是物品提供的FT档数，硬上限15
	FTItem int `json:"ftItem"`

	// 五项抗性
	MR int `json:"mr"`
	FR int `json:"fr"`
	CR int `json:"cr"`
	DR int `json:"dr"`
	PR int `json:"pr"`
}

// EquippedItem 定义了角色单件装备的数据结构
// 包含穿戴槽位(1-22)和背包槽位，背包中的备用装备同样参与聚焦扫描
type EquippedItem struct {
	gorm.Model

	// CharacterID 关联到 Character.CharacterID
	CharacterID string `gorm:"index;not null" json:"characterId"`

	// SlotID 是装备所在槽位
	SlotID int `json:"slotId"`

	// ItemID 是物品在游戏数据库中的ID
	ItemID string `json:"itemId"`

	// ItemName 是物品名，用于聚焦效果匹配
	ItemName string `json:"itemName"`
}

// 穿戴槽位的范围，以及用于具名聚焦物品判定的特殊槽位
const (
	WornSlotMin = 1
	WornSlotMax = 22

	SlotRange     = 11
	SlotMainHand  = 13
	SlotSecondary = 14
	SlotChest     = 17
)

// Worn 返回该装备是否处于穿戴槽位
func (e *EquippedItem) Worn() bool {
	return e.SlotID >= WornSlotMin && e.SlotID <= WornSlotMax
}

// ResistNames 按固定顺序列出五项抗性的名称
var ResistNames = [5]string{"MR", "FR", "CR", "DR", "PR"}

// ResistValues 按 ResistNames 的顺序返回五项抗性值
func (c *Character) ResistValues() [5]int {
	return [5]int{c.MR, c.FR, c.CR, c.DR, c.PR}
}

// TotalResists 返回五项抗性之和
func (c *Character) TotalResists() int {
	return c.MR + c.FR + c.CR + c.DR + c.PR
}

// Snapshot 是排名引擎消费的单个角色的完整输入：
// 角色属性加上完整装备清单（穿戴+背包）
type Snapshot struct {
	Character Character
	Inventory []EquippedItem
}
