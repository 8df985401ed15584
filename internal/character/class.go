package character

import "fmt"

// Class 定义了游戏中的职业枚举类型
type Class string

const (
	ClassWarrior      Class = "Warrior"
	ClassCleric       Class = "Cleric"
	ClassPaladin      Class = "Paladin"
	ClassRanger       Class = "Ranger"
	ClassShadowKnight Class = "Shadow Knight"
	ClassDruid        Class = "Druid"
	ClassMonk         Class = "Monk"
	ClassBard         Class = "Bard"
	ClassRogue        Class = "Rogue"
	ClassShaman       Class = "Shaman"
	ClassNecromancer  Class = "Necromancer"
	ClassWizard       Class = "Wizard"
	ClassMagician     Class = "Magician"
	ClassEnchanter    Class = "Enchanter"
	ClassBeastlord    Class = "Beastlord"
)

// AllClasses 按固定顺序列出全部职业
var AllClasses = []Class{
	ClassWarrior, ClassCleric, ClassPaladin, ClassRanger, ClassShadowKnight,
	ClassDruid, ClassMonk, ClassBard, ClassRogue, ClassShaman,
	ClassNecromancer, ClassWizard, ClassMagician, ClassEnchanter,
	ClassBeastlord,
}

// UnknownClassError 表示角色记录携带了规则表之外的职业名。
// 该错误只会把这一个角色排除出排名，不会中断整次运行。
type UnknownClassError struct {
	Name string
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("未知的职业名: %q", e.Name)
}

// ParseClass 将导出数据中的职业名解析为Class枚举
func ParseClass(name string) (Class, error) {
	for _, c := range AllClasses {
		if string(c) == name {
			return c, nil
		}
	}
	return "", &UnknownClassError{Name: name}
}

// --- 职业能力集合 ---
// 这些集合决定了各职业有哪些属性指标参与计分

var classesWithMana = map[Class]bool{
	ClassCleric: true, ClassDruid: true, ClassShaman: true,
	ClassNecromancer: true, ClassWizard: true, ClassMagician: true,
	ClassEnchanter: true, ClassBard: true,
}

var classesNeedAC = map[Class]bool{
	ClassWarrior: true, ClassShadowKnight: true, ClassPaladin: true,
	ClassBeastlord: true, ClassRanger: true,
}

var classesNeedATK = map[Class]bool{
	ClassRogue: true, ClassRanger: true, ClassMonk: true,
	ClassWarrior: true, ClassShadowKnight: true, ClassPaladin: true,
	ClassBeastlord: true, ClassBard: true,
}

var pureMelee = map[Class]bool{
	ClassWarrior: true, ClassRogue: true, ClassMonk: true,
}

// 坦克职业的HP按 5 HP = 1 AC 折算进AC等效池
var tankClasses = map[Class]bool{
	ClassWarrior: true, ClassPaladin: true, ClassShadowKnight: true,
}

// HasMana 返回该职业的法力值（以及FT）是否参与计分
func (c Class) HasMana() bool { return classesWithMana[c] }

// NeedsAC 返回该职业的AC是否参与计分
func (c Class) NeedsAC() bool { return classesNeedAC[c] }

// NeedsATK 返回该职业的ATK与近战急速是否参与计分
func (c Class) NeedsATK() bool { return classesNeedATK[c] }

// IsPureMelee 返回该职业是否为纯近战（无任何法术聚焦需求）
func (c Class) IsPureMelee() bool { return pureMelee[c] }

// IsTank 返回该职业是否使用HP/5=AC的坦克折算
func (c Class) IsTank() bool { return tankClasses[c] }
