package item

import (
	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
)

// FocusCategory 定义了聚焦效果的大类枚举
type FocusCategory string

const (
	CategorySpellDamage    FocusCategory = "Spell Damage"
	CategoryManaEfficiency FocusCategory = "Spell Mana Efficiency"
	CategorySpellHaste     FocusCategory = "Spell Haste"
	CategorySpellDuration  FocusCategory = "Spell Duration"
	CategoryHealing        FocusCategory = "Healing Enhancement"
	CategoryRange          FocusCategory = "Spell Range Extension"
	CategoryPetPower       FocusCategory = "Pet Power"
)

// DamageType 定义了法术伤害聚焦的伤害类型子类
type DamageType string

const (
	DamageMagic   DamageType = "Magic"
	DamageFire    DamageType = "Fire"
	DamageCold    DamageType = "Cold"
	DamageDisease DamageType = "Disease"
	// DamageAll 对所有伤害类型生效（含DoT）
	DamageAll DamageType = "All"
)

// EfficiencyKind 定义了法力节约聚焦的子类
type EfficiencyKind string

const (
	EfficiencyDet  EfficiencyKind = "Det"
	EfficiencyBene EfficiencyKind = "Bene"
	EfficiencyNuke EfficiencyKind = "Nuke"
	// EfficiencySanguine 只对自体法术生效，展示用，永远不参与计分
	EfficiencySanguine EfficiencyKind = "Sanguine"
)

// HasteKind 定义了施法急速聚焦的子类
type HasteKind string

const (
	HasteDet  HasteKind = "Det"
	HasteBene HasteKind = "Bene"
	// HasteAll 同时计入增益和减益两个聚合桶
	HasteAll HasteKind = "All"
)

// DurationKind 定义了法术持续时间聚焦的子类
type DurationKind string

const (
	DurationDet  DurationKind = "Det"
	DurationBene DurationKind = "Bene"
	// DurationAll 同时计入增益和减益两个聚合桶
	DurationAll DurationKind = "All"
)

// --- 聚焦效果名 → 子类 的固定映射表 ---
// 这些表来自对65级聚焦物品数据的逐条归类，属于规则数据而不是代码逻辑。

// spellDamageTypeByFocus 按神祇/法系把伤害聚焦归入伤害类型
// (Druzzil=魔法, Ro/Solusek=火, E`ci=冰, Bertoxxulous/Saryrn=疾病)
var spellDamageTypeByFocus = map[string]DamageType{
	"Anger of Druzzil": DamageMagic,
	"Fury of Druzzil":  DamageMagic,
	"Wrath of Druzzil": DamageMagic,

	"Anger of Ro":        DamageFire,
	"Anger of Solusek":   DamageFire,
	"Fury of Ro":         DamageFire,
	"Fury of Solusek":    DamageFire,
	"Wrath of Ro":        DamageFire,
	"Burning Affliction": DamageFire,
	"Focus of Flame":     DamageFire,
	"Fires of Sol":       DamageFire,
	"Inferno of Sol":     DamageFire,
	"Summer's Anger":     DamageFire,
	"Summer's Vengeance": DamageFire,

	"Anger of E`ci":      DamageCold,
	"Fury of E`ci":       DamageCold,
	"Wrath of E`ci":      DamageCold,
	"Chill of the Umbra": DamageCold,

	"Enchantment of Destruction": DamageMagic,
	"Insidious Dreams":           DamageMagic,

	"Fury of Bertoxxulous": DamageDisease,
	"Saryrn's Torment":     DamageDisease,
	"Saryrn's Venom":       DamageDisease,

	"Vengeance of Eternity": DamageAll,
	"Improved Damage":       DamageAll,
	"Gallenite's ____":      DamageAll,
}

// efficiencyKindByFocus 把法力节约聚焦归入 Det/Bene/Nuke/Sanguine
var efficiencyKindByFocus = map[string]EfficiencyKind{
	"Affliction Efficiency":   EfficiencyDet,
	"Affliction Preservation": EfficiencyDet,

	"Enhancement Efficiency":   EfficiencyBene,
	"Enhancement Preservation": EfficiencyBene,
	"Reanimation Efficiency":   EfficiencyBene,
	"Reanimation Preservation": EfficiencyBene,
	"Summoning Efficiency":     EfficiencyBene,
	"Summoning Preservation":   EfficiencyBene,
	"Alluring Preservation":    EfficiencyBene,

	"Mana Preservation":       EfficiencyNuke,
	"Preservation of Xegony":  EfficiencyNuke,
	"Preservation of Solusek": EfficiencyNuke,
	"Preservation of Ro":      EfficiencyNuke,
	"Preservation of Druzzil": EfficiencyNuke,

	"Sanguine Preservation": EfficiencySanguine,
	"Sanguine Enchantment":  EfficiencySanguine,
}

// hasteKindByFocus 把施法急速聚焦归入 Det/Bene/All
// 不限法系的通用 "Spell Haste" 聚焦对增益和减益施法都生效
var hasteKindByFocus = map[string]HasteKind{
	"Affliction Haste":      HasteDet,
	"Haste of Solusek":      HasteDet,
	"Quickening of Solusek": HasteDet,

	"Enhancement Haste":  HasteBene,
	"Reanimation Haste":  HasteBene,
	"Summoning Haste":    HasteBene,
	"Haste of Mithaniel": HasteBene,
	"Haste of Druzzil":   HasteBene,

	"Spell Haste": HasteAll,
}

// durationKindByFocus 把持续时间聚焦归入 Det/Bene
// 数据源的 "All Spell Duration" 大类直接归入 DurationAll，不走此表
var durationKindByFocus = map[string]DurationKind{
	"Extended Affliction":  DurationDet,
	"Affliction Extension": DurationDet,

	"Extended Enhancement":  DurationBene,
	"Enhancement Extension": DurationBene,
	"Chrononostrum":         DurationBene,
	"Eterninostrum":         DurationBene,
	"Extended Reanimation":  DurationBene,
	"Extended Summoning":    DurationBene,
}

// --- 装备聚焦档案 ---

// GearFocusProfile 汇总一个角色全部装备（穿戴+背包）的聚焦效果。
// 每个桶内取最大值而不是求和：同一桶里多件装备的聚焦不叠加。
type GearFocusProfile struct {
	// BestByCategory 是每个大类的最佳百分比（治疗强化、射程扩展等按大类计分）
	BestByCategory map[FocusCategory]float64

	// DamageByType 是每种伤害类型的最佳法术伤害聚焦
	DamageByType map[DamageType]float64

	// EfficiencyByKind 是每个子类的最佳法力节约聚焦
	EfficiencyByKind map[EfficiencyKind]float64

	// HasteByKind 是每个子类的最佳施法急速聚焦
	HasteByKind map[HasteKind]float64

	// DurationByKind 是每个子类的最佳持续时间聚焦
	DurationByKind map[DurationKind]float64

	// PetPower 是全部物品（含背包）中最佳的宠物强化百分比
	PetPower float64

	// Named 记录具名聚焦物品的持有情况
	Named NamedItemFlags
}

// classifyCategory 把数据源大类字符串归入内部枚举。
// 持续时间在数据源中是三个大类，在这里合并为一个大类加子类。
func classifyCategory(source string) (FocusCategory, DurationKind, bool) {
	switch source {
	case "Spell Damage":
		return CategorySpellDamage, "", true
	case "Spell Mana Efficiency":
		return CategoryManaEfficiency, "", true
	case "Spell Haste":
		return CategorySpellHaste, "", true
	case "Buff Spell Duration":
		return CategorySpellDuration, DurationBene, true
	case "Detrimental Spell Duration":
		return CategorySpellDuration, DurationDet, true
	case "All Spell Duration":
		return CategorySpellDuration, DurationAll, true
	case "Healing Enhancement":
		return CategoryHealing, "", true
	case "Spell Range Extension":
		return CategoryRange, "", true
	case "Pet Power":
		return CategoryPetPower, "", true
	}
	return "", "", false
}

// BuildGearFocusProfile 扫描角色的完整装备清单并归类全部聚焦效果。
// 背包中的备用装备同样计入：可以换装使用的聚焦对角色是实际可用的。
// 查不到聚焦数据的物品贡献零效果，这是正常状态而不是错误。
func BuildGearFocusProfile(inventory []character.EquippedItem) *GearFocusProfile {
	profile := &GearFocusProfile{
		BestByCategory:   make(map[FocusCategory]float64),
		DamageByType:     make(map[DamageType]float64),
		EfficiencyByKind: make(map[EfficiencyKind]float64),
		HasteByKind:      make(map[HasteKind]float64),
		DurationByKind:   make(map[DurationKind]float64),
	}

	for _, equipped := range inventory {
		for _, effect := range EffectsForItemName(equipped.ItemName) {
			category, durationKind, ok := classifyCategory(effect.Category)
			if !ok {
				continue
			}
			pct := effect.Percentage

			if pct > profile.BestByCategory[category] {
				profile.BestByCategory[category] = pct
			}

			switch category {
			case CategorySpellDamage:
				damageType, ok := spellDamageTypeByFocus[effect.FocusName]
				if !ok {
					damageType = DamageAll
				}
				if pct > profile.DamageByType[damageType] {
					profile.DamageByType[damageType] = pct
				}
			case CategoryManaEfficiency:
				kind, ok := efficiencyKindByFocus[effect.FocusName]
				if !ok {
					kind = EfficiencyNuke
				}
				if pct > profile.EfficiencyByKind[kind] {
					profile.EfficiencyByKind[kind] = pct
				}
			case CategorySpellHaste:
				kind, ok := hasteKindByFocus[effect.FocusName]
				if !ok {
					kind = HasteBene
				}
				if pct > profile.HasteByKind[kind] {
					profile.HasteByKind[kind] = pct
				}
			case CategorySpellDuration:
				kind := durationKind
				if kind != DurationAll {
					if mapped, ok := durationKindByFocus[effect.FocusName]; ok {
						kind = mapped
					}
				}
				if pct > profile.DurationByKind[kind] {
					profile.DurationByKind[kind] = pct
				}
			case CategoryPetPower:
				if pct > profile.PetPower {
					profile.PetPower = pct
				}
			}
		}
	}

	profile.Named = CheckNamedItems(inventory)
	return profile
}

// EffectiveHaste 返回某个急速子类的有效聚合值。
// "All" 同时计入两个桶，取max而不是求和，
// 避免同一件物品上的聚焦和显式的Bene/Det条目互相叠加。
func (p *GearFocusProfile) EffectiveHaste(kind HasteKind) float64 {
	return max(p.HasteByKind[kind], p.HasteByKind[HasteAll])
}

// EffectiveDuration 返回某个持续时间子类的有效聚合值，规则同急速。
func (p *GearFocusProfile) EffectiveDuration(kind DurationKind) float64 {
	return max(p.DurationByKind[kind], p.DurationByKind[DurationAll])
}

// EffectiveDamage 返回某种伤害类型的有效聚合值，"All"对所有类型生效。
func (p *GearFocusProfile) EffectiveDamage(damageType DamageType) float64 {
	return max(p.DamageByType[damageType], p.DamageByType[DamageAll])
}
