package ranking

import (
	"github.com/SlpAus/takp-character-ranking-backend/internal/item"
)

// MetricKind 决定一个指标的原始值如何被换算成0-100的百分比。
type MetricKind int

const (
	// KindPopulationMax 以同职业种群的最大原始值为分母。
	KindPopulationMax MetricKind = iota
	// KindFixedCap 以固定上限为分母，超出上限按100%截断。
	KindFixedCap
	// KindBinary 达到阈值得100，否则得0。
	KindBinary
	// KindCurve 使用抗性收益曲线的加权平均，原始值仅用于展示。
	KindCurve
	// KindPreScored 原始值本身已经是0-100的百分比。
	KindPreScored
)

// RuleKind 决定一个指标的原始值从角色快照的哪个部分提取。
type RuleKind int

const (
	RuleHP RuleKind = iota
	RuleMana
	RuleAC
	RuleATK
	RuleMeleeHaste
	RuleResists
	RuleFlowingThought
	RuleSpellDamage
	RuleManaEfficiency
	RuleHasteBene
	RuleHasteDet
	RuleDurationBene
	RuleDurationDet
	RuleDurationAll
	RuleHealing
	RuleRange
	RulePetPower
	RuleWarriorItems
	RuleShieldOfStrife
	RuleSerpent
)

// 共享种群最大值的分组名。
// 同组内所有指标的原始值放入同一个池子取最大值，
// 因此坦克的HP/5和AC、施法者的HP和Mana会对同一个分母归一化。
const (
	groupTankPool   = "tank_pool"
	groupCasterPool = "caster_pool"
)

// Metric 是规则表中的一个计分条目。
// Weight 是缩放后的预归一化权重，NormWeight 是全表权重和为1之后的份额。
type Metric struct {
	Name       string
	Rule       RuleKind
	Damage     item.DamageType // 仅 RuleSpellDamage 使用
	Kind       MetricKind
	Cap        float64 // 仅 KindFixedCap 使用
	Threshold  float64 // 仅 KindBinary 使用
	Group      string  // 共享种群最大值的分组，空表示独立
	Weight     float64
	NormWeight float64
	IsFocus    bool
}

// maximaKey 返回该指标在种群最大值表中的键。
func (m *Metric) maximaKey() string {
	if m.Group != "" {
		return m.Group
	}
	return m.Name
}

// 展示名常量，接口返回的明细和测试都引用这里。
const (
	MetricHP             = "HP"
	MetricMana           = "Mana"
	MetricAC             = "AC"
	MetricATK            = "ATK"
	MetricMeleeHaste     = "Melee Haste"
	MetricResists        = "Resists"
	MetricFlowingThought = "Flowing Thought"
	MetricDamageMagic    = "Spell Damage (Magic)"
	MetricDamageFire     = "Spell Damage (Fire)"
	MetricDamageCold     = "Spell Damage (Cold)"
	MetricDamageDisease  = "Spell Damage (Disease)"
	MetricDamageAll      = "Spell Damage (All)"
	MetricManaEfficiency = "Spell Mana Efficiency"
	MetricHasteBene      = "Beneficial Spell Haste"
	MetricHasteDet       = "Detrimental Spell Haste"
	MetricDurationBene   = "Beneficial Spell Duration"
	MetricDurationDet    = "Detrimental Spell Duration"
	MetricDurationAll    = "All Spell Duration"
	MetricHealing        = "Improved Healing"
	MetricRange          = "Spell Range"
	MetricPetPower       = "Pet Power"
	MetricWarriorItems   = "Warrior Focus Items"
	MetricShieldOfStrife = "Shield of Strife"
	MetricSerpent        = "Serpent of Vindication"
)
