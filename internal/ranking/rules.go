package ranking

import (
	"fmt"
	"math"

	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
	"github.com/SlpAus/takp-character-ranking-backend/internal/item"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/config"
)

// 聚焦预算：每个有聚焦条目的职业，其聚焦权重总和缩放到HP权重的3倍。
const focusBudgetFactor = 3.0

const (
	// atkCap 是物品ATK计分上限的浮点形式
	atkCap = float64(character.ATKCap)
	// beastlordDetHasteCap 是野兽领主减益法术急速的有效上限
	beastlordDetHasteCap = 27.5
)

// statWeights 是一个职业在属性侧的原始权重。
type statWeights struct {
	hp      float64
	mana    float64
	ac      float64
	atk     float64
	haste   float64
	resists float64
}

// focusEntry 是一个职业在聚焦侧的原始权重条目。
type focusEntry struct {
	name   string
	rule   RuleKind
	damage item.DamageType
	weight float64
}

// ClassRuleTable 是一个职业完整的计分规则，
// Metrics 的顺序就是明细输出的顺序。
type ClassRuleTable struct {
	Class   character.Class
	Metrics []Metric
}

// RuleSet 保存全部职业的规则表。
type RuleSet struct {
	tables map[character.Class]*ClassRuleTable
}

// TableFor 返回指定职业的规则表，未知职业返回nil。
func (rs *RuleSet) TableFor(class character.Class) *ClassRuleTable {
	return rs.tables[class]
}

// classStatWeights 给出每个职业的属性权重。
// 纯近战不需要法力，坦克和部分混合职业需要AC，持武职业需要ATK与近战急速。
func classStatWeights(class character.Class) statWeights {
	w := statWeights{hp: 1.0, resists: 1.0}
	if class.HasMana() {
		w.mana = 1.0
	}
	if class.NeedsAC() || class == character.ClassMonk {
		w.ac = 1.0
	}
	if class.NeedsATK() {
		w.atk = 1.0
		w.haste = 1.0
	}
	return w
}

// classFocusEntries 给出每个职业的聚焦权重条目。
// 权重是相对值，加载时会按聚焦预算整体缩放。
func classFocusEntries(class character.Class) []focusEntry {
	switch class {
	case character.ClassWarrior:
		return []focusEntry{
			{MetricWarriorItems, RuleWarriorItems, "", 1.0},
		}
	case character.ClassShadowKnight:
		return []focusEntry{
			{MetricShieldOfStrife, RuleShieldOfStrife, "", 2.0},
		}
	case character.ClassPaladin:
		return []focusEntry{
			{MetricHasteBene, RuleHasteBene, "", 0.75},
			{MetricHealing, RuleHealing, "", 0.5},
			{MetricShieldOfStrife, RuleShieldOfStrife, "", 2.0},
		}
	case character.ClassCleric:
		return []focusEntry{
			{MetricDamageMagic, RuleSpellDamage, item.DamageMagic, 0.5},
			{MetricHealing, RuleHealing, "", 2.0},
			{MetricManaEfficiency, RuleManaEfficiency, "", 1.0},
			{MetricRange, RuleRange, "", 1.0},
			{MetricDurationBene, RuleDurationBene, "", 1.0},
			{MetricHasteBene, RuleHasteBene, "", 1.0},
		}
	case character.ClassDruid:
		return []focusEntry{
			{MetricDamageFire, RuleSpellDamage, item.DamageFire, 1.0},
			{MetricDamageCold, RuleSpellDamage, item.DamageCold, 1.0},
			{MetricHealing, RuleHealing, "", 1.0},
			{MetricManaEfficiency, RuleManaEfficiency, "", 1.0},
			{MetricHasteBene, RuleHasteBene, "", 1.0},
			{MetricHasteDet, RuleHasteDet, "", 0.75},
			{MetricDurationBene, RuleDurationBene, "", 1.0},
			{MetricDurationDet, RuleDurationDet, "", 0.5},
		}
	case character.ClassShaman:
		return []focusEntry{
			{MetricDamageCold, RuleSpellDamage, item.DamageCold, 1.0},
			{MetricDamageDisease, RuleSpellDamage, item.DamageDisease, 1.0},
			{MetricDamageAll, RuleSpellDamage, item.DamageAll, 0.75},
			{MetricHealing, RuleHealing, "", 1.0},
			{MetricManaEfficiency, RuleManaEfficiency, "", 1.0},
			{MetricHasteDet, RuleHasteDet, "", 0.75},
			{MetricDurationBene, RuleDurationBene, "", 1.0},
			{MetricDurationDet, RuleDurationDet, "", 1.0},
			{MetricDurationAll, RuleDurationAll, "", 1.0},
		}
	case character.ClassNecromancer:
		return []focusEntry{
			{MetricDamageDisease, RuleSpellDamage, item.DamageDisease, 1.0},
			{MetricDamageAll, RuleSpellDamage, item.DamageAll, 0.75},
			{MetricManaEfficiency, RuleManaEfficiency, "", 1.0},
			{MetricHasteDet, RuleHasteDet, "", 1.0},
			{MetricDurationDet, RuleDurationDet, "", 1.0},
			{MetricPetPower, RulePetPower, "", 0.5},
		}
	case character.ClassWizard:
		return []focusEntry{
			{MetricDamageFire, RuleSpellDamage, item.DamageFire, 1.0},
			{MetricDamageCold, RuleSpellDamage, item.DamageCold, 1.0},
			{MetricDamageMagic, RuleSpellDamage, item.DamageMagic, 0.5},
			{MetricManaEfficiency, RuleManaEfficiency, "", 1.0},
			{MetricHasteDet, RuleHasteDet, "", 1.0},
		}
	case character.ClassMagician:
		return []focusEntry{
			{MetricDamageFire, RuleSpellDamage, item.DamageFire, 1.0},
			{MetricDamageMagic, RuleSpellDamage, item.DamageMagic, 0.5},
			{MetricManaEfficiency, RuleManaEfficiency, "", 1.0},
			{MetricHasteDet, RuleHasteDet, "", 1.0},
			{MetricDurationDet, RuleDurationDet, "", 0.75},
			{MetricPetPower, RulePetPower, "", 0.75},
		}
	case character.ClassEnchanter:
		return []focusEntry{
			{MetricDamageMagic, RuleSpellDamage, item.DamageMagic, 0.5},
			{MetricManaEfficiency, RuleManaEfficiency, "", 1.0},
			{MetricHasteDet, RuleHasteDet, "", 1.0},
			{MetricDurationBene, RuleDurationBene, "", 1.0},
			{MetricDurationDet, RuleDurationDet, "", 1.0},
			{MetricRange, RuleRange, "", 0.75},
			{MetricSerpent, RuleSerpent, "", 2.0},
		}
	case character.ClassBeastlord:
		return []focusEntry{
			{MetricDamageCold, RuleSpellDamage, item.DamageCold, 0.5},
			{MetricHealing, RuleHealing, "", 0.75},
			{MetricManaEfficiency, RuleManaEfficiency, "", 1.0},
			{MetricHasteBene, RuleHasteBene, "", 0.75},
			{MetricHasteDet, RuleHasteDet, "", 0.75},
			{MetricPetPower, RulePetPower, "", 0.75},
		}
	case character.ClassBard:
		return []focusEntry{
			{MetricHasteBene, RuleHasteBene, "", 1.0},
			{MetricManaEfficiency, RuleManaEfficiency, "", 1.0},
		}
	default:
		// Monk、Rogue、Ranger没有聚焦条目，仅靠属性计分。
		return nil
	}
}

// buildStatMetrics 把属性权重展开成有序的指标列表。
func buildStatMetrics(class character.Class, cfg config.RankingConfig) []Metric {
	w := classStatWeights(class)
	metrics := make([]Metric, 0, 8)

	if class.IsTank() {
		// 坦克换算：HP/5与AC放进同一个池子，对池内最大值归一化。
		metrics = append(metrics,
			Metric{Name: MetricHP, Rule: RuleHP, Kind: KindPopulationMax, Group: groupTankPool, Weight: w.hp},
			Metric{Name: MetricAC, Rule: RuleAC, Kind: KindPopulationMax, Group: groupTankPool, Weight: w.ac},
		)
	} else {
		group := ""
		if class.HasMana() {
			// 施法者换算：HP与Mana共用分母。
			group = groupCasterPool
		}
		metrics = append(metrics, Metric{Name: MetricHP, Rule: RuleHP, Kind: KindPopulationMax, Group: group, Weight: w.hp})
		if w.mana > 0 {
			metrics = append(metrics, Metric{Name: MetricMana, Rule: RuleMana, Kind: KindPopulationMax, Group: group, Weight: w.mana})
		}
		if w.ac > 0 {
			metrics = append(metrics, Metric{Name: MetricAC, Rule: RuleAC, Kind: KindPopulationMax, Weight: w.ac})
		}
	}

	if w.atk > 0 {
		metrics = append(metrics, Metric{Name: MetricATK, Rule: RuleATK, Kind: KindFixedCap, Cap: atkCap, Weight: w.atk})
	}
	if w.haste > 0 {
		metrics = append(metrics, Metric{
			Name: MetricMeleeHaste, Rule: RuleMeleeHaste, Kind: KindBinary,
			Threshold: float64(character.MaxHasteThreshold), Weight: w.haste,
		})
	}
	metrics = append(metrics, Metric{Name: MetricResists, Rule: RuleResists, Kind: KindCurve, Weight: w.resists})

	if class.HasMana() {
		ft := Metric{Name: MetricFlowingThought, Rule: RuleFlowingThought, Weight: cfg.FTWeight}
		switch cfg.FTWeightMode {
		case config.FTWeightCappedOnly:
			// 只有到达上限的FT才算数：退化成阈值判定。
			ft.Kind = KindBinary
			ft.Threshold = float64(character.FTCap)
		default:
			ft.Kind = KindFixedCap
			ft.Cap = float64(character.FTCap)
		}
		metrics = append(metrics, ft)
	}
	return metrics
}

// buildFocusMetrics 展开聚焦条目并按预算缩放权重。
func buildFocusMetrics(class character.Class, hpWeight float64) ([]Metric, error) {
	entries := classFocusEntries(class)
	if len(entries) == 0 {
		return nil, nil
	}

	var rawSum float64
	for _, e := range entries {
		if e.weight <= 0 || math.IsNaN(e.weight) || math.IsInf(e.weight, 0) {
			return nil, &ConfigInvariantError{Class: string(class), Reason: fmt.Sprintf("聚焦条目 %s 的权重非法", e.name)}
		}
		rawSum += e.weight
	}
	scale := focusBudgetFactor * hpWeight / rawSum

	metrics := make([]Metric, 0, len(entries))
	for _, e := range entries {
		m := Metric{Name: e.name, Rule: e.rule, Damage: e.damage, Weight: e.weight * scale, IsFocus: true}
		switch e.rule {
		case RuleWarriorItems:
			m.Kind = KindPreScored
		case RuleShieldOfStrife, RuleSerpent:
			m.Kind = KindBinary
			m.Threshold = 1
		case RuleHasteDet:
			if class == character.ClassBeastlord {
				// 野兽领主的减益法术急速超过27.5%的部分没有收益。
				m.Kind = KindFixedCap
				m.Cap = beastlordDetHasteCap
			} else {
				m.Kind = KindPopulationMax
			}
		default:
			m.Kind = KindPopulationMax
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

// buildClassTable 生成单个职业的规则表并做校验。
func buildClassTable(class character.Class, cfg config.RankingConfig) (*ClassRuleTable, error) {
	stats := buildStatMetrics(class, cfg)
	hpWeight := stats[0].Weight
	if hpWeight <= 0 {
		return nil, &ConfigInvariantError{Class: string(class), Reason: "HP权重必须为正"}
	}

	focus, err := buildFocusMetrics(class, hpWeight)
	if err != nil {
		return nil, err
	}

	metrics := append(stats, focus...)

	var total, focusSum float64
	for _, m := range metrics {
		if m.Weight < 0 || math.IsNaN(m.Weight) || math.IsInf(m.Weight, 0) {
			return nil, &ConfigInvariantError{Class: string(class), Reason: fmt.Sprintf("指标 %s 的权重非法", m.Name)}
		}
		total += m.Weight
		if m.IsFocus {
			focusSum += m.Weight
		}
	}
	if total <= 0 {
		return nil, &ConfigInvariantError{Class: string(class), Reason: "权重总和必须为正"}
	}
	if len(focus) > 0 && math.Abs(focusSum-focusBudgetFactor*hpWeight) > 1e-9 {
		return nil, &ConfigInvariantError{
			Class:  string(class),
			Reason: fmt.Sprintf("聚焦权重总和 %.6f 偏离预算 %.6f", focusSum, focusBudgetFactor*hpWeight),
		}
	}

	for i := range metrics {
		metrics[i].NormWeight = metrics[i].Weight / total
	}
	return &ClassRuleTable{Class: class, Metrics: metrics}, nil
}

// BuildRuleSet 为全部职业生成规则表。
// 任何一个职业校验失败都会返回ConfigInvariantError并放弃整个规则集。
func BuildRuleSet(cfg config.RankingConfig) (*RuleSet, error) {
	tables := make(map[character.Class]*ClassRuleTable, len(character.AllClasses))
	for _, class := range character.AllClasses {
		table, err := buildClassTable(class, cfg)
		if err != nil {
			return nil, err
		}
		tables[class] = table
	}
	return &RuleSet{tables: tables}, nil
}
