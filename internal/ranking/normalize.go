package ranking

import (
	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
	"github.com/SlpAus/takp-character-ranking-backend/internal/item"
)

// 抗性收益曲线的拐点。
// 500以下线性计分，220开始收益递减，320之后只保留35%的边际收益，
// 超过500的抗性在本规则集的内容范围内没有意义。
const (
	resistScoreCap     = 500.0
	resistSoftCapStart = 220.0
	resistSoftCapEnd   = 320.0
	resistTailWeight   = 0.35
)

// characterInput 是单个角色进入计分阶段前的全部派生数据。
type characterInput struct {
	snapshot character.Snapshot
	profile  *item.GearFocusProfile
}

// resistScore 返回单项抗性的线性得分和曲线权重。
func resistScore(value int) (score float64, weight float64) {
	v := float64(value)
	if v > resistScoreCap {
		return 0, 0
	}
	score = v / resistScoreCap * 100

	switch {
	case v <= resistSoftCapStart:
		weight = 1.0
	case v <= resistSoftCapEnd:
		weight = 1.0 - (1.0-resistTailWeight)*(v-resistSoftCapStart)/(resistSoftCapEnd-resistSoftCapStart)
	default:
		weight = resistTailWeight
	}
	return score, weight
}

// aggregateResists 把五项抗性合成一个0-100的百分比。
// 每项得分按各自的曲线权重加权平均，高到离谱的抗性拉不动均值。
func aggregateResists(c *character.Character) float64 {
	var weightedSum, weightSum float64
	for _, value := range c.ResistValues() {
		score, weight := resistScore(value)
		weightedSum += score * weight
		weightSum += weight
	}
	if weightSum == 0 {
		return 0
	}
	return weightedSum / weightSum
}

// rawValue 按指标规则从角色数据中提取原始值。
func rawValue(table *ClassRuleTable, m *Metric, in *characterInput) float64 {
	c := &in.snapshot.Character
	p := in.profile

	switch m.Rule {
	case RuleHP:
		if table.Class.IsTank() {
			// 坦克按5点HP折合1点AC进入共享池。
			return float64(c.HP) / 5.0
		}
		return float64(c.HP)
	case RuleMana:
		return float64(c.Mana)
	case RuleAC:
		return float64(c.AC)
	case RuleATK:
		return float64(c.ATKItem)
	case RuleMeleeHaste:
		return float64(c.HasteItem)
	case RuleResists:
		return float64(c.TotalResists())
	case RuleFlowingThought:
		return float64(c.FTItem)
	case RuleSpellDamage:
		return p.EffectiveDamage(m.Damage)
	case RuleManaEfficiency:
		return preferredManaEfficiency(table.Class, p)
	case RuleHasteBene:
		return p.EffectiveHaste(item.HasteBene)
	case RuleHasteDet:
		return p.EffectiveHaste(item.HasteDet)
	case RuleDurationBene:
		return p.EffectiveDuration(item.DurationBene)
	case RuleDurationDet:
		return p.EffectiveDuration(item.DurationDet)
	case RuleDurationAll:
		return p.DurationByKind[item.DurationAll]
	case RuleHealing:
		return p.BestByCategory[item.CategoryHealing]
	case RuleRange:
		return p.BestByCategory[item.CategoryRange]
	case RulePetPower:
		return p.PetPower
	case RuleWarriorItems:
		return item.WarriorFocusScore(p.Named, c.HasteItem)
	case RuleShieldOfStrife:
		if p.Named.HasShieldOfStrife {
			return 1
		}
		return 0
	case RuleSerpent:
		if p.Named.HasSerpent {
			return 1
		}
		return 0
	}
	return 0
}

// preferredManaEfficiency 选择职业实际受益的法力节约子类。
// 牧师优先增益法术的节约，没有时退回全子类最大值；
// 其他施法者取直伤/减益/增益中的最大值。Sanguine系列始终不计分。
func preferredManaEfficiency(class character.Class, p *item.GearFocusProfile) float64 {
	bene := p.EfficiencyByKind[item.EfficiencyBene]
	det := p.EfficiencyByKind[item.EfficiencyDet]
	nuke := p.EfficiencyByKind[item.EfficiencyNuke]

	if class == character.ClassCleric && bene > 0 {
		return bene
	}
	return max(nuke, det, bene)
}

// classMaxima 是一个职业种群内每个归一化键的最大原始值。
type classMaxima map[string]float64

// computeMaxima 扫描职业种群，求出每个种群归一化指标的分母。
// 共享分组的指标把各自的原始值放进同一个键。
func computeMaxima(table *ClassRuleTable, inputs []*characterInput) classMaxima {
	maxima := make(classMaxima)
	for _, in := range inputs {
		for i := range table.Metrics {
			m := &table.Metrics[i]
			if m.Kind != KindPopulationMax {
				continue
			}
			key := m.maximaKey()
			if raw := rawValue(table, m, in); raw > maxima[key] {
				maxima[key] = raw
			}
		}
	}
	return maxima
}

// normalizedPercent 把原始值换算成0-100的百分比。
func normalizedPercent(table *ClassRuleTable, m *Metric, in *characterInput, raw float64, maxima classMaxima) float64 {
	switch m.Kind {
	case KindPopulationMax:
		denom := maxima[m.maximaKey()]
		if denom <= 0 {
			// 全职业都没有这项数据时不给任何人送分。
			return 0
		}
		return clampPercent(raw / denom * 100)
	case KindFixedCap:
		if m.Cap <= 0 {
			return 0
		}
		return clampPercent(raw / m.Cap * 100)
	case KindBinary:
		if raw >= m.Threshold {
			return 100
		}
		return 0
	case KindCurve:
		return clampPercent(aggregateResists(&in.snapshot.Character))
	case KindPreScored:
		return clampPercent(raw)
	}
	return 0
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
