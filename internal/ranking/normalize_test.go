package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
)

func TestResistScoreCurve(t *testing.T) {
	tests := []struct {
		name   string
		value  int
		score  float64
		weight float64
	}{
		{"零抗性", 0, 0, 1.0},
		{"软上限之前满权重", 100, 20, 1.0},
		{"软上限起点", 220, 44, 1.0},
		{"递减区中点", 270, 54, 0.675},
		{"递减区终点", 320, 64, 0.35},
		{"尾部固定权重", 400, 80, 0.35},
		{"硬上限", 500, 100, 0.35},
		{"超过硬上限归零", 501, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, weight := resistScore(tt.value)
			assert.InDelta(t, tt.score, score, 1e-9)
			assert.InDelta(t, tt.weight, weight, 1e-9)
		})
	}
}

func TestAggregateResistsUniformValues(t *testing.T) {
	// 五项抗性相等时，加权平均就等于单项得分
	c := &character.Character{MR: 150, FR: 150, CR: 150, DR: 150, PR: 150}
	assert.InDelta(t, 30.0, aggregateResists(c), 1e-9)
}

func TestAggregateResistsDiscountsExtremeValues(t *testing.T) {
	// 一项350（权重0.35）配四项100（权重1.0）：
	// (70*0.35 + 20*4*1.0) / (0.35 + 4.0)
	c := &character.Character{MR: 350, FR: 100, CR: 100, DR: 100, PR: 100}
	expected := (70*0.35 + 20*4) / 4.35
	assert.InDelta(t, expected, aggregateResists(c), 1e-9)
}

func TestNormalizedPercentFixedCapClamps(t *testing.T) {
	m := &Metric{Name: MetricATK, Rule: RuleATK, Kind: KindFixedCap, Cap: 250}
	table := &ClassRuleTable{Class: character.ClassWarrior}
	in := &characterInput{}

	assert.InDelta(t, 72.0, normalizedPercent(table, m, in, 180, nil), 1e-9)
	assert.InDelta(t, 100.0, normalizedPercent(table, m, in, 400, nil), 1e-9)
	assert.InDelta(t, 0.0, normalizedPercent(table, m, in, 0, nil), 1e-9)
}

func TestNormalizedPercentBinaryIsZeroOrHundred(t *testing.T) {
	m := &Metric{Name: MetricMeleeHaste, Rule: RuleMeleeHaste, Kind: KindBinary, Threshold: 30}
	table := &ClassRuleTable{Class: character.ClassWarrior}
	in := &characterInput{}

	assert.Equal(t, 0.0, normalizedPercent(table, m, in, 29, nil))
	assert.Equal(t, 100.0, normalizedPercent(table, m, in, 30, nil))
	assert.Equal(t, 100.0, normalizedPercent(table, m, in, 41, nil))
}

func TestNormalizedPercentEmptyPopulation(t *testing.T) {
	// 全职业都没有数据时分母为0，任何人都不得分
	m := &Metric{Name: MetricHealing, Rule: RuleHealing, Kind: KindPopulationMax, IsFocus: true}
	table := &ClassRuleTable{Class: character.ClassCleric}
	in := &characterInput{}

	assert.Equal(t, 0.0, normalizedPercent(table, m, in, 0, classMaxima{}))
}
