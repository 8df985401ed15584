package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/config"
)

func defaultRankingConfig() config.RankingConfig {
	return config.RankingConfig{
		FTWeightMode: config.FTWeightConstant,
		FTWeight:     2.0,
	}
}

func mustBuildRuleSet(t *testing.T) *RuleSet {
	t.Helper()
	rs, err := BuildRuleSet(defaultRankingConfig())
	require.NoError(t, err)
	return rs
}

func TestBuildRuleSetCoversAllClasses(t *testing.T) {
	rs := mustBuildRuleSet(t)
	for _, class := range character.AllClasses {
		require.NotNil(t, rs.TableFor(class), "职业 %s 缺少规则表", class)
	}
}

func TestNormalizedWeightsSumToOne(t *testing.T) {
	rs := mustBuildRuleSet(t)
	for _, class := range character.AllClasses {
		table := rs.TableFor(class)
		var sum float64
		for _, m := range table.Metrics {
			assert.GreaterOrEqual(t, m.NormWeight, 0.0)
			sum += m.NormWeight
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "职业 %s 的归一化权重之和应为1", class)
	}
}

func TestFocusBudgetInvariant(t *testing.T) {
	rs := mustBuildRuleSet(t)
	for _, class := range character.AllClasses {
		table := rs.TableFor(class)

		var hpWeight, focusSum float64
		hasFocus := false
		for _, m := range table.Metrics {
			if m.Name == MetricHP {
				hpWeight = m.Weight
			}
			if m.IsFocus {
				hasFocus = true
				focusSum += m.Weight
			}
		}
		require.Greater(t, hpWeight, 0.0)

		if hasFocus {
			assert.InDelta(t, 3.0*hpWeight, focusSum, 1e-9,
				"职业 %s 的聚焦权重总和应为HP权重的3倍", class)
		}
	}
}

func TestPureMeleeHaveNoManaMetrics(t *testing.T) {
	rs := mustBuildRuleSet(t)
	for _, class := range []character.Class{character.ClassWarrior, character.ClassMonk, character.ClassRogue} {
		for _, m := range rs.TableFor(class).Metrics {
			assert.NotEqual(t, MetricMana, m.Name, "纯近战职业 %s 不应有法力指标", class)
			assert.NotEqual(t, MetricFlowingThought, m.Name, "纯近战职业 %s 不应有FT指标", class)
		}
	}
}

func TestFlowingThoughtModes(t *testing.T) {
	rs := mustBuildRuleSet(t)
	ft := findMetric(t, rs.TableFor(character.ClassWizard), MetricFlowingThought)
	assert.Equal(t, KindFixedCap, ft.Kind)
	assert.InDelta(t, float64(character.FTCap), ft.Cap, 1e-9)
	assert.InDelta(t, 2.0, ft.Weight, 1e-9)

	cfg := defaultRankingConfig()
	cfg.FTWeightMode = config.FTWeightCappedOnly
	cappedRS, err := BuildRuleSet(cfg)
	require.NoError(t, err)
	ft = findMetric(t, cappedRS.TableFor(character.ClassWizard), MetricFlowingThought)
	assert.Equal(t, KindBinary, ft.Kind)
	assert.InDelta(t, float64(character.FTCap), ft.Threshold, 1e-9)
}

func TestBeastlordDetHasteUsesFixedCap(t *testing.T) {
	rs := mustBuildRuleSet(t)
	m := findMetric(t, rs.TableFor(character.ClassBeastlord), MetricHasteDet)
	assert.Equal(t, KindFixedCap, m.Kind)
	assert.InDelta(t, 27.5, m.Cap, 1e-9)

	// 其他职业的减益法术急速仍按种群最大值归一化
	m = findMetric(t, rs.TableFor(character.ClassWizard), MetricHasteDet)
	assert.Equal(t, KindPopulationMax, m.Kind)
}

func TestTankStatPoolSharing(t *testing.T) {
	rs := mustBuildRuleSet(t)
	for _, class := range []character.Class{character.ClassWarrior, character.ClassPaladin, character.ClassShadowKnight} {
		table := rs.TableFor(class)
		hp := findMetric(t, table, MetricHP)
		ac := findMetric(t, table, MetricAC)
		assert.Equal(t, hp.Group, ac.Group, "坦克职业 %s 的HP与AC应共享归一化池", class)
		assert.NotEmpty(t, hp.Group)
	}

	table := rs.TableFor(character.ClassWizard)
	hp := findMetric(t, table, MetricHP)
	mana := findMetric(t, table, MetricMana)
	assert.Equal(t, hp.Group, mana.Group, "施法者的HP与Mana应共享归一化池")
}

func TestInvalidWeightRejected(t *testing.T) {
	cfg := defaultRankingConfig()
	cfg.FTWeight = -1.0
	_, err := BuildRuleSet(cfg)
	require.Error(t, err)

	var invariantErr *ConfigInvariantError
	require.ErrorAs(t, err, &invariantErr)
}

func findMetric(t *testing.T, table *ClassRuleTable, name string) *Metric {
	t.Helper()
	for i := range table.Metrics {
		if table.Metrics[i].Name == name {
			return &table.Metrics[i]
		}
	}
	t.Fatalf("职业 %s 的规则表中找不到指标 %s", table.Class, name)
	return nil
}
