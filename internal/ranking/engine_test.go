package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
	"github.com/SlpAus/takp-character-ranking-backend/internal/item"
)

func testSnapshot(id string, class character.Class, mutate func(*character.Character)) character.Snapshot {
	c := character.Character{
		CharacterID: id,
		Name:        "角色-" + id,
		Class:       string(class),
		Level:       65,
	}
	if mutate != nil {
		mutate(&c)
	}
	return character.Snapshot{Character: c}
}

func entryFor(t *testing.T, breakdown *ScoreBreakdown, metric string) BreakdownEntry {
	t.Helper()
	for _, e := range breakdown.Entries {
		if e.Metric == metric {
			return e
		}
	}
	t.Fatalf("明细中找不到指标 %s", metric)
	return BreakdownEntry{}
}

func TestWarriorStatOnlyScore(t *testing.T) {
	rs := mustBuildRuleSet(t)
	snapshots := []character.Snapshot{
		testSnapshot("w1", character.ClassWarrior, func(c *character.Character) {
			c.HP = 4000
			c.AC = 500
		}),
	}

	result := RankPopulation(snapshots, rs)
	require.Len(t, result.Classes[character.ClassWarrior], 1)
	require.Empty(t, result.Exclusions)

	rc := result.Classes[character.ClassWarrior][0]

	// HP/5=800 与 AC=500 进入同一个池，池内最大值为800
	assert.InDelta(t, 100.0, entryFor(t, rc.Breakdown, MetricHP).Normalized, 1e-9)
	assert.InDelta(t, 62.5, entryFor(t, rc.Breakdown, MetricAC).Normalized, 1e-9)

	// 没有急速物品、没有具名聚焦物品：对应指标得0分但仍出现在明细里
	assert.Equal(t, 0.0, entryFor(t, rc.Breakdown, MetricMeleeHaste).Normalized)
	assert.Equal(t, 0.0, entryFor(t, rc.Breakdown, MetricWarriorItems).Normalized)

	// 权重: hp1 + ac1 + atk1 + haste1 + resists1 + 聚焦3 = 8
	assert.InDelta(t, (100.0+62.5)/8.0, rc.Score, 1e-9)
}

func TestPopulationMaxHolderScoresFull(t *testing.T) {
	rs := mustBuildRuleSet(t)
	snapshots := []character.Snapshot{
		testSnapshot("z1", character.ClassWizard, func(c *character.Character) {
			c.HP = 800
			c.Mana = 1000
		}),
		testSnapshot("z2", character.ClassWizard, func(c *character.Character) {
			c.HP = 400
			c.Mana = 500
		}),
	}

	result := RankPopulation(snapshots, rs)
	ranked := result.Classes[character.ClassWizard]
	require.Len(t, ranked, 2)

	assert.Equal(t, "z1", ranked[0].CharacterID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.InDelta(t, 100.0, entryFor(t, ranked[0].Breakdown, MetricMana).Normalized, 1e-9)
	// HP与Mana共用分母1000
	assert.InDelta(t, 80.0, entryFor(t, ranked[0].Breakdown, MetricHP).Normalized, 1e-9)
	assert.InDelta(t, 50.0, entryFor(t, ranked[1].Breakdown, MetricMana).Normalized, 1e-9)
}

func TestWizardFlowingThoughtScoring(t *testing.T) {
	rs := mustBuildRuleSet(t)

	capped := RankPopulation([]character.Snapshot{
		testSnapshot("z1", character.ClassWizard, func(c *character.Character) { c.FTItem = 15 }),
	}, rs)
	entry := entryFor(t, capped.Classes[character.ClassWizard][0].Breakdown, MetricFlowingThought)
	assert.InDelta(t, 100.0, entry.Normalized, 1e-9)
	// 巫师权重: hp1 + mana1 + resists1 + FT2 + 聚焦3 = 8
	assert.InDelta(t, 0.25, entry.NormWeight, 1e-9)
	assert.InDelta(t, 25.0, capped.Classes[character.ClassWizard][0].Score, 1e-9)

	partial := RankPopulation([]character.Snapshot{
		testSnapshot("z2", character.ClassWizard, func(c *character.Character) { c.FTItem = 10 }),
	}, rs)
	entry = entryFor(t, partial.Classes[character.ClassWizard][0].Breakdown, MetricFlowingThought)
	assert.InDelta(t, 100.0*10.0/15.0, entry.Normalized, 1e-9)
}

func TestBeastlordDetHasteCapApplied(t *testing.T) {
	item.ReplaceRepository([]item.FocusEffect{
		{FocusName: "Quickening of Solusek", Category: "Spell Haste", Percentage: 40, ItemName: "Swift Talisman"},
		{FocusName: "Quickening of Solusek", Category: "Spell Haste", Percentage: 20, ItemName: "Lesser Talisman"},
	})
	t.Cleanup(func() { item.ReplaceRepository(nil) })

	rs := mustBuildRuleSet(t)
	withItem := func(id, itemName string) character.Snapshot {
		s := testSnapshot(id, character.ClassBeastlord, nil)
		s.Inventory = []character.EquippedItem{
			{CharacterID: id, SlotID: 5, ItemName: itemName},
		}
		return s
	}

	result := RankPopulation([]character.Snapshot{
		withItem("b1", "Swift Talisman"),
		withItem("b2", "Lesser Talisman"),
	}, rs)
	ranked := result.Classes[character.ClassBeastlord]
	require.Len(t, ranked, 2)

	// 40%超过27.5%的有效上限，得满分；20%按上限折算
	assert.InDelta(t, 100.0, entryFor(t, ranked[0].Breakdown, MetricHasteDet).Normalized, 1e-9)
	assert.InDelta(t, 100.0*20.0/27.5, entryFor(t, ranked[1].Breakdown, MetricHasteDet).Normalized, 1e-6)
}

func TestPetPowerFocusEntersMagicianScore(t *testing.T) {
	item.ReplaceRepository([]item.FocusEffect{
		{FocusName: "Minion of Darkness", Category: "Pet Power", Percentage: 25, ItemName: "Gloves of Dark Summoning"},
	})
	t.Cleanup(func() { item.ReplaceRepository(nil) })

	rs := mustBuildRuleSet(t)
	withGloves := testSnapshot("m1", character.ClassMagician, nil)
	// 背包槽位的宠物强化物品同样计入
	withGloves.Inventory = []character.EquippedItem{
		{CharacterID: "m1", SlotID: 30, ItemName: "Gloves of Dark Summoning"},
	}

	result := RankPopulation([]character.Snapshot{
		withGloves,
		testSnapshot("m2", character.ClassMagician, nil),
	}, rs)
	ranked := result.Classes[character.ClassMagician]
	require.Len(t, ranked, 2)

	holder := entryFor(t, ranked[0].Breakdown, MetricPetPower)
	assert.InDelta(t, 25.0, holder.Raw, 1e-9)
	assert.InDelta(t, 100.0, holder.Normalized, 1e-9)
	assert.Greater(t, holder.NormWeight, 0.0)

	bare := entryFor(t, ranked[1].Breakdown, MetricPetPower)
	assert.Equal(t, 0.0, bare.Normalized)
}

func TestUnknownClassExcludedWithoutAbort(t *testing.T) {
	rs := mustBuildRuleSet(t)
	result := RankPopulation([]character.Snapshot{
		testSnapshot("u1", "Berserker", nil),
		testSnapshot("w1", character.ClassWarrior, func(c *character.Character) { c.HP = 3000 }),
	}, rs)

	require.Len(t, result.Exclusions, 1)
	assert.Equal(t, "u1", result.Exclusions[0].CharacterID)
	assert.NotEmpty(t, result.Exclusions[0].Reason)
	assert.Len(t, result.Classes[character.ClassWarrior], 1)
}

func TestTiedScoresKeepInputOrder(t *testing.T) {
	rs := mustBuildRuleSet(t)
	build := func(id string) character.Snapshot {
		return testSnapshot(id, character.ClassRogue, func(c *character.Character) {
			c.HP = 2500
			c.ATKItem = 200
		})
	}

	result := RankPopulation([]character.Snapshot{build("r1"), build("r2")}, rs)
	ranked := result.Classes[character.ClassRogue]
	require.Len(t, ranked, 2)

	assert.Equal(t, "r1", ranked[0].CharacterID)
	assert.Equal(t, "r2", ranked[1].CharacterID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
}

func TestRankPopulationIsDeterministic(t *testing.T) {
	rs := mustBuildRuleSet(t)
	snapshots := []character.Snapshot{
		testSnapshot("w1", character.ClassWarrior, func(c *character.Character) { c.HP = 4000; c.AC = 500 }),
		testSnapshot("w2", character.ClassWarrior, func(c *character.Character) { c.HP = 3500; c.AC = 700 }),
		testSnapshot("z1", character.ClassWizard, func(c *character.Character) { c.HP = 900; c.Mana = 1200; c.FTItem = 12 }),
		testSnapshot("c1", character.ClassCleric, func(c *character.Character) { c.HP = 1100; c.Mana = 1000; c.MR = 180 }),
	}

	first := RankPopulation(snapshots, rs)
	second := RankPopulation(snapshots, rs)
	assert.Equal(t, first.Classes, second.Classes)
	assert.Equal(t, first.Exclusions, second.Exclusions)
}

func TestScoresStayInRange(t *testing.T) {
	rs := mustBuildRuleSet(t)
	snapshots := []character.Snapshot{
		testSnapshot("w1", character.ClassWarrior, func(c *character.Character) {
			c.HP = 9000
			c.AC = 2000
			c.ATKItem = 400
			c.HasteItem = 41
			c.MR, c.FR, c.CR, c.DR, c.PR = 600, 500, 400, 300, 200
		}),
		testSnapshot("w2", character.ClassWarrior, nil),
	}

	result := RankPopulation(snapshots, rs)
	for _, rc := range result.Classes[character.ClassWarrior] {
		assert.GreaterOrEqual(t, rc.Score, 0.0)
		assert.LessOrEqual(t, rc.Score, 100.0)
		for _, e := range rc.Breakdown.Entries {
			assert.GreaterOrEqual(t, e.Normalized, 0.0)
			assert.LessOrEqual(t, e.Normalized, 100.0)
		}
	}
}
