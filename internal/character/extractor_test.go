package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeRow() map[string]string {
	return map[string]string{
		"id":              "1001",
		"name":            "Aradune",
		"guild_name":      "Silent Resurgence",
		"race":            "Barbarian",
		"class":           "Warrior",
		"level":           "65",
		"hp_max_total":    "4000",
		"mana_max_total":  "0",
		"ac_total":        "1450",
		"atk_item":        "180 / 250",
		"haste_item":      "41",
		"mana_regen_item": "0 / 15",
		"MR_total":        "180",
		"FR_total":        "150",
		"CR_total":        "140",
		"DR_total":        "130",
		"PR_total":        "120",
	}
}

func TestParseCharacterRecordComplete(t *testing.T) {
	c, err := ParseCharacterRecord(completeRow())
	require.NoError(t, err)

	assert.Equal(t, "1001", c.CharacterID)
	assert.Equal(t, "Aradune", c.Name)
	assert.Equal(t, "Warrior", c.Class)
	assert.Equal(t, 65, c.Level)
	assert.Equal(t, 4000, c.HP)
	assert.Equal(t, 1450, c.AC)
	assert.Equal(t, 180, c.ATKItem)
	assert.Equal(t, 41, c.HasteItem)
	assert.Equal(t, 0, c.FTItem)
	assert.Equal(t, 720, c.TotalResists())
}

func TestParseCharacterRecordMissingIdentity(t *testing.T) {
	tests := []struct {
		name  string
		field string
	}{
		{"缺少id", "id"},
		{"缺少name", "name"},
		{"缺少class", "class"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := completeRow()
			row[tt.field] = ""
			_, err := ParseCharacterRecord(row)
			require.Error(t, err)

			var missingErr *MissingDataError
			require.ErrorAs(t, err, &missingErr)
		})
	}
}

func TestParseCharacterRecordLenientStatFields(t *testing.T) {
	row := completeRow()
	row["hp_max_total"] = "NULL"
	row["mana_max_total"] = ""
	row["ac_total"] = "junk"
	row["MR_total"] = "-20"
	delete(row, "FR_total")

	c, err := ParseCharacterRecord(row)
	require.NoError(t, err)

	// 缺失或非法的属性字段按0处理，负值截到0
	assert.Equal(t, 0, c.HP)
	assert.Equal(t, 0, c.Mana)
	assert.Equal(t, 0, c.AC)
	assert.Equal(t, 0, c.MR)
	assert.Equal(t, 0, c.FR)
}

func TestParseCharacterRecordCappedFields(t *testing.T) {
	row := completeRow()
	row["atk_item"] = "310 / 250"
	row["mana_regen_item"] = "22 / 15"

	c, err := ParseCharacterRecord(row)
	require.NoError(t, err)

	// ATK保留原始值，计分时再按上限折算；FT在解析时就截到硬上限
	assert.Equal(t, 310, c.ATKItem)
	assert.Equal(t, FTCap, c.FTItem)
}

func TestParseInventoryRecord(t *testing.T) {
	equipped, err := ParseInventoryRecord(map[string]string{
		"id":        "1001",
		"slot_id":   "13",
		"item_id":   "22999",
		"item_name": "Darkblade of the Warlord",
	})
	require.NoError(t, err)

	assert.Equal(t, "1001", equipped.CharacterID)
	assert.Equal(t, 13, equipped.SlotID)
	assert.True(t, equipped.Worn())

	_, err = ParseInventoryRecord(map[string]string{"slot_id": "13"})
	require.Error(t, err)
}

func TestParseClass(t *testing.T) {
	class, err := ParseClass("Shadow Knight")
	require.NoError(t, err)
	assert.Equal(t, ClassShadowKnight, class)

	_, err = ParseClass("Berserker")
	require.Error(t, err)
	var unknownErr *UnknownClassError
	require.ErrorAs(t, err, &unknownErr)
	assert.Contains(t, err.Error(), "Berserker")
}

func TestClassCapabilitySets(t *testing.T) {
	assert.True(t, ClassWarrior.IsTank())
	assert.True(t, ClassWarrior.IsPureMelee())
	assert.False(t, ClassWarrior.HasMana())

	assert.True(t, ClassWizard.HasMana())
	assert.False(t, ClassWizard.NeedsATK())
	assert.False(t, ClassWizard.IsTank())

	assert.True(t, ClassBeastlord.NeedsAC())
	assert.True(t, ClassBeastlord.NeedsATK())
	assert.False(t, ClassBeastlord.IsTank())

	assert.True(t, ClassBard.HasMana())
	assert.True(t, ClassBard.NeedsATK())
}
