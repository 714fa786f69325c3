package character_test

import (
	"testing"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/stats"
	"github.com/stretchr/testify/assert"
)

func TestDerivedStats(t *testing.T) {
	wis := stats.Wisdom
	c := &character.Character{
		Level:               5,
		Abilities:           stats.AbilityScores{8, 14, 12, 10, 16, 10},
		SkillProficiencies:  []string{"perception"},
		SaveProficiencies:   []stats.Ability{stats.Wisdom},
		SpellcastingAbility: &wis,
	}

	assert.Equal(t, 3, c.ProficiencyBonus())
	assert.Equal(t, 16, c.PassivePerception())
	assert.Equal(t, 12, c.PassiveScore("Stealth"))
	assert.Equal(t, 10, c.PassiveScore("basket_weaving"))
	assert.Equal(t, 0, c.SkillBonus("basket_weaving"))
	assert.Equal(t, 6, c.SavingThrow(stats.Wisdom))
	assert.Equal(t, -1, c.SavingThrow(stats.Strength))
	assert.Equal(t, 2, c.InitiativeModifier())

	dc, ok := c.SpellSaveDC()
	assert.True(t, ok)
	assert.Equal(t, 14, dc)
	atk, ok := c.SpellAttackBonus()
	assert.True(t, ok)
	assert.Equal(t, 6, atk)
}

func TestSpellcastingAbsent(t *testing.T) {
	c := &character.Character{Level: 1, Abilities: stats.DefaultScores()}
	_, ok := c.SpellSaveDC()
	assert.False(t, ok)
	_, ok = c.SpellAttackBonus()
	assert.False(t, ok)
}

func TestArmorClass(t *testing.T) {
	c := &character.Character{Abilities: stats.AbilityScores{10, 18, 10, 10, 10, 10}}
	assert.Equal(t, 14, c.ArmorClass())

	two := 2
	c.Armor = character.Armor{Name: "breastplate", Base: 14, MaxDexBonus: &two, Shield: true}
	assert.Equal(t, 18, c.ArmorClass())
}

func TestEncumbrance(t *testing.T) {
	c := &character.Character{Abilities: stats.AbilityScores{10, 10, 10, 10, 10, 10}}
	c.Equipment = []character.Item{{Name: "rope", Quantity: 2, Weight: 10}}
	assert.Equal(t, 20.0, c.CarriedWeight())
	assert.Equal(t, stats.Unencumbered, c.Encumbrance())

	c.Equipment = append(c.Equipment, character.Item{Name: "anvil", Quantity: 1, Weight: 90})
	assert.Equal(t, stats.HeavilyEncumbered, c.Encumbrance())
}

func TestClone_IsDeep(t *testing.T) {
	c := newFighter()
	c.KnownSpells = []string{"shield"}
	c.Resources.Conditions.Add("prone")
	cp := c.Clone()

	cp.KnownSpells[0] = "fireball"
	cp.Resources.FeatureCharges[0].Current = 0
	cp.Resources.Conditions.Add("blinded")
	cp.Resources.SpellSlots[0].Used = 2

	assert.Equal(t, "shield", c.KnownSpells[0])
	assert.Equal(t, 1, c.Resources.FeatureCharges[0].Current)
	assert.False(t, c.Resources.Conditions.Has("blinded"))
	assert.Equal(t, 0, c.Resources.SpellSlots[0].Used)
	assert.Nil(t, (*character.Character)(nil).Clone())
}

func TestWithSessionFrom_ClampsIntoRestoredCaps(t *testing.T) {
	restored := newFighter().Resources
	restored.HitPoints = character.HitPoints{Current: 20, Maximum: 15}
	restored.SpellSlots[0] = character.SpellSlot{Max: 2}

	live := newFighter().Resources
	live.HitPoints = character.HitPoints{Current: 18, Maximum: 20, Temporary: 4}
	live.SpellSlots[0] = character.SpellSlot{Used: 4, Max: 4}
	live.FeatureCharges[0].Current = 0
	live.Conditions.Add("stunned")

	out := restored.WithSessionFrom(live)
	assert.Equal(t, character.HitPoints{Current: 15, Maximum: 15, Temporary: 4}, out.HitPoints)
	assert.Equal(t, character.SpellSlot{Used: 2, Max: 2}, out.SpellSlots.Get(1))
	f, _ := out.Feature("second_wind")
	assert.Equal(t, 0, f.Current)
	assert.True(t, out.Conditions.Has("stunned"))
}
