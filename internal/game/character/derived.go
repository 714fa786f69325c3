package character

import (
	"slices"
	"strings"

	"github.com/cory-johannsen/campaign/internal/game/stats"
)

// skillAbilities maps each skill to its governing ability.
var skillAbilities = map[string]stats.Ability{
	"acrobatics":      stats.Dexterity,
	"animal_handling": stats.Wisdom,
	"arcana":          stats.Intelligence,
	"athletics":       stats.Strength,
	"deception":       stats.Charisma,
	"history":         stats.Intelligence,
	"insight":         stats.Wisdom,
	"intimidation":    stats.Charisma,
	"investigation":   stats.Intelligence,
	"medicine":        stats.Wisdom,
	"nature":          stats.Intelligence,
	"perception":      stats.Wisdom,
	"performance":     stats.Charisma,
	"persuasion":      stats.Charisma,
	"religion":        stats.Intelligence,
	"sleight_of_hand": stats.Dexterity,
	"stealth":         stats.Dexterity,
	"survival":        stats.Wisdom,
}

// SkillAbility returns the ability governing skill.
func SkillAbility(skill string) (stats.Ability, bool) {
	a, ok := skillAbilities[strings.ToLower(skill)]
	return a, ok
}

// ProficiencyBonus returns the level-scaled proficiency bonus.
func (c *Character) ProficiencyBonus() int {
	return stats.ProficiencyBonus(c.Level)
}

// ProficientIn reports whether c is trained in skill.
func (c *Character) ProficientIn(skill string) bool {
	return slices.Contains(c.SkillProficiencies, strings.ToLower(skill))
}

// SkillBonus returns the check bonus for skill; unknown skills return 0.
func (c *Character) SkillBonus(skill string) int {
	a, ok := SkillAbility(skill)
	if !ok {
		return 0
	}
	return stats.SkillBonus(c.Abilities.Get(a), c.ProficientIn(skill), c.Level)
}

// PassiveScore returns 10 + the skill bonus for skill.
func (c *Character) PassiveScore(skill string) int {
	a, ok := SkillAbility(skill)
	if !ok {
		return 10
	}
	return stats.PassiveScore(c.Abilities.Get(a), c.ProficientIn(skill), c.Level)
}

// PassivePerception is PassiveScore("perception").
func (c *Character) PassivePerception() int {
	return c.PassiveScore("perception")
}

// SavingThrow returns the saving-throw bonus for a.
func (c *Character) SavingThrow(a stats.Ability) int {
	return stats.SkillBonus(c.Abilities.Get(a), slices.Contains(c.SaveProficiencies, a), c.Level)
}

// InitiativeModifier is the dexterity modifier.
func (c *Character) InitiativeModifier() int {
	return c.Abilities.Modifier(stats.Dexterity)
}

// ArmorClass applies worn armor (10 when unarmored) and +2 for a shield.
func (c *Character) ArmorClass() int {
	base := c.Armor.Base
	if base == 0 {
		base = 10
	}
	ac := stats.ArmorClass(base, c.Abilities.Get(stats.Dexterity), c.Armor.MaxDexBonus)
	if c.Armor.Shield {
		ac += 2
	}
	return ac
}

// SpellSaveDC returns the spell save DC; ok is false without a spellcasting ability.
func (c *Character) SpellSaveDC() (dc int, ok bool) {
	if c.SpellcastingAbility == nil {
		return 0, false
	}
	return stats.SpellSaveDC(c.Abilities.Get(*c.SpellcastingAbility), c.ProficiencyBonus()), true
}

// SpellAttackBonus returns the spell attack bonus; ok is false without a spellcasting ability.
func (c *Character) SpellAttackBonus() (bonus int, ok bool) {
	if c.SpellcastingAbility == nil {
		return 0, false
	}
	return stats.SpellAttackBonus(c.Abilities.Get(*c.SpellcastingAbility), c.ProficiencyBonus()), true
}

// CarriedWeight sums equipment weight in pounds.
func (c *Character) CarriedWeight() float64 {
	total := 0.0
	for _, it := range c.Equipment {
		total += it.Weight * float64(it.Quantity)
	}
	return total
}

// Encumbrance classifies the carried load against strength.
func (c *Character) Encumbrance() stats.Encumbrance {
	return stats.EncumbranceFor(c.Abilities.Get(stats.Strength), c.CarriedWeight())
}
