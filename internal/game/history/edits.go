package history

import (
	"slices"
	"strings"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/stats"
)

// SetName renames the character. Blank names are ignored.
func SetName(name string) Edit {
	return func(c *character.Character) {
		if n := strings.TrimSpace(name); n != "" {
			c.Name = n
		}
	}
}

// SetRace replaces the race identifier.
func SetRace(race string) Edit {
	return func(c *character.Character) { c.Race = race }
}

// SetClass replaces the class identifier and clears the subclass.
func SetClass(class string) Edit {
	return func(c *character.Character) {
		if c.Class != class {
			c.Subclass = ""
		}
		c.Class = class
	}
}

// SetSubclass replaces the subclass identifier.
func SetSubclass(sub string) Edit {
	return func(c *character.Character) { c.Subclass = sub }
}

// SetLevel sets the character level, clamped into [1, 20].
func SetLevel(level int) Edit {
	return func(c *character.Character) { c.Level = min(max(level, 1), 20) }
}

// SetAbilityScore replaces one ability score. Invalid abilities are ignored.
func SetAbilityScore(a stats.Ability, score int) Edit {
	return func(c *character.Character) {
		if a.Valid() {
			c.Abilities.Set(a, score)
		}
	}
}

// SetMaxHP changes maximum hit points (floor 1) and pulls current HP down to fit.
func SetMaxHP(maxHP int) Edit {
	return func(c *character.Character) {
		hp := &c.Resources.HitPoints
		hp.Maximum = max(maxHP, 1)
		hp.Current = min(hp.Current, hp.Maximum)
	}
}

// SetSpellSlotMax changes the slot count at level and pulls usage down to fit.
func SetSpellSlotMax(level character.SpellLevel, n int) Edit {
	return func(c *character.Character) {
		if !level.Valid() {
			return
		}
		slot := &c.Resources.SpellSlots[level-1]
		slot.Max = max(n, 0)
		slot.Used = min(slot.Used, slot.Max)
	}
}

// AddFeature adds f or replaces the feature with the same ID. Current is clamped into [0, Maximum].
func AddFeature(f character.FeatureCharge) Edit {
	return func(c *character.Character) {
		f.Maximum = max(f.Maximum, 0)
		f.Current = min(max(f.Current, 0), f.Maximum)
		fs := c.Resources.FeatureCharges
		if i := slices.IndexFunc(fs, func(x character.FeatureCharge) bool { return x.ID == f.ID }); i >= 0 {
			fs[i] = f
			return
		}
		c.Resources.FeatureCharges = append(fs, f)
	}
}

// RemoveFeature drops the feature with id.
func RemoveFeature(id string) Edit {
	return func(c *character.Character) {
		c.Resources.FeatureCharges = slices.DeleteFunc(c.Resources.FeatureCharges,
			func(x character.FeatureCharge) bool { return x.ID == id })
	}
}

// LearnSpell adds spell to the known list.
func LearnSpell(spell string) Edit {
	return func(c *character.Character) { c.KnownSpells = addUnique(c.KnownSpells, spell) }
}

// ForgetSpell removes spell from the known and prepared lists.
func ForgetSpell(spell string) Edit {
	return func(c *character.Character) {
		c.KnownSpells = removeValue(c.KnownSpells, spell)
		c.PreparedSpells = removeValue(c.PreparedSpells, spell)
	}
}

// PrepareSpell marks a known spell as prepared. Unknown spells are ignored.
func PrepareSpell(spell string) Edit {
	return func(c *character.Character) {
		if slices.Contains(c.KnownSpells, spell) {
			c.PreparedSpells = addUnique(c.PreparedSpells, spell)
		}
	}
}

// UnprepareSpell removes spell from the prepared list.
func UnprepareSpell(spell string) Edit {
	return func(c *character.Character) { c.PreparedSpells = removeValue(c.PreparedSpells, spell) }
}

// AddItem adds item to equipment, merging quantity with a same-named entry.
func AddItem(item character.Item) Edit {
	return func(c *character.Character) {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		for i := range c.Equipment {
			if strings.EqualFold(c.Equipment[i].Name, item.Name) {
				c.Equipment[i].Quantity += item.Quantity
				return
			}
		}
		c.Equipment = append(c.Equipment, item)
	}
}

// RemoveItem takes qty of the named item away; the entry disappears at zero.
func RemoveItem(name string, qty int) Edit {
	return func(c *character.Character) {
		if qty < 1 {
			qty = 1
		}
		for i := range c.Equipment {
			if !strings.EqualFold(c.Equipment[i].Name, name) {
				continue
			}
			c.Equipment[i].Quantity -= qty
			if c.Equipment[i].Quantity <= 0 {
				c.Equipment = slices.Delete(c.Equipment, i, i+1)
			}
			return
		}
	}
}

// SetCurrency replaces the purse. Negative counts become zero.
func SetCurrency(cur character.Currency) Edit {
	return func(c *character.Character) {
		c.Currency = character.Currency{
			Copper:   max(cur.Copper, 0),
			Silver:   max(cur.Silver, 0),
			Electrum: max(cur.Electrum, 0),
			Gold:     max(cur.Gold, 0),
			Platinum: max(cur.Platinum, 0),
		}
	}
}

// SetNotes replaces the free-text notes.
func SetNotes(notes string) Edit {
	return func(c *character.Character) { c.Notes = notes }
}

// SetArmor replaces worn armor.
func SetArmor(a character.Armor) Edit {
	return func(c *character.Character) { c.Armor = a }
}

// SetProficiency grants or revokes proficiency in skill.
func SetProficiency(skill string, proficient bool) Edit {
	return func(c *character.Character) {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if proficient {
			c.SkillProficiencies = addUnique(c.SkillProficiencies, skill)
		} else {
			c.SkillProficiencies = removeValue(c.SkillProficiencies, skill)
		}
	}
}

func addUnique(list []string, v string) []string {
	if v == "" || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

func removeValue(list []string, v string) []string {
	return slices.DeleteFunc(list, func(x string) bool { return x == v })
}
