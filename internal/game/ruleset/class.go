package ruleset

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/stats"
)

// ClassFeature describes a limited-use feature gained at a specific level.
type ClassFeature struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Level       int    `yaml:"level"`
	Description string `yaml:"description"`
	// Uses is the charge count; 0 marks a passive feature with no charges.
	Uses int `yaml:"uses"`
	// Recharge is one of short_rest, long_rest, dawn, never.
	Recharge string `yaml:"recharge"`
}

// Class defines a playable character class for character creation.
//
// Precondition: ID, Name, and HitDie must be set after loading.
type Class struct {
	ID                  string   `yaml:"id"`
	Name                string   `yaml:"name"`
	Description         string   `yaml:"description"`
	HitDie              int      `yaml:"hit_die"`
	SavingThrows        []string `yaml:"saving_throws"`
	SpellcastingAbility string   `yaml:"spellcasting_ability"`
	// SpellSlots maps a character level to slot maxima for spell levels 1 upward.
	// The entry for the highest listed level not above the character's applies.
	SpellSlots map[int][]int  `yaml:"spell_slots"`
	Features   []ClassFeature `yaml:"features"`
}

// Validate checks that the class can be turned into a builder option.
func (c *Class) Validate() error {
	if c.ID == "" || c.Name == "" {
		return fmt.Errorf("class %q: id and name must not be empty", c.ID)
	}
	if c.HitDie < 2 {
		return fmt.Errorf("class %q: hit_die must be >= 2, got %d", c.ID, c.HitDie)
	}
	for _, s := range c.SavingThrows {
		if _, err := stats.ParseAbility(s); err != nil {
			return fmt.Errorf("class %q: saving_throws: %w", c.ID, err)
		}
	}
	if c.SpellcastingAbility != "" {
		if _, err := stats.ParseAbility(c.SpellcastingAbility); err != nil {
			return fmt.Errorf("class %q: spellcasting_ability: %w", c.ID, err)
		}
	}
	for lvl, slots := range c.SpellSlots {
		if len(slots) > character.MaxSpellLevel {
			return fmt.Errorf("class %q: spell_slots[%d] lists %d levels", c.ID, lvl, len(slots))
		}
	}
	for _, f := range c.Features {
		if f.Uses > 0 {
			if f.ID == "" {
				return fmt.Errorf("class %q: feature %q needs an id", c.ID, f.Name)
			}
			if _, err := character.ParseRechargeOn(f.Recharge); err != nil {
				return fmt.Errorf("class %q: feature %q: %w", c.ID, f.ID, err)
			}
		}
	}
	return nil
}

// SlotsAt returns the spell-slot maxima for a character of the given level.
func (c *Class) SlotsAt(level int) []int {
	best := 0
	for lvl := range c.SpellSlots {
		if lvl <= level && lvl > best {
			best = lvl
		}
	}
	if best == 0 {
		return nil
	}
	return append([]int(nil), c.SpellSlots[best]...)
}

// Option converts c to the builder's view of a class at level.
//
// Precondition: c must have passed Validate.
func (c *Class) Option(level int) character.ClassOption {
	opt := character.ClassOption{
		ID:         c.ID,
		HitDie:     c.HitDie,
		SpellSlots: c.SlotsAt(level),
	}
	for _, s := range c.SavingThrows {
		a, _ := stats.ParseAbility(s)
		opt.SaveProficiencies = append(opt.SaveProficiencies, a)
	}
	if c.SpellcastingAbility != "" {
		a, _ := stats.ParseAbility(c.SpellcastingAbility)
		opt.SpellcastingAbility = &a
	}
	for _, f := range c.Features {
		if f.Uses <= 0 || f.Level > level {
			continue
		}
		recharge, _ := character.ParseRechargeOn(f.Recharge)
		opt.Features = append(opt.Features, character.FeatureCharge{
			ID:         f.ID,
			Name:       f.Name,
			Maximum:    f.Uses,
			RechargeOn: recharge,
		})
	}
	sort.SliceStable(opt.Features, func(i, j int) bool { return opt.Features[i].ID < opt.Features[j].ID })
	return opt
}

// LoadClasses reads all .yaml files in dir and parses each as a Class.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed classes (may be empty slice) or a non-nil error.
func LoadClasses(dir string) ([]*Class, error) {
	return loadDir[Class](dir, "class")
}
