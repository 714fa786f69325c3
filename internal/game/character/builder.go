package character

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cory-johannsen/campaign/internal/game/stats"
)

// RaceOption is the subset of a race catalog entry the builder consumes.
type RaceOption struct {
	ID string
	// Modifiers maps ability names ("strength", "dex", ...) to score adjustments.
	Modifiers map[string]int
}

// ClassOption is the subset of a class catalog entry the builder consumes.
type ClassOption struct {
	ID                  string
	HitDie              int // faces of the class hit die, e.g. 10 for d10
	SaveProficiencies   []stats.Ability
	SpellcastingAbility *stats.Ability
	// SpellSlots lists slot maxima for level 1 spells upward at the starting level.
	SpellSlots []int
	// Features are the limited-use features held at the starting level. They
	// start fully charged.
	Features []FeatureCharge
}

// BuildSpec describes a new character.
type BuildSpec struct {
	Name  string
	Race  RaceOption
	Class ClassOption
	Level int
	// Abilities are the base scores before racial modifiers; zero means all 10s.
	Abilities stats.AbilityScores
}

// applyModifiers adds racial adjustments to base scores. Unknown ability names are ignored.
func applyModifiers(base stats.AbilityScores, mods map[string]int) stats.AbilityScores {
	for name, delta := range mods {
		if a, err := stats.ParseAbility(name); err == nil {
			base[a] += delta
		}
	}
	return base
}

// MaxHPFor computes hit points using the fixed-average progression:
// a full hit die at level 1 and hitDie/2+1 afterwards, each level adding the
// CON modifier. The result is never below the level.
func MaxHPFor(hitDie, level, conScore int) int {
	if level < 1 {
		level = 1
	}
	con := stats.Modifier(conScore)
	hp := hitDie + con + (level-1)*(hitDie/2+1+con)
	if hp < level {
		hp = level
	}
	return hp
}

// Build constructs a new Character from spec, with full resources.
//
// Precondition: id must be non-empty.
// Postcondition: Returns a Character ready for persistence, or a non-nil error.
func Build(id string, spec BuildSpec, now time.Time) (*Character, error) {
	if id == "" {
		return nil, errors.New("character id must not be empty")
	}
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if len(spec.Class.SpellSlots) > MaxSpellLevel {
		return nil, fmt.Errorf("class %q lists %d spell levels, max %d", spec.Class.ID, len(spec.Class.SpellSlots), MaxSpellLevel)
	}

	level := spec.Level
	if level < 1 {
		level = 1
	}
	base := spec.Abilities
	if base == (stats.AbilityScores{}) {
		base = stats.DefaultScores()
	}
	abilities := applyModifiers(base, spec.Race.Modifiers)

	hitDie := spec.Class.HitDie
	if hitDie < 2 {
		hitDie = 8
	}
	maxHP := MaxHPFor(hitDie, level, abilities.Get(stats.Constitution))

	c := &Character{
		ID:                id,
		Name:              name,
		Race:              spec.Race.ID,
		Class:             spec.Class.ID,
		Level:             level,
		Abilities:         abilities,
		SaveProficiencies: cloneSlice(spec.Class.SaveProficiencies),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if spec.Class.SpellcastingAbility != nil {
		a := *spec.Class.SpellcastingAbility
		c.SpellcastingAbility = &a
	}
	c.Resources.HitPoints = HitPoints{Current: maxHP, Maximum: maxHP}
	for i, n := range spec.Class.SpellSlots {
		c.Resources.SpellSlots[i] = SpellSlot{Max: max(n, 0)}
	}
	for _, f := range spec.Class.Features {
		f.Maximum = max(f.Maximum, 0)
		f.Current = f.Maximum
		c.Resources.FeatureCharges = append(c.Resources.FeatureCharges, f)
	}
	return c, nil
}

// TotalRoller rolls a dice expression and returns its grand total.
type TotalRoller interface {
	Total(expr string) (int, error)
}

// RollAbilityScores rolls 4d6-keep-highest-3 for each ability in order.
func RollAbilityScores(r TotalRoller) (stats.AbilityScores, error) {
	var out stats.AbilityScores
	for _, a := range stats.Abilities() {
		v, err := r.Total("4d6kh3")
		if err != nil {
			return stats.AbilityScores{}, fmt.Errorf("rolling %s: %w", a, err)
		}
		out[a] = v
	}
	return out, nil
}
