// Package stats implements the pure derived-statistic rules: ability modifiers,
// proficiency, passive scores, spellcasting numbers, armor class and encumbrance.
//
// Every function is total over the integers and has no side effects.
package stats

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Ability identifies one of the six ability scores.
type Ability int

const (
	Strength Ability = iota
	Dexterity
	Constitution
	Intelligence
	Wisdom
	Charisma

	// NumAbilities is the number of abilities; AbilityScores is indexed 0..NumAbilities-1.
	NumAbilities = 6
)

var abilityNames = [NumAbilities]string{
	"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma",
}

var abilityAbbrevs = [NumAbilities]string{"STR", "DEX", "CON", "INT", "WIS", "CHA"}

// Abilities lists every ability in canonical order.
func Abilities() []Ability {
	return []Ability{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}
}

// Valid reports whether a names one of the six abilities.
func (a Ability) Valid() bool { return a >= Strength && a <= Charisma }

// String returns the lower-case ability name, e.g. "dexterity".
func (a Ability) String() string {
	if !a.Valid() {
		return fmt.Sprintf("ability(%d)", int(a))
	}
	return abilityNames[a]
}

// Abbrev returns the three-letter abbreviation, e.g. "DEX".
func (a Ability) Abbrev() string {
	if !a.Valid() {
		return "???"
	}
	return abilityAbbrevs[a]
}

// ParseAbility accepts a full name or abbreviation in any case.
func ParseAbility(s string) (Ability, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for i := 0; i < NumAbilities; i++ {
		if needle == abilityNames[i] || needle == strings.ToLower(abilityAbbrevs[i]) {
			return Ability(i), nil
		}
	}
	return 0, fmt.Errorf("unknown ability %q", s)
}

// MarshalText encodes the ability by name.
func (a Ability) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid ability %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes a name or abbreviation.
func (a *Ability) UnmarshalText(b []byte) error {
	parsed, err := ParseAbility(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AbilityScores holds all six scores indexed by Ability.
//
// Invariant: all six entries are always present.
type AbilityScores [NumAbilities]int

// DefaultScores returns a spread of 10 in every ability.
func DefaultScores() AbilityScores {
	return AbilityScores{10, 10, 10, 10, 10, 10}
}

// Get returns the score for a.
//
// Precondition: a.Valid().
func (s AbilityScores) Get(a Ability) int { return s[a] }

// Set replaces the score for a.
//
// Precondition: a.Valid().
func (s *AbilityScores) Set(a Ability, score int) { s[a] = score }

// Modifier returns the ability modifier for a.
func (s AbilityScores) Modifier(a Ability) int { return Modifier(s[a]) }

// MarshalJSON encodes the scores as an object keyed by ability name.
func (s AbilityScores) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, NumAbilities)
	for i, name := range abilityNames {
		m[name] = s[i]
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by ability name. All six keys must be present.
func (s *AbilityScores) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("decoding ability scores: %w", err)
	}
	var out AbilityScores
	for i, name := range abilityNames {
		v, ok := m[name]
		if !ok {
			return fmt.Errorf("decoding ability scores: missing %q", name)
		}
		out[i] = v
	}
	*s = out
	return nil
}
