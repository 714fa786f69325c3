// Package character defines the character domain model, its consumable
// resources, and the Ledger that enforces resource consumption and recovery.
package character

import (
	"time"

	"github.com/cory-johannsen/campaign/internal/game/stats"
)

// Item is one line of carried equipment.
type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Weight   float64 `json:"weight"` // pounds, per unit
}

// Armor describes worn armor. A zero Base means unarmored (10 + DEX).
type Armor struct {
	Name        string `json:"name,omitempty"`
	Base        int    `json:"base"`
	MaxDexBonus *int   `json:"max_dex_bonus,omitempty"`
	Shield      bool   `json:"shield"`
}

// Currency holds coin counts by denomination.
type Currency struct {
	Copper   int `json:"cp"`
	Silver   int `json:"sp"`
	Electrum int `json:"ep"`
	Gold     int `json:"gp"`
	Platinum int `json:"pp"`
}

// InCopper returns the total value expressed in copper pieces.
func (c Currency) InCopper() int {
	return c.Copper + 10*c.Silver + 50*c.Electrum + 100*c.Gold + 1000*c.Platinum
}

// Character is a player character: structural attributes edited through the
// history log plus one ResourceState mutated during play.
//
// ID is assigned at creation; Characters are persisted as plain data keyed by ID.
type Character struct {
	ID string `json:"id"`

	Name       string `json:"name"`
	Race       string `json:"race"`
	Class      string `json:"class"`
	Subclass   string `json:"subclass,omitempty"`
	Background string `json:"background,omitempty"`
	Alignment  string `json:"alignment,omitempty"`
	Level      int    `json:"level"`

	Abilities          stats.AbilityScores `json:"abilities"`
	SkillProficiencies []string            `json:"skill_proficiencies"`
	SaveProficiencies  []stats.Ability     `json:"save_proficiencies"`

	// SpellcastingAbility is nil for characters without spellcasting.
	SpellcastingAbility *stats.Ability `json:"spellcasting_ability,omitempty"`
	KnownSpells         []string       `json:"known_spells"`
	PreparedSpells      []string       `json:"prepared_spells"`

	Equipment []Item   `json:"equipment"`
	Armor     Armor    `json:"armor"`
	Currency  Currency `json:"currency"`
	Notes     string   `json:"notes,omitempty"`

	Resources ResourceState `json:"resources"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
