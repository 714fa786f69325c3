// Package combat implements the initiative roster, turn cursor, and the
// encounter engine that serialises access to each encounter.
package combat

import (
	"fmt"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/condition"
	"github.com/cory-johannsen/campaign/internal/game/npc"
)

// Kind distinguishes player, NPC, and ad-hoc combatants.
type Kind int

const (
	KindPlayer Kind = iota
	KindNPC
	KindAdHoc
)

var kindNames = map[Kind]string{
	KindPlayer: "player",
	KindNPC:    "npc",
	KindAdHoc:  "adhoc",
}

// String returns the wire name of k.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes k by name.
func (k Kind) MarshalText() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("invalid combatant kind %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown combatant kind %q", string(b))
}

// SourceRef records what a combatant was copied from. ID is empty for ad-hoc entries.
type SourceRef struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id,omitempty"`
}

// Combatant is one roster entry. It is a copy of its source taken when added;
// later changes to the source character or template do not propagate.
//
// Invariant: 0 <= CurrentHP <= MaxHP.
type Combatant struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Kind          Kind          `json:"kind"`
	Source        SourceRef     `json:"source"`
	Initiative    int           `json:"initiative"`
	HasInitiative bool          `json:"has_initiative"`
	DexMod        int           `json:"dex_mod"`
	AC            int           `json:"ac"`
	CurrentHP     int           `json:"current_hp"`
	MaxHP         int           `json:"max_hp"`
	Conditions    condition.Set `json:"conditions"`
}

// IsPlayer reports whether this combatant is a player character.
func (c *Combatant) IsPlayer() bool { return c.Kind == KindPlayer }

// IsDown reports whether the combatant is at 0 HP.
func (c *Combatant) IsDown() bool { return c.CurrentHP <= 0 }

func (c Combatant) clone() Combatant {
	c.Conditions = c.Conditions.Clone()
	return c
}

// FromCharacter copies the combat-relevant state of ch at this instant.
func FromCharacter(ch *character.Character) Combatant {
	hp := ch.Resources.HitPoints
	return Combatant{
		Name:       ch.Name,
		Kind:       KindPlayer,
		Source:     SourceRef{Kind: KindPlayer, ID: ch.ID},
		DexMod:     ch.InitiativeModifier(),
		AC:         ch.ArmorClass(),
		CurrentHP:  hp.Current,
		MaxHP:      hp.Maximum,
		Conditions: ch.Resources.Conditions.Clone(),
	}
}

// FromTemplate builds a fresh, full-health combatant from an NPC stat block.
func FromTemplate(t *npc.Template) Combatant {
	return Combatant{
		Name:       t.Name,
		Kind:       KindNPC,
		Source:     SourceRef{Kind: KindNPC, ID: t.ID},
		DexMod:     t.InitiativeModifier(),
		AC:         t.AC,
		CurrentHP:  t.MaxHP,
		MaxHP:      t.MaxHP,
		Conditions: condition.NewSet(t.Conditions...),
	}
}

// HPChange is either a relative delta or an absolute value for UpdateHP.
type HPChange struct {
	value    int
	absolute bool
}

// Delta adjusts HP by n (negative for damage).
func Delta(n int) HPChange { return HPChange{value: n} }

// Absolute sets HP to n.
func Absolute(n int) HPChange { return HPChange{value: n, absolute: true} }

func (h HPChange) apply(current, maxHP int) int {
	next := current + h.value
	if h.absolute {
		next = h.value
	}
	return min(max(next, 0), max(maxHP, 0))
}
