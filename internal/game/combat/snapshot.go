package combat

import (
	"fmt"

	"github.com/cory-johannsen/campaign/internal/idgen"
)

// Snapshot is the plain-data form of an Encounter, suitable for JSON persistence.
type Snapshot struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Active     bool        `json:"active"`
	Index      int         `json:"index"`
	Round      int         `json:"round"`
	Combatants []Combatant `json:"combatants"`
}

// Snapshot captures e.
func (e *Encounter) Snapshot() Snapshot {
	return Snapshot{
		ID:         e.ID,
		Name:       e.Name,
		Active:     e.active,
		Index:      e.index,
		Round:      e.round,
		Combatants: e.Combatants(),
	}
}

// FromSnapshot rebuilds an Encounter. Combatant IDs are preserved; new
// combatants draw IDs from ids.
//
// Postcondition: Returns an error when the cursor lies outside the roster.
func FromSnapshot(s Snapshot, ids idgen.Generator, opts ...RosterOption) (*Encounter, error) {
	if s.ID == "" {
		return nil, fmt.Errorf("encounter snapshot: id must not be empty")
	}
	if s.Round < 1 {
		return nil, fmt.Errorf("encounter %q: round must be >= 1, got %d", s.ID, s.Round)
	}
	if s.Active && (s.Index < 0 || s.Index >= len(s.Combatants)) {
		return nil, fmt.Errorf("encounter %q: index %d outside roster of %d", s.ID, s.Index, len(s.Combatants))
	}
	r := NewRoster(ids, opts...)
	for _, c := range s.Combatants {
		entry := c.clone()
		entry.CurrentHP = min(max(entry.CurrentHP, 0), max(entry.MaxHP, 0))
		r.entries = append(r.entries, &entry)
	}
	e := NewEncounter(s.ID, s.Name, r)
	if s.Active {
		e.active = true
		e.index = s.Index
		e.round = s.Round
	}
	return e, nil
}
