package combat

import (
	"fmt"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/npc"
	"github.com/cory-johannsen/campaign/internal/idgen"
)

// Roster is the ordered set of combatants in one encounter.
//
// Operations on unknown IDs are no-ops reported by a false return.
// Roster is not safe for concurrent use; Engine serialises access per encounter.
type Roster struct {
	ids      idgen.Generator
	fallback int
	entries  []*Combatant
}

// RosterOption configures a Roster.
type RosterOption func(*Roster)

// WithInitiativeFallback overrides DefaultInitiativeFallback.
func WithInitiativeFallback(n int) RosterOption {
	return func(r *Roster) { r.fallback = n }
}

// NewRoster creates an empty roster that assigns combatant IDs from ids.
//
// Precondition: ids must be non-nil.
func NewRoster(ids idgen.Generator, opts ...RosterOption) *Roster {
	r := &Roster{ids: ids, fallback: DefaultInitiativeFallback}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Fallback returns the initiative used when no roll or readable value is available.
func (r *Roster) Fallback() int { return r.fallback }

// Add appends a copy of c under a fresh ID and returns that ID.
//
// Postcondition: MaxHP >= 0 and CurrentHP is clamped into [0, MaxHP].
func (r *Roster) Add(c Combatant) string {
	entry := c.clone()
	entry.ID = r.ids.Generate()
	entry.MaxHP = max(entry.MaxHP, 0)
	entry.CurrentHP = min(max(entry.CurrentHP, 0), entry.MaxHP)
	r.entries = append(r.entries, &entry)
	return entry.ID
}

// AddCharacter adds a copy of ch as a player combatant.
func (r *Roster) AddCharacter(ch *character.Character) string {
	return r.Add(FromCharacter(ch))
}

// AddNPC adds a combatant from t. Repeat additions of the same template are
// numbered ("Goblin", "Goblin 2", ...).
func (r *Roster) AddNPC(t *npc.Template) string {
	c := FromTemplate(t)
	n := 0
	for _, e := range r.entries {
		if e.Source.Kind == KindNPC && e.Source.ID == t.ID {
			n++
		}
	}
	if n > 0 {
		c.Name = fmt.Sprintf("%s %d", t.Name, n+1)
	}
	return r.Add(c)
}

// AddAdHoc adds an entry with no source, e.g. a lair action or a hazard.
func (r *Roster) AddAdHoc(name string, initiative int) string {
	return r.Add(Combatant{
		Name:          name,
		Kind:          KindAdHoc,
		Source:        SourceRef{Kind: KindAdHoc},
		Initiative:    initiative,
		HasInitiative: true,
	})
}

// Remove deletes the entry with id.
func (r *Roster) Remove(id string) bool {
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return true
}

// SetInitiative overrides the initiative of id.
func (r *Roster) SetInitiative(id string, value int) bool {
	c := r.find(id)
	if c == nil {
		return false
	}
	c.Initiative = value
	c.HasInitiative = true
	return true
}

// SetInitiativeText sets initiative from user input. Text that is not an
// integer sets the fallback value instead.
func (r *Roster) SetInitiativeText(id, text string) bool {
	return r.SetInitiative(id, parseInitiative(text, r.fallback))
}

// RollInitiative sets id's initiative to roll() + dexMod. A nil roll uses the
// fallback in place of the die. It returns the new initiative.
func (r *Roster) RollInitiative(id string, dexMod int, roll func() int) (int, bool) {
	c := r.find(id)
	if c == nil {
		return 0, false
	}
	c.Initiative = rollInitiative(dexMod, roll, r.fallback)
	c.HasInitiative = true
	return c.Initiative, true
}

// SortDescending orders entries by initiative, highest first. Ties keep their prior order.
func (r *Roster) SortDescending() {
	sortByInitiativeDesc(r.entries)
}

// UpdateHP applies change to id's current HP, clamped into [0, MaxHP].
func (r *Roster) UpdateHP(id string, change HPChange) bool {
	c := r.find(id)
	if c == nil {
		return false
	}
	before := c.CurrentHP
	c.CurrentHP = change.apply(c.CurrentHP, c.MaxHP)
	return c.CurrentHP != before
}

// ToggleCondition adds tag to id when absent and removes it when present.
// It reports whether the tag is now present; an unknown id reports false.
func (r *Roster) ToggleCondition(id, tag string) bool {
	c := r.find(id)
	if c == nil {
		return false
	}
	return c.Conditions.Toggle(tag)
}

// Get returns a copy of the entry with id.
func (r *Roster) Get(id string) (Combatant, bool) {
	c := r.find(id)
	if c == nil {
		return Combatant{}, false
	}
	return c.clone(), true
}

// Combatants returns copies of every entry in roster order.
func (r *Roster) Combatants() []Combatant {
	out := make([]Combatant, len(r.entries))
	for i, c := range r.entries {
		out[i] = c.clone()
	}
	return out
}

// Len returns the number of entries.
func (r *Roster) Len() int { return len(r.entries) }

func (r *Roster) clear() { r.entries = nil }

func (r *Roster) indexOf(id string) int {
	for i, c := range r.entries {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (r *Roster) find(id string) *Combatant {
	if i := r.indexOf(id); i >= 0 {
		return r.entries[i]
	}
	return nil
}
