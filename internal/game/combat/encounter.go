package combat

import "errors"

var (
	// ErrEmptyRoster rejects starting or advancing an encounter with no combatants.
	ErrEmptyRoster = errors.New("encounter has no combatants")
	// ErrEncounterActive rejects Start on an encounter that is already running.
	ErrEncounterActive = errors.New("encounter already started")
	// ErrEncounterIdle rejects turn movement before Start.
	ErrEncounterIdle = errors.New("encounter not started")
)

// StartMode selects how Start fills in initiative.
type StartMode int

const (
	// RollMissing rolls only for combatants without an initiative, keeping typed or earlier rolls.
	RollMissing StartMode = iota
	// RollAll re-rolls every combatant.
	RollAll
)

// Encounter is a Roster plus the turn cursor over it.
//
// The cursor is idle until Start and active afterwards. While active,
// 0 <= Index() < Len() and Round() >= 1. Remove and SortDescending are
// overridden to keep the cursor on the same combatant.
type Encounter struct {
	*Roster
	ID   string
	Name string

	active bool
	index  int
	round  int
}

// NewEncounter creates an idle encounter over roster.
//
// Precondition: roster must be non-nil.
func NewEncounter(id, name string, roster *Roster) *Encounter {
	return &Encounter{Roster: roster, ID: id, Name: name, round: 1}
}

// Active reports whether the encounter has started.
func (e *Encounter) Active() bool { return e.active }

// Round returns the current round, starting at 1.
func (e *Encounter) Round() int { return e.round }

// Index returns the position of the current actor in roster order.
func (e *Encounter) Index() int { return e.index }

// CanAdvance reports whether NextTurn and PrevTurn are enabled.
func (e *Encounter) CanAdvance() bool { return e.active && e.Len() > 0 }

// Current returns the combatant whose turn it is.
func (e *Encounter) Current() (Combatant, bool) {
	if !e.CanAdvance() || e.index >= e.Len() {
		return Combatant{}, false
	}
	return e.entries[e.index].clone(), true
}

// Start rolls initiative according to mode, sorts the roster, and puts the
// first combatant on turn in round 1. A nil roll uses the roster fallback.
func (e *Encounter) Start(mode StartMode, roll func() int) error {
	if e.active {
		return ErrEncounterActive
	}
	if e.Len() == 0 {
		return ErrEmptyRoster
	}
	for _, c := range e.entries {
		if mode == RollAll || !c.HasInitiative {
			c.Initiative = rollInitiative(c.DexMod, roll, e.fallback)
			c.HasInitiative = true
		}
	}
	e.Roster.SortDescending()
	e.active = true
	e.index = 0
	e.round = 1
	return nil
}

// NextTurn moves to the next combatant, starting a new round on wraparound.
func (e *Encounter) NextTurn() error {
	if err := e.guard(); err != nil {
		return err
	}
	e.index = (e.index + 1) % e.Len()
	if e.index == 0 {
		e.round++
	}
	return nil
}

// PrevTurn moves to the previous combatant, stepping back a round on
// wraparound. At round 1, index 0 it is a no-op.
func (e *Encounter) PrevTurn() error {
	if err := e.guard(); err != nil {
		return err
	}
	switch {
	case e.index > 0:
		e.index--
	case e.round > 1:
		e.index = e.Len() - 1
		e.round--
	}
	return nil
}

// Reset clears the roster and returns the cursor to idle.
func (e *Encounter) Reset() {
	e.clear()
	e.active = false
	e.index = 0
	e.round = 1
}

// Remove deletes id. While active, the current actor stays current when it
// is not the one removed; removing the current actor hands the turn to the
// next in order. Removing the last combatant returns the encounter to idle.
func (e *Encounter) Remove(id string) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	e.Roster.Remove(id)
	if !e.active {
		return true
	}
	switch {
	case e.Len() == 0:
		e.Reset()
	case i < e.index:
		e.index--
	case e.index >= e.Len():
		e.index = 0
		e.round++
	}
	return true
}

// SortDescending re-sorts the roster, keeping the current actor on turn.
func (e *Encounter) SortDescending() {
	if !e.active || e.Len() == 0 {
		e.Roster.SortDescending()
		return
	}
	currentID := e.entries[e.index].ID
	e.Roster.SortDescending()
	e.index = e.indexOf(currentID)
}

func (e *Encounter) guard() error {
	if !e.active {
		return ErrEncounterIdle
	}
	if e.Len() == 0 {
		return ErrEmptyRoster
	}
	return nil
}
