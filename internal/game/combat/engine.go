package combat

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign/internal/idgen"
)

// ErrEncounterNotFound is returned for an unknown encounter ID.
var ErrEncounterNotFound = errors.New("encounter not found")

// slot guards one encounter. Encounters are independent, so each has its own lock.
type slot struct {
	mu  sync.Mutex
	enc *Encounter
}

// Engine owns every live encounter. All methods are safe for concurrent use;
// operations on one encounter are serialised, different encounters never block each other.
type Engine struct {
	mu         sync.RWMutex
	encounters map[string]*slot

	encounterIDs idgen.Generator
	combatantIDs idgen.Generator
	rosterOpts   []RosterOption
	logger       *zap.Logger
}

// NewEngine creates an empty Engine.
//
// Precondition: encounterIDs, combatantIDs and logger must be non-nil.
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine(encounterIDs, combatantIDs idgen.Generator, logger *zap.Logger, opts ...RosterOption) *Engine {
	return &Engine{
		encounters:   make(map[string]*slot),
		encounterIDs: encounterIDs,
		combatantIDs: combatantIDs,
		rosterOpts:   opts,
		logger:       logger,
	}
}

// Create registers a new idle encounter and returns its ID.
func (e *Engine) Create(name string) string {
	enc := NewEncounter(e.encounterIDs.Generate(), name, NewRoster(e.combatantIDs, e.rosterOpts...))
	e.mu.Lock()
	e.encounters[enc.ID] = &slot{enc: enc}
	e.mu.Unlock()
	e.logger.Info("encounter created", zap.String("encounter_id", enc.ID), zap.String("name", name))
	return enc.ID
}

func (e *Engine) lookup(id string) (*slot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.encounters[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEncounterNotFound, id)
	}
	return s, nil
}

// With runs fn while holding the encounter's lock. fn must not retain enc.
func (e *Engine) With(id string, fn func(enc *Encounter) error) error {
	s, err := e.lookup(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.enc)
}

// Get returns a snapshot of the encounter with id.
func (e *Engine) Get(id string) (Snapshot, error) {
	var snap Snapshot
	err := e.With(id, func(enc *Encounter) error {
		snap = enc.Snapshot()
		return nil
	})
	return snap, err
}

// End removes the encounter with id.
func (e *Engine) End(id string) error {
	e.mu.Lock()
	_, ok := e.encounters[id]
	delete(e.encounters, id)
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrEncounterNotFound, id)
	}
	e.logger.Info("encounter ended", zap.String("encounter_id", id))
	return nil
}

// IDs returns the IDs of all encounters, sorted.
func (e *Engine) IDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, 0, len(e.encounters))
	for id := range e.encounters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot captures every encounter, ordered by ID.
func (e *Engine) Snapshot() []Snapshot {
	ids := e.IDs()
	out := make([]Snapshot, 0, len(ids))
	for _, id := range ids {
		// An encounter ended between IDs and Get is simply skipped.
		if snap, err := e.Get(id); err == nil {
			out = append(out, snap)
		}
	}
	return out
}

// Restore loads encounters from snapshots, replacing any with the same ID.
//
// Postcondition: On error no encounter has been replaced.
func (e *Engine) Restore(snaps []Snapshot) error {
	restored := make([]*Encounter, 0, len(snaps))
	for _, s := range snaps {
		enc, err := FromSnapshot(s, e.combatantIDs, e.rosterOpts...)
		if err != nil {
			return fmt.Errorf("restoring encounters: %w", err)
		}
		restored = append(restored, enc)
	}
	e.mu.Lock()
	for _, enc := range restored {
		e.encounters[enc.ID] = &slot{enc: enc}
	}
	e.mu.Unlock()
	e.logger.Info("encounters restored", zap.Int("count", len(restored)))
	return nil
}
