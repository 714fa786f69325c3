package campaign

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/game/condition"
	"github.com/cory-johannsen/campaign/internal/game/history"
	"github.com/cory-johannsen/campaign/internal/game/npc"
	"github.com/cory-johannsen/campaign/internal/idgen"
)

// session is one character's edit history and the lock that serialises it.
type session struct {
	mu  sync.Mutex
	log *history.Log
}

// Manager is the application service over characters and encounters.
// All methods are safe for concurrent use. Each character and each encounter
// is locked independently, and every mutation is written through to the Store.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	notes    []Note

	store  Store
	engine *combat.Engine
	npcs   *npc.Catalog
	conds  *condition.Registry
	logger *zap.Logger

	characterIDs idgen.Generator
	noteIDs      idgen.Generator
	historyDepth int
	now          func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithCharacterIDs overrides the character ID generator.
func WithCharacterIDs(g idgen.Generator) Option { return func(m *Manager) { m.characterIDs = g } }

// WithNoteIDs overrides the note ID generator.
func WithNoteIDs(g idgen.Generator) Option { return func(m *Manager) { m.noteIDs = g } }

// WithHistoryDepth caps undo steps per character; 0 is unlimited.
func WithHistoryDepth(n int) Option { return func(m *Manager) { m.historyDepth = n } }

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

// WithNPCs attaches the NPC template catalog.
func WithNPCs(c *npc.Catalog) Option { return func(m *Manager) { m.npcs = c } }

// WithConditions restricts SetCondition to tags catalogued in reg.
func WithConditions(reg *condition.Registry) Option { return func(m *Manager) { m.conds = reg } }

// NewManager wires a Manager.
//
// Precondition: store, engine and logger must be non-nil.
// Postcondition: Returns a Manager with no characters loaded; call Load to read the Store.
func NewManager(store Store, engine *combat.Engine, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		sessions:     make(map[string]*session),
		store:        store,
		engine:       engine,
		logger:       logger,
		characterIDs: idgen.NewUUID("pc"),
		noteIDs:      idgen.NewUUID("note"),
		now:          time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	if m.npcs == nil {
		m.npcs, _ = npc.NewCatalog(nil)
	}
	return m
}

// Load reads every character and encounter from the Store into memory.
func (m *Manager) Load(ctx context.Context) error {
	chars, err := m.store.ListCharacters(ctx)
	if err != nil {
		return fmt.Errorf("loading characters: %w", err)
	}
	snaps, err := m.store.ListEncounters(ctx)
	if err != nil {
		return fmt.Errorf("loading encounters: %w", err)
	}
	if err := m.engine.Restore(snaps); err != nil {
		return err
	}

	m.mu.Lock()
	for _, c := range chars {
		m.sessions[c.ID] = m.newSession(c)
	}
	m.mu.Unlock()

	m.logger.Info("campaign loaded",
		zap.Int("characters", len(chars)),
		zap.Int("encounters", len(snaps)),
	)
	return nil
}

func (m *Manager) newSession(c *character.Character) *session {
	return &session{log: history.New(c, history.WithDepth(m.historyDepth))}
}

func (m *Manager) lookup(id string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCharacterNotFound, id)
	}
	return s, nil
}

// CreateCharacter builds, persists, and opens an edit session for a new character.
func (m *Manager) CreateCharacter(ctx context.Context, spec character.BuildSpec) (*character.Character, error) {
	c, err := character.Build(m.characterIDs.Generate(), spec, m.now())
	if err != nil {
		return nil, fmt.Errorf("building character: %w", err)
	}
	if err := m.store.SaveCharacter(ctx, c); err != nil {
		return nil, fmt.Errorf("saving character %q: %w", c.ID, err)
	}
	m.mu.Lock()
	m.sessions[c.ID] = m.newSession(c)
	m.mu.Unlock()

	m.logger.Info("character created",
		zap.String("character_id", c.ID),
		zap.String("name", c.Name),
		zap.String("class", c.Class),
		zap.Int("level", c.Level),
	)
	return c.Clone(), nil
}

// Character returns a copy of the character with id.
func (m *Manager) Character(id string) (*character.Character, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Current().Clone(), nil
}

// Characters returns copies of every character, ordered by name then ID.
func (m *Manager) Characters() []*character.Character {
	m.mu.RLock()
	sessions := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	out := make([]*character.Character, 0, len(sessions))
	for _, s := range sessions {
		s.mu.Lock()
		out = append(out, s.log.Current().Clone())
		s.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name); a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DeleteCharacter removes the character from memory and the Store.
func (m *Manager) DeleteCharacter(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrCharacterNotFound, id)
	}
	if err := m.store.DeleteCharacter(ctx, id); err != nil && !errors.Is(err, ErrCharacterNotFound) {
		return fmt.Errorf("deleting character %q: %w", id, err)
	}
	m.logger.Info("character deleted", zap.String("character_id", id))
	return nil
}

// mutate runs fn under the character's lock, stamps UpdatedAt when fn reports
// a change, and writes the result through to the Store.
func (m *Manager) mutate(ctx context.Context, id string, fn func(log *history.Log) bool) (*character.Character, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !fn(s.log) {
		return s.log.Current().Clone(), nil
	}
	c := s.log.Current()
	c.UpdatedAt = m.now()
	if err := m.store.SaveCharacter(ctx, c); err != nil {
		return nil, fmt.Errorf("saving character %q: %w", id, err)
	}
	return c.Clone(), nil
}

// Edit records each edit as its own undo step.
func (m *Manager) Edit(ctx context.Context, id string, edits ...history.Edit) (*character.Character, error) {
	c, err := m.mutate(ctx, id, func(log *history.Log) bool {
		for _, e := range edits {
			log.Record(e)
		}
		return len(edits) > 0
	})
	if err == nil {
		m.logger.Debug("character edited", zap.String("character_id", id), zap.Int("edits", len(edits)))
	}
	return c, err
}

// Undo reverts the last structural edit. It reports false when there was nothing to undo.
func (m *Manager) Undo(ctx context.Context, id string) (bool, error) {
	var undone bool
	_, err := m.mutate(ctx, id, func(log *history.Log) bool {
		undone = log.Undo()
		return undone
	})
	return undone, err
}

// Redo reapplies the last undone edit. It reports false when there was nothing to redo.
func (m *Manager) Redo(ctx context.Context, id string) (bool, error) {
	var redone bool
	_, err := m.mutate(ctx, id, func(log *history.Log) bool {
		redone = log.Redo()
		return redone
	})
	return redone, err
}

// HistoryDepth returns how many steps can be undone and redone for id.
func (m *Manager) HistoryDepth(id string) (undo, redo int, err error) {
	s, err := m.lookup(id)
	if err != nil {
		return 0, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.UndoDepth(), s.log.RedoDepth(), nil
}

// Session runs fn against the character's Ledger. Changes made there are
// persisted but never enter the undo history. fn reports whether anything changed.
func (m *Manager) Session(ctx context.Context, id string, fn func(l *character.Ledger) bool) (*character.Character, error) {
	return m.mutate(ctx, id, func(log *history.Log) bool {
		return fn(log.Ledger())
	})
}

// SetCondition adds or removes a condition tag on the character. When a
// condition catalog is attached, adding an uncatalogued tag fails with
// ErrUnknownCondition; removal is always allowed.
func (m *Manager) SetCondition(ctx context.Context, id, tag string, present bool) (*character.Character, error) {
	tag = condition.Normalize(tag)
	if present && m.conds != nil && !m.conds.Known(tag) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, tag)
	}
	return m.Session(ctx, id, func(l *character.Ledger) bool {
		if present {
			return l.AddCondition(tag)
		}
		return l.RemoveCondition(tag)
	})
}

// Save flushes every character and encounter to the Store.
func (m *Manager) Save(ctx context.Context) error {
	var errs []error
	for _, c := range m.Characters() {
		if err := m.store.SaveCharacter(ctx, c); err != nil {
			errs = append(errs, fmt.Errorf("saving character %q: %w", c.ID, err))
		}
	}
	for _, snap := range m.engine.Snapshot() {
		if err := m.store.SaveEncounter(ctx, snap); err != nil {
			errs = append(errs, fmt.Errorf("saving encounter %q: %w", snap.ID, err))
		}
	}
	return errors.Join(errs...)
}

// CreateEncounter opens a new, empty encounter and returns its ID.
func (m *Manager) CreateEncounter(ctx context.Context, name string) (string, error) {
	id := m.engine.Create(name)
	if err := m.saveEncounter(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Manager) saveEncounter(ctx context.Context, id string) error {
	snap, err := m.engine.Get(id)
	if err != nil {
		return err
	}
	if err := m.store.SaveEncounter(ctx, snap); err != nil {
		return fmt.Errorf("saving encounter %q: %w", id, err)
	}
	return nil
}

// Encounter runs fn under the encounter's lock and persists the result when fn succeeds.
func (m *Manager) Encounter(ctx context.Context, id string, fn func(enc *combat.Encounter) error) error {
	if err := m.engine.With(id, fn); err != nil {
		return err
	}
	return m.saveEncounter(ctx, id)
}

// AddCharacters copies the named characters into the encounter. The copies
// do not follow later changes to the characters.
func (m *Manager) AddCharacters(ctx context.Context, encounterID string, characterIDs ...string) ([]string, error) {
	chars := make([]*character.Character, 0, len(characterIDs))
	for _, id := range characterIDs {
		c, err := m.Character(id)
		if err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	var added []string
	err := m.Encounter(ctx, encounterID, func(enc *combat.Encounter) error {
		for _, c := range chars {
			added = append(added, enc.AddCharacter(c))
		}
		return nil
	})
	return added, err
}

// AddNPCs adds count combatants drawn from the NPC template templateID.
func (m *Manager) AddNPCs(ctx context.Context, encounterID, templateID string, count int) ([]string, error) {
	t, ok := m.npcs.Get(templateID)
	if !ok {
		return nil, fmt.Errorf("unknown npc template %q", templateID)
	}
	var added []string
	err := m.Encounter(ctx, encounterID, func(enc *combat.Encounter) error {
		for i := 0; i < max(count, 1); i++ {
			added = append(added, enc.AddNPC(t))
		}
		return nil
	})
	return added, err
}

// EndEncounter closes the encounter and removes it from the Store.
func (m *Manager) EndEncounter(ctx context.Context, id string) error {
	if err := m.engine.End(id); err != nil {
		return err
	}
	if err := m.store.DeleteEncounter(ctx, id); err != nil && !errors.Is(err, ErrEncounterNotFound) {
		return fmt.Errorf("deleting encounter %q: %w", id, err)
	}
	return nil
}

// AddNote appends a session note. Blank text is rejected.
func (m *Manager) AddNote(text string) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, errors.New("note text must not be empty")
	}
	n := Note{ID: m.noteIDs.Generate(), Text: text, CreatedAt: m.now()}
	m.mu.Lock()
	m.notes = append(m.notes, n)
	m.mu.Unlock()
	return n, nil
}

// Export returns the full campaign as plain data.
func (m *Manager) Export() State {
	m.mu.RLock()
	notes := append([]Note(nil), m.notes...)
	m.mu.RUnlock()
	return State{
		Characters: m.Characters(),
		NPCs:       m.npcs.All(),
		Encounters: m.engine.Snapshot(),
		Notes:      notes,
	}
}
