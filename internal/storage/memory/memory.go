// Package memory provides an in-process campaign.Store for tests and throwaway sessions.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cory-johannsen/campaign/internal/campaign"
	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/storage"
)

// Store keeps encoded documents in maps, so callers never share memory with it.
type Store struct {
	mu         sync.RWMutex
	characters map[string][]byte
	encounters map[string][]byte
}

var _ campaign.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{
		characters: make(map[string][]byte),
		encounters: make(map[string][]byte),
	}
}

// SaveCharacter inserts or replaces c.
func (s *Store) SaveCharacter(_ context.Context, c *character.Character) error {
	data, err := storage.EncodeCharacter(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.characters[c.ID] = data
	s.mu.Unlock()
	return nil
}

// GetCharacter returns the character with id or campaign.ErrCharacterNotFound.
func (s *Store) GetCharacter(_ context.Context, id string) (*character.Character, error) {
	s.mu.RLock()
	data, ok := s.characters[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", campaign.ErrCharacterNotFound, id)
	}
	return storage.DecodeCharacter(data)
}

// ListCharacters returns every character ordered by ID.
func (s *Store) ListCharacters(_ context.Context) ([]*character.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*character.Character, 0, len(s.characters))
	for _, id := range sortedKeys(s.characters) {
		c, err := storage.DecodeCharacter(s.characters[id])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// DeleteCharacter removes id or returns campaign.ErrCharacterNotFound.
func (s *Store) DeleteCharacter(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.characters[id]; !ok {
		return fmt.Errorf("%w: %q", campaign.ErrCharacterNotFound, id)
	}
	delete(s.characters, id)
	return nil
}

// SaveEncounter inserts or replaces snap.
func (s *Store) SaveEncounter(_ context.Context, snap combat.Snapshot) error {
	data, err := storage.EncodeEncounter(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.encounters[snap.ID] = data
	s.mu.Unlock()
	return nil
}

// GetEncounter returns the snapshot with id or campaign.ErrEncounterNotFound.
func (s *Store) GetEncounter(_ context.Context, id string) (combat.Snapshot, error) {
	s.mu.RLock()
	data, ok := s.encounters[id]
	s.mu.RUnlock()
	if !ok {
		return combat.Snapshot{}, fmt.Errorf("%w: %q", campaign.ErrEncounterNotFound, id)
	}
	return storage.DecodeEncounter(data)
}

// ListEncounters returns every snapshot ordered by ID.
func (s *Store) ListEncounters(_ context.Context) ([]combat.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]combat.Snapshot, 0, len(s.encounters))
	for _, id := range sortedKeys(s.encounters) {
		snap, err := storage.DecodeEncounter(s.encounters[id])
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

// DeleteEncounter removes id or returns campaign.ErrEncounterNotFound.
func (s *Store) DeleteEncounter(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.encounters[id]; !ok {
		return fmt.Errorf("%w: %q", campaign.ErrEncounterNotFound, id)
	}
	delete(s.encounters, id)
	return nil
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
