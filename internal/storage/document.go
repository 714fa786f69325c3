// Package storage holds the JSON document codec shared by every Store backend.
// Characters and encounter snapshots are persisted whole, one document per record.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/combat"
)

// EncodeCharacter serialises c.
func EncodeCharacter(c *character.Character) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding character %q: %w", c.ID, err)
	}
	return data, nil
}

// DecodeCharacter parses a character document.
func DecodeCharacter(data []byte) (*character.Character, error) {
	var c character.Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding character: %w", err)
	}
	return &c, nil
}

// EncodeEncounter serialises s.
func EncodeEncounter(s combat.Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding encounter %q: %w", s.ID, err)
	}
	return data, nil
}

// DecodeEncounter parses an encounter document.
func DecodeEncounter(data []byte) (combat.Snapshot, error) {
	var s combat.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return combat.Snapshot{}, fmt.Errorf("decoding encounter: %w", err)
	}
	return s, nil
}
