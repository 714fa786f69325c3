// Package campaign owns a table's characters, encounters, and notes, and
// persists them through a pluggable Store.
package campaign

import (
	"context"
	"errors"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/combat"
)

// ErrCharacterNotFound is returned for an unknown character ID.
var ErrCharacterNotFound = errors.New("character not found")

// ErrUnknownCondition is returned when a condition tag is not in the catalog.
var ErrUnknownCondition = errors.New("unknown condition")

// ErrEncounterNotFound is returned for an unknown encounter ID.
// It is the same value as combat.ErrEncounterNotFound.
var ErrEncounterNotFound = combat.ErrEncounterNotFound

// Store persists characters and encounter snapshots.
//
// Implementations MUST be safe for concurrent use. Get and Delete of a
// missing record return ErrCharacterNotFound or ErrEncounterNotFound.
type Store interface {
	SaveCharacter(ctx context.Context, c *character.Character) error
	GetCharacter(ctx context.Context, id string) (*character.Character, error)
	ListCharacters(ctx context.Context) ([]*character.Character, error)
	DeleteCharacter(ctx context.Context, id string) error

	SaveEncounter(ctx context.Context, s combat.Snapshot) error
	GetEncounter(ctx context.Context, id string) (combat.Snapshot, error)
	ListEncounters(ctx context.Context) ([]combat.Snapshot, error)
	DeleteEncounter(ctx context.Context, id string) error
}
