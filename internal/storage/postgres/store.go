package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/campaign/internal/campaign"
	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/storage"
)

// Store persists characters and encounters as JSONB documents.
type Store struct {
	db *pgxpool.Pool
}

var _ campaign.Store = (*Store)(nil)

// NewStore creates a Store backed by the given pool.
//
// Precondition: db must be a valid, open connection pool with migrations applied.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// SaveCharacter upserts c.
func (s *Store) SaveCharacter(ctx context.Context, c *character.Character) error {
	data, err := storage.EncodeCharacter(c)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO characters (id, name, data, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, data = EXCLUDED.data, updated_at = NOW()`,
		c.ID, c.Name, data,
	)
	if err != nil {
		return fmt.Errorf("upserting character %q: %w", c.ID, err)
	}
	return nil
}

// GetCharacter retrieves a character by ID.
//
// Postcondition: Returns the Character or campaign.ErrCharacterNotFound.
func (s *Store) GetCharacter(ctx context.Context, id string) (*character.Character, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM characters WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", campaign.ErrCharacterNotFound, id)
		}
		return nil, fmt.Errorf("querying character %q: %w", id, err)
	}
	return storage.DecodeCharacter(data)
}

// ListCharacters returns every character ordered by ID.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (s *Store) ListCharacters(ctx context.Context) ([]*character.Character, error) {
	rows, err := s.db.Query(ctx, `SELECT data FROM characters ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	chars := make([]*character.Character, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		c, err := storage.DecodeCharacter(data)
		if err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	return chars, rows.Err()
}

// DeleteCharacter removes a character by ID.
//
// Postcondition: Returns campaign.ErrCharacterNotFound if no row was deleted.
func (s *Store) DeleteCharacter(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting character %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", campaign.ErrCharacterNotFound, id)
	}
	return nil
}

// SaveEncounter upserts snap.
func (s *Store) SaveEncounter(ctx context.Context, snap combat.Snapshot) error {
	data, err := storage.EncodeEncounter(snap)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO encounters (id, name, active, data, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, active = EXCLUDED.active, data = EXCLUDED.data, updated_at = NOW()`,
		snap.ID, snap.Name, snap.Active, data,
	)
	if err != nil {
		return fmt.Errorf("upserting encounter %q: %w", snap.ID, err)
	}
	return nil
}

// GetEncounter retrieves an encounter snapshot by ID.
//
// Postcondition: Returns the Snapshot or campaign.ErrEncounterNotFound.
func (s *Store) GetEncounter(ctx context.Context, id string) (combat.Snapshot, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM encounters WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return combat.Snapshot{}, fmt.Errorf("%w: %q", campaign.ErrEncounterNotFound, id)
		}
		return combat.Snapshot{}, fmt.Errorf("querying encounter %q: %w", id, err)
	}
	return storage.DecodeEncounter(data)
}

// ListEncounters returns every encounter snapshot ordered by ID.
func (s *Store) ListEncounters(ctx context.Context) ([]combat.Snapshot, error) {
	rows, err := s.db.Query(ctx, `SELECT data FROM encounters ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing encounters: %w", err)
	}
	defer rows.Close()

	snaps := make([]combat.Snapshot, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning encounter row: %w", err)
		}
		snap, err := storage.DecodeEncounter(data)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// DeleteEncounter removes an encounter by ID.
//
// Postcondition: Returns campaign.ErrEncounterNotFound if no row was deleted.
func (s *Store) DeleteEncounter(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM encounters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting encounter %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", campaign.ErrEncounterNotFound, id)
	}
	return nil
}
