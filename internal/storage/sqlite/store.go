// Package sqlite provides a single-file campaign.Store on the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/campaign/internal/campaign"
	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/storage"
	"github.com/cory-johannsen/campaign/internal/storage/sqlite/migrations"
)

// Store persists characters and encounters as JSON text rows.
type Store struct {
	db *sql.DB
}

var _ campaign.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies migrations.
//
// Precondition: path must be non-empty.
// Postcondition: Returns a ready Store or a non-nil error. The caller must Close it.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// Writers serialize on a single connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveCharacter upserts c.
func (s *Store) SaveCharacter(ctx context.Context, c *character.Character) error {
	data, err := storage.EncodeCharacter(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO characters (id, name, data, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data, updated_at = excluded.updated_at`,
		c.ID, c.Name, string(data), c.UpdatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upserting character %q: %w", c.ID, err)
	}
	return nil
}

// GetCharacter retrieves a character by ID.
func (s *Store) GetCharacter(ctx context.Context, id string) (*character.Character, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM characters WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", campaign.ErrCharacterNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying character %q: %w", id, err)
	}
	return storage.DecodeCharacter([]byte(data))
}

// ListCharacters returns every character ordered by ID.
func (s *Store) ListCharacters(ctx context.Context) ([]*character.Character, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM characters ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	out := make([]*character.Character, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		c, err := storage.DecodeCharacter([]byte(data))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCharacter removes a character by ID.
func (s *Store) DeleteCharacter(ctx context.Context, id string) error {
	return s.delete(ctx, `DELETE FROM characters WHERE id = ?`, id, campaign.ErrCharacterNotFound)
}

// SaveEncounter upserts snap.
func (s *Store) SaveEncounter(ctx context.Context, snap combat.Snapshot) error {
	data, err := storage.EncodeEncounter(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO encounters (id, name, active, data, updated_at) VALUES (?, ?, ?, ?, strftime('%s','now'))
ON CONFLICT(id) DO UPDATE SET name = excluded.name, active = excluded.active, data = excluded.data, updated_at = excluded.updated_at`,
		snap.ID, snap.Name, snap.Active, string(data),
	)
	if err != nil {
		return fmt.Errorf("upserting encounter %q: %w", snap.ID, err)
	}
	return nil
}

// GetEncounter retrieves an encounter snapshot by ID.
func (s *Store) GetEncounter(ctx context.Context, id string) (combat.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM encounters WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return combat.Snapshot{}, fmt.Errorf("%w: %q", campaign.ErrEncounterNotFound, id)
	}
	if err != nil {
		return combat.Snapshot{}, fmt.Errorf("querying encounter %q: %w", id, err)
	}
	return storage.DecodeEncounter([]byte(data))
}

// ListEncounters returns every encounter snapshot ordered by ID.
func (s *Store) ListEncounters(ctx context.Context) ([]combat.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM encounters ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing encounters: %w", err)
	}
	defer rows.Close()

	out := make([]combat.Snapshot, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning encounter row: %w", err)
		}
		snap, err := storage.DecodeEncounter([]byte(data))
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// DeleteEncounter removes an encounter by ID.
func (s *Store) DeleteEncounter(ctx context.Context, id string) error {
	return s.delete(ctx, `DELETE FROM encounters WHERE id = ?`, id, campaign.ErrEncounterNotFound)
}

func (s *Store) delete(ctx context.Context, query, id string, notFound error) error {
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", notFound, id)
	}
	return nil
}
