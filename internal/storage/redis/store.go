// Package redis provides a campaign.Store backed by Redis. Each record is one
// JSON string key; a set per kind indexes the stored IDs.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/campaign/internal/campaign"
	"github.com/cory-johannsen/campaign/internal/config"
	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/storage"
)

const (
	characterKeyPrefix = "character:"
	encounterKeyPrefix = "encounter:"
	characterIndex     = "characters"
	encounterIndex     = "encounters"
)

// Store persists documents in Redis under an optional key prefix.
type Store struct {
	client goredis.UniversalClient
	prefix string
}

var _ campaign.Store = (*Store)(nil)

// NewClient builds a go-redis client from cfg.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewStore wraps client. Every key is written under prefix.
//
// Precondition: client must be non-nil.
func NewStore(client goredis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Ping verifies the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

func (s *Store) key(parts ...string) string {
	k := s.prefix
	for _, p := range parts {
		k += p
	}
	return k
}

// SaveCharacter writes c and indexes its ID.
func (s *Store) SaveCharacter(ctx context.Context, c *character.Character) error {
	data, err := storage.EncodeCharacter(c)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(characterKeyPrefix, c.ID), data, 0)
	pipe.SAdd(ctx, s.key(characterIndex), c.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving character %q: %w", c.ID, err)
	}
	return nil
}

// GetCharacter retrieves a character by ID.
func (s *Store) GetCharacter(ctx context.Context, id string) (*character.Character, error) {
	data, err := s.client.Get(ctx, s.key(characterKeyPrefix, id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("%w: %q", campaign.ErrCharacterNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting character %q: %w", id, err)
	}
	return storage.DecodeCharacter(data)
}

// ListCharacters returns every indexed character ordered by ID.
func (s *Store) ListCharacters(ctx context.Context) ([]*character.Character, error) {
	docs, err := s.list(ctx, characterIndex, characterKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	out := make([]*character.Character, 0, len(docs))
	for _, d := range docs {
		c, err := storage.DecodeCharacter(d)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// DeleteCharacter removes a character and its index entry.
func (s *Store) DeleteCharacter(ctx context.Context, id string) error {
	return s.delete(ctx, characterIndex, characterKeyPrefix, id, campaign.ErrCharacterNotFound)
}

// SaveEncounter writes snap and indexes its ID.
func (s *Store) SaveEncounter(ctx context.Context, snap combat.Snapshot) error {
	data, err := storage.EncodeEncounter(snap)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(encounterKeyPrefix, snap.ID), data, 0)
	pipe.SAdd(ctx, s.key(encounterIndex), snap.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving encounter %q: %w", snap.ID, err)
	}
	return nil
}

// GetEncounter retrieves an encounter snapshot by ID.
func (s *Store) GetEncounter(ctx context.Context, id string) (combat.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(encounterKeyPrefix, id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return combat.Snapshot{}, fmt.Errorf("%w: %q", campaign.ErrEncounterNotFound, id)
	}
	if err != nil {
		return combat.Snapshot{}, fmt.Errorf("getting encounter %q: %w", id, err)
	}
	return storage.DecodeEncounter(data)
}

// ListEncounters returns every indexed encounter ordered by ID.
func (s *Store) ListEncounters(ctx context.Context) ([]combat.Snapshot, error) {
	docs, err := s.list(ctx, encounterIndex, encounterKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing encounters: %w", err)
	}
	out := make([]combat.Snapshot, 0, len(docs))
	for _, d := range docs {
		snap, err := storage.DecodeEncounter(d)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

// DeleteEncounter removes an encounter and its index entry.
func (s *Store) DeleteEncounter(ctx context.Context, id string) error {
	return s.delete(ctx, encounterIndex, encounterKeyPrefix, id, campaign.ErrEncounterNotFound)
}

// list fetches the documents named by index in ID order. Index entries whose
// key has vanished are skipped.
func (s *Store) list(ctx context.Context, index, keyPrefix string) ([][]byte, error) {
	ids, err := s.client.SMembers(ctx, s.key(index)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(keyPrefix, id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	docs := make([][]byte, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		docs = append(docs, []byte(str))
	}
	return docs, nil
}

func (s *Store) delete(ctx context.Context, index, keyPrefix, id string, notFound error) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.key(keyPrefix, id))
	pipe.SRem(ctx, s.key(index), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deleting %q: %w", id, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %q", notFound, id)
	}
	return nil
}
