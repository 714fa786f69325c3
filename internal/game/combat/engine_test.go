package combat_test

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newEngine(t *testing.T) *combat.Engine {
	t.Helper()
	return combat.NewEngine(idgen.NewSequential("enc"), idgen.NewSequential("cbt"), zaptest.NewLogger(t))
}

func TestEngine_CreateWithGet(t *testing.T) {
	eng := newEngine(t)
	id := eng.Create("Goblin ambush")
	assert.Equal(t, "enc_1", id)

	err := eng.With(id, func(enc *combat.Encounter) error {
		enc.AddNPC(goblin())
		enc.AddNPC(goblin())
		return enc.Start(combat.RollAll, fixed(10))
	})
	require.NoError(t, err)

	snap, err := eng.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Goblin ambush", snap.Name)
	assert.True(t, snap.Active)
	assert.Len(t, snap.Combatants, 2)
	assert.Equal(t, 1, snap.Round)
}

func TestEngine_WithPropagatesError(t *testing.T) {
	eng := newEngine(t)
	id := eng.Create("")
	err := eng.With(id, func(enc *combat.Encounter) error { return enc.NextTurn() })
	assert.ErrorIs(t, err, combat.ErrEncounterIdle)
}

func TestEngine_UnknownEncounter(t *testing.T) {
	eng := newEngine(t)
	assert.ErrorIs(t, eng.With("nope", func(*combat.Encounter) error { return nil }), combat.ErrEncounterNotFound)
	_, err := eng.Get("nope")
	assert.ErrorIs(t, err, combat.ErrEncounterNotFound)
	assert.ErrorIs(t, eng.End("nope"), combat.ErrEncounterNotFound)
}

func TestEngine_EndAndIDs(t *testing.T) {
	eng := newEngine(t)
	a := eng.Create("a")
	b := eng.Create("b")
	assert.Equal(t, []string{a, b}, eng.IDs())
	require.NoError(t, eng.End(a))
	assert.Equal(t, []string{b}, eng.IDs())
}

func TestEngine_SnapshotRestoreRoundTrip(t *testing.T) {
	eng := newEngine(t)
	id := eng.Create("Crypt")
	require.NoError(t, eng.With(id, func(enc *combat.Encounter) error {
		enc.AddNPC(goblin())
		hero := enc.Add(combat.Combatant{Name: "Hero", Kind: combat.KindPlayer, CurrentHP: 12, MaxHP: 20})
		enc.ToggleCondition(hero, "blessed")
		if err := enc.Start(combat.RollAll, fixed(11)); err != nil {
			return err
		}
		return enc.NextTurn()
	}))

	data, err := json.Marshal(eng.Snapshot())
	require.NoError(t, err)

	var snaps []combat.Snapshot
	require.NoError(t, json.Unmarshal(data, &snaps))

	other := newEngine(t)
	require.NoError(t, other.Restore(snaps))
	assert.Equal(t, eng.Snapshot(), other.Snapshot())
}

func TestEngine_RestoreRejectsBadCursor(t *testing.T) {
	eng := newEngine(t)
	err := eng.Restore([]combat.Snapshot{{ID: "e", Active: true, Index: 3, Round: 1}})
	assert.Error(t, err)
	assert.Empty(t, eng.IDs())

	err = eng.Restore([]combat.Snapshot{{ID: "e", Round: 0}})
	assert.Error(t, err)
}

func TestEngine_ConcurrentEncountersAreIndependent(t *testing.T) {
	eng := newEngine(t)
	ids := []string{eng.Create("a"), eng.Create("b"), eng.Create("c")}
	for _, id := range ids {
		require.NoError(t, eng.With(id, func(enc *combat.Encounter) error {
			enc.Add(combat.Combatant{Name: "x"})
			enc.Add(combat.Combatant{Name: "y"})
			return enc.Start(combat.RollAll, fixed(10))
		}))
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		for w := 0; w < 4; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 25; i++ {
					_ = eng.With(id, func(enc *combat.Encounter) error { return enc.NextTurn() })
				}
			}()
		}
	}
	wg.Wait()

	for _, id := range ids {
		snap, err := eng.Get(id)
		require.NoError(t, err)
		// 100 turns over 2 combatants: index back at 0, 50 rounds later.
		assert.Equal(t, 0, snap.Index)
		assert.Equal(t, 51, snap.Round)
	}
}

func TestFromSnapshot_RequiresID(t *testing.T) {
	_, err := combat.FromSnapshot(combat.Snapshot{Round: 1}, idgen.NewSequential("c"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, combat.ErrEncounterNotFound))
}
