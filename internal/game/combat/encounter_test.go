package combat_test

import (
	"testing"

	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/game/dice"
	"github.com/cory-johannsen/campaign/internal/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"
)

func newEncounter(inits ...int) (*combat.Encounter, []string) {
	enc := combat.NewEncounter("enc_1", "Ambush", newRoster())
	ids := make([]string, len(inits))
	for i, n := range inits {
		ids[i] = enc.Add(combat.Combatant{Name: string(rune('A' + i)), Initiative: n, HasInitiative: true, CurrentHP: 10, MaxHP: 10})
	}
	return enc, ids
}

func currentID(t *testing.T, enc *combat.Encounter) string {
	t.Helper()
	c, ok := enc.Current()
	require.True(t, ok)
	return c.ID
}

func TestStart_EmptyRosterRejected(t *testing.T) {
	enc, _ := newEncounter()
	assert.ErrorIs(t, enc.Start(combat.RollMissing, nil), combat.ErrEmptyRoster)
	assert.False(t, enc.Active())
	assert.ErrorIs(t, enc.NextTurn(), combat.ErrEncounterIdle)
	assert.ErrorIs(t, enc.PrevTurn(), combat.ErrEncounterIdle)
	assert.False(t, enc.CanAdvance())
	_, ok := enc.Current()
	assert.False(t, ok)
}

func TestStart_Twice(t *testing.T) {
	enc, _ := newEncounter(5)
	require.NoError(t, enc.Start(combat.RollMissing, nil))
	assert.ErrorIs(t, enc.Start(combat.RollMissing, nil), combat.ErrEncounterActive)
}

func TestStart_RollMissingKeepsTypedInitiative(t *testing.T) {
	enc := combat.NewEncounter("enc_1", "", newRoster())
	typed := enc.Add(combat.Combatant{Name: "typed", Initiative: 12, HasInitiative: true})
	rolled := enc.Add(combat.Combatant{Name: "rolled", DexMod: 2})

	require.NoError(t, enc.Start(combat.RollMissing, fixed(15)))
	order := enc.Combatants()
	assert.Equal(t, rolled, order[0].ID)
	assert.Equal(t, 17, order[0].Initiative)
	assert.Equal(t, typed, order[1].ID)
	assert.Equal(t, 12, order[1].Initiative)
	assert.Equal(t, 1, enc.Round())
	assert.Equal(t, 0, enc.Index())
}

func TestStart_RollAllRerolls(t *testing.T) {
	enc := combat.NewEncounter("enc_1", "", newRoster())
	a := enc.Add(combat.Combatant{Name: "a", Initiative: 20, HasInitiative: true})
	b := enc.Add(combat.Combatant{Name: "b", DexMod: 1})

	roller := dice.NewLoggedRoller(dice.NewSequenceSource(3, 18), zap.NewNop())
	require.NoError(t, enc.Start(combat.RollAll, roller.D20()))
	order := enc.Combatants()
	assert.Equal(t, b, order[0].ID)
	assert.Equal(t, 19, order[0].Initiative)
	assert.Equal(t, a, order[1].ID)
	assert.Equal(t, 3, order[1].Initiative)
}

func TestStart_NilRollerUsesFallback(t *testing.T) {
	enc := combat.NewEncounter("enc_1", "", newRoster())
	id := enc.Add(combat.Combatant{Name: "a", DexMod: -1})
	require.NoError(t, enc.Start(combat.RollMissing, nil))
	c, _ := enc.Get(id)
	assert.Equal(t, 9, c.Initiative)
}

func TestScenario_ThreeCombatantsFullRound(t *testing.T) {
	enc, _ := newEncounter(15, 10, 5)
	require.NoError(t, enc.Start(combat.RollMissing, nil))
	for i := 0; i < 3; i++ {
		require.NoError(t, enc.NextTurn())
	}
	assert.Equal(t, 2, enc.Round())
	assert.Equal(t, 0, enc.Index())
}

func TestPrevTurn(t *testing.T) {
	enc, ids := newEncounter(15, 10, 5)
	require.NoError(t, enc.Start(combat.RollMissing, nil))

	require.NoError(t, enc.PrevTurn())
	assert.Equal(t, 0, enc.Index())
	assert.Equal(t, 1, enc.Round())

	require.NoError(t, enc.NextTurn())
	require.NoError(t, enc.NextTurn())
	require.NoError(t, enc.NextTurn())
	require.NoError(t, enc.PrevTurn())
	assert.Equal(t, 2, enc.Index())
	assert.Equal(t, 1, enc.Round())
	assert.Equal(t, ids[2], currentID(t, enc))
}

func TestReset(t *testing.T) {
	enc, _ := newEncounter(15, 10)
	require.NoError(t, enc.Start(combat.RollMissing, nil))
	require.NoError(t, enc.NextTurn())
	require.NoError(t, enc.NextTurn())
	enc.Reset()
	assert.False(t, enc.Active())
	assert.Equal(t, 0, enc.Len())
	assert.Equal(t, 1, enc.Round())
	assert.Equal(t, 0, enc.Index())
	assert.ErrorIs(t, enc.NextTurn(), combat.ErrEncounterIdle)
}

func TestRemove_KeepsCurrentActor(t *testing.T) {
	enc, ids := newEncounter(20, 15, 10, 5)
	require.NoError(t, enc.Start(combat.RollMissing, nil))
	require.NoError(t, enc.NextTurn())
	require.NoError(t, enc.NextTurn())
	require.Equal(t, ids[2], currentID(t, enc))

	assert.True(t, enc.Remove(ids[0]))
	assert.Equal(t, ids[2], currentID(t, enc))
	assert.True(t, enc.Remove(ids[3]))
	assert.Equal(t, ids[2], currentID(t, enc))
	assert.False(t, enc.Remove("missing"))
}

func TestRemove_CurrentActorPassesTurn(t *testing.T) {
	enc, ids := newEncounter(20, 15, 10)
	require.NoError(t, enc.Start(combat.RollMissing, nil))
	require.NoError(t, enc.NextTurn())

	enc.Remove(ids[1])
	assert.Equal(t, ids[2], currentID(t, enc))
	assert.Equal(t, 1, enc.Round())

	enc.Remove(ids[2])
	assert.Equal(t, ids[0], currentID(t, enc))
	assert.Equal(t, 2, enc.Round())

	enc.Remove(ids[0])
	assert.False(t, enc.Active())
	assert.Equal(t, 1, enc.Round())
}

func TestSortDescending_KeepsCurrentActor(t *testing.T) {
	enc, ids := newEncounter(20, 15, 10)
	require.NoError(t, enc.Start(combat.RollMissing, nil))
	require.NoError(t, enc.NextTurn())
	enc.SetInitiative(ids[2], 25)
	enc.SortDescending()

	assert.Equal(t, ids[1], currentID(t, enc))
	assert.Equal(t, 2, enc.Index())
	assert.Equal(t, ids[2], enc.Combatants()[0].ID)
}

func TestAdd_DuringEncounterAppends(t *testing.T) {
	enc, ids := newEncounter(20, 15)
	require.NoError(t, enc.Start(combat.RollMissing, nil))
	require.NoError(t, enc.NextTurn())
	enc.Add(combat.Combatant{Name: "late"})
	assert.Equal(t, ids[1], currentID(t, enc))
	require.NoError(t, enc.NextTurn())
	assert.Equal(t, "late", func() string { c, _ := enc.Current(); return c.Name }())
}

func TestPropertyWraparound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "n")
		enc := combat.NewEncounter("e", "", combat.NewRoster(idgen.NewSequential("c")))
		for i := 0; i < n; i++ {
			enc.Add(combat.Combatant{})
		}
		if err := enc.Start(combat.RollAll, fixed(10)); err != nil {
			t.Fatal(err)
		}
		round := enc.Round()
		for i := 0; i < n; i++ {
			if err := enc.NextTurn(); err != nil {
				t.Fatal(err)
			}
		}
		if enc.Index() != 0 || enc.Round() != round+1 {
			t.Fatalf("after %d turns: index=%d round=%d", n, enc.Index(), enc.Round())
		}
	})
}

func TestPropertyNextPrevSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(t, "n")
		steps := rapid.IntRange(0, 40).Draw(t, "steps")
		enc := combat.NewEncounter("e", "", combat.NewRoster(idgen.NewSequential("c")))
		for i := 0; i < n; i++ {
			enc.Add(combat.Combatant{})
		}
		if err := enc.Start(combat.RollAll, nil); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < steps; i++ {
			_ = enc.NextTurn()
		}
		index, round := enc.Index(), enc.Round()
		_ = enc.NextTurn()
		_ = enc.PrevTurn()
		if enc.Index() != index || enc.Round() != round {
			t.Fatalf("next/prev moved (%d,%d) to (%d,%d)", index, round, enc.Index(), enc.Round())
		}
	})
}

func TestPropertyCursorInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		enc := combat.NewEncounter("e", "", combat.NewRoster(idgen.NewSequential("c")))
		var ids []string
		for i := rapid.IntRange(1, 8).Draw(t, "n"); i > 0; i-- {
			ids = append(ids, enc.Add(combat.Combatant{}))
		}
		if err := enc.Start(combat.RollAll, nil); err != nil {
			t.Fatal(err)
		}
		ops := rapid.SliceOf(rapid.IntRange(0, 3)).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				_ = enc.NextTurn()
			case 1:
				_ = enc.PrevTurn()
			case 2:
				if len(ids) > 0 {
					i := rapid.IntRange(0, len(ids)-1).Draw(t, "victim")
					enc.Remove(ids[i])
					ids = append(ids[:i], ids[i+1:]...)
				}
			case 3:
				enc.SortDescending()
			}
			if enc.Round() < 1 {
				t.Fatalf("round %d < 1", enc.Round())
			}
			if enc.Active() && (enc.Index() < 0 || enc.Index() >= enc.Len()) {
				t.Fatalf("index %d outside roster of %d", enc.Index(), enc.Len())
			}
		}
	})
}
