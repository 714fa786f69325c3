// Package storetest is the behavioural suite every campaign.Store backend must pass.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/campaign/internal/campaign"
	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/game/stats"
)

// Character returns a fully populated character fixture.
func Character(id, name string) *character.Character {
	wis := stats.Wisdom
	two := 2
	ts := time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)
	c := &character.Character{
		ID:                  id,
		Name:                name,
		Race:                "hill_dwarf",
		Class:               "cleric",
		Subclass:            "life",
		Background:          "acolyte",
		Alignment:           "lawful good",
		Level:               3,
		Abilities:           stats.AbilityScores{14, 10, 15, 10, 16, 12},
		SkillProficiencies:  []string{"insight", "medicine"},
		SaveProficiencies:   []stats.Ability{stats.Wisdom, stats.Charisma},
		SpellcastingAbility: &wis,
		KnownSpells:         []string{"bless", "cure_wounds"},
		PreparedSpells:      []string{"bless"},
		Equipment:           []character.Item{{Name: "mace", Quantity: 1, Weight: 4}},
		Armor:               character.Armor{Name: "scale mail", Base: 14, MaxDexBonus: &two, Shield: true},
		Currency:            character.Currency{Gold: 15, Silver: 4},
		Notes:               "Keeps a journal.",
		CreatedAt:           ts,
		UpdatedAt:           ts,
	}
	c.Resources.HitPoints = character.HitPoints{Current: 21, Maximum: 27, Temporary: 3}
	c.Resources.DeathSaves = character.DeathSaves{Failures: 1}
	c.Resources.SpellSlots[0] = character.SpellSlot{Used: 1, Max: 4}
	c.Resources.SpellSlots[1] = character.SpellSlot{Max: 2}
	c.Resources.FeatureCharges = []character.FeatureCharge{
		{ID: "channel_divinity", Name: "Channel Divinity", Current: 0, Maximum: 1, RechargeOn: character.RechargeShortRest},
	}
	c.Resources.Conditions.Add("blessed")
	return c
}

// Encounter returns an active encounter snapshot fixture.
func Encounter(id string) combat.Snapshot {
	return combat.Snapshot{
		ID:     id,
		Name:   "Bridge ambush",
		Active: true,
		Index:  1,
		Round:  2,
		Combatants: []combat.Combatant{
			{ID: "cbt_1", Name: "Goblin", Kind: combat.KindNPC, Source: combat.SourceRef{Kind: combat.KindNPC, ID: "goblin"},
				Initiative: 17, HasInitiative: true, DexMod: 2, AC: 15, CurrentHP: 7, MaxHP: 7},
			{ID: "cbt_2", Name: "Tess", Kind: combat.KindPlayer, Source: combat.SourceRef{Kind: combat.KindPlayer, ID: "pc_1"},
				Initiative: 12, HasInitiative: true, DexMod: 1, AC: 18, CurrentHP: 20, MaxHP: 27},
		},
	}
}

// Run exercises newStore against the campaign.Store contract. newStore must
// return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) campaign.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("character round trip", func(t *testing.T) {
		s := newStore(t)
		want := Character("pc_1", "Hilde")
		require.NoError(t, s.SaveCharacter(ctx, want))
		got, err := s.GetCharacter(ctx, "pc_1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("save replaces", func(t *testing.T) {
		s := newStore(t)
		c := Character("pc_1", "Hilde")
		require.NoError(t, s.SaveCharacter(ctx, c))
		c.Name = "Hilde Stonefist"
		c.Resources.HitPoints.Current = 5
		require.NoError(t, s.SaveCharacter(ctx, c))

		got, err := s.GetCharacter(ctx, "pc_1")
		require.NoError(t, err)
		assert.Equal(t, "Hilde Stonefist", got.Name)
		assert.Equal(t, 5, got.Resources.HitPoints.Current)

		all, err := s.ListCharacters(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("list characters", func(t *testing.T) {
		s := newStore(t)
		all, err := s.ListCharacters(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		for i := 3; i >= 1; i-- {
			require.NoError(t, s.SaveCharacter(ctx, Character(fmt.Sprintf("pc_%d", i), "x")))
		}
		all, err = s.ListCharacters(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "pc_1", all[0].ID)
		assert.Equal(t, "pc_3", all[2].ID)
	})

	t.Run("missing character", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetCharacter(ctx, "nope")
		assert.ErrorIs(t, err, campaign.ErrCharacterNotFound)
		assert.ErrorIs(t, s.DeleteCharacter(ctx, "nope"), campaign.ErrCharacterNotFound)
	})

	t.Run("delete character", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.SaveCharacter(ctx, Character("pc_1", "Hilde")))
		require.NoError(t, s.DeleteCharacter(ctx, "pc_1"))
		_, err := s.GetCharacter(ctx, "pc_1")
		assert.ErrorIs(t, err, campaign.ErrCharacterNotFound)
	})

	t.Run("encounter round trip", func(t *testing.T) {
		s := newStore(t)
		want := Encounter("enc_1")
		require.NoError(t, s.SaveEncounter(ctx, want))
		got, err := s.GetEncounter(ctx, "enc_1")
		require.NoError(t, err)
		assert.Equal(t, want, got)

		want.Round = 3
		require.NoError(t, s.SaveEncounter(ctx, want))
		require.NoError(t, s.SaveEncounter(ctx, Encounter("enc_0")))
		all, err := s.ListEncounters(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "enc_0", all[0].ID)
		assert.Equal(t, 3, all[1].Round)
	})

	t.Run("missing encounter", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetEncounter(ctx, "nope")
		assert.ErrorIs(t, err, campaign.ErrEncounterNotFound)
		assert.ErrorIs(t, s.DeleteEncounter(ctx, "nope"), campaign.ErrEncounterNotFound)

		require.NoError(t, s.SaveEncounter(ctx, Encounter("enc_1")))
		require.NoError(t, s.DeleteEncounter(ctx, "enc_1"))
		_, err = s.GetEncounter(ctx, "enc_1")
		assert.ErrorIs(t, err, campaign.ErrEncounterNotFound)
	})

	t.Run("concurrent saves", func(t *testing.T) {
		s := newStore(t)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.SaveCharacter(ctx, Character(fmt.Sprintf("pc_%d", i), "x")))
			}()
		}
		wg.Wait()
		all, err := s.ListCharacters(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 8)
	})
}
