package combat_test

import (
	"testing"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/game/npc"
	"github.com/cory-johannsen/campaign/internal/game/stats"
	"github.com/cory-johannsen/campaign/internal/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newRoster() *combat.Roster {
	return combat.NewRoster(idgen.NewSequential("cbt"))
}

func fixed(n int) func() int { return func() int { return n } }

func goblin() *npc.Template {
	return &npc.Template{ID: "goblin", Name: "Goblin", MaxHP: 7, AC: 15, Abilities: npc.Abilities{Dexterity: 14}}
}

func TestAdd_AssignsIDsAndClampsHP(t *testing.T) {
	r := newRoster()
	a := r.Add(combat.Combatant{Name: "A", CurrentHP: 50, MaxHP: 10})
	b := r.Add(combat.Combatant{Name: "B", CurrentHP: -3, MaxHP: 10})
	assert.Equal(t, "cbt_1", a)
	assert.Equal(t, "cbt_2", b)

	ca, _ := r.Get(a)
	cb, _ := r.Get(b)
	assert.Equal(t, 10, ca.CurrentHP)
	assert.Equal(t, 0, cb.CurrentHP)
	assert.Equal(t, 2, r.Len())
}

func TestAddCharacter_CopiesNotLinks(t *testing.T) {
	ch := &character.Character{ID: "pc_1", Name: "Tess", Abilities: stats.AbilityScores{10, 16, 10, 10, 10, 10}}
	ch.Resources.HitPoints = character.HitPoints{Current: 18, Maximum: 24}
	ch.Resources.Conditions.Add("blessed")

	r := newRoster()
	id := r.AddCharacter(ch)

	character.NewLedger(ch).ApplyDamage(10)
	ch.Resources.Conditions.Add("prone")

	c, ok := r.Get(id)
	require.True(t, ok)
	assert.Equal(t, 18, c.CurrentHP)
	assert.Equal(t, 24, c.MaxHP)
	assert.Equal(t, 13, c.AC)
	assert.Equal(t, 3, c.DexMod)
	assert.True(t, c.IsPlayer())
	assert.Equal(t, combat.SourceRef{Kind: combat.KindPlayer, ID: "pc_1"}, c.Source)
	assert.Equal(t, []string{"blessed"}, c.Conditions.Tags())
}

func TestAddNPC_NumbersRepeats(t *testing.T) {
	r := newRoster()
	first := r.AddNPC(goblin())
	second := r.AddNPC(goblin())

	c1, _ := r.Get(first)
	c2, _ := r.Get(second)
	assert.Equal(t, "Goblin", c1.Name)
	assert.Equal(t, "Goblin 2", c2.Name)
	assert.Equal(t, 7, c2.CurrentHP)
	assert.Equal(t, 2, c2.DexMod)
	assert.Equal(t, combat.KindNPC, c2.Kind)
}

func TestAddAdHoc(t *testing.T) {
	r := newRoster()
	id := r.AddAdHoc("Lair action", 20)
	c, _ := r.Get(id)
	assert.Equal(t, combat.KindAdHoc, c.Kind)
	assert.True(t, c.HasInitiative)
	assert.Equal(t, 20, c.Initiative)
}

func TestRemove(t *testing.T) {
	r := newRoster()
	id := r.Add(combat.Combatant{Name: "A"})
	assert.False(t, r.Remove("missing"))
	assert.True(t, r.Remove(id))
	assert.Equal(t, 0, r.Len())
}

func TestSetInitiativeText(t *testing.T) {
	r := newRoster()
	id := r.Add(combat.Combatant{Name: "A"})

	assert.True(t, r.SetInitiativeText(id, " 17 "))
	c, _ := r.Get(id)
	assert.Equal(t, 17, c.Initiative)

	r.SetInitiativeText(id, "seventeen")
	c, _ = r.Get(id)
	assert.Equal(t, 10, c.Initiative)
	assert.True(t, c.HasInitiative)

	assert.False(t, r.SetInitiativeText("missing", "3"))
}

func TestSetInitiativeText_ConfiguredFallback(t *testing.T) {
	r := combat.NewRoster(idgen.NewSequential("cbt"), combat.WithInitiativeFallback(5))
	id := r.Add(combat.Combatant{Name: "A"})
	r.SetInitiativeText(id, "")
	c, _ := r.Get(id)
	assert.Equal(t, 5, c.Initiative)
}

func TestRollInitiative(t *testing.T) {
	r := newRoster()
	id := r.Add(combat.Combatant{Name: "A"})

	got, ok := r.RollInitiative(id, 3, fixed(14))
	assert.True(t, ok)
	assert.Equal(t, 17, got)

	got, _ = r.RollInitiative(id, -1, nil)
	assert.Equal(t, 9, got)

	_, ok = r.RollInitiative("missing", 0, fixed(1))
	assert.False(t, ok)
}

func TestScenario_SetInitiativeThenSort(t *testing.T) {
	r := newRoster()
	a := r.Add(combat.Combatant{Name: "A"})
	b := r.Add(combat.Combatant{Name: "B"})
	r.SetInitiative(a, 18)
	r.SetInitiative(b, 12)
	r.SortDescending()

	order := r.Combatants()
	require.Len(t, order, 2)
	assert.Equal(t, a, order[0].ID)
	assert.Equal(t, b, order[1].ID)
}

func TestSortDescending_Reorders(t *testing.T) {
	r := newRoster()
	low := r.Add(combat.Combatant{Name: "low", Initiative: 3})
	high := r.Add(combat.Combatant{Name: "high", Initiative: 19})
	r.SortDescending()
	order := r.Combatants()
	assert.Equal(t, high, order[0].ID)
	assert.Equal(t, low, order[1].ID)
}

func TestUpdateHP(t *testing.T) {
	r := newRoster()
	id := r.Add(combat.Combatant{Name: "A", CurrentHP: 10, MaxHP: 10})

	assert.True(t, r.UpdateHP(id, combat.Delta(-4)))
	c, _ := r.Get(id)
	assert.Equal(t, 6, c.CurrentHP)

	r.UpdateHP(id, combat.Delta(-40))
	c, _ = r.Get(id)
	assert.Equal(t, 0, c.CurrentHP)
	assert.True(t, c.IsDown())

	r.UpdateHP(id, combat.Absolute(99))
	c, _ = r.Get(id)
	assert.Equal(t, 10, c.CurrentHP)

	r.UpdateHP(id, combat.Absolute(-2))
	c, _ = r.Get(id)
	assert.Equal(t, 0, c.CurrentHP)

	assert.False(t, r.UpdateHP("missing", combat.Delta(1)))
}

func TestToggleCondition(t *testing.T) {
	r := newRoster()
	id := r.Add(combat.Combatant{Name: "A"})
	assert.True(t, r.ToggleCondition(id, "Prone"))
	c, _ := r.Get(id)
	assert.True(t, c.Conditions.Has("prone"))
	assert.False(t, r.ToggleCondition(id, "prone"))
	c, _ = r.Get(id)
	assert.False(t, c.Conditions.Has("prone"))
	assert.False(t, r.ToggleCondition("missing", "prone"))
}

func TestGet_ReturnsCopy(t *testing.T) {
	r := newRoster()
	id := r.Add(combat.Combatant{Name: "A", CurrentHP: 5, MaxHP: 5})
	c, _ := r.Get(id)
	c.CurrentHP = 1
	c.Conditions.Add("prone")
	again, _ := r.Get(id)
	assert.Equal(t, 5, again.CurrentHP)
	assert.False(t, again.Conditions.Has("prone"))
}

func TestPropertySortStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		inits := rapid.SliceOfN(rapid.IntRange(0, 4), 0, 20).Draw(t, "initiatives")
		r := newRoster()
		for _, n := range inits {
			r.Add(combat.Combatant{Initiative: n})
		}
		before := r.Combatants()
		pos := make(map[string]int, len(before))
		for i, c := range before {
			pos[c.ID] = i
		}
		r.SortDescending()
		after := r.Combatants()
		for i := 1; i < len(after); i++ {
			prev, cur := after[i-1], after[i]
			if prev.Initiative < cur.Initiative {
				t.Fatalf("not descending at %d", i)
			}
			if prev.Initiative == cur.Initiative && pos[prev.ID] > pos[cur.ID] {
				t.Fatalf("tie at %d reordered", i)
			}
		}
	})
}

func TestPropertyHPClamped(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		maxHP := rapid.IntRange(0, 100).Draw(t, "max")
		r := newRoster()
		id := r.Add(combat.Combatant{CurrentHP: maxHP, MaxHP: maxHP})
		for _, n := range rapid.SliceOf(rapid.IntRange(-200, 200)).Draw(t, "changes") {
			change := combat.Delta(n)
			if n%3 == 0 {
				change = combat.Absolute(n)
			}
			r.UpdateHP(id, change)
			c, _ := r.Get(id)
			if c.CurrentHP < 0 || c.CurrentHP > c.MaxHP {
				t.Fatalf("hp %d outside [0, %d]", c.CurrentHP, c.MaxHP)
			}
		}
	})
}
