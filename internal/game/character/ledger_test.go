package character_test

import (
	"testing"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newFighter() *character.Character {
	c := &character.Character{ID: "pc_1", Name: "Tess", Level: 5}
	c.Resources.HitPoints = character.HitPoints{Current: 20, Maximum: 20}
	c.Resources.SpellSlots[0] = character.SpellSlot{Max: 4}
	c.Resources.FeatureCharges = []character.FeatureCharge{
		{ID: "second_wind", Name: "Second Wind", Current: 1, Maximum: 1, RechargeOn: character.RechargeShortRest},
		{ID: "indomitable", Name: "Indomitable", Current: 1, Maximum: 1, RechargeOn: character.RechargeLongRest},
		{ID: "luck", Name: "Lucky", Current: 3, Maximum: 3, RechargeOn: character.RechargeDawn},
	}
	return c
}

func TestApplyDamage_FloorsAtZero(t *testing.T) {
	l := character.NewLedger(newFighter())
	assert.True(t, l.ApplyDamage(7))
	assert.Equal(t, 13, l.Character().Resources.HitPoints.Current)
	assert.True(t, l.ApplyDamage(100))
	assert.Equal(t, 0, l.Character().Resources.HitPoints.Current)
	assert.False(t, l.ApplyDamage(5))
}

func TestApplyDamage_NegativeIsNoop(t *testing.T) {
	l := character.NewLedger(newFighter())
	assert.False(t, l.ApplyDamage(-5))
	assert.Equal(t, 20, l.Character().Resources.HitPoints.Current)
}

func TestApplyDamage_IgnoresTemporaryPool(t *testing.T) {
	l := character.NewLedger(newFighter())
	l.SetTemporaryHP(5)
	l.ApplyDamage(3)
	hp := l.Character().Resources.HitPoints
	assert.Equal(t, 17, hp.Current)
	assert.Equal(t, 5, hp.Temporary)
}

func TestApplyHealing_CapsAtMaximum(t *testing.T) {
	l := character.NewLedger(newFighter())
	l.ApplyDamage(10)
	assert.True(t, l.ApplyHealing(4))
	assert.Equal(t, 14, l.Character().Resources.HitPoints.Current)
	assert.True(t, l.ApplyHealing(50))
	assert.Equal(t, 20, l.Character().Resources.HitPoints.Current)
	assert.False(t, l.ApplyHealing(1))
	assert.False(t, l.ApplyHealing(-3))
}

func TestApplyHealing_KeepsDeathSaves(t *testing.T) {
	l := character.NewLedger(newFighter())
	l.ApplyDamage(20)
	l.RecordDeathSave(false)
	l.ApplyHealing(5)
	assert.Equal(t, 1, l.Character().Resources.DeathSaves.Failures)
}

func TestSetTemporaryHP_DoesNotStack(t *testing.T) {
	l := character.NewLedger(newFighter())
	assert.True(t, l.SetTemporaryHP(8))
	assert.False(t, l.SetTemporaryHP(5))
	assert.Equal(t, 8, l.Character().Resources.HitPoints.Temporary)
	assert.True(t, l.SetTemporaryHP(10))
	assert.Equal(t, 10, l.Character().Resources.HitPoints.Temporary)
	assert.True(t, l.ClearTemporaryHP())
	assert.False(t, l.ClearTemporaryHP())
}

func TestRecordDeathSave_Caps(t *testing.T) {
	l := character.NewLedger(newFighter())
	for i := 0; i < character.MaxDeathSaves; i++ {
		assert.True(t, l.RecordDeathSave(true))
	}
	assert.False(t, l.RecordDeathSave(true))
	assert.True(t, l.RecordDeathSave(false))
	ds := l.Character().Resources.DeathSaves
	assert.Equal(t, character.DeathSaves{Successes: 3, Failures: 1}, ds)
}

func TestUseSpellSlot_ExhaustedIsNoop(t *testing.T) {
	l := character.NewLedger(newFighter())
	for i := 0; i < 4; i++ {
		require.True(t, l.UseSpellSlot(1))
	}
	assert.Equal(t, 0, l.SlotsAvailable(1))
	assert.False(t, l.UseSpellSlot(1))
	assert.Equal(t, 4, l.Character().Resources.SpellSlots.Get(1).Used)
}

func TestUseSpellSlot_InvalidLevel(t *testing.T) {
	l := character.NewLedger(newFighter())
	assert.False(t, l.UseSpellSlot(0))
	assert.False(t, l.UseSpellSlot(10))
	assert.False(t, l.UseSpellSlot(2))
	assert.Equal(t, 0, l.SlotsAvailable(10))
}

func TestRestoreSpellSlot(t *testing.T) {
	l := character.NewLedger(newFighter())
	assert.False(t, l.RestoreSpellSlot(1))
	l.UseSpellSlot(1)
	l.UseSpellSlot(1)
	assert.True(t, l.RestoreSpellSlot(1))
	assert.Equal(t, 3, l.SlotsAvailable(1))
}

func TestFeatureCharges(t *testing.T) {
	l := character.NewLedger(newFighter())
	assert.True(t, l.UseFeatureCharge("second_wind"))
	assert.False(t, l.UseFeatureCharge("second_wind"))
	assert.False(t, l.UseFeatureCharge("unknown"))

	f, ok := l.Character().Resources.Feature("second_wind")
	require.True(t, ok)
	assert.Equal(t, 0, f.Current)

	assert.True(t, l.RestoreFeatureCharge("second_wind", 0))
	f, _ = l.Character().Resources.Feature("second_wind")
	assert.Equal(t, 1, f.Current)
	assert.False(t, l.RestoreFeatureCharge("second_wind", 5))
	assert.False(t, l.RestoreFeatureCharge("unknown", 1))
}

func TestShortRest_OnlyShortRestFeatures(t *testing.T) {
	l := character.NewLedger(newFighter())
	l.UseFeatureCharge("second_wind")
	l.UseFeatureCharge("indomitable")
	l.UseFeatureCharge("luck")
	l.UseSpellSlot(1)
	l.ApplyDamage(5)

	assert.True(t, l.ShortRest())
	res := l.Character().Resources
	sw, _ := res.Feature("second_wind")
	ind, _ := res.Feature("indomitable")
	luck, _ := res.Feature("luck")
	assert.Equal(t, 1, sw.Current)
	assert.Equal(t, 0, ind.Current)
	assert.Equal(t, 2, luck.Current)
	assert.Equal(t, 1, res.SpellSlots.Get(1).Used)
	assert.Equal(t, 15, res.HitPoints.Current)
	assert.False(t, l.ShortRest())
}

func TestLongRest_RestoresEverythingButDawn(t *testing.T) {
	c := &character.Character{ID: "pc_2", Name: "Wren"}
	c.Resources.HitPoints = character.HitPoints{Current: 1, Maximum: 20}
	c.Resources.FeatureCharges = []character.FeatureCharge{
		{ID: "channel", Current: 0, Maximum: 2, RechargeOn: character.RechargeShortRest},
	}
	c.Resources.SpellSlots[0] = character.SpellSlot{Used: 3, Max: 4}
	c.Resources.DeathSaves = character.DeathSaves{Successes: 1, Failures: 2}
	l := character.NewLedger(c)

	assert.True(t, l.LongRest())
	assert.Equal(t, 20, c.Resources.HitPoints.Current)
	f, _ := c.Resources.Feature("channel")
	assert.Equal(t, 2, f.Current)
	assert.Equal(t, character.SpellSlot{Used: 0, Max: 4}, c.Resources.SpellSlots.Get(1))
	assert.Equal(t, character.DeathSaves{}, c.Resources.DeathSaves)
	assert.False(t, l.LongRest())
}

func TestLongRest_SkipsDawnFeatures(t *testing.T) {
	l := character.NewLedger(newFighter())
	l.UseFeatureCharge("luck")
	l.LongRest()
	luck, _ := l.Character().Resources.Feature("luck")
	assert.Equal(t, 2, luck.Current)

	assert.True(t, l.NewDay())
	luck, _ = l.Character().Resources.Feature("luck")
	assert.Equal(t, 3, luck.Current)
}

func TestConditions(t *testing.T) {
	l := character.NewLedger(newFighter())
	assert.True(t, l.AddCondition("Poisoned"))
	assert.False(t, l.AddCondition("poisoned"))
	assert.True(t, l.Character().Resources.Conditions.Has("poisoned"))
	assert.True(t, l.RemoveCondition("poisoned"))
	assert.False(t, l.RemoveCondition("poisoned"))
}

func TestPropertyHitPointsStayInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		maxHP := rapid.IntRange(1, 200).Draw(t, "max")
		c := &character.Character{}
		c.Resources.HitPoints = character.HitPoints{Current: maxHP, Maximum: maxHP}
		l := character.NewLedger(c)
		steps := rapid.SliceOf(rapid.IntRange(-300, 300)).Draw(t, "steps")
		for _, n := range steps {
			if n%2 == 0 {
				l.ApplyDamage(n)
			} else {
				l.ApplyHealing(n)
			}
			hp := c.Resources.HitPoints
			if hp.Current < 0 || hp.Current > hp.Maximum {
				t.Fatalf("current %d out of [0, %d]", hp.Current, hp.Maximum)
			}
		}
	})
}

func TestPropertySlotUsageBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		slots := rapid.IntRange(0, 6).Draw(t, "slots")
		uses := rapid.IntRange(0, 12).Draw(t, "uses")
		c := &character.Character{}
		c.Resources.SpellSlots[2] = character.SpellSlot{Max: slots}
		l := character.NewLedger(c)
		successes := 0
		for i := 0; i < uses; i++ {
			if l.UseSpellSlot(3) {
				successes++
			}
		}
		if successes != min(slots, uses) {
			t.Fatalf("spent %d slots of %d with %d attempts", successes, slots, uses)
		}
		if l.SlotsAvailable(3) != slots-successes {
			t.Fatalf("available %d, want %d", l.SlotsAvailable(3), slots-successes)
		}
	})
}

func TestPropertyLongRestIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := character.NewLedger(newFighter())
		l.ApplyDamage(rapid.IntRange(0, 30).Draw(t, "dmg"))
		for i := rapid.IntRange(0, 5).Draw(t, "casts"); i > 0; i-- {
			l.UseSpellSlot(1)
		}
		l.LongRest()
		after := l.Character().Clone()
		if l.LongRest() {
			t.Fatalf("second long rest reported a change")
		}
		if after.Resources.HitPoints != l.Character().Resources.HitPoints {
			t.Fatalf("hit points changed on second long rest")
		}
	})
}
