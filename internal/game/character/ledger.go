package character

// Ledger applies session-play mutations to one Character's ResourceState.
//
// Ledger operations never fail: exhausted resources, unknown feature IDs and
// negative amounts degrade to no-ops or clamped values. Each method reports
// whether state changed so callers can decide whether to persist or log.
//
// A Ledger is not safe for concurrent use; the owner of the Character must
// serialise access.
type Ledger struct {
	c *Character
}

// NewLedger wraps c.
//
// Precondition: c must be non-nil.
func NewLedger(c *Character) *Ledger {
	return &Ledger{c: c}
}

// Character returns the wrapped character.
func (l *Ledger) Character() *Character { return l.c }

func (l *Ledger) res() *ResourceState { return &l.c.Resources }

// ApplyDamage lowers current HP by amount, flooring at zero.
// Temporary HP is not consulted. Negative amounts are treated as zero.
//
// Postcondition: 0 <= Current <= Maximum.
func (l *Ledger) ApplyDamage(amount int) bool {
	hp := &l.res().HitPoints
	before := hp.Current
	hp.Current = clamp(hp.Current-max(amount, 0), 0, hp.Maximum)
	return hp.Current != before
}

// ApplyHealing raises current HP by amount, capped at Maximum.
// Death saves are left untouched; only LongRest resets them.
//
// Postcondition: 0 <= Current <= Maximum.
func (l *Ledger) ApplyHealing(amount int) bool {
	hp := &l.res().HitPoints
	before := hp.Current
	hp.Current = clamp(hp.Current+max(amount, 0), 0, hp.Maximum)
	return hp.Current != before
}

// SetTemporaryHP grants temporary hit points. Temporary HP does not stack:
// the larger of the existing and new pools is kept.
func (l *Ledger) SetTemporaryHP(amount int) bool {
	hp := &l.res().HitPoints
	if amount <= hp.Temporary {
		return false
	}
	hp.Temporary = amount
	return true
}

// ClearTemporaryHP drops the temporary pool to zero.
func (l *Ledger) ClearTemporaryHP() bool {
	hp := &l.res().HitPoints
	if hp.Temporary == 0 {
		return false
	}
	hp.Temporary = 0
	return true
}

// RecordDeathSave counts one death-save success or failure, capped at MaxDeathSaves.
func (l *Ledger) RecordDeathSave(success bool) bool {
	ds := &l.res().DeathSaves
	counter := &ds.Failures
	if success {
		counter = &ds.Successes
	}
	if *counter >= MaxDeathSaves {
		return false
	}
	*counter++
	return true
}

// UseSpellSlot spends one slot of level. It is a no-op when no slot is left or
// the level is out of range; callers check SlotsAvailable before prompting.
//
// Postcondition: 0 <= Used <= Max.
func (l *Ledger) UseSpellSlot(level SpellLevel) bool {
	slot := l.res().SpellSlots.at(level)
	if slot == nil || slot.Used >= slot.Max {
		return false
	}
	slot.Used++
	return true
}

// RestoreSpellSlot returns one spent slot of level.
func (l *Ledger) RestoreSpellSlot(level SpellLevel) bool {
	slot := l.res().SpellSlots.at(level)
	if slot == nil || slot.Used <= 0 {
		return false
	}
	slot.Used--
	return true
}

// SlotsAvailable returns the unused slots at level (0 for an invalid level).
func (l *Ledger) SlotsAvailable(level SpellLevel) int {
	return l.res().SpellSlots.Get(level).Available()
}

// UseFeatureCharge spends one charge of feature id. Unknown ids and empty
// features are no-ops.
func (l *Ledger) UseFeatureCharge(id string) bool {
	return l.adjustFeature(id, -1)
}

// RestoreFeatureCharge returns amount charges to feature id, capped at Maximum.
// An amount below 1 is treated as the default of 1.
func (l *Ledger) RestoreFeatureCharge(id string, amount int) bool {
	if amount < 1 {
		amount = 1
	}
	return l.adjustFeature(id, amount)
}

func (l *Ledger) adjustFeature(id string, delta int) bool {
	r := l.res()
	i := r.featureIndex(id)
	if i < 0 {
		return false
	}
	f := &r.FeatureCharges[i]
	before := f.Current
	f.Current = clamp(f.Current+delta, 0, f.Maximum)
	return f.Current != before
}

// rechargeWhere refills every feature whose trigger satisfies match.
func (l *Ledger) rechargeWhere(match func(RechargeOn) bool) bool {
	changed := false
	r := l.res()
	for i := range r.FeatureCharges {
		f := &r.FeatureCharges[i]
		if match(f.RechargeOn) && f.Current != f.Maximum {
			f.Current = f.Maximum
			changed = true
		}
	}
	return changed
}

// ShortRest refills features that recharge on a short rest.
func (l *Ledger) ShortRest() bool {
	return l.rechargeWhere(func(r RechargeOn) bool { return r == RechargeShortRest })
}

// LongRest refills short- and long-rest features, resets all spell-slot usage,
// restores current HP to Maximum and clears death saves. Dawn features are
// not restored; see NewDay.
func (l *Ledger) LongRest() bool {
	changed := l.rechargeWhere(func(r RechargeOn) bool {
		return r == RechargeShortRest || r == RechargeLongRest
	})
	r := l.res()
	for i := range r.SpellSlots {
		if r.SpellSlots[i].Used != 0 {
			r.SpellSlots[i].Used = 0
			changed = true
		}
	}
	if r.HitPoints.Current != r.HitPoints.Maximum {
		r.HitPoints.Current = r.HitPoints.Maximum
		changed = true
	}
	if r.DeathSaves != (DeathSaves{}) {
		r.DeathSaves = DeathSaves{}
		changed = true
	}
	return changed
}

// NewDay refills features that recharge at dawn.
func (l *Ledger) NewDay() bool {
	return l.rechargeWhere(func(r RechargeOn) bool { return r == RechargeDawn })
}

// AddCondition adds tag; an existing tag is a no-op.
func (l *Ledger) AddCondition(tag string) bool {
	return l.res().Conditions.Add(tag)
}

// RemoveCondition removes tag; an absent tag is a no-op.
func (l *Ledger) RemoveCondition(tag string) bool {
	return l.res().Conditions.Remove(tag)
}
