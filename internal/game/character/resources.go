package character

import (
	"fmt"
	"slices"

	"github.com/cory-johannsen/campaign/internal/game/condition"
)

// MaxDeathSaves is the count at which death-save successes or failures stop accruing.
const MaxDeathSaves = 3

// HitPoints tracks current, maximum, and temporary hit points.
//
// Invariant: 0 <= Current <= Maximum; Temporary >= 0.
// Temporary is a separate pool that damage never draws from here; it is shown
// alongside Current and only replaced or cleared explicitly.
type HitPoints struct {
	Current   int `json:"current"`
	Maximum   int `json:"maximum"`
	Temporary int `json:"temporary"`
}

// DeathSaves counts death-save results.
type DeathSaves struct {
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// SpellLevel is a spell-slot level in [1, MaxSpellLevel].
type SpellLevel int

// MaxSpellLevel is the highest spell-slot level.
const MaxSpellLevel = 9

// Valid reports whether l is in [1, MaxSpellLevel].
func (l SpellLevel) Valid() bool { return l >= 1 && l <= MaxSpellLevel }

// SpellSlot tracks usage of the slots at one level.
//
// Invariant: 0 <= Used <= Max.
type SpellSlot struct {
	Used int `json:"used"`
	Max  int `json:"max"`
}

// Available returns the number of unused slots.
func (s SpellSlot) Available() int { return s.Max - s.Used }

// SpellSlots holds one SpellSlot per level; index 0 is level 1.
type SpellSlots [MaxSpellLevel]SpellSlot

// Get returns the slot record for level, or the zero slot for an invalid level.
func (s SpellSlots) Get(level SpellLevel) SpellSlot {
	if !level.Valid() {
		return SpellSlot{}
	}
	return s[level-1]
}

func (s *SpellSlots) at(level SpellLevel) *SpellSlot {
	if !level.Valid() {
		return nil
	}
	return &s[level-1]
}

// RechargeOn names the recovery trigger for a feature charge.
type RechargeOn int

const (
	RechargeShortRest RechargeOn = iota
	RechargeLongRest
	RechargeDawn
	RechargeNever
)

var rechargeNames = map[RechargeOn]string{
	RechargeShortRest: "short_rest",
	RechargeLongRest:  "long_rest",
	RechargeDawn:      "dawn",
	RechargeNever:     "never",
}

// String returns the wire name, e.g. "short_rest".
func (r RechargeOn) String() string {
	if s, ok := rechargeNames[r]; ok {
		return s
	}
	return fmt.Sprintf("recharge(%d)", int(r))
}

// ParseRechargeOn accepts a wire name.
func ParseRechargeOn(s string) (RechargeOn, error) {
	for r, name := range rechargeNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown recharge trigger %q", s)
}

// MarshalText encodes the trigger by name.
func (r RechargeOn) MarshalText() ([]byte, error) {
	name, ok := rechargeNames[r]
	if !ok {
		return nil, fmt.Errorf("invalid recharge trigger %d", int(r))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a trigger name.
func (r *RechargeOn) UnmarshalText(b []byte) error {
	parsed, err := ParseRechargeOn(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// FeatureCharge is a limited-use class or racial feature.
//
// Invariant: 0 <= Current <= Maximum.
type FeatureCharge struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Current    int        `json:"current"`
	Maximum    int        `json:"maximum"`
	RechargeOn RechargeOn `json:"recharge_on"`
}

// ResourceState is the mutable, session-play portion of a Character.
type ResourceState struct {
	HitPoints      HitPoints       `json:"hit_points"`
	DeathSaves     DeathSaves      `json:"death_saves"`
	SpellSlots     SpellSlots      `json:"spell_slots"`
	FeatureCharges []FeatureCharge `json:"feature_charges"`
	Conditions     condition.Set   `json:"conditions"`
}

// Feature returns the feature with id, or (zero, false).
func (r ResourceState) Feature(id string) (FeatureCharge, bool) {
	if i := r.featureIndex(id); i >= 0 {
		return r.FeatureCharges[i], true
	}
	return FeatureCharge{}, false
}

func (r ResourceState) featureIndex(id string) int {
	for i := range r.FeatureCharges {
		if r.FeatureCharges[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (r ResourceState) Clone() ResourceState {
	out := r
	out.FeatureCharges = append([]FeatureCharge(nil), r.FeatureCharges...)
	out.Conditions = r.Conditions.Clone()
	return out
}

// Equal reports whether r and o are identical, counters and caps alike.
func (r ResourceState) Equal(o ResourceState) bool {
	return r.HitPoints == o.HitPoints &&
		r.DeathSaves == o.DeathSaves &&
		r.SpellSlots == o.SpellSlots &&
		slices.Equal(r.FeatureCharges, o.FeatureCharges) &&
		r.Conditions.Equal(o.Conditions)
}

// WithSessionFrom returns r's caps and feature list combined with live's
// session counters (HP, temporary HP, death saves, slot usage, charge counts,
// conditions), each clamped into r's caps.
//
// Features present in r but not in live keep r's counts.
func (r ResourceState) WithSessionFrom(live ResourceState) ResourceState {
	out := r.Clone()
	out.HitPoints.Current = clamp(live.HitPoints.Current, 0, out.HitPoints.Maximum)
	out.HitPoints.Temporary = max(live.HitPoints.Temporary, 0)
	out.DeathSaves = live.DeathSaves
	for i := range out.SpellSlots {
		out.SpellSlots[i].Used = clamp(live.SpellSlots[i].Used, 0, out.SpellSlots[i].Max)
	}
	for i := range out.FeatureCharges {
		f := &out.FeatureCharges[i]
		if cur, ok := live.Feature(f.ID); ok {
			f.Current = clamp(cur.Current, 0, f.Maximum)
		}
	}
	out.Conditions = live.Conditions.Clone()
	return out
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
