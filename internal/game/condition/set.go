package condition

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ExhaustionPrefix is the tag stem for exhaustion levels ("exhaustion-1" … "exhaustion-6").
const ExhaustionPrefix = "exhaustion"

// MaxExhaustion is the highest exhaustion level a tag may carry.
const MaxExhaustion = 6

// Set is an ordered, duplicate-free collection of condition tags.
// Tags keep the order in which they were first added. The zero value is an empty set.
//
// Set is not safe for concurrent use; the owner must serialise access.
type Set struct {
	tags []string
}

// NewSet builds a set from tags, dropping duplicates and blanks.
func NewSet(tags ...string) Set {
	var s Set
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Normalize lower-cases and trims a tag.
func Normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Exhaustion returns the tag for exhaustion level n, clamped into [1, MaxExhaustion].
func Exhaustion(n int) string {
	if n < 1 {
		n = 1
	}
	if n > MaxExhaustion {
		n = MaxExhaustion
	}
	return fmt.Sprintf("%s-%d", ExhaustionPrefix, n)
}

// ExhaustionLevel parses an exhaustion tag. ok is false for any other tag.
func ExhaustionLevel(tag string) (level int, ok bool) {
	rest, found := strings.CutPrefix(Normalize(tag), ExhaustionPrefix+"-")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > MaxExhaustion {
		return 0, false
	}
	return n, true
}

// Has reports whether tag is in the set.
func (s Set) Has(tag string) bool {
	return s.indexOf(Normalize(tag)) >= 0
}

// Add inserts tag. Adding an existing or blank tag is a no-op.
//
// Postcondition: returns true iff the set changed.
func (s *Set) Add(tag string) bool {
	tag = Normalize(tag)
	if tag == "" || s.indexOf(tag) >= 0 {
		return false
	}
	s.tags = append(s.tags, tag)
	return true
}

// Remove deletes tag. Removing an absent tag is a no-op.
//
// Postcondition: returns true iff the set changed.
func (s *Set) Remove(tag string) bool {
	i := s.indexOf(Normalize(tag))
	if i < 0 {
		return false
	}
	s.tags = append(s.tags[:i:i], s.tags[i+1:]...)
	if len(s.tags) == 0 {
		s.tags = nil
	}
	return true
}

// Toggle adds tag when absent and removes it when present.
//
// Postcondition: returns Has(tag).
func (s *Set) Toggle(tag string) bool {
	if s.Remove(tag) {
		return false
	}
	return s.Add(tag)
}

// Clear empties the set.
func (s *Set) Clear() { s.tags = nil }

// Len returns the number of tags.
func (s Set) Len() int { return len(s.tags) }

// Tags returns a copy of the tags in insertion order.
func (s Set) Tags() []string {
	return append([]string(nil), s.tags...)
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	return Set{tags: s.Tags()}
}

// Equal reports whether s and o hold the same tags in the same order.
func (s Set) Equal(o Set) bool { return slices.Equal(s.tags, o.tags) }

// HighestExhaustion returns the highest exhaustion level present, or 0.
func (s Set) HighestExhaustion() int {
	highest := 0
	for _, t := range s.tags {
		if n, ok := ExhaustionLevel(t); ok && n > highest {
			highest = n
		}
	}
	return highest
}

func (s Set) indexOf(tag string) int {
	for i, t := range s.tags {
		if t == tag {
			return i
		}
	}
	return -1
}

// MarshalJSON encodes the set as a JSON array (never null).
func (s Set) MarshalJSON() ([]byte, error) {
	if s.tags == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.tags)
}

// UnmarshalJSON decodes a JSON array, re-applying set semantics.
func (s *Set) UnmarshalJSON(b []byte) error {
	var tags []string
	if err := json.Unmarshal(b, &tags); err != nil {
		return fmt.Errorf("decoding condition set: %w", err)
	}
	*s = NewSet(tags...)
	return nil
}
