// Package history provides linear undo/redo over structural character edits.
//
// Session play (damage, conditions, slots, charges) goes through Ledger and
// is never recorded, so undo cannot rewind combat.
package history

import "github.com/cory-johannsen/campaign/internal/game/character"

// Edit mutates a character's structural attributes in place.
type Edit func(c *character.Character)

// entry is one side of a transition: the snapshot to return to, and the
// resources the live character held right after leaving it.
type entry struct {
	snap  *character.Character
	after character.ResourceState
}

// Log is the edit history for one character.
//
// Invariant: past holds snapshots oldest first; future holds snapshots next-to-redo first.
// Log is not safe for concurrent use; callers hold one lock per editing session.
type Log struct {
	current *character.Character
	past    []entry
	future  []entry
	depth   int
}

// Option configures a Log.
type Option func(*Log)

// WithDepth caps the number of undo steps kept. Zero or negative means unlimited.
func WithDepth(n int) Option {
	return func(l *Log) { l.depth = max(n, 0) }
}

// New starts a history rooted at c. The Log takes ownership of c; the pointer
// returned by Current stays the same for the Log's lifetime.
//
// Precondition: c must be non-nil.
func New(c *character.Character, opts ...Option) *Log {
	l := &Log{current: c}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Current returns the live character.
func (l *Log) Current() *character.Character { return l.current }

// Ledger returns a Ledger over the live character. Its mutations are not recorded.
func (l *Log) Ledger() *character.Ledger { return character.NewLedger(l.current) }

// CanUndo reports whether Undo would change anything.
func (l *Log) CanUndo() bool { return len(l.past) > 0 }

// CanRedo reports whether Redo would change anything.
func (l *Log) CanRedo() bool { return len(l.future) > 0 }

// UndoDepth returns the number of recorded steps that can be undone.
func (l *Log) UndoDepth() int { return len(l.past) }

// RedoDepth returns the number of undone steps that can be redone.
func (l *Log) RedoDepth() int { return len(l.future) }

// Record snapshots the current character, applies edit, and discards the redo branch.
func (l *Log) Record(edit Edit) {
	snap := l.current.Clone()
	edit(l.current)
	l.past = append(l.past, entry{snap: snap, after: l.current.Resources.Clone()})
	if l.depth > 0 && len(l.past) > l.depth {
		l.past = l.past[len(l.past)-l.depth:]
	}
	l.future = nil
}

// Undo restores the previous snapshot. It reports false when there is nothing to undo.
func (l *Log) Undo() bool {
	if len(l.past) == 0 {
		return false
	}
	e := l.past[len(l.past)-1]
	l.past = l.past[:len(l.past)-1]
	leaving := l.current.Clone()
	l.restore(e)
	l.future = append([]entry{{snap: leaving, after: l.current.Resources.Clone()}}, l.future...)
	return true
}

// Redo reapplies the most recently undone snapshot. It reports false when there is nothing to redo.
func (l *Log) Redo() bool {
	if len(l.future) == 0 {
		return false
	}
	e := l.future[0]
	l.future = l.future[1:]
	leaving := l.current.Clone()
	l.restore(e)
	l.past = append(l.past, entry{snap: leaving, after: l.current.Resources.Clone()})
	return true
}

// restore copies e's snapshot into the live character. When session play has
// touched the resources since the transition, the live counters are kept,
// clamped to the snapshot's caps.
func (l *Log) restore(e entry) {
	snap := e.snap
	if !l.current.Resources.Equal(e.after) {
		snap.Resources = snap.Resources.WithSessionFrom(l.current.Resources)
	}
	*l.current = *snap
}
