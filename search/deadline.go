package search

import (
	"sync"
	"time"
)

// atomicFlag is an atomic bool that can only be set, kept from the teacher's
// engine/time_control.go verbatim: a mutex-guarded bool is simpler than an
// atomic.Bool here because Expired() below needs a compound check, not a
// single CAS.
type atomicFlag struct {
	lock sync.Mutex
	flag bool
}

func (af *atomicFlag) set() {
	af.lock.Lock()
	af.flag = true
	af.lock.Unlock()
}

func (af *atomicFlag) get() bool {
	af.lock.Lock()
	v := af.flag
	af.lock.Unlock()
	return v
}

// Deadline is the monotonic wall-clock stop condition spec.md §5 requires:
// "the sole stop condition is the monotonic wall-clock deadline polled
// between MCTS iterations or between depth levels in iterative deepening."
// Grounded on the teacher's TimeControl, stripped of ponder/increment/
// moves-to-go bookkeeping that has no battle-search analogue (there is no
// opponent clock to split against; a single caller-supplied budget is all
// spec.md asks for).
type Deadline struct {
	at      time.Time
	stopped atomicFlag
}

// NewDeadline returns a Deadline that expires after budget.
func NewDeadline(budget time.Duration) *Deadline {
	return &Deadline{at: time.Now().Add(budget)}
}

// Stop marks the search as stopped regardless of the wall clock, so a
// caller (or a future cancellation hook) can cut a search short.
func (d *Deadline) Stop() {
	d.stopped.set()
}

// Expired reports whether the deadline has passed or Stop was called.
func (d *Deadline) Expired() bool {
	if d.stopped.get() {
		return true
	}
	if time.Now().After(d.at) {
		d.stopped.set()
		return true
	}
	return false
}

// NextDepth reports whether iterative deepening should attempt depth d,
// mirroring TimeControl.NextDepth: always search at least one full depth so
// a policy can be returned even if the budget is already exhausted.
func (d *Deadline) NextDepth(depth int) bool {
	return depth == 0 || !d.Expired()
}
