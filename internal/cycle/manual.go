package cycle

import (
	"cmp"
	"slices"
	"time"
)

// ManualScheduler is a Scheduler driven by a virtual clock. Nothing fires
// until Advance or Tick is called. A zero-delay timer created while the
// clock is being advanced waits for the next call, so a cycle with both
// delays at zero still moves one step per tick.
type ManualScheduler struct {
	now   time.Duration
	call  int
	seq   int
	queue []*manualTimer
}

type manualTimer struct {
	s     *ManualScheduler
	at    time.Duration
	delay time.Duration
	seq   int
	call  int
	fn    func()
	done  bool
}

// NewManualScheduler returns a scheduler with its clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{s: s, at: s.now + d, delay: d, seq: s.seq, call: s.call, fn: fn}
	s.queue = append(s.queue, t)
	return t
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.s.remove(t)
	return true
}

func (s *ManualScheduler) remove(t *manualTimer) {
	for i, q := range s.queue {
		if q == t {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (s *ManualScheduler) Pending() int { return len(s.queue) }

// Advance moves the clock forward by d, firing due timers in order.
// It returns the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.call++
	target := s.now + d
	fired := 0

	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.now = t.at
		t.done = true
		s.remove(t)
		t.fn()
		fired++
	}

	s.now = target
	return fired
}

// Tick fires the timers that are due now.
func (s *ManualScheduler) Tick() int {
	return s.Advance(0)
}

// next returns the earliest timer eligible to fire by target, or nil.
func (s *ManualScheduler) next(target time.Duration) *manualTimer {
	var due []*manualTimer
	for _, t := range s.queue {
		if t.at > target {
			continue
		}
		if t.delay == 0 && t.call == s.call {
			continue
		}
		due = append(due, t)
	}
	if len(due) == 0 {
		return nil
	}
	slices.SortFunc(due, func(a, b *manualTimer) int {
		return cmp.Or(cmp.Compare(a.at, b.at), cmp.Compare(a.seq, b.seq))
	})
	return due[0]
}
