package cycle

import "time"

// Timer is a pending callback. Stop reports whether it prevented the call
// and may be called any number of times.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// EventLoopScheduler fires callbacks from runtime timers and hands them to
// dispatch, which is expected to run them on the UI thread (fyne.Do).
type EventLoopScheduler struct {
	dispatch func(func())
}

// NewEventLoopScheduler returns a scheduler that routes callbacks through
// dispatch. A nil dispatch runs them on the timer goroutine.
func NewEventLoopScheduler(dispatch func(func())) *EventLoopScheduler {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &EventLoopScheduler{dispatch: dispatch}
}

// AfterFunc implements Scheduler.
func (s *EventLoopScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() { s.dispatch(fn) })
}
