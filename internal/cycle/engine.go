package cycle

import (
	"time"

	"go.uber.org/zap"
)

// Engine is the word cycle state machine. It is not safe for concurrent
// use; every method and every timer callback must run on the same thread.
type Engine struct {
	deck    Deck
	sched   Scheduler
	timings Timings
	logger  *zap.Logger

	index   int
	stage   Stage
	paused  bool
	started bool

	pending Timer
	gen     uint64

	onChange func(Display)
}

// New creates an engine over deck. It stays idle until Start.
func New(deck Deck, sched Scheduler, timings Timings, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		deck:    deck,
		sched:   sched,
		timings: timings,
		logger:  logger,
	}
}

// SetOnChange registers the single callback fired after every visible
// state change.
func (e *Engine) SetOnChange(fn func(Display)) {
	e.onChange = fn
}

// Start shows the current word and begins cycling. Calling it again has
// no effect.
func (e *Engine) Start() {
	if e.started {
		return
	}
	e.started = true
	e.logger.Debug("cycle started",
		zap.Duration("show_meaning", e.timings.ShowMeaning),
		zap.Duration("next_word", e.timings.NextWord),
	)
	e.showCurrent()
}

// Stop cancels any pending transition. The display is left as it is.
func (e *Engine) Stop() {
	e.cancel()
	e.started = false
}

// Pause cancels the pending transition and keeps the current display.
func (e *Engine) Pause() {
	if e.paused {
		return
	}
	e.paused = true
	e.cancel()
	e.logger.Debug("cycle paused", zap.Int("index", e.index))
	e.notify()
}

// Resume restarts the current word from the Word stage.
func (e *Engine) Resume() {
	if !e.paused {
		return
	}
	e.paused = false
	e.logger.Debug("cycle resumed", zap.Int("index", e.index))
	e.showCurrent()
}

// TogglePause pauses a running cycle or resumes a paused one.
func (e *Engine) TogglePause() {
	if e.paused {
		e.Resume()
	} else {
		e.Pause()
	}
}

// SetTimings replaces the delays. A running cycle restarts the current
// word so the new delays apply at once; a paused one only records them.
func (e *Engine) SetTimings(t Timings) {
	e.timings = t
	e.cancel()
	if e.paused {
		return
	}
	e.showCurrent()
}

// Reset shows the word at index from the Word stage. It is called after
// the deck changed; index is clamped into the deck.
func (e *Engine) Reset(index int) {
	e.cancel()
	e.index = index
	e.showCurrent()
}

// Timings returns the current delays.
func (e *Engine) Timings() Timings { return e.timings }

// Index returns the position of the current word in the deck.
func (e *Engine) Index() int { return e.index }

// Stage returns the current stage.
func (e *Engine) Stage() Stage { return e.stage }

// Paused reports whether cycling is paused.
func (e *Engine) Paused() bool { return e.paused }

// Pending reports whether a transition is scheduled.
func (e *Engine) Pending() bool { return e.pending != nil }

// Display returns the current snapshot.
func (e *Engine) Display() Display {
	d := Display{
		Stage:  e.stage,
		Paused: e.paused,
		Total:  e.deck.Len(),
	}
	if d.Total == 0 {
		d.Empty = true
		return d
	}

	entry := e.deck.Entry(e.index)
	d.ID = entry.ID
	d.Word = entry.Word
	d.Index = e.index
	if e.stage == StageMeaning {
		d.Reading = entry.Reading
		d.Meaning = entry.Meaning
	}
	return d
}

// showCurrent enters the Word stage for the current index and schedules
// the reveal unless the engine is paused, idle or the deck is empty.
func (e *Engine) showCurrent() {
	e.stage = StageWord

	n := e.deck.Len()
	if n == 0 {
		e.index = 0
		e.notify()
		return
	}
	if e.index >= n {
		e.index = n - 1
	}
	if e.index < 0 {
		e.index = 0
	}

	e.notify()
	if e.running() {
		e.schedule(e.timings.ShowMeaning, e.reveal)
	}
}

func (e *Engine) reveal() {
	if !e.running() || e.deck.Len() == 0 {
		return
	}
	e.stage = StageMeaning
	e.notify()
	e.schedule(e.timings.NextWord, e.advance)
}

func (e *Engine) advance() {
	n := e.deck.Len()
	if !e.running() || n == 0 {
		return
	}
	e.index++
	if e.index >= n {
		e.index = 0
		e.deck.Shuffle()
		e.logger.Debug("deck reshuffled", zap.Int("entries", n))
	}
	e.showCurrent()
}

func (e *Engine) running() bool {
	return e.started && !e.paused
}

// schedule replaces the pending transition. The callback is dropped if
// another schedule or cancel happened before it ran.
func (e *Engine) schedule(d time.Duration, fn func()) {
	e.cancel()
	gen := e.gen
	e.pending = e.sched.AfterFunc(d, func() {
		if gen != e.gen {
			return
		}
		e.pending = nil
		fn()
	})
}

func (e *Engine) cancel() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	e.gen++
}

func (e *Engine) notify() {
	if e.onChange != nil {
		e.onChange(e.Display())
	}
}
