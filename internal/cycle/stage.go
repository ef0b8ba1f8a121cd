package cycle

import (
	"time"

	"codeberg.org/snonux/wordcycle/internal/domain"
)

// Stage is the part of the cycle currently on screen.
type Stage int

const (
	// StageWord shows the word alone.
	StageWord Stage = iota
	// StageMeaning shows the word with its reading and meaning.
	StageMeaning
)

func (s Stage) String() string {
	switch s {
	case StageWord:
		return "word"
	case StageMeaning:
		return "meaning"
	default:
		return "unknown"
	}
}

// Deck is the ordered word list the engine walks through.
type Deck interface {
	Len() int
	Entry(i int) domain.Entry
	Shuffle()
}

// Timings are the two delays of a cycle. Zero means the transition
// happens on the next scheduling tick.
type Timings struct {
	ShowMeaning time.Duration
	NextWord    time.Duration
}

// Display is a snapshot of what the window should show.
type Display struct {
	ID      string
	Word    string
	Reading string
	Meaning string
	Stage   Stage
	Paused  bool
	Empty   bool
	Index   int
	Total   int
}
