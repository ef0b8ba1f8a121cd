// Package cycle implements the timed word cycle. An Engine shows a word,
// reveals its reading and meaning after one delay and moves to the next
// word after another, reshuffling the deck each time it wraps around.
//
// Timers go through a Scheduler so the GUI can marshal callbacks onto its
// event loop and tests can drive the engine with a virtual clock.
package cycle
