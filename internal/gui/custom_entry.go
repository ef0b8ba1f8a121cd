package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// CustomEntry extends widget.Entry to handle the Escape key.
type CustomEntry struct {
	widget.Entry
	onEscape func()
}

// NewCustomEntry creates a new single-line entry with a placeholder.
func NewCustomEntry(placeholder string) *CustomEntry {
	entry := &CustomEntry{}
	entry.ExtendBaseWidget(entry)
	entry.SetPlaceHolder(placeholder)
	return entry
}

// TypedKey handles key events
func (e *CustomEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *CustomEntry) SetOnEscape(f func()) {
	e.onEscape = f
}
