package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const hotkeysText = `[Project Page: https://codeberg.org/snonux/wordcycle](https://codeberg.org/snonux/wordcycle)

---

## Cycle
**Space** Pause or resume  

## Windows
**s** Settings  
**w** Word list  
**l** Log messages  

## Export
**x** Export to Anki  

## Help
**h** Show hotkeys  
**Esc** Unfocus field  
**q** Quit application  `

// setupTooltips sets up all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	a.pauseButton.SetToolTip("Pause (space)")
	a.settingsButton.SetToolTip("Settings (s)")
	a.listButton.SetToolTip("Word list (w)")
	a.exportButton.SetToolTip("Export to Anki (x)")
	a.logButton.SetToolTip("Log messages (l)")
	a.helpButton.SetToolTip("Show hotkeys (h)")
}

func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.window.Canvas().Unfocus()
			return
		}
		// Keys belong to the open dialog or the focused field
		if a.openDialogs > 0 || a.window.Canvas().Focused() != nil {
			return
		}
		a.handleShortcutKey(ev.Name)
	})
}

// handleShortcutKey handles the actual shortcut action
func (a *Application) handleShortcutKey(key fyne.KeyName) {
	switch key {
	case fyne.KeySpace:
		if a.pauseButton.Disabled() {
			return
		}
		a.onTogglePause()

	case fyne.KeyS:
		a.onShowSettings()

	case fyne.KeyW:
		a.onShowWordList()

	case fyne.KeyX:
		a.onExportToAnki()

	case fyne.KeyL:
		a.onShowLogs()

	case fyne.KeyH:
		a.onShowHotkeys()

	case fyne.KeyQ:
		a.window.Close()
	}
}

// onShowHotkeys displays a dialog with all available keyboard shortcuts
func (a *Application) onShowHotkeys() {
	content := widget.NewRichTextFromMarkdown(hotkeysText)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(420, 360))

	a.showDialog(dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window))
}
