package gui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

var exportFormats = []string{"APKG (Recommended)", "CSV"}

func (a *Application) onExportToAnki() {
	if len(a.session.Entries()) == 0 {
		dialog.ShowInformation("No Words", "The word list is empty. Add or import words first!", a.window)
		return
	}

	formatSelect := widget.NewSelect(exportFormats, nil)
	formatSelect.SetSelected(exportFormats[0])

	deckNameEntry := widget.NewEntry()
	deckNameEntry.SetText(a.config.DeckName)

	content := container.NewVBox(
		widget.NewLabel("Export Format:"),
		formatSelect,
		widget.NewSeparator(),
		widget.NewLabel("Deck Name:"),
		deckNameEntry,
		widget.NewLabel(""),
		widget.NewRichTextFromMarkdown("**APKG**: Anki package, import with File > Import\n\n**CSV**: Word, Reading and Meaning columns"),
	)

	d := dialog.NewCustomConfirm("Export to Anki", "Export", "Cancel", content, func(export bool) {
		if !export {
			return
		}
		deck := strings.TrimSpace(deckNameEntry.Text)
		if deck == "" {
			deck = a.config.DeckName
		}
		a.chooseExportPath(deck, formatSelect.Selected == exportFormats[1])
	}, a.window)
	d.Resize(fyne.NewSize(400, 300))
	a.showDialog(d)
}

func (a *Application) chooseExportPath(deck string, asCSV bool) {
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if w == nil {
			return
		}
		path := w.URI().Path()
		_ = w.Close()

		n, err := a.session.ExportAnki(path, deck, asCSV)
		if err != nil {
			a.showError(err)
			return
		}
		a.updateStatus(fmt.Sprintf("Exported %d cards to %s", n, path))
	}, a.window)

	save.SetFileName(exportFileName(deck, asCSV))
	if asCSV {
		save.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	} else {
		save.SetFilter(storage.NewExtensionFileFilter([]string{".apkg"}))
	}
	a.showFileDialog(save)
}

// showFileDialog is showDialog for file choosers.
func (a *Application) showFileDialog(d *dialog.FileDialog) {
	a.openDialogs++
	d.SetOnClosed(func() {
		if a.openDialogs > 0 {
			a.openDialogs--
		}
	})
	d.Show()
}
