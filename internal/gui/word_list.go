package gui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/wordcycle/internal/domain"
)

// wordList is the window for editing the word list.
type wordList struct {
	app    *Application
	window fyne.Window

	list     *widget.List
	entries  []domain.Entry
	selected map[string]bool

	countLabel   *widget.Label
	wordEntry    *CustomEntry
	readingEntry *CustomEntry
	meaningEntry *CustomEntry

	addButton     *ttwidget.Button
	deleteButton  *ttwidget.Button
	importButton  *ttwidget.Button
	exportButton  *ttwidget.Button
	archiveButton *ttwidget.Button
}

func (a *Application) onShowWordList() {
	if a.words != nil {
		a.words.window.RequestFocus()
		return
	}
	a.words = newWordList(a)
	a.words.window.Show()
}

func newWordList(a *Application) *wordList {
	l := &wordList{
		app:      a,
		window:   a.app.NewWindow("Word list"),
		selected: make(map[string]bool),
	}
	l.window.Resize(fyne.NewSize(520, 480))

	l.list = widget.NewList(
		func() int { return len(l.entries) },
		func() fyne.CanvasObject { return widget.NewCheck("", nil) },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			e := l.entries[id]
			check := o.(*widget.Check)
			check.OnChanged = nil
			check.Text = entryLabel(e)
			check.SetChecked(l.selected[e.ID])
			check.OnChanged = func(on bool) { l.toggle(e.ID, on) }
			check.Refresh()
		},
	)
	l.list.OnSelected = func(id widget.ListItemID) {
		e := l.entries[id]
		l.toggle(e.ID, !l.selected[e.ID])
		l.list.Unselect(id)
		l.list.RefreshItem(id)
	}

	l.wordEntry = NewCustomEntry("Word")
	l.readingEntry = NewCustomEntry("Reading (optional)")
	l.meaningEntry = NewCustomEntry("Meaning (optional)")
	for _, e := range []*CustomEntry{l.wordEntry, l.readingEntry, l.meaningEntry} {
		e.SetOnEscape(l.window.Canvas().Unfocus)
		e.OnSubmitted = func(string) { l.onAdd() }
	}

	l.addButton = ttwidget.NewButtonWithIcon("", theme.ContentAddIcon(), l.onAdd)
	l.deleteButton = ttwidget.NewButtonWithIcon("", theme.DeleteIcon(), l.onDelete)
	l.deleteButton.Importance = widget.DangerImportance
	l.importButton = ttwidget.NewButtonWithIcon("", theme.FolderOpenIcon(), l.onImport)
	l.exportButton = ttwidget.NewButtonWithIcon("", theme.UploadIcon(), a.onExportToAnki)
	l.archiveButton = ttwidget.NewButtonWithIcon("", theme.DocumentSaveIcon(), l.onArchive)

	form := container.NewBorder(nil, nil, nil, l.addButton,
		container.NewGridWithColumns(3, l.wordEntry, l.readingEntry, l.meaningEntry),
	)
	toolbar := container.NewHBox(
		l.deleteButton,
		widget.NewSeparator(),
		l.importButton,
		l.exportButton,
		l.archiveButton,
	)

	l.countLabel = widget.NewLabel("")
	l.countLabel.Truncation = fyne.TextTruncateEllipsis

	content := container.NewBorder(
		container.NewVBox(toolbar, form, widget.NewSeparator()),
		l.countLabel,
		nil, nil,
		l.list,
	)
	l.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, l.window.Canvas()))

	l.addButton.SetToolTip("Add word (Enter)")
	l.deleteButton.SetToolTip("Delete selected words")
	l.importButton.SetToolTip("Import a .csv word file or a text list")
	l.exportButton.SetToolTip("Export to Anki")
	l.archiveButton.SetToolTip("Archive a copy of the word file")

	l.window.SetOnClosed(func() { a.words = nil })
	l.refresh()
	return l
}

// refresh reloads the entries from the session and drops selections of
// entries that no longer exist.
func (l *wordList) refresh() {
	l.entries = l.app.session.Entries()

	present := make(map[string]bool, len(l.entries))
	for _, e := range l.entries {
		present[e.ID] = true
	}
	for id := range l.selected {
		if !present[id] {
			delete(l.selected, id)
		}
	}

	l.countLabel.SetText(fmt.Sprintf("%d words in %s", len(l.entries), l.app.session.WordFile()))
	l.updateDeleteButton()
	l.list.Refresh()
}

func (l *wordList) toggle(id string, on bool) {
	if on {
		l.selected[id] = true
	} else {
		delete(l.selected, id)
	}
	l.updateDeleteButton()
}

func (l *wordList) updateDeleteButton() {
	if len(l.selected) == 0 {
		l.deleteButton.Disable()
	} else {
		l.deleteButton.Enable()
	}
}

func (l *wordList) selectedIDs() []string {
	ids := make([]string, 0, len(l.selected))
	for _, e := range l.entries {
		if l.selected[e.ID] {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (l *wordList) onAdd() {
	e, err := l.app.session.AddWord(l.wordEntry.Text, l.readingEntry.Text, l.meaningEntry.Text)
	if err != nil {
		l.app.showErrorIn(l.window, err)
		return
	}

	l.wordEntry.SetText("")
	l.readingEntry.SetText("")
	l.meaningEntry.SetText("")
	l.window.Canvas().Focus(l.wordEntry)

	l.refresh()
	l.list.ScrollToBottom()
	l.app.updateStatus(fmt.Sprintf("Added %q", e.Word))
}

func (l *wordList) onDelete() {
	ids := l.selectedIDs()
	if len(ids) == 0 {
		return
	}

	msg := fmt.Sprintf("Delete %d selected words?", len(ids))
	if len(ids) == 1 {
		msg = "Delete the selected word?"
	}
	dialog.ShowConfirm("Delete Words", msg, func(ok bool) {
		if !ok {
			return
		}
		n, err := l.app.session.DeleteWords(ids)
		if err != nil {
			l.app.showErrorIn(l.window, err)
			return
		}
		l.refresh()
		l.app.updateStatus(fmt.Sprintf("Deleted %d words", n))
	}, l.window)
}

func (l *wordList) onImport() {
	open := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			l.app.showErrorIn(l.window, err)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()

		n, err := l.app.session.ImportFile(path)
		if err != nil {
			l.app.showErrorIn(l.window, err)
			return
		}
		clear(l.selected)
		l.refresh()
		l.app.updateStatus(fmt.Sprintf("Imported %d words from %s", n, filepath.Base(path)))
	}, l.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt"}))
	open.Resize(fyne.NewSize(500, 400))
	open.Show()
}

func (l *wordList) onArchive() {
	path, err := l.app.session.ArchiveWordFile()
	if err != nil {
		l.app.showErrorIn(l.window, err)
		return
	}
	l.app.updateStatus("Archived to " + path)
}
