// Package gui is the Fyne front end: the flashcard window, the word list
// window and their dialogs.
package gui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/wordcycle/internal"
	"codeberg.org/snonux/wordcycle/internal/cycle"
	"codeberg.org/snonux/wordcycle/internal/session"
	"codeberg.org/snonux/wordcycle/internal/settings"
)

// Application is the flashcard window and its secondary windows.
type Application struct {
	app     fyne.App
	window  fyne.Window
	config  *Config
	session *session.Session
	logger  *zap.Logger
	logs    *LogViewer

	// Card
	wordText     *canvas.Text
	readingLabel *widget.Label
	meaningLabel *widget.Label

	// Toolbar
	pauseButton    *ttwidget.Button
	settingsButton *ttwidget.Button
	listButton     *ttwidget.Button
	exportButton   *ttwidget.Button
	logButton      *ttwidget.Button
	helpButton     *ttwidget.Button

	statusLabel  *widget.Label
	messageLabel *widget.Label

	words     *wordList   // nil while the word list window is closed
	logWindow fyne.Window // nil while the log window is closed

	openDialogs int // dialogs shown on the main window
}

// Config holds GUI application configuration
type Config struct {
	DataDir  string
	WordFile string // used for this run only
	DeckName string
	Logger   *zap.Logger
}

const defaultDeckName = "Vocabulary"

// New opens the session and builds the main window. The cycle starts
// once the event loop runs.
func New(config *Config) (*Application, error) {
	if config == nil {
		return nil, errors.New("gui: config is required")
	}
	if config.DeckName == "" {
		config.DeckName = defaultDeckName
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	myApp := app.NewWithID("org.codeberg.snonux.wordcycle")
	myApp.SetIcon(GetAppIcon())

	logs := NewLogViewer()
	logger := logs.Wrap(config.Logger)

	s, err := session.Open(session.Options{
		DataDir:   config.DataDir,
		WordFile:  config.WordFile,
		Scheduler: cycle.NewEventLoopScheduler(fyne.Do),
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	a := &Application{
		app:     myApp,
		config:  config,
		session: s,
		logger:  logger,
		logs:    logs,
	}

	a.setupUI()
	a.applyWindowHints(s.Config())

	s.SetOnChange(a.render)
	a.render(s.Display())
	myApp.Lifecycle().SetOnStarted(s.Start)

	return a, nil
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("wordcycle v%s", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.SetMaster()
	a.window.Resize(fyne.NewSize(560, 360))

	a.wordText = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	a.wordText.TextSize = 48
	a.wordText.TextStyle = fyne.TextStyle{Bold: true}
	a.wordText.Alignment = fyne.TextAlignCenter

	a.readingLabel = widget.NewLabel("")
	a.readingLabel.Alignment = fyne.TextAlignCenter
	a.readingLabel.TextStyle = fyne.TextStyle{Italic: true}

	a.meaningLabel = widget.NewLabel("")
	a.meaningLabel.Alignment = fyne.TextAlignCenter
	a.meaningLabel.Wrapping = fyne.TextWrapWord

	card := container.NewVBox(
		layout.NewSpacer(),
		a.wordText,
		a.readingLabel,
		a.meaningLabel,
		layout.NewSpacer(),
	)

	// Tooltips are set after the tooltip layer is created
	a.pauseButton = ttwidget.NewButtonWithIcon("", theme.MediaPauseIcon(), a.onTogglePause)
	a.settingsButton = ttwidget.NewButtonWithIcon("", theme.SettingsIcon(), a.onShowSettings)
	a.listButton = ttwidget.NewButtonWithIcon("", theme.ListIcon(), a.onShowWordList)
	a.exportButton = ttwidget.NewButtonWithIcon("", theme.UploadIcon(), a.onExportToAnki)
	a.logButton = ttwidget.NewButtonWithIcon("", theme.HistoryIcon(), a.onShowLogs)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	toolbar := container.NewHBox(
		a.pauseButton,
		widget.NewSeparator(),
		a.listButton,
		a.exportButton,
		widget.NewSeparator(),
		a.settingsButton,
		a.logButton,
		a.helpButton,
	)

	a.statusLabel = widget.NewLabel("")
	a.messageLabel = widget.NewLabel("Ready")
	a.messageLabel.TextStyle = fyne.TextStyle{Italic: true}
	a.messageLabel.Truncation = fyne.TextTruncateEllipsis

	statusSection := container.NewVBox(
		widget.NewSeparator(),
		container.NewBorder(nil, nil, a.statusLabel, nil, a.messageLabel),
	)

	content := container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		statusSection,
		nil, nil,
		card,
	)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.session.Close()
		if a.words != nil {
			a.words.window.Close()
		}
		if a.logWindow != nil {
			a.logWindow.Close()
		}
		_ = a.logger.Sync()
	})

	a.setupKeyboardShortcuts()
}

// Run shows the window and blocks until the application quits.
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// render redraws the card from a cycle snapshot.
func (a *Application) render(d cycle.Display) {
	c := cardFor(d)
	a.wordText.Text = c.Word
	a.wordText.Refresh()
	a.readingLabel.SetText(c.Reading)
	a.meaningLabel.SetText(c.Meaning)
	a.statusLabel.SetText(statusText(d))

	if d.Paused {
		a.pauseButton.SetIcon(theme.MediaPlayIcon())
		a.pauseButton.SetToolTip("Resume (space)")
	} else {
		a.pauseButton.SetIcon(theme.MediaPauseIcon())
		a.pauseButton.SetToolTip("Pause (space)")
	}
	if d.Empty {
		a.pauseButton.Disable()
	} else {
		a.pauseButton.Enable()
	}
}

func (a *Application) onTogglePause() {
	a.session.TogglePause()
}

// applyWindowHints honours the window related settings. Fyne offers no
// always-on-top hint, so that flag is only recorded.
func (a *Application) applyWindowHints(cfg settings.Config) {
	if cfg.AlwaysOnTop {
		a.logger.Debug("always-on-top requested but not supported by the window driver")
	}
}

func (a *Application) onShowLogs() {
	if a.logWindow != nil {
		a.logWindow.RequestFocus()
		return
	}
	w := a.app.NewWindow("wordcycle log")
	w.SetContent(a.logs)
	w.Resize(fyne.NewSize(640, 320))
	w.SetOnClosed(func() { a.logWindow = nil })
	a.logWindow = w
	w.Show()
}

// showDialog shows d on the main window and suspends the hotkeys while
// it is open.
func (a *Application) showDialog(d dialog.Dialog) {
	a.openDialogs++
	d.SetOnClosed(func() {
		if a.openDialogs > 0 {
			a.openDialogs--
		}
	})
	d.Show()
}

func (a *Application) updateStatus(message string) {
	a.messageLabel.SetText(message)
}

func (a *Application) showError(err error) {
	a.showErrorIn(a.window, err)
}

func (a *Application) showErrorIn(w fyne.Window, err error) {
	msg := errorMessage(err)
	a.logger.Warn("operation failed", zap.Error(err))
	dialog.ShowError(errors.New(msg), w)
	a.updateStatus("Error: " + msg)
}
