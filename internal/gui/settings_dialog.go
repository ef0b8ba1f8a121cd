package gui

import (
	"errors"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/wordcycle/internal/settings"
)

func (a *Application) onShowSettings() {
	cfg := a.session.Config()

	showEntry := widget.NewEntry()
	showEntry.SetText(strconv.Itoa(cfg.ShowMeaningTimer))
	showEntry.Validator = timerValidator(settings.KeyShowMeaningTimer)

	nextEntry := widget.NewEntry()
	nextEntry.SetText(strconv.Itoa(cfg.NextWordTimer))
	nextEntry.Validator = timerValidator(settings.KeyNextWordTimer)

	onTopCheck := widget.NewCheck("Keep window on top", nil)
	onTopCheck.SetChecked(cfg.AlwaysOnTop)

	items := []*widget.FormItem{
		{Text: "Show meaning after", Widget: showEntry, HintText: "Seconds, 0 or more"},
		{Text: "Next word after", Widget: nextEntry, HintText: "Seconds, 0 or more"},
		{Text: "", Widget: onTopCheck},
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", items, func(save bool) {
		if !save {
			return
		}
		a.applySettings(showEntry.Text, nextEntry.Text, onTopCheck.Checked)
	}, a.window)
	d.Resize(fyne.NewSize(380, 260))
	a.showDialog(d)
}

// applySettings saves the form. Nothing changes unless both timers are valid.
func (a *Application) applySettings(showMeaning, nextWord string, alwaysOnTop bool) {
	patch, err := settings.ParsePatch(showMeaning, nextWord, alwaysOnTop)
	if err != nil {
		a.showError(err)
		return
	}

	cfg, err := a.session.UpdateSettings(patch)
	if err != nil {
		a.showError(err)
		return
	}

	a.applyWindowHints(cfg)
	a.logger.Info("settings saved",
		zap.Int("showMeaningTimer", cfg.ShowMeaningTimer),
		zap.Int("nextWordTimer", cfg.NextWordTimer),
		zap.Bool("alwaysOnTop", cfg.AlwaysOnTop))
	a.updateStatus("Settings saved")
}

func timerValidator(field string) fyne.StringValidator {
	return func(raw string) error {
		if err := settings.CheckTimer(field, raw); err != nil {
			return errors.New(errorMessage(err))
		}
		return nil
	}
}
