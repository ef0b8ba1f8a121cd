package settings

import (
	"errors"
	"strconv"
	"strings"

	"codeberg.org/snonux/wordcycle/internal/domain"
)

// Patch is a partial settings update. Nil fields are left unchanged.
type Patch struct {
	ShowMeaningTimer *int
	NextWordTimer    *int
	AlwaysOnTop      *bool
	WordFile         *string
}

// Validate checks every set field and reports all problems at once.
func (p Patch) Validate() error {
	var errs []domain.FieldError
	if p.ShowMeaningTimer != nil {
		if fe := checkRange(KeyShowMeaningTimer, *p.ShowMeaningTimer); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if p.NextWordTimer != nil {
		if fe := checkRange(KeyNextWordTimer, *p.NextWordTimer); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Apply returns c with the patch merged in. It does not validate.
func (c Config) Apply(p Patch) Config {
	if p.ShowMeaningTimer != nil {
		c.ShowMeaningTimer = *p.ShowMeaningTimer
	}
	if p.NextWordTimer != nil {
		c.NextWordTimer = *p.NextWordTimer
	}
	if p.AlwaysOnTop != nil {
		c.AlwaysOnTop = *p.AlwaysOnTop
	}
	if p.WordFile != nil {
		c.WordFile = *p.WordFile
	}
	return c
}

// ParsePatch builds a patch from the settings form's raw text fields.
// Either both timers parse or the whole form is rejected.
func ParsePatch(showMeaningRaw, nextWordRaw string, alwaysOnTop bool) (Patch, error) {
	var errs []domain.FieldError

	showMeaning, fe := parseTimer(KeyShowMeaningTimer, showMeaningRaw)
	if fe != nil {
		errs = append(errs, *fe)
	}
	nextWord, fe := parseTimer(KeyNextWordTimer, nextWordRaw)
	if fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return Patch{}, domain.NewValidationErrors(errs)
	}

	return Patch{
		ShowMeaningTimer: &showMeaning,
		NextWordTimer:    &nextWord,
		AlwaysOnTop:      &alwaysOnTop,
	}, nil
}

func parseTimer(field, raw string) (int, *domain.FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &domain.FieldError{Field: field, Message: "enter a value"}
	}
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return 0, &domain.FieldError{Field: field, Message: tooLarge}
	}
	if err != nil {
		return 0, &domain.FieldError{Field: field, Message: "must be a whole number of seconds"}
	}
	return n, checkRange(field, n)
}

var tooLarge = "too large, at most " + strconv.Itoa(MaxTimer) + " seconds"

func checkRange(field string, n int) *domain.FieldError {
	switch {
	case n < 0:
		return &domain.FieldError{Field: field, Message: "must be 0 or greater"}
	case n > MaxTimer:
		return &domain.FieldError{Field: field, Message: tooLarge}
	}
	return nil
}

// CheckTimer validates a single raw timer field, for inline form hints.
func CheckTimer(field, raw string) error {
	if _, fe := parseTimer(field, raw); fe != nil {
		return domain.NewValidationError(fe.Field, fe.Message)
	}
	return nil
}
