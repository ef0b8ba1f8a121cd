package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"codeberg.org/snonux/wordcycle/internal/domain"
)

// JSON keys of the settings file.
const (
	KeyShowMeaningTimer = "showMeaningTimer"
	KeyNextWordTimer    = "nextWordTimer"
	KeyAlwaysOnTop      = "alwaysOnTop"
	KeyWordFile         = "wordFile"
)

// MaxTimer is the largest accepted timer value in seconds.
const MaxTimer = math.MaxInt32

var knownKeys = map[string]bool{
	KeyShowMeaningTimer: true,
	KeyNextWordTimer:    true,
	KeyAlwaysOnTop:      true,
	KeyWordFile:         true,
}

// Config holds the study settings. Timers are whole seconds.
type Config struct {
	ShowMeaningTimer int
	NextWordTimer    int
	AlwaysOnTop      bool
	// WordFile is an absolute path, or empty for the default word file.
	WordFile string

	// doc is the document the config was parsed from; unknown keys live here.
	doc []byte
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		ShowMeaningTimer: 3,
		NextWordTimer:    5,
		AlwaysOnTop:      true,
		WordFile:         "",
	}
}

// ShowMeaningDelay is how long a word is shown before its meaning.
func (c Config) ShowMeaningDelay() time.Duration {
	return time.Duration(c.ShowMeaningTimer) * time.Second
}

// NextWordDelay is how long the meaning is shown before advancing.
func (c Config) NextWordDelay() time.Duration {
	return time.Duration(c.NextWordTimer) * time.Second
}

// Unknown returns the raw JSON of every key this package does not manage.
func (c Config) Unknown() map[string]string {
	extra := make(map[string]string)
	if len(c.doc) == 0 {
		return extra
	}
	gjson.ParseBytes(c.doc).ForEach(func(key, value gjson.Result) bool {
		if !knownKeys[key.String()] {
			extra[key.String()] = value.Raw
		}
		return true
	})
	return extra
}

// Parse decodes a settings document. Each known key that is missing or
// has the wrong type is replaced by its default. A document that is not
// a JSON object yields the defaults and a domain.ErrParse error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return cfg, fmt.Errorf("%w: settings are not a JSON object", domain.ErrParse)
	}
	cfg.doc = append([]byte(nil), data...)

	if v, ok := timerField(data, KeyShowMeaningTimer); ok {
		cfg.ShowMeaningTimer = v
	}
	if v, ok := timerField(data, KeyNextWordTimer); ok {
		cfg.NextWordTimer = v
	}
	if r := gjson.GetBytes(data, KeyAlwaysOnTop); r.IsBool() {
		cfg.AlwaysOnTop = r.Bool()
	}
	if r := gjson.GetBytes(data, KeyWordFile); r.Type == gjson.String {
		cfg.WordFile = r.String()
	}

	return cfg, nil
}

// timerField reads a non-negative whole number of seconds.
func timerField(doc []byte, key string) (int, bool) {
	r := gjson.GetBytes(doc, key)
	if r.Type != gjson.Number {
		return 0, false
	}
	f := r.Float()
	if f < 0 || f != math.Trunc(f) || f > MaxTimer {
		return 0, false
	}
	return int(f), true
}

// Encode serializes cfg, writing the known keys over the original
// document so unknown keys keep their values and order.
func Encode(cfg Config) ([]byte, error) {
	doc := []byte("{}")
	if len(cfg.doc) > 0 {
		doc = append([]byte(nil), cfg.doc...)
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyShowMeaningTimer, cfg.ShowMeaningTimer},
		{KeyNextWordTimer, cfg.NextWordTimer},
		{KeyAlwaysOnTop, cfg.AlwaysOnTop},
		{KeyWordFile, cfg.WordFile},
	}

	var err error
	for _, kv := range values {
		doc, err = sjson.SetBytes(doc, kv.key, kv.value)
		if err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", kv.key, err)
		}
	}

	return pretty.Pretty(doc), nil
}

// Load reads the settings file. It always returns a usable Config: when
// the file is missing (domain.ErrNotFound), unreadable (domain.ErrIO) or
// malformed (domain.ErrParse) the defaults come back with the error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), fmt.Errorf("settings file %s: %w", path, domain.ErrNotFound)
		}
		return Default(), domain.IOError("read settings file "+path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("settings file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg Config) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.IOError("create settings directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return domain.IOError("create temp settings file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return domain.IOError("write settings file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return domain.IOError("close settings file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return domain.IOError("replace settings file", err)
	}

	return nil
}
