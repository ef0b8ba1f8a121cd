package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"go.uber.org/zap"

	"codeberg.org/snonux/wordcycle/internal/cycle"
	"codeberg.org/snonux/wordcycle/internal/domain"
	"codeberg.org/snonux/wordcycle/internal/settings"
	"codeberg.org/snonux/wordcycle/internal/vocab"
)

// File names inside the data directory.
const (
	ConfigFileName      = "config.json"
	DefaultWordFileName = "words.csv"
)

// Options configures Open.
type Options struct {
	// DataDir holds config.json and the default words.csv.
	DataDir string
	// WordFile overrides the configured word file for this run only.
	WordFile string
	// Scheduler drives the cycle timers. Nil uses a manual scheduler, so
	// the cycle only moves when the caller advances it. Callers that run
	// the cycle on real time pass an EventLoopScheduler bound to the
	// goroutine that owns the session.
	Scheduler cycle.Scheduler
	Logger    *zap.Logger
	// Rand is the shuffle source. Nil seeds one at random.
	Rand *rand.Rand
	// KeepOrder skips the startup shuffle, for listing and exporting
	// the word file in its saved order.
	KeepOrder bool
}

// Session owns all mutable application state.
type Session struct {
	dataDir         string
	defaultWordFile string

	settings *settings.Store
	words    *vocab.Store
	engine   *cycle.Engine
	rnd      *rand.Rand
	logger   *zap.Logger
}

// Open loads the settings and the word list. Word file problems never fail
// Open: it falls back to the default word file and then to an empty list.
func Open(opts Options) (*Session, error) {
	if opts.DataDir == "" {
		return nil, domain.NewValidationError("dataDir", "must not be empty")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = cycle.NewManualScheduler()
	}

	s := &Session{
		dataDir:         opts.DataDir,
		defaultWordFile: filepath.Join(opts.DataDir, DefaultWordFileName),
		settings:        settings.Open(filepath.Join(opts.DataDir, ConfigFileName), logger),
		rnd:             rnd,
		logger:          logger,
	}

	path, entries := s.loadStartupWords(opts.WordFile)
	s.words = vocab.NewStore(path, entries, vocab.WithRand(rnd), vocab.WithLogger(logger))
	if !opts.KeepOrder {
		s.words.Shuffle()
	}

	s.engine = cycle.New(s.words, sched, timings(s.settings.Config()), logger)

	logger.Info("session opened",
		zap.String("data_dir", opts.DataDir),
		zap.String("word_file", path),
		zap.Int("entries", len(entries)),
	)
	return s, nil
}

// loadStartupWords walks the fallback chain: the override or configured
// word file, then the default word file, then an empty list.
func (s *Session) loadStartupWords(override string) (string, []domain.Entry) {
	wanted := override
	if wanted == "" {
		wanted = s.settings.Config().WordFile
	}

	fallback := wanted != "" && wanted != s.defaultWordFile
	if fallback {
		entries, err := vocab.Load(wanted)
		if err == nil {
			return wanted, entries
		}
		s.logger.Warn("failed to load word file, falling back to default",
			zap.String("path", wanted), zap.Error(err))
	}

	entries, err := vocab.Load(s.defaultWordFile)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("no word file yet, starting empty", zap.String("path", s.defaultWordFile))
		} else {
			s.logger.Warn("failed to load default word file, starting empty",
				zap.String("path", s.defaultWordFile), zap.Error(err))
		}
		entries = nil
	}

	if fallback && override == "" {
		s.persistWordFile(s.defaultWordFile)
	}
	return s.defaultWordFile, entries
}

func (s *Session) persistWordFile(path string) {
	if err := s.recordWordFile(path); err != nil {
		s.logger.Warn("failed to record word file in settings", zap.String("path", path), zap.Error(err))
	}
}

func timings(cfg settings.Config) cycle.Timings {
	return cycle.Timings{
		ShowMeaning: cfg.ShowMeaningDelay(),
		NextWord:    cfg.NextWordDelay(),
	}
}

// DataDir returns the directory holding the settings and default word file.
func (s *Session) DataDir() string { return s.dataDir }

// DefaultWordFile returns the path of words.csv in the data directory.
func (s *Session) DefaultWordFile() string { return s.defaultWordFile }

// WordFile returns the word file edits are saved to.
func (s *Session) WordFile() string { return s.words.Path() }

// Config returns the current settings.
func (s *Session) Config() settings.Config { return s.settings.Config() }

// Entries returns the word list in cycle order.
func (s *Session) Entries() []domain.Entry { return s.words.Entries() }

// Display returns what the window should show.
func (s *Session) Display() cycle.Display { return s.engine.Display() }

// SetOnChange registers the re-render callback.
func (s *Session) SetOnChange(fn func(cycle.Display)) { s.engine.SetOnChange(fn) }

// Start begins cycling.
func (s *Session) Start() { s.engine.Start() }

// Close stops the cycle.
func (s *Session) Close() {
	s.engine.Stop()
	s.logger.Debug("session closed")
}

// Pause stops the cycle on the current display.
func (s *Session) Pause() { s.engine.Pause() }

// Resume restarts the current word.
func (s *Session) Resume() { s.engine.Resume() }

// TogglePause flips between paused and running.
func (s *Session) TogglePause() { s.engine.TogglePause() }

// Paused reports whether cycling is paused.
func (s *Session) Paused() bool { return s.engine.Paused() }

// UpdateSettings validates and saves p and applies the new timers. Nothing
// changes when it fails.
func (s *Session) UpdateSettings(p settings.Patch) (settings.Config, error) {
	cfg, err := s.settings.Update(p)
	if err != nil {
		return cfg, err
	}
	s.engine.SetTimings(timings(cfg))
	return cfg, nil
}

// reset restarts the engine on the entry with identity id, or at the
// clamped fallback index when that entry is gone.
func (s *Session) reset(id string, fallback int) {
	index := fallback
	if id != "" {
		if i := s.words.IndexOf(id); i >= 0 {
			index = i
		}
	}
	s.engine.Reset(index)
}

func (s *Session) currentID() string {
	return s.engine.Display().ID
}

// wrapPath adds the path to err unless it is nil.
func wrapPath(path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", path, err)
}
