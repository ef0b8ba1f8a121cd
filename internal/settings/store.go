package settings

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/wordcycle/internal/domain"
)

// Store holds the current settings and the file they persist to.
type Store struct {
	path   string
	cfg    Config
	logger *zap.Logger
}

// Open loads the settings at path. A missing file is created with the
// defaults; any other problem is logged and the defaults are used.
func Open(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, err := Load(path)
	s := &Store{path: path, cfg: cfg, logger: logger}

	switch {
	case err == nil:
		logger.Debug("settings loaded", zap.String("path", path))
	case errors.Is(err, domain.ErrNotFound):
		if err := Save(path, cfg); err != nil {
			logger.Warn("failed to create settings file", zap.String("path", path), zap.Error(err))
		} else {
			logger.Info("settings file created with defaults", zap.String("path", path))
		}
	default:
		logger.Warn("using default settings", zap.String("path", path), zap.Error(err))
	}

	return s
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// Config returns the current settings.
func (s *Store) Config() Config { return s.cfg }

// Update validates p, merges it into the current settings and saves them.
// On any error the current settings are left unchanged.
func (s *Store) Update(p Patch) (Config, error) {
	if err := p.Validate(); err != nil {
		return s.cfg, err
	}

	next := s.cfg.Apply(p)
	if err := Save(s.path, next); err != nil {
		return s.cfg, fmt.Errorf("failed to save settings: %w", err)
	}
	s.cfg = next

	s.logger.Info("settings updated",
		zap.Int(KeyShowMeaningTimer, next.ShowMeaningTimer),
		zap.Int(KeyNextWordTimer, next.NextWordTimer),
		zap.Bool(KeyAlwaysOnTop, next.AlwaysOnTop),
		zap.String(KeyWordFile, next.WordFile),
	)
	return next, nil
}
