package cli

import (
	"go.uber.org/zap"
)

// NewLogger builds the application logger. Verbose mode uses zap's
// development config with debug output; otherwise warnings and errors
// are logged as JSON.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
