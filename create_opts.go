package jardiff

import "log/slog"

// createConfig holds configuration for patch creation.
type createConfig struct {
	minimal  bool
	logger   *slog.Logger
	progress ProgressFunc
}

// CreateOption configures patch creation.
type CreateOption func(*createConfig)

// CreateWithMinimal controls whether classification emits the smallest
// possible edit script. Minimal patches may hold several moves sharing one
// source, which 1.0-era appliers cannot process; the default favors
// compatibility and stores such entries whole instead.
func CreateWithMinimal(minimal bool) CreateOption {
	return func(cfg *createConfig) {
		cfg.minimal = minimal
	}
}

// CreateWithLogger sets a logger for patch creation.
// If nil, a discard logger is used (default behavior).
func CreateWithLogger(logger *slog.Logger) CreateOption {
	return func(cfg *createConfig) {
		cfg.logger = logger
	}
}

// CreateWithProgress sets a callback invoked as archives are indexed,
// entries are classified, and output entries are written. The callback runs
// synchronously on the calling goroutine.
func CreateWithProgress(fn ProgressFunc) CreateOption {
	return func(cfg *createConfig) {
		cfg.progress = fn
	}
}
