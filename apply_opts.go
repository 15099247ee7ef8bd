package jardiff

import "log/slog"

// applyConfig holds configuration for patch application.
type applyConfig struct {
	logger   *slog.Logger
	progress ProgressFunc
}

// ApplyOption configures patch application.
type ApplyOption func(*applyConfig)

// ApplyWithLogger sets a logger for patch application.
// If nil, a discard logger is used (default behavior).
func ApplyWithLogger(logger *slog.Logger) ApplyOption {
	return func(cfg *applyConfig) {
		cfg.logger = logger
	}
}

// ApplyWithProgress sets a callback invoked as archives are indexed and
// reconstructed entries are written. The callback runs synchronously on the
// calling goroutine.
func ApplyWithProgress(fn ProgressFunc) ApplyOption {
	return func(cfg *applyConfig) {
		cfg.progress = fn
	}
}
