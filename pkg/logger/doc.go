// Package logger builds configured log/slog loggers for the application shell.
//
// It exposes a small functional-option factory with environment presets:
//
//	log := logger.New(logger.WithEnvironment(cfg.Env, "appshell"))
//	logger.SetAsDefault(log)
//
// Production defaults to JSON output at info level; development switches to
// text output at debug level. Packages in this module accept a *slog.Logger
// via their own options and fall back to logger.Noop() when none is given.
package logger
