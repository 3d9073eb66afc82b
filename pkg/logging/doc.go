// Package logging configures the structured logger shared by fixturegen's
// packages.
//
// It wraps log/slog:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	logger.Debug("generated records", "type", "Person", "count", 3)
//
// Components take a *slog.Logger through an option and fall back to Nop when
// none is given. Tee fans one record out to several handlers, which the CLI
// uses to copy logs into a file.
package logging
