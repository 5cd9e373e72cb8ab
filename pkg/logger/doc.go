// Package logger builds configured log/slog loggers with a small set of
// functional options (level, format, output, static attributes).
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithAttr(slog.String("service", "session")),
//	)
package logger
