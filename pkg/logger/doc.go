// Package logger builds configured log/slog loggers for the platform:
// JSON output for production aggregation, text for development, with static
// attributes (service name and friends) attached to every record.
//
//	log := logger.New(
//	    logger.WithService("notebank"),
//	    logger.WithLevel(slog.LevelInfo),
//	)
package logger
