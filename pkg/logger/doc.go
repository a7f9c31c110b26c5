// Package logger builds *slog.Logger values through functional options and keeps
// attribute keys consistent across packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithTextFormatter(),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(slog.String("service", "importer")),
//	)
//
//	dec := serial.NewDecoder(registry, serial.WithLogger(log))
//
// Library types that accept a logger fall back to Discard when none is given.
//
// # Attributes
//
// Error and Errors only produce attributes for non-nil errors, so calls like
//
//	log.Debug("type resolved from ambient context", logger.TypeName(name), logger.Error(err))
//
// are safe when err is nil.
package logger
