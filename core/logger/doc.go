// Package logger provides log/slog attribute helpers shared across the
// module.
//
// Helpers return an empty slog.Attr for nil or empty inputs, so call sites
// never need nil checks:
//
//	log.Warn("session cookie is not signed",
//		logger.ID("cookie", name),
//		logger.Error(err), // safe even when err is nil
//	)
//
// slog drops empty Attrs, so a nil error simply produces no attribute.
package logger
