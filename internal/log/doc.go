// Package log provides secure logging built on log/slog.
//
// SecureHandler wraps any slog.Handler and sanitizes attributes before they
// are written:
//   - secrets by key name (Authorization, Cookie, password, token, ...)
//   - document content by key name (redacted_text, text, content, ...);
//     redacted output can still carry context that should not sit in logs
//   - secret-looking values (JWT, bearer and basic credentials, private keys)
//   - personal data inside any string or error value (email addresses,
//     phone numbers, SSNs, card numbers), replaced in place
//
// Even in verbose mode, sensitive values are masked.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Warn("submission failed", "error", err) // PII in err is masked
package log
