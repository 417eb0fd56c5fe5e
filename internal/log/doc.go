// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard
// slog package.
//
// paperscan handles a search API credential on every bibliography
// lookup, and verbose runs log request details. The SecureHandler masks
// credential-bearing attributes so that a shared or stored log never
// leaks the key:
//   - HTTP headers (Authorization, X-Api-Key)
//   - Attribute keys that name credentials (api_key, token, secret)
//   - Values that look like credentials (bearer tokens, JWTs, long
//     opaque API keys)
//
// Even in verbose mode, sensitive values are masked to prevent
// accidental exposure of secrets.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("lookup sent",
//	    "api_key", "k3y...",            // sanitized to ***REDACTED***
//	    "title", "A Study of Things",
//	)
//
//	slog.SetDefault(logger)
package log
