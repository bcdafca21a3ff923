// Package observability provides structured logging and metrics for the portal.
//
// This package implements:
//   - zap logger construction from configuration (json or console encoding)
//   - Prometheus counters for guard decisions and logouts
//   - Request ID propagation into log fields
package observability
