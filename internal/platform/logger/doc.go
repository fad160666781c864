// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Request-scoped loggers travel in the request context
// (WithLogger, FromContextOrDefault) so handlers and services log with the trace id
// attached by the HTTP middleware.
package logger
