// Package httpserver wraps net/http.Server with graceful shutdown and
// structured logging. Run blocks until the context is cancelled, an OS
// interrupt arrives, or the listener fails; in the first two cases in-flight
// requests are drained within a configurable shutdown timeout.
package httpserver
