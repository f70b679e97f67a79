// Package requestid attaches a correlation identifier to every HTTP request.
//
// The Middleware reuses a valid client-supplied "X-Request-ID" header or
// generates a fresh UUIDv4, stores the value in the request context, and
// echoes it back in the response header. LoggerExtractor integrates with the
// logger package so every log record written during a request carries the id.
package requestid
