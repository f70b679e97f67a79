// Package redis bootstraps the Redis connection used as the session store
// backend. Connect parses a connection URL, retries until the server answers
// PING or the configured timeout elapses, and returns a ready client.
// Healthcheck adapts the same PING probe for readiness endpoints.
package redis
