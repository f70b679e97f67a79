package redis

import "errors"

var (
	// ErrParseConnectionURL is returned when the connection URL cannot be parsed.
	ErrParseConnectionURL = errors.New("redis.parse_connection_url")

	// ErrNotReady is returned when the server does not answer within the configured attempts.
	ErrNotReady = errors.New("redis.not_ready")

	// ErrHealthcheckFailed is returned by the readiness probe on a failed PING.
	ErrHealthcheckFailed = errors.New("redis.healthcheck_failed")
)
