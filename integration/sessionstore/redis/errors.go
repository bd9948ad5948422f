package redis

import "errors"

var (
	// ErrNilClient indicates the store was constructed without a Redis client.
	ErrNilClient = errors.New("redis session store: nil client")
	// ErrEmptyConnectionURL indicates no connection URL was provided.
	ErrEmptyConnectionURL = errors.New("redis session store: empty connection URL")
	// ErrFailedToParseConnString indicates the connection URL is malformed.
	ErrFailedToParseConnString = errors.New("redis session store: failed to parse connection string")
	// ErrNotReady indicates Redis did not become ready within the timeout.
	ErrNotReady = errors.New("redis session store: not ready within the given time period")
	// ErrHealthcheckFailed indicates the health check ping failed.
	ErrHealthcheckFailed = errors.New("redis session store: healthcheck failed")
)
