package mongo

import "errors"

var (
	// ErrNilDatabase indicates the store was constructed without a database.
	ErrNilDatabase = errors.New("mongo session store: nil database")
	// ErrEmptyConnectionURL indicates no connection URL was provided.
	ErrEmptyConnectionURL = errors.New("mongo session store: empty connection URL")
	// ErrNotReady indicates MongoDB did not become ready within the timeout.
	ErrNotReady = errors.New("mongo session store: not ready within the given time period")
	// ErrHealthcheckFailed indicates the health check ping failed.
	ErrHealthcheckFailed = errors.New("mongo session store: healthcheck failed")
)
