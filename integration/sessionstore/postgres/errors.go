package postgres

import "errors"

var (
	// ErrNilPool indicates the store or migrator was given a nil pool.
	ErrNilPool = errors.New("postgres session store: nil pool")
	// ErrEmptyConnectionString indicates no connection string was provided.
	ErrEmptyConnectionString = errors.New("postgres session store: empty connection string, use DATABASE_URL env var")
	// ErrFailedToParseConfig indicates the connection string is malformed.
	ErrFailedToParseConfig = errors.New("postgres session store: failed to parse db config")
	// ErrFailedToOpenConnection indicates all connection attempts failed.
	ErrFailedToOpenConnection = errors.New("postgres session store: failed to open db connection")
	// ErrFailedToApplyMigrations indicates the goose migration run failed.
	ErrFailedToApplyMigrations = errors.New("postgres session store: failed to apply migrations")
	// ErrHealthcheckFailed indicates the health check ping failed.
	ErrHealthcheckFailed = errors.New("postgres session store: healthcheck failed")
)
