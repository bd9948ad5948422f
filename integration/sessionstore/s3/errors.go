package s3

import "errors"

var (
	// ErrMissingConfig is returned when the bucket or region is empty.
	ErrMissingConfig = errors.New("s3 session store: bucket and region are required")

	// ErrFailedToLoadConfig is returned when the AWS SDK configuration
	// cannot be assembled.
	ErrFailedToLoadConfig = errors.New("s3 session store: failed to load aws config")
)
