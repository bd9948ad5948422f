// Package s3 provides an S3-backed implementation of sessionstorage.Store
// for Amazon S3 and S3-compatible services such as MinIO.
//
// Each session is one JSON object under a configurable key prefix, keyed by
// the store-generated UUID. S3 has no server-side TTL per object, so the
// advisory expiry is stored inside the object and checked on read; expired
// objects are deleted when encountered. Pair the bucket with a lifecycle
// rule when stale objects need to be swept without reads.
//
// Usage:
//
//	var cfg s3.Config
//	config.MustLoad(&cfg)
//
//	store, err := s3.New(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	storage := sessionstorage.New(sessionCookie, store)
package s3
