// Package redis provides a Redis-backed implementation of
// sessionstorage.Store.
//
// Each session is one key ("session:<uuid>") holding the JSON-encoded data
// map. The advisory expiry from the cookie configuration becomes the key's
// TTL, so expired sessions are evicted by Redis itself and read back as
// not-found.
//
// Usage:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	store, err := redis.NewStore(client)
//	if err != nil {
//		log.Fatal(err)
//	}
//	storage := sessionstorage.New(sessionCookie, store)
//
// Connect validates the URL, retries with the configured interval, and
// verifies connectivity with a ping before returning. Healthcheck returns a
// probe function suitable for readiness endpoints.
package redis
