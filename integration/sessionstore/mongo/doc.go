// Package mongo provides a MongoDB-backed implementation of
// sessionstorage.Store.
//
// Each session is one document in the sessions collection, keyed by the
// store-generated UUID in _id, with the data map under "data" and the
// advisory expiry under "expires_at". EnsureIndexes creates a TTL index on
// expires_at so MongoDB evicts expired sessions; reads also check the expiry
// client-side because the TTL monitor only sweeps periodically.
//
// Usage:
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store, err := mongo.NewStore(db)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := store.EnsureIndexes(ctx); err != nil {
//		log.Fatal(err)
//	}
//	storage := sessionstorage.New(sessionCookie, store)
package mongo
