// Package postgres provides a PostgreSQL-backed implementation of
// sessionstorage.Store using the pgx driver.
//
// Sessions live in a sessions table with the data map as jsonb and the
// advisory expiry as a nullable timestamptz. Reads exclude expired rows;
// DeleteExpired reclaims them and is meant to run periodically.
//
// Usage:
//
//	var cfg postgres.Config
//	config.MustLoad(&cfg)
//
//	pool, err := postgres.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := postgres.Migrate(ctx, pool); err != nil {
//		log.Fatal(err)
//	}
//
//	store, err := postgres.NewStore(pool)
//	if err != nil {
//		log.Fatal(err)
//	}
//	storage := sessionstorage.New(sessionCookie, store)
//
// Migrations are embedded in the package and applied with goose; goose
// requires database/sql, so the pool is bridged through pgx/stdlib for the
// duration of the migration run.
package postgres
