package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements sessionstorage.Store on top of PostgreSQL. Sessions live
// in the sessions table (see migrations/) with data as jsonb and the advisory
// expiry as a nullable timestamptz. Expired rows read as not-found; call
// DeleteExpired periodically to reclaim them.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Postgres-backed session store using an established pool.
// The schema must be applied first via Migrate.
func NewStore(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	return &Store{pool: pool}, nil
}

// expiresParam maps the advisory expiry to the nullable column value.
func expiresParam(expires time.Time) any {
	if expires.IsZero() {
		return nil
	}
	return expires
}

// CreateData inserts a new row under a fresh UUID, retrying until the key
// is unused.
func (s *Store) CreateData(ctx context.Context, data map[string]any, expires time.Time) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("postgres session store: encode: %w", err)
	}

	for {
		id := uuid.NewString()
		tag, err := s.pool.Exec(ctx,
			`INSERT INTO sessions (id, data, expires_at) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			id, payload, expiresParam(expires))
		if err != nil {
			return "", fmt.Errorf("postgres session store: create: %w", err)
		}
		if tag.RowsAffected() == 1 {
			return id, nil
		}
	}
}

// ReadData returns the stored data, or nil when the row is missing or
// expired.
func (s *Store) ReadData(ctx context.Context, id string) (map[string]any, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM sessions WHERE id = $1 AND (expires_at IS NULL OR expires_at > now())`,
		id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres session store: read: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("postgres session store: decode: %w", err)
	}
	if data == nil {
		data = make(map[string]any)
	}
	return data, nil
}

// UpdateData overwrites the row with the full new mapping, upserting so a
// row evicted between read and write is recreated rather than lost.
func (s *Store) UpdateData(ctx context.Context, id string, data map[string]any, expires time.Time) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("postgres session store: encode: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (id, data, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at, updated_at = now()`,
		id, payload, expiresParam(expires))
	if err != nil {
		return fmt.Errorf("postgres session store: update: %w", err)
	}
	return nil
}

// DeleteData removes the row. Missing rows are a no-op.
func (s *Store) DeleteData(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("postgres session store: delete: %w", err)
	}
	return nil
}

// DeleteExpired removes all expired rows and returns the count.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("postgres session store: delete expired: %w", err)
	}
	return tag.RowsAffected(), nil
}

// IsDuplicateKeyError reports whether err is a unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
