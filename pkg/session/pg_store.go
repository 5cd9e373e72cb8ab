package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pgconn "github.com/gflauder/PeerReviewCore/pkg/pg"
)

// PGStore implements Store on PostgreSQL. Records are JSONB rows keyed
// by session ID with an explicit expiry column; DeleteExpired sweeps
// rows past it. Concurrent writers for one session ID resolve by
// last-flush-wins through the upsert.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore wraps an existing connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// NewPGStoreFromConfig connects with the connector's retry logic,
// bootstraps the sessions table and wraps the pool.
func NewPGStoreFromConfig(ctx context.Context, cfg pgconn.Config) (*PGStore, error) {
	pool, err := pgconn.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := NewPGStore(pool)
	if err := store.Bootstrap(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// Bootstrap creates the sessions table if it does not exist.
func (s *PGStore) Bootstrap(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}

func (s *PGStore) Load(ctx context.Context, id string) (*Record, error) {
	var (
		data      []byte
		expiresAt time.Time
	)

	err := s.pool.QueryRow(ctx,
		`SELECT data, expires_at FROM sessions WHERE id = $1`, id,
	).Scan(&data, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if time.Now().After(expiresAt) {
		_ = s.Delete(ctx, id)
		return nil, ErrSessionExpired
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Join(ErrInvalidRecord, err)
	}
	return &rec, nil
}

func (s *PGStore) Save(ctx context.Context, id string, rec *Record, ttl time.Duration) error {
	if id == "" || rec == nil {
		return ErrInvalidRecord
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO sessions (id, data, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`,
		id, data, time.Now().Add(ttl))
	return err
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (s *PGStore) DeleteExpired(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	return err
}

// Close releases the underlying pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}
