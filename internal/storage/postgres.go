package storage

import (
	"context"
	"embed"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const (
	queryGetEntry = `SELECT value FROM kv_entries WHERE installation_id = $1 AND key = $2`

	queryUpsertEntry = `INSERT INTO kv_entries (installation_id, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (installation_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	queryDeleteEntry = `DELETE FROM kv_entries WHERE installation_id = $1 AND key = $2`
)

type dbtx interface {
	Exec(c context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(c context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore scopes every key to one installation so several devices can
// share a database without seeing each other's cart.
type PostgresStore struct {
	db             dbtx
	installationID uuid.UUID
}

func NewPostgresStore(db dbtx, installationID uuid.UUID) *PostgresStore {
	return &PostgresStore{db: db, installationID: installationID}
}

func (s *PostgresStore) Get(c context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(c, queryGetEntry, s.installationID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *PostgresStore) Set(c context.Context, key string, value string) error {
	_, err := s.db.Exec(c, queryUpsertEntry, s.installationID, key, value)
	return err
}

func (s *PostgresStore) Remove(c context.Context, key string) error {
	_, err := s.db.Exec(c, queryDeleteEntry, s.installationID, key)
	return err
}
