package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/reidsolon/tracker/internal/db"
)

const driverName = "sqlite"

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// SQLite stores values in the kv_store table.
type SQLite struct {
	db *sqlx.DB
}

type kvRow struct {
	Key       string `db:"key"`
	Value     []byte `db:"value"`
	UpdatedAt string `db:"updated_at"`
}

func NewSQLite(conn *sqlx.DB) *SQLite {
	return &SQLite{db: conn}
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLite, error) {
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return NewSQLite(sqlx.NewDb(sqldb, driverName)), nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv_store WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	row := kvRow{Key: key, Value: value, UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano)}
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO kv_store(key, value, updated_at) VALUES(:key, :value, :updated_at)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`, row)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Size(ctx context.Context) (int64, error) {
	var size int64
	if err := s.db.GetContext(ctx, &size, `SELECT COALESCE(SUM(LENGTH(value)), 0) FROM kv_store`); err != nil {
		return 0, fmt.Errorf("measure store size: %w", err)
	}
	return size, nil
}

// SchemaVersion reports the highest applied migration.
func (s *SQLite) SchemaVersion() (int, error) {
	return db.SchemaVersion(s.db.DB)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
