package cache

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// sqliteStore persists serialized entries in a SQLite database so cached
// records survive restarts and can be shared by multiple processes on the
// same host.
type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the cache database at path and
// applies pending migrations.
func NewSQLiteStore(path string) (Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Get(key string, v any) (bool, error) {
	var buf []byte
	var expiresAt int64
	err := s.db.QueryRow(
		`SELECT value, expires_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&buf, &expiresAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if time.Now().Unix() >= expiresAt {
		// Lazy expiry: stale entries read as absent, removal is best effort.
		_, _ = s.db.Exec(`DELETE FROM cache_entries WHERE key = ?`, key)
		return false, nil
	}
	if err := json.Unmarshal(buf, v); err != nil {
		return false, err
	}
	return true, nil
}

func (s *sqliteStore) Set(key string, v any, ttl time.Duration) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(ttl).Unix()
	_, err = s.db.Exec(
		`INSERT INTO cache_entries (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, buf, expiresAt,
	)
	return err
}

func (s *sqliteStore) Reset() error {
	_, err := s.db.Exec(`DELETE FROM cache_entries`)
	return err
}
