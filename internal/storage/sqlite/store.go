// Package sqlite хранит коллекции в файле SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/senyabanana/farm-commons/internal/storage"

	_ "modernc.org/sqlite"
)

// Store - реализация storage.Backend для SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open открывает базу SQLite и создаёт схему.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{sqlDB: sqlDB}
	if err := s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		records TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := s.sqlDB.Exec(schema)
	return err
}

// Read возвращает коллекцию или nil, если её ещё нет.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, storage.ErrClosed
	}
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	var records string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT records FROM collections WHERE name = ?`, name).Scan(&records)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select collection %s: %w", name, err)
	}
	return []byte(records), nil
}

// Write заменяет коллекцию целиком.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ErrClosed
	}
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO collections (name, records, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET records = excluded.records, updated_at = excluded.updated_at`,
		name,
		string(data),
		time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert collection %s: %w", name, err)
	}
	return nil
}

// Close закрывает соединение с базой.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
