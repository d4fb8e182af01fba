// Package postgres хранит коллекции в таблице collections (JSONB).
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/senyabanana/farm-commons/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// Store - реализация storage.Backend для PostgreSQL.
type Store struct {
	DB *pgxpool.Pool
}

// New создаёт новый экземпляр Store.
func New(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Read возвращает коллекцию или nil, если её ещё нет.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	var records string
	err := s.DB.QueryRow(ctx, `SELECT records::text FROM collections WHERE name = $1`, name).Scan(&records)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select collection %s: %w", name, err)
	}
	return []byte(records), nil
}

// Write заменяет коллекцию целиком.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	_, err := s.DB.Exec(ctx, `
		INSERT INTO collections (name, records, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE SET records = EXCLUDED.records, updated_at = EXCLUDED.updated_at`,
		name,
		string(data))
	if err != nil {
		return fmt.Errorf("failed to upsert collection %s: %w", name, err)
	}
	return nil
}

// Counts возвращает количество записей в каждой из коллекций одним запросом.
func (s *Store) Counts(ctx context.Context, names []string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(names))
	for _, name := range names {
		counts[name] = 0
	}

	rows, err := s.DB.Query(ctx,
		`SELECT name, jsonb_array_length(records) FROM collections WHERE name = ANY($1)`,
		pq.Array(names))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		counts[name] = count
	}
	return counts, rows.Err()
}

// Close закрывает пул соединений.
func (s *Store) Close() error {
	s.DB.Close()
	return nil
}
