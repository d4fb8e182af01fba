package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// openTestStore подключается к базе из FARM_TEST_POSTGRES_CONN или пропускает тест.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	conn := os.Getenv("FARM_TEST_POSTGRES_CONN")
	if conn == "" {
		t.Skip("FARM_TEST_POSTGRES_CONN is not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, conn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			records    JSONB       NOT NULL DEFAULT '[]'::jsonb,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM collections WHERE name IN ('polls', 'farmers')`); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	store := New(pool)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestReadWriteCounts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	data, err := store.Read(ctx, "polls")
	if err != nil {
		t.Fatalf("read missing: %v", err)
	}
	if data != nil {
		t.Fatalf("read missing = %q, want nil", data)
	}

	if err := store.Write(ctx, "polls", []byte(`[{"id":"a"},{"id":"b"}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Write(ctx, "polls", []byte(`[{"id":"c"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	counts, err := store.Counts(ctx, []string{"polls", "farmers"})
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts["polls"] != 1 || counts["farmers"] != 0 {
		t.Fatalf("counts = %v, want polls=1 farmers=0", counts)
	}
}

func TestRejectsInvalidNames(t *testing.T) {
	store := New(nil)
	if _, err := store.Read(context.Background(), "bad name"); err == nil {
		t.Fatal("expected error for invalid name")
	}
	if err := store.Write(context.Background(), "", []byte("[]")); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestCanceledContextSkipsQuery(t *testing.T) {
	store := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Read(ctx, "polls"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Read error = %v, want context.Canceled", err)
	}
	if err := store.Write(ctx, "polls", []byte("[]")); !errors.Is(err, context.Canceled) {
		t.Fatalf("Write error = %v, want context.Canceled", err)
	}
	if _, err := store.Counts(ctx, []string{"polls"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Counts error = %v, want context.Canceled", err)
	}
}
