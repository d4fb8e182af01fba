package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/senyabanana/farm-commons/internal/storage"
)

// ErrNoChange возвращается из функции Update, когда сохранять нечего.
var ErrNoChange = errors.New("repository: no change")

// Table - типизированная коллекция записей поверх storage.Backend.
// Записи читаются и сохраняются только целиком.
type Table[T any] struct {
	name    string
	backend storage.Backend
	lock    *sync.Mutex
}

// NewTable создаёт новый экземпляр Table.
func NewTable[T any](backend storage.Backend, name string, lock *sync.Mutex) *Table[T] {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &Table[T]{name: name, backend: backend, lock: lock}
}

// Name возвращает имя коллекции.
func (t *Table[T]) Name() string {
	return t.name
}

// Load возвращает все записи коллекции; пустой срез, если коллекция ещё не записывалась.
func (t *Table[T]) Load(ctx context.Context) ([]T, error) {
	data, err := t.backend.Read(ctx, t.name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", t.name, err)
	}

	records := []T{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", t.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Save заменяет коллекцию целиком.
func (t *Table[T]) Save(ctx context.Context, records []T) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.save(ctx, records)
}

func (t *Table[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", t.name, err)
	}
	if err := t.backend.Write(ctx, t.name, data); err != nil {
		return fmt.Errorf("save %s: %w", t.name, err)
	}
	return nil
}

// Update выполняет чтение, изменение и запись коллекции под блокировкой писателя.
// Если fn возвращает ошибку, коллекция не сохраняется; ErrNoChange не считается ошибкой.
func (t *Table[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	records, err := t.Load(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}
	return t.save(ctx, updated)
}
