// Package repository предоставляет типизированные коллекции записей сервиса.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/senyabanana/farm-commons/internal/models"
	"github.com/senyabanana/farm-commons/internal/storage"
)

// Имена коллекций в хранилище.
const (
	FarmersCollection      = "farmers"
	VendorsCollection      = "vendors"
	CommunitiesCollection  = "communities"
	MarketPricesCollection = "market_prices"
	FarmingTipsCollection  = "farming_tips"
	PollsCollection        = "polls"
)

// Repositories объединяет все коллекции одного хранилища.
// У каждой коллекции ровно одна блокировка писателя.
type Repositories struct {
	Farmers      *Table[models.User]
	Vendors      *Table[models.User]
	Communities  *Table[models.Community]
	Polls        *Table[models.Poll]
	MarketPrices *Table[models.MarketPrice]
	FarmingTips  *Table[models.FarmingTip]

	backend storage.Backend
}

// New создаёт коллекции поверх backend.
func New(backend storage.Backend) *Repositories {
	return &Repositories{
		Farmers:      NewTable[models.User](backend, FarmersCollection, &sync.Mutex{}),
		Vendors:      NewTable[models.User](backend, VendorsCollection, &sync.Mutex{}),
		Communities:  NewTable[models.Community](backend, CommunitiesCollection, &sync.Mutex{}),
		Polls:        NewTable[models.Poll](backend, PollsCollection, &sync.Mutex{}),
		MarketPrices: NewTable[models.MarketPrice](backend, MarketPricesCollection, &sync.Mutex{}),
		FarmingTips:  NewTable[models.FarmingTip](backend, FarmingTipsCollection, &sync.Mutex{}),
		backend:      backend,
	}
}

// Users возвращает коллекцию пользователей для роли или nil для неизвестной роли.
func (r *Repositories) Users(role models.Role) *Table[models.User] {
	switch role {
	case models.Farmer:
		return r.Farmers
	case models.Vendor:
		return r.Vendors
	default:
		return nil
	}
}

// Names возвращает имена всех коллекций.
func (r *Repositories) Names() []string {
	return []string{
		FarmersCollection,
		VendorsCollection,
		CommunitiesCollection,
		MarketPricesCollection,
		FarmingTipsCollection,
		PollsCollection,
	}
}

// Counts возвращает количество записей в каждой коллекции.
func (r *Repositories) Counts(ctx context.Context) (map[string]int, error) {
	names := r.Names()
	if counter, ok := r.backend.(storage.Counter); ok {
		return counter.Counts(ctx, names)
	}

	counts := make(map[string]int, len(names))
	for _, name := range names {
		data, err := r.backend.Read(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		if len(data) == 0 {
			counts[name] = 0
			continue
		}
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", name, err)
		}
		counts[name] = len(raw)
	}
	return counts, nil
}

// Close закрывает хранилище.
func (r *Repositories) Close() error {
	return r.backend.Close()
}
