// Package storage хранит коллекции записей целиком: одна коллекция - один JSON-массив.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrClosed возвращается при обращении к закрытому хранилищу.
var ErrClosed = errors.New("storage: backend is closed")

// Backend - интерфейс хранилища коллекций.
// Read возвращает nil без ошибки, если коллекция ещё ни разу не записывалась.
// Write заменяет коллекцию целиком.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Close() error
}

// Counter - необязательный интерфейс для хранилищ, умеющих считать записи без чтения коллекций.
type Counter interface {
	Counts(ctx context.Context, names []string) (map[string]int, error)
}

// ValidateName проверяет имя коллекции: только строчные латинские буквы, цифры и '_'.
func ValidateName(name string) error {
	if name == "" || len(name) > 64 {
		return fmt.Errorf("invalid collection name %q", name)
	}
	for _, c := range name {
		ok := (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_'
		if !ok {
			return fmt.Errorf("invalid collection name %q", name)
		}
	}
	return nil
}
