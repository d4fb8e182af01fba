// Package gcs хранит коллекции объектами в бакете Cloud Storage.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/senyabanana/farm-commons/internal/storage"

	gcstorage "cloud.google.com/go/storage"
	"github.com/codeGROOVE-dev/retry"
)

// Store - реализация storage.Backend для Cloud Storage.
type Store struct {
	client *gcstorage.Client
	logger *log.Logger
	bucket string
	prefix string
}

// New создаёт новый экземпляр Store.
func New(client *gcstorage.Client, bucket, prefix string, logger *log.Logger) *Store {
	return &Store{
		client: client,
		logger: logger,
		bucket: bucket,
		prefix: prefix,
	}
}

// ObjectKey возвращает имя объекта для коллекции.
func (s *Store) ObjectKey(name string) string {
	return s.prefix + name + ".json"
}

// Read читает объект коллекции; отсутствующий объект означает пустую коллекцию.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}
	key := s.ObjectKey(name)

	var data []byte
	missing := false
	err := retry.Do(
		func() error {
			r, openErr := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
			if openErr != nil {
				if errors.Is(openErr, gcstorage.ErrObjectNotExist) {
					missing = true
					return retry.Unrecoverable(openErr)
				}
				return fmt.Errorf("open storage reader: %w", openErr)
			}
			defer func() {
				if closeErr := r.Close(); closeErr != nil {
					s.logger.Printf("failed to close storage reader for %s: %v", key, closeErr)
				}
			}()

			var readErr error
			data, readErr = io.ReadAll(r)
			if readErr != nil {
				return fmt.Errorf("read from storage: %w", readErr)
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(2*time.Minute),
		retry.MaxJitter(10*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, retryErr error) {
			s.logger.Printf("retrying load of %s after error (attempt %d): %v", key, n, retryErr)
		}),
	)
	if missing {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load after retries: %w", err)
	}
	return data, nil
}

// Write заменяет объект коллекции.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateName(name); err != nil {
		return err
	}
	key := s.ObjectKey(name)

	err := retry.Do(
		func() error {
			w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
			w.ContentType = "application/json"
			if _, writeErr := w.Write(data); writeErr != nil {
				if closeErr := w.Close(); closeErr != nil {
					s.logger.Printf("failed to close writer after error for %s: %v", key, closeErr)
				}
				return fmt.Errorf("write to storage: %w", writeErr)
			}
			if closeErr := w.Close(); closeErr != nil {
				return fmt.Errorf("close storage writer: %w", closeErr)
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(2*time.Minute),
		retry.MaxJitter(10*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, retryErr error) {
			s.logger.Printf("retrying save of %s after error (attempt %d): %v", key, n, retryErr)
		}),
	)
	if err != nil {
		return fmt.Errorf("save after retries: %w", err)
	}
	return nil
}

// Close закрывает клиент Cloud Storage.
func (s *Store) Close() error {
	return s.client.Close()
}
