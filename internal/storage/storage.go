package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key holds no value.
var ErrNotFound = errors.New("key not found")

// KV stores opaque values under string keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Driver names accepted by storage.driver.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
)
