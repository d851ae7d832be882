package app

import (
	"context"
	"fmt"

	"github.com/appetiteclub/gourmet/internal/mongo"
	"github.com/appetiteclub/gourmet/internal/mysql"
	"github.com/appetiteclub/gourmet/internal/storage"
	"github.com/aquamarinepk/aqm"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Backend is the KV selected by storage.driver. Remote drivers must be
// started before the KV is used.
type Backend struct {
	KV     storage.KV
	Driver string

	remote   lifecycle
	database func() *mongodriver.Database
}

// NewBackend builds the KV named by storage.driver without connecting it.
func NewBackend(config *aqm.Config, logger aqm.Logger) (*Backend, error) {
	driver := config.GetStringOrDef("storage.driver", storage.DriverFile)
	b := &Backend{Driver: driver}

	switch driver {
	case storage.DriverMemory:
		logger.Info("Using in-memory storage; state is lost on restart")
		b.KV = storage.NewMemory()

	case storage.DriverFile:
		path := config.GetStringOrDef("storage.file.path", storage.DefaultFilePath)
		kv, err := storage.NewFile(path, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using file storage", "path", kv.Path())
		b.KV = kv

	case storage.DriverMongo:
		repo := mongo.NewKVRepo(config, logger)
		b.KV = repo
		b.remote = repo
		b.database = repo.GetDatabase

	case storage.DriverMySQL:
		repo := mysql.NewKVRepo(config, logger)
		b.KV = repo
		b.remote = repo

	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}

	return b, nil
}

func (b *Backend) Start(ctx context.Context) error {
	if b.remote == nil {
		return nil
	}
	return b.remote.Start(ctx)
}

func (b *Backend) Stop(ctx context.Context) error {
	if b.remote == nil {
		return nil
	}
	return b.remote.Stop(ctx)
}

// Database returns the mongo database backing the KV, or nil for other drivers.
func (b *Backend) Database() *mongodriver.Database {
	if b.database == nil {
		return nil
	}
	return b.database()
}
