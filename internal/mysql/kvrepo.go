package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/appetiteclub/gourmet/internal/storage"
	"github.com/aquamarinepk/aqm"
	"github.com/go-sql-driver/mysql"
)

const (
	defaultDSN = "gourmet:gourmet@tcp(localhost:3306)/gourmet"
	tableName  = "gourmet_kv"
)

// KVRepo stores key/value pairs in a single MySQL table.
type KVRepo struct {
	db     *sql.DB
	logger aqm.Logger
	config *aqm.Config
	now    func() time.Time
}

func NewKVRepo(config *aqm.Config, logger aqm.Logger) *KVRepo {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &KVRepo{
		logger: logger,
		config: config,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// NewKVRepoWithDB wraps an already opened handle. Start is not required.
func NewKVRepoWithDB(db *sql.DB, logger aqm.Logger) *KVRepo {
	r := NewKVRepo(nil, logger)
	r.db = db
	return r
}

func (r *KVRepo) Start(ctx context.Context) error {
	dsn := defaultDSN
	if r.config != nil {
		dsn = r.config.GetStringOrDef("db.mysql.dsn", defaultDSN)
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return fmt.Errorf("invalid MySQL DSN: %w", err)
	}
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return fmt.Errorf("cannot open MySQL: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("cannot ping MySQL: %w", err)
	}

	r.db = db
	if err := r.EnsureSchema(ctx); err != nil {
		db.Close()
		return err
	}

	r.logger.Infof("Connected to MySQL: %s, database: %s", cfg.Addr, cfg.DBName)
	return nil
}

func (r *KVRepo) Stop(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("cannot close MySQL: %w", err)
	}
	r.logger.Info("Disconnected from MySQL")
	return nil
}

// EnsureSchema creates the key/value table if missing.
func (r *KVRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+tableName+` (
			k VARCHAR(191) PRIMARY KEY,
			value LONGTEXT NOT NULL,
			updated_at DATETIME(6) NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if r.db == nil {
		return nil, errors.New("mysql repo not started")
	}

	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM `+tableName+` WHERE k = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("cannot read key %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *KVRepo) Set(ctx context.Context, key string, value []byte) error {
	if r.db == nil {
		return errors.New("mysql repo not started")
	}

	query := `INSERT INTO ` + tableName + ` (k, value, updated_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)`

	if _, err := r.db.ExecContext(ctx, query, key, string(value), r.now()); err != nil {
		return fmt.Errorf("cannot write key %s: %w", key, err)
	}
	return nil
}
