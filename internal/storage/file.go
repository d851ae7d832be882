package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aquamarinepk/aqm"
)

const (
	// DefaultFilePath is used when storage.file.path is not set.
	DefaultFilePath = "data/gourmet.json"

	// CorruptSuffix is appended to a snapshot that could not be decoded.
	CorruptSuffix = ".corrupt"
)

var errCorruptSnapshot = errors.New("corrupt storage snapshot")

// File keeps every key in one JSON snapshot on disk. Each Set rewrites the
// snapshot through a temp file and rename.
type File struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFile loads the snapshot at path if one exists. A snapshot that does not
// decode is moved aside to path+CorruptSuffix and the store starts empty.
func NewFile(path string, logger aqm.Logger) (*File, error) {
	if path == "" {
		path = DefaultFilePath
	}
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	f := &File{path: path, data: make(map[string]string)}

	snap, err := readSnapshot(path)
	switch {
	case errors.Is(err, errCorruptSnapshot):
		logger.Error("storage snapshot is corrupt, starting empty", "path", path, "error", err)
		if err := os.Rename(path, path+CorruptSuffix); err != nil {
			logger.Error("cannot move corrupt snapshot aside", "path", path, "error", err)
		}
		snap = nil
	case err != nil:
		return nil, fmt.Errorf("cannot read storage snapshot %s: %w", path, err)
	}
	for k, v := range snap {
		f.data[k] = v
	}
	return f, nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.data[key]
	f.data[key] = string(value)
	if err := writeSnapshot(f.path, f.data); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return fmt.Errorf("cannot write storage snapshot %s: %w", f.path, err)
	}
	return nil
}

func readSnapshot(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var snap map[string]string
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptSnapshot, err)
	}
	return snap, nil
}

func writeSnapshot(path string, snap map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	temp := path + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(temp, path)
}
