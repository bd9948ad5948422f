package sessionstorage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// fileRecord is the on-disk JSON envelope for one session.
type fileRecord struct {
	Data    map[string]any `json:"data"`
	Expires time.Time      `json:"expires,omitzero"`
}

// FileStore implements Store with one JSON file per session under a
// directory. Values must be JSON-serializable; numbers round-trip as
// float64.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed session store rooted at dir, creating
// the directory if needed. Session files are written with 0600 permissions.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("session file store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session file store: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// path maps an identifier to its file. Identifiers are store-generated UUIDs;
// anything else is rejected before touching the filesystem so a forged cookie
// value cannot traverse paths.
func (f *FileStore) path(id string) string {
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return filepath.Join(f.dir, id+".json")
}

// CreateData writes a new session file under a fresh identifier.
func (f *FileStore) CreateData(ctx context.Context, data map[string]any, expires time.Time) (string, error) {
	payload, err := json.Marshal(fileRecord{Data: copyData(data), Expires: expires})
	if err != nil {
		return "", fmt.Errorf("session file store: encode: %w", err)
	}

	for {
		id := uuid.NewString()
		file, err := os.OpenFile(filepath.Join(f.dir, id+".json"), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("session file store: create: %w", err)
		}

		if _, err := file.Write(payload); err != nil {
			_ = file.Close()
			return "", fmt.Errorf("session file store: write: %w", err)
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("session file store: close: %w", err)
		}
		return id, nil
	}
}

// ReadData loads the session file, or returns nil when it is missing, has an
// invalid identifier, or has expired. Expired files are removed on read.
func (f *FileStore) ReadData(ctx context.Context, id string) (map[string]any, error) {
	path := f.path(id)
	if path == "" {
		return nil, nil
	}

	payload, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session file store: read: %w", err)
	}

	var record fileRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("session file store: decode: %w", err)
	}

	if !record.Expires.IsZero() && time.Now().After(record.Expires) {
		_ = os.Remove(path)
		return nil, nil
	}

	if record.Data == nil {
		record.Data = make(map[string]any)
	}
	return record.Data, nil
}

// UpdateData overwrites the session file with the full new mapping.
func (f *FileStore) UpdateData(ctx context.Context, id string, data map[string]any, expires time.Time) error {
	path := f.path(id)
	if path == "" {
		return fmt.Errorf("session file store: invalid id %q", id)
	}

	payload, err := json.Marshal(fileRecord{Data: copyData(data), Expires: expires})
	if err != nil {
		return fmt.Errorf("session file store: encode: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("session file store: write: %w", err)
	}
	return nil
}

// DeleteData removes the session file. Missing files and invalid identifiers
// are no-ops.
func (f *FileStore) DeleteData(ctx context.Context, id string) error {
	path := f.path(id)
	if path == "" {
		return nil
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session file store: delete: %w", err)
	}
	return nil
}

// DeleteExpired scans the directory and removes expired session files,
// returning how many were dropped.
func (f *FileStore) DeleteExpired(ctx context.Context) (int64, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0, fmt.Errorf("session file store: scan: %w", err)
	}

	now := time.Now()
	var deleted int64
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(f.dir, entry.Name())
		payload, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var record fileRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			continue
		}

		if !record.Expires.IsZero() && now.After(record.Expires) {
			if err := os.Remove(path); err == nil {
				deleted++
			}
		}
	}

	return deleted, nil
}
