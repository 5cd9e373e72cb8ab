package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fileSuffix = ".session.json"

// fileEnvelope is the on-disk form: the record plus its own expiry so
// the sweep does not depend on filesystem timestamps.
type fileEnvelope struct {
	Record    *Record   `json:"record"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileStore implements Store with one JSON file per session under the
// configured storage path. Session IDs are URL-safe base64 and used as
// file names directly.
type FileStore struct {
	dir    string
	ticker *time.Ticker
	done   chan struct{}
}

// NewFileStore creates the storage directory if needed and returns a
// file-backed store.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("session: file store requires a storage path")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, done: make(chan struct{})}, nil
}

// NewFileStoreFromConfig builds a file store on Config.StoragePath and,
// when Config.CleanupInterval is positive, starts a periodic sweep of
// expired records.
func NewFileStoreFromConfig(cfg Config) (*FileStore, error) {
	store, err := NewFileStore(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	if cfg.CleanupInterval > 0 {
		store.ticker = time.NewTicker(cfg.CleanupInterval)
		go store.cleanupLoop()
	}

	return store, nil
}

func (f *FileStore) Load(ctx context.Context, id string) (*Record, error) {
	path, err := f.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil || env.Record == nil {
		return nil, ErrInvalidRecord
	}

	if time.Now().After(env.ExpiresAt) {
		_ = os.Remove(path)
		return nil, ErrSessionExpired
	}

	return env.Record, nil
}

func (f *FileStore) Save(ctx context.Context, id string, rec *Record, ttl time.Duration) error {
	if rec == nil {
		return ErrInvalidRecord
	}

	path, err := f.path(id)
	if err != nil {
		return err
	}

	data, err := json.Marshal(fileEnvelope{Record: rec, ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}

	// Write-then-rename keeps a concurrent reader from seeing a torn
	// record.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (f *FileStore) Delete(ctx context.Context, id string) error {
	path, err := f.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (f *FileStore) DeleteExpired(ctx context.Context) error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}

		path := filepath.Join(f.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var env fileEnvelope
		if err := json.Unmarshal(data, &env); err != nil || now.After(env.ExpiresAt) {
			_ = os.Remove(path)
		}
	}
	return nil
}

// Close stops the cleanup goroutine if one is running.
func (f *FileStore) Close() error {
	if f.ticker != nil {
		f.ticker.Stop()
		close(f.done)
	}
	return nil
}

func (f *FileStore) cleanupLoop() {
	for {
		select {
		case <-f.ticker.C:
			_ = f.DeleteExpired(context.Background())
		case <-f.done:
			return
		}
	}
}

// path validates that the ID cannot escape the storage directory.
func (f *FileStore) path(id string) (string, error) {
	if id == "" {
		return "", ErrSessionNotFound
	}
	if _, err := base64.RawURLEncoding.DecodeString(id); err != nil {
		return "", ErrSessionNotFound
	}
	return filepath.Join(f.dir, id+fileSuffix), nil
}
