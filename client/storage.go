package client

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is one versioned value in local storage. The timestamp decides which
// of two concurrent writes is newer; readers must never adopt an entry whose
// timestamp is not strictly greater than what they already applied.
type Entry struct {
	UpdatedAt time.Time       `json:"updated_at"`
	Data      json.RawMessage `json:"data"`
}

// Storage is the local persistence adapter behind the cart: a typed
// get/set/subscribe interface instead of ambient global state.
type Storage interface {
	Get(key string) (Entry, bool, error)
	Set(key string, e Entry) error
	// Subscribe delivers entries written after the subscription, including
	// writes from other processes sharing the same backing store. The second
	// return value cancels the subscription.
	Subscribe(key string) (<-chan Entry, func())
}

// FileStore persists one JSON file per key under dir. Writes go through a
// temp file + rename so readers never observe a torn entry.
type FileStore struct {
	dir string

	mu   sync.Mutex
	subs map[string][]chan Entry
	seen map[string]time.Time
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{
		dir:  dir,
		subs: make(map[string][]chan Entry),
		seen: make(map[string]time.Time),
	}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

func (fs *FileStore) Get(key string) (Entry, bool, error) {
	b, err := os.ReadFile(fs.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (fs *FileStore) Set(key string, e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	tmp := fs.path(key) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, fs.path(key)); err != nil {
		return err
	}
	fs.notify(key, e)
	return nil
}

func (fs *FileStore) Subscribe(key string) (<-chan Entry, func()) {
	ch := make(chan Entry, 8)
	fs.mu.Lock()
	fs.subs[key] = append(fs.subs[key], ch)
	fs.mu.Unlock()

	cancel := func() {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		list := fs.subs[key]
		for i, c := range list {
			if c == ch {
				fs.subs[key] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

func (fs *FileStore) notify(key string, e Entry) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !e.UpdatedAt.After(fs.seen[key]) {
		return
	}
	fs.seen[key] = e.UpdatedAt
	for _, ch := range fs.subs[key] {
		select {
		case ch <- e:
		default: // slow subscriber, it will catch up on the next write
		}
	}
}

// Watch polls the backing files so writes from another process surface
// through Subscribe. Runs until ctx is cancelled.
func (fs *FileStore) Watch(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fs.scan()
		}
	}
}

func (fs *FileStore) scan() {
	fs.mu.Lock()
	keys := make([]string, 0, len(fs.subs))
	for k := range fs.subs {
		keys = append(keys, k)
	}
	fs.mu.Unlock()

	for _, k := range keys {
		e, ok, err := fs.Get(k)
		if err != nil || !ok {
			continue
		}
		fs.notify(k, e)
	}
}
