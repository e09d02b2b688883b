// Package filestore persists users and orders as two JSON array documents.
// It is the fallback used when the primary database is unreachable at startup.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/umaru-jpg/luvyn/internal/domain/repository"
)

const (
	UsersFile  = "users.json"
	OrdersFile = "orders.json"
)

// Store owns both documents. Each document has its own lock so that every
// read-modify-write cycle on it is serialised within the process.
type Store struct {
	users  *document
	orders *document
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

type document struct {
	mu   sync.Mutex
	path string
}

// Open prepares dir and creates empty documents that do not exist yet.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{
		users:  &document{path: filepath.Join(dir, UsersFile)},
		orders: &document{path: filepath.Join(dir, OrdersFile)},
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}

	for _, doc := range []*document{s.users, s.orders} {
		if err := doc.ensure(); err != nil {
			return nil, err
		}
	}

	logger.Info("file store ready", slog.String("dir", dir))
	return s, nil
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s}
}

func (s *Store) Orders() repository.OrderRepository {
	return &orderRepository{store: s}
}

func (d *document) ensure() error {
	_, err := os.Stat(d.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", d.path, err)
	}
	return d.write([]byte("[]"))
}

// load decodes the whole document into dst. Callers must hold d.mu.
func (d *document) load(dst any) error {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", d.path, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", d.path, err)
	}
	return nil
}

// save encodes src and atomically replaces the document. Callers must hold d.mu.
func (d *document) save(src any) error {
	raw, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.path, err)
	}
	return d.write(raw)
}

func (d *document) write(raw []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(d.path), filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", d.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", d.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", d.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", d.path, err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("replace %s: %w", d.path, err)
	}
	return nil
}

// update runs fn under the document lock between a load and a save.
// fn returning an error aborts the save.
func update[T any](ctx context.Context, d *document, fn func([]T) ([]T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var items []T
	if err := d.load(&items); err != nil {
		return err
	}
	items, err := fn(items)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.save(items)
}

// read decodes the document under its lock.
func read[T any](ctx context.Context, d *document) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var items []T
	if err := d.load(&items); err != nil {
		return nil, err
	}
	return items, nil
}
