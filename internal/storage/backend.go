// Package storage chooses the persistence backend once at startup.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/umaru-jpg/luvyn/internal/domain/repository"
	"github.com/umaru-jpg/luvyn/internal/storage/filestore"
	"github.com/umaru-jpg/luvyn/internal/storage/postgres"
)

// Kind names a physical backend.
type Kind string

const (
	KindPostgres Kind = "postgres"
	KindFile     Kind = "file"
)

// Options drive backend selection.
type Options struct {
	DatabaseURI    string
	DataDir        string
	ConnectTimeout time.Duration
	StoreTimeout   time.Duration
}

type primary interface {
	repository.Factory
	HealthCheck(ctx context.Context) error
	Close()
}

var openPrimary = func(ctx context.Context, dsn string, logger *slog.Logger) (primary, error) {
	return postgres.New(ctx, dsn, logger)
}

var openFallback = func(dir string, logger *slog.Logger) (repository.Factory, error) {
	return filestore.Open(dir, logger)
}

// Backend is the storage chosen for the lifetime of the process.
type Backend struct {
	kind   Kind
	users  repository.UserRepository
	orders repository.OrderRepository
	db     primary
}

// Select tries the primary database once, bounded by ConnectTimeout, and
// falls back to the file store when it is not configured or unreachable.
// Only a failure to open the file store is returned as an error.
func Select(ctx context.Context, opts Options, logger *slog.Logger) (*Backend, error) {
	if opts.DatabaseURI != "" {
		connectCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
		db, err := openPrimary(connectCtx, opts.DatabaseURI, logger)
		cancel()
		if err == nil {
			logger.Info("storage backend selected", slog.String("backend", string(KindPostgres)))
			return newBackend(KindPostgres, db, db, opts.StoreTimeout), nil
		}
		logger.Warn("primary database unavailable, falling back to file store",
			slog.String("error", err.Error()),
			slog.String("data_dir", opts.DataDir),
		)
	}

	files, err := openFallback(opts.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("open file store: %w", err)
	}
	logger.Info("storage backend selected", slog.String("backend", string(KindFile)))
	return newBackend(KindFile, files, nil, opts.StoreTimeout), nil
}

func newBackend(kind Kind, factory repository.Factory, db primary, timeout time.Duration) *Backend {
	return &Backend{
		kind:   kind,
		users:  &timeoutUsers{next: factory.Users(), timeout: timeout},
		orders: &timeoutOrders{next: factory.Orders(), timeout: timeout},
		db:     db,
	}
}

func (b *Backend) Kind() Kind {
	return b.kind
}

func (b *Backend) Users() repository.UserRepository {
	return b.users
}

func (b *Backend) Orders() repository.OrderRepository {
	return b.orders
}

// HealthCheck pings the database; the file store is always considered healthy.
func (b *Backend) HealthCheck(ctx context.Context) error {
	if b.db == nil {
		return nil
	}
	return b.db.HealthCheck(ctx)
}

// Close releases the database pool, if any.
func (b *Backend) Close() {
	if b.db != nil {
		b.db.Close()
	}
}
