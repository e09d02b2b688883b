package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/umaru-jpg/luvyn/internal/config"
	"github.com/umaru-jpg/luvyn/internal/domain/repository"
	"github.com/umaru-jpg/luvyn/internal/metrics"
)

// Module selects the backend and exposes its repositories.
var Module = fx.Options(
	fx.Provide(newSelectedBackend),
	fx.Provide(
		func(b *Backend) repository.UserRepository { return b.Users() },
		func(b *Backend) repository.OrderRepository { return b.Orders() },
	),
	fx.Invoke(registerLifecycle),
)

type backendParams struct {
	fx.In

	Ctx     context.Context
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func newSelectedBackend(p backendParams) (*Backend, error) {
	backend, err := Select(p.Ctx, Options{
		DatabaseURI:    p.Config.DatabaseURI,
		DataDir:        p.Config.DataDir,
		ConnectTimeout: p.Config.ConnectTimeout,
		StoreTimeout:   p.Config.StoreTimeout,
	}, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Metrics.SetBackend(string(backend.Kind()))
	return backend, nil
}

func registerLifecycle(lc fx.Lifecycle, backend *Backend) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			backend.Close()
			return nil
		},
	})
}
