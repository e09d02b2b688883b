package di

import (
	"go.uber.org/fx"

	"github.com/umaru-jpg/luvyn/internal/app"
	"github.com/umaru-jpg/luvyn/internal/config"
	"github.com/umaru-jpg/luvyn/internal/logger"
	"github.com/umaru-jpg/luvyn/internal/metrics"
	"github.com/umaru-jpg/luvyn/internal/pkg/auth"
	"github.com/umaru-jpg/luvyn/internal/server/http/handlers"
	"github.com/umaru-jpg/luvyn/internal/server/http/router"
	"github.com/umaru-jpg/luvyn/internal/storage"
	"github.com/umaru-jpg/luvyn/internal/usecase"
	"github.com/umaru-jpg/luvyn/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		storage.Module,
		usecase.Module,
		worker.Module,
		fx.Provide(
			func(n *worker.Notifier) app.Notifier { return n },
			func(b *storage.Backend) app.BackendStatus { return b },
			func(f *app.StoreFacade) handlers.StoreFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
