package usecase

import (
	"go.uber.org/fx"

	"github.com/umaru-jpg/luvyn/internal/config"
	"github.com/umaru-jpg/luvyn/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewValidator,
	NewAuthUseCase,
	newOrderUseCase,
)

type orderParams struct {
	fx.In

	Orders    repository.OrderRepository
	Validator *Validator
	Config    *config.Config
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Validator, p.Config.InitialOrderStatus)
}
