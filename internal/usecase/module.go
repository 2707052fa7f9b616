package usecase

import (
	"go.uber.org/fx"

	"github.com/andrevlins/pedidoflow/internal/config"
	"github.com/andrevlins/pedidoflow/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewOrderUseCase,
	newTransitionUseCase,
)

type transitionParams struct {
	fx.In

	Orders repository.OrderRepository
	Config *config.Config
}

func newTransitionUseCase(p transitionParams) *TransitionUseCase {
	return NewTransitionUseCase(p.Orders, p.Config.PublicBaseURL)
}
