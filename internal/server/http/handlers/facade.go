package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrevlins/pedidoflow/internal/domain/model"
	"github.com/andrevlins/pedidoflow/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, name string, role model.Role) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, actor usecase.Actor, input usecase.CreateOrderInput) (*model.Order, error)
	Orders(ctx context.Context, actor usecase.Actor, status model.Status) ([]model.Order, error)
	Order(ctx context.Context, actor usecase.Actor, orderID int64) (*usecase.OrderDetail, error)
	OrderByPublicID(ctx context.Context, publicID uuid.UUID) (*usecase.OrderDetail, error)
}

// TransitionFacade provides status change operations.
type TransitionFacade interface {
	ApplyTransition(ctx context.Context, actor usecase.Actor, orderID int64, input usecase.TransitionInput) (*model.Order, error)
	ReleaseOrder(ctx context.Context, publicID uuid.UUID, releasedBy string) (*model.Order, error)
}

// PipelineFacade aggregates the full set of operations used across handlers.
type PipelineFacade interface {
	AuthFacade
	OrderFacade
	TransitionFacade
}
