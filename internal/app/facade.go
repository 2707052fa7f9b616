package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrevlins/pedidoflow/internal/domain/model"
	"github.com/andrevlins/pedidoflow/internal/usecase"
)

// PipelineFacade aggregates the use cases behind a single application surface
// consumed by the HTTP layer and the notification dispatcher.
type PipelineFacade struct {
	auth        *usecase.AuthUseCase
	orders      *usecase.OrderUseCase
	transitions *usecase.TransitionUseCase
}

func NewPipelineFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, transitions *usecase.TransitionUseCase) *PipelineFacade {
	return &PipelineFacade{auth: auth, orders: orders, transitions: transitions}
}

func (f *PipelineFacade) Register(ctx context.Context, login, password, name string, role model.Role) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, name, role)
	return token, err
}

func (f *PipelineFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *PipelineFacade) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	return f.auth.CurrentUser(ctx, token)
}

func (f *PipelineFacade) CreateOrder(ctx context.Context, actor usecase.Actor, input usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.CreateDraft(ctx, actor, input)
}

func (f *PipelineFacade) Orders(ctx context.Context, actor usecase.Actor, status model.Status) ([]model.Order, error) {
	return f.orders.List(ctx, actor, status)
}

func (f *PipelineFacade) Order(ctx context.Context, actor usecase.Actor, orderID int64) (*usecase.OrderDetail, error) {
	return f.orders.Get(ctx, actor, orderID)
}

func (f *PipelineFacade) OrderByPublicID(ctx context.Context, publicID uuid.UUID) (*usecase.OrderDetail, error) {
	return f.orders.GetByPublicID(ctx, publicID)
}

func (f *PipelineFacade) ApplyTransition(ctx context.Context, actor usecase.Actor, orderID int64, input usecase.TransitionInput) (*model.Order, error) {
	return f.transitions.Apply(ctx, actor, orderID, input)
}

func (f *PipelineFacade) ReleaseOrder(ctx context.Context, publicID uuid.UUID, releasedBy string) (*model.Order, error) {
	return f.transitions.Release(ctx, publicID, releasedBy)
}

func (f *PipelineFacade) PendingStatusChanges(ctx context.Context, limit int) ([]model.StatusChange, error) {
	return f.orders.PendingNotifications(ctx, limit)
}
