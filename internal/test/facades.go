package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/andrevlins/pedidoflow/internal/domain/model"
	"github.com/andrevlins/pedidoflow/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string, model.Role) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	CurrentUserFn  func(context.Context, string) (*model.User, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password, name string, role model.Role) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, name, role)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// CurrentUser resolves the user behind a token.
func (s AuthFacadeStub) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if s.CurrentUserFn != nil {
		return s.CurrentUserFn(ctx, token)
	}
	return &model.User{ID: 1, Login: "vendedor", Name: "Vendedor", Role: model.RoleSeller}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn     func(context.Context, usecase.Actor, usecase.CreateOrderInput) (*model.Order, error)
	OrdersFn     func(context.Context, usecase.Actor, model.Status) ([]model.Order, error)
	OrderFn      func(context.Context, usecase.Actor, int64) (*usecase.OrderDetail, error)
	ByPublicIDFn func(context.Context, uuid.UUID) (*usecase.OrderDetail, error)
}

// CreateOrder delegates to provided function or returns a default draft.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, actor usecase.Actor, input usecase.CreateOrderInput) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, input)
	}
	return &model.Order{ID: 1, Number: "PED-000001", Status: model.StatusDraft, SellerID: actor.UserID}, nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context, actor usecase.Actor, status model.Status) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, actor, status)
	}
	return []model.Order{{ID: 1, Number: "PED-000001", Status: model.StatusDraft}}, nil
}

// Order returns the configured order detail.
func (s OrderFacadeStub) Order(ctx context.Context, actor usecase.Actor, orderID int64) (*usecase.OrderDetail, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, actor, orderID)
	}
	return &usecase.OrderDetail{
		Order:   &model.Order{ID: orderID, Number: "PED-000001", Status: model.StatusDraft},
		History: []model.StatusHistoryEntry{{OrderID: orderID, Status: model.StatusDraft, Actor: "Vendedor", ChangedAt: time.Unix(0, 0)}},
	}, nil
}

// OrderByPublicID resolves order detail by public identifier.
func (s OrderFacadeStub) OrderByPublicID(ctx context.Context, publicID uuid.UUID) (*usecase.OrderDetail, error) {
	if s.ByPublicIDFn != nil {
		return s.ByPublicIDFn(ctx, publicID)
	}
	return &usecase.OrderDetail{
		Order: &model.Order{ID: 1, PublicID: publicID, Number: "PED-000001", Status: model.StatusProductionDone},
	}, nil
}

// TransitionFacadeStub simulates transition operations.
type TransitionFacadeStub struct {
	ApplyFn   func(context.Context, usecase.Actor, int64, usecase.TransitionInput) (*model.Order, error)
	ReleaseFn func(context.Context, uuid.UUID, string) (*model.Order, error)
}

// ApplyTransition executes configured transition handler.
func (s TransitionFacadeStub) ApplyTransition(ctx context.Context, actor usecase.Actor, orderID int64, input usecase.TransitionInput) (*model.Order, error) {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, actor, orderID, input)
	}
	return &model.Order{ID: orderID, Number: "PED-000001", Status: input.To}, nil
}

// ReleaseOrder executes configured release handler.
func (s TransitionFacadeStub) ReleaseOrder(ctx context.Context, publicID uuid.UUID, releasedBy string) (*model.Order, error) {
	if s.ReleaseFn != nil {
		return s.ReleaseFn(ctx, publicID, releasedBy)
	}
	return &model.Order{ID: 1, PublicID: publicID, Number: "PED-000001", Status: model.StatusReleased}, nil
}

// PipelineFacadeStub aggregates facade dependencies for HTTP layer tests.
type PipelineFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	TransitionFacadeStub
}

// DispatcherFacadeStub mimics dispatcher interactions with the application facade.
type DispatcherFacadeStub struct {
	Batches   [][]model.StatusChange
	BatchesFn func(context.Context, int) ([]model.StatusChange, error)

	callCount int32
}

// PendingStatusChanges returns batches from the configured queue.
func (s *DispatcherFacadeStub) PendingStatusChanges(ctx context.Context, limit int) ([]model.StatusChange, error) {
	if s.BatchesFn != nil {
		return s.BatchesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.callCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// NotifierStub records published status changes.
type NotifierStub struct {
	Err       error
	Published []model.StatusChange
	mu        sync.Mutex
}

// Lock exposes internal mutex for external synchronization.
func (s *NotifierStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *NotifierStub) Unlock() { s.mu.Unlock() }

// Publish records the change and returns the configured error.
func (s *NotifierStub) Publish(_ context.Context, change model.StatusChange) error {
	s.mu.Lock()
	s.Published = append(s.Published, change)
	s.mu.Unlock()
	return s.Err
}
