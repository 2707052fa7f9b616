package test

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/andrevlins/pedidoflow/internal/domain/errors"
	"github.com/andrevlins/pedidoflow/internal/domain/model"
	"github.com/andrevlins/pedidoflow/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash, name string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Name: name, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub delegates order operations to overridable functions.
type OrderRepositoryStub struct {
	CreateDraftFn     func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn         func(context.Context, int64) (*model.Order, error)
	GetByPublicIDFn   func(context.Context, uuid.UUID) (*model.Order, error)
	ListFn            func(context.Context, repository.OrderFilter) ([]model.Order, error)
	ApplyTransitionFn func(context.Context, int64, model.Status, model.Status, model.TransitionPatch, string, string) (*model.Order, error)
}

// CreateDraft persists the draft via override or assigns defaults.
func (s *OrderRepositoryStub) CreateDraft(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateDraftFn != nil {
		return s.CreateDraftFn(ctx, order)
	}
	order.ID = 1
	order.PublicID = uuid.New()
	order.Number = "PED-000001"
	order.Status = model.StatusDraft
	return order, nil
}

// GetByID returns the configured order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// GetByPublicID returns the configured order or not found.
func (s *OrderRepositoryStub) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*model.Order, error) {
	if s.GetByPublicIDFn != nil {
		return s.GetByPublicIDFn(ctx, publicID)
	}
	return nil, domainErrors.ErrNotFound
}

// List returns the configured result set.
func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return nil, nil
}

// ApplyTransition delegates to the override or reports a conflict.
func (s *OrderRepositoryStub) ApplyTransition(ctx context.Context, orderID int64, from, to model.Status, patch model.TransitionPatch, actor, note string) (*model.Order, error) {
	if s.ApplyTransitionFn != nil {
		return s.ApplyTransitionFn(ctx, orderID, from, to, patch, actor, note)
	}
	return nil, domainErrors.ErrConflict
}

// HistoryRepositoryStub serves status history for tests.
type HistoryRepositoryStub struct {
	Entries []model.StatusHistoryEntry
	Changes []model.StatusChange
	Err     error
}

// ListByOrder returns the configured entries.
func (s *HistoryRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Entries, nil
}

// SelectBatchForNotification returns the configured changes once.
func (s *HistoryRepositoryStub) SelectBatchForNotification(ctx context.Context, limit int) ([]model.StatusChange, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	changes := s.Changes
	s.Changes = nil
	return changes, nil
}

var _ repository.UserRepository = (*UserRepositoryStub)(nil)
var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)
var _ repository.HistoryRepository = (*HistoryRepositoryStub)(nil)
