package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrevlins/pedidoflow/internal/domain/model"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	// SellerID restricts results to orders created by the seller when > 0.
	SellerID int64
	// Status restricts results to a single status when non-empty.
	Status model.Status
}

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// CreateDraft persists a new order in rascunho together with its items
	// and the initial history entry, assigning id, public id and number.
	CreateDraft(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	// ApplyTransition updates the order status and side-effect fields and
	// appends the history entry inside a single transaction. The update is
	// conditional on the order still being in `from`; otherwise ErrConflict.
	ApplyTransition(ctx context.Context, orderID int64, from, to model.Status, patch model.TransitionPatch, actor, note string) (*model.Order, error)
}
