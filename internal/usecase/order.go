package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/andrevlins/pedidoflow/internal/domain/errors"
	"github.com/andrevlins/pedidoflow/internal/domain/model"
	"github.com/andrevlins/pedidoflow/internal/domain/repository"
)

// CreateOrderItem is one requested line of a new draft.
type CreateOrderItem struct {
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// CreateOrderInput is the payload for a new draft order.
type CreateOrderInput struct {
	ClientID   int64
	ClientName string
	Items      []CreateOrderItem
	Taxes      decimal.Decimal
}

// OrderDetail bundles an order with its audit trail for detail views.
type OrderDetail struct {
	Order   *model.Order
	History []model.StatusHistoryEntry
}

// OrderUseCase encapsulates order lifecycle logic outside of transitions.
type OrderUseCase struct {
	orders  repository.OrderRepository
	history repository.HistoryRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, history repository.HistoryRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, history: history}
}

// CreateDraft validates the payload, derives totals from the line items and
// persists a new order in rascunho on behalf of the seller.
func (u *OrderUseCase) CreateDraft(ctx context.Context, actor Actor, input CreateOrderInput) (*model.Order, error) {
	if actor.Role != model.RoleSeller {
		return nil, domainErrors.ErrForbiddenTransition
	}
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	order := &model.Order{
		ClientID:   input.ClientID,
		ClientName: strings.TrimSpace(input.ClientName),
		SellerID:   actor.UserID,
		SellerName: actor.Name,
		Status:     model.StatusDraft,
		Taxes:      input.Taxes,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, model.OrderItem{
			Product:   strings.TrimSpace(item.Product),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		})
	}
	order.ComputeTotals()

	return u.orders.CreateDraft(ctx, order)
}

// List returns orders visible to the actor: sellers see their own orders,
// every other role sees all. An optional status narrows the result.
func (u *OrderUseCase) List(ctx context.Context, actor Actor, status model.Status) ([]model.Order, error) {
	if status != "" && !status.Valid() {
		return nil, domainErrors.ErrInvalidOrder
	}

	filter := repository.OrderFilter{Status: status}
	if actor.Role == model.RoleSeller {
		filter.SellerID = actor.UserID
	}
	return u.orders.List(ctx, filter)
}

// Get returns the order with its full status history.
func (u *OrderUseCase) Get(ctx context.Context, actor Actor, orderID int64) (*OrderDetail, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role == model.RoleSeller && order.SellerID != actor.UserID {
		return nil, domainErrors.ErrNotFound
	}

	history, err := u.history.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: order, History: history}, nil
}

// GetByPublicID serves the unauthenticated QR page.
func (u *OrderUseCase) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*OrderDetail, error) {
	order, err := u.orders.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	history, err := u.history.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: order, History: history}, nil
}

// PendingNotifications claims the next outbox batch for the dispatcher.
func (u *OrderUseCase) PendingNotifications(ctx context.Context, limit int) ([]model.StatusChange, error) {
	return u.history.SelectBatchForNotification(ctx, limit)
}

func validateOrderInput(input CreateOrderInput) error {
	if strings.TrimSpace(input.ClientName) == "" {
		return domainErrors.ErrInvalidOrder
	}
	if len(input.Items) < 1 || len(input.Items) > 50 {
		return domainErrors.ErrInvalidOrder
	}
	if input.Taxes.IsNegative() {
		return domainErrors.ErrInvalidOrder
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.Product) == "" {
			return domainErrors.ErrInvalidOrder
		}
		if item.Quantity < 1 {
			return domainErrors.ErrInvalidOrder
		}
		if item.UnitPrice.IsNegative() || item.Discount.IsNegative() {
			return domainErrors.ErrInvalidOrder
		}
		if item.Discount.GreaterThan(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))) {
			return domainErrors.ErrInvalidOrder
		}
	}
	return nil
}
