package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrevlins/pedidoflow/internal/usecase"
)

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateOrderRequest describes the draft order payload.
type CreateOrderRequest struct {
	ClientID   int64              `json:"client_id"`
	ClientName string             `json:"client_name"`
	Taxes      decimal.Decimal    `json:"taxes"`
	Items      []OrderItemRequest `json:"items"`
}

// OrderItemResponse is one rendered order line.
type OrderItemResponse struct {
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// OrderResponse is the list rendering of an order.
type OrderResponse struct {
	ID          int64           `json:"id"`
	PublicID    string          `json:"public_id"`
	Number      string          `json:"number"`
	ClientName  string          `json:"client_name"`
	SellerName  string          `json:"seller_name"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"status_label"`
	StatusColor string          `json:"status_color"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Taxes       decimal.Decimal `json:"taxes"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	PaymentStatus      *string    `json:"payment_status,omitempty"`
	RejectionReason    *string    `json:"rejection_reason,omitempty"`
	ReceiptURL         *string    `json:"receipt_url,omitempty"`
	ProductionStarted  *time.Time `json:"production_started_at,omitempty"`
	ProductionFinished *time.Time `json:"production_finished_at,omitempty"`
	ReleasedAt         *time.Time `json:"released_at,omitempty"`
	ReleasedBy         *string    `json:"released_by,omitempty"`
	QRCode             *string    `json:"qr_code,omitempty"`

	AllowedTransitions []string `json:"allowed_transitions,omitempty"`
}

// OrderDetailResponse extends the order rendering with items, progress view
// and the full status timeline.
type OrderDetailResponse struct {
	OrderResponse

	Items    []OrderItemResponse    `json:"items"`
	Pipeline usecase.PipelineView   `json:"pipeline"`
	Timeline []usecase.TimelineItem `json:"timeline"`
}

// PublicOrderResponse is the unauthenticated QR page rendering. It exposes
// only what the client scanning the code needs to see.
type PublicOrderResponse struct {
	Number      string               `json:"number"`
	ClientName  string               `json:"client_name"`
	Status      string               `json:"status"`
	StatusLabel string               `json:"status_label"`
	StatusColor string               `json:"status_color"`
	Pipeline    usecase.PipelineView `json:"pipeline"`
	ReleasedAt  *time.Time           `json:"released_at,omitempty"`
	ReleasedBy  *string              `json:"released_by,omitempty"`
}
