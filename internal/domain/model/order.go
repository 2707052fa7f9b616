package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a sales quote progressing through approval and production stages.
type Order struct {
	ID       int64
	PublicID uuid.UUID
	Number   string

	ClientID   int64
	ClientName string
	SellerID   int64
	SellerName string

	Items    []OrderItem
	Subtotal decimal.Decimal
	Taxes    decimal.Decimal
	Total    decimal.Decimal

	Status Status

	// Side-channel fields populated by specific transitions.
	PaymentStatus        *string
	RejectionReason      *string
	ReceiptURL           *string
	ProductionStartedAt  *time.Time
	ProductionFinishedAt *time.Time
	ReleasedAt           *time.Time
	ReleasedBy           *string
	QRCode               *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ID        int64
	OrderID   int64
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

// LineTotal computes quantity * unit price minus discount.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}

// ComputeTotals re-derives every item total, the subtotal and the grand total
// from the line items. Total always equals subtotal plus taxes.
func (o *Order) ComputeTotals() {
	subtotal := decimal.Zero
	for idx := range o.Items {
		o.Items[idx].Total = o.Items[idx].LineTotal()
		subtotal = subtotal.Add(o.Items[idx].Total)
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Add(o.Taxes)
}

// TransitionPatch carries the side-effect fields a transition writes onto the
// order. Nil fields are left untouched.
type TransitionPatch struct {
	PaymentStatus        *string
	RejectionReason      *string
	ReceiptURL           *string
	ProductionStartedAt  *time.Time
	ProductionFinishedAt *time.Time
	ReleasedAt           *time.Time
	ReleasedBy           *string
	QRCode               *string
}
