package model

import "time"

// StatusHistoryEntry is one row of the append-only audit log of an order.
// The last entry's status always equals the order's current status.
type StatusHistoryEntry struct {
	ID        int64
	OrderID   int64
	Status    Status
	Actor     string
	Note      string
	ChangedAt time.Time

	// Notified marks the entry as consumed by the notification dispatcher.
	Notified bool
}

// StatusChange is the notification payload emitted for a history entry.
type StatusChange struct {
	OrderID   int64     `json:"order_id"`
	Number    string    `json:"number"`
	Status    Status    `json:"status"`
	Actor     string    `json:"actor"`
	Note      string    `json:"note,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}
