package repository

import (
	"context"

	"github.com/andrevlins/pedidoflow/internal/domain/model"
)

// HistoryRepository provides access to the append-only status audit log.
type HistoryRepository interface {
	ListByOrder(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error)
	// SelectBatchForNotification claims up to limit unnotified entries,
	// marking them notified in the same transaction so concurrent
	// dispatchers never deliver the same entry twice.
	SelectBatchForNotification(ctx context.Context, limit int) ([]model.StatusChange, error)
}
