package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/andrevlins/pedidoflow/internal/adapter/notify"
	"github.com/andrevlins/pedidoflow/internal/domain/model"
)

// NotificationFacade exposes the subset of application functionality required by the dispatcher.
type NotificationFacade interface {
	PendingStatusChanges(ctx context.Context, limit int) ([]model.StatusChange, error)
}

// Dispatcher drains the status change outbox and publishes entries concurrently.
type Dispatcher struct {
	facade       NotificationFacade
	notifier     notify.Notifier
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.StatusChange
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs the notification worker pool.
func NewDispatcher(facade NotificationFacade, notifier notify.Notifier, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Dispatcher{
		facade:       facade,
		notifier:     notifier,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.StatusChange, batchSize*workers),
	}
}

// Start launches background publishing.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}

	d.wg.Add(1)
	go d.poll(runCtx)
}

// Stop waits for all workers to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) poll(ctx context.Context) {
	defer d.wg.Done()
	defer close(d.jobs)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.fetchAndDispatch(ctx)
		}
	}
}

func (d *Dispatcher) fetchAndDispatch(ctx context.Context) {
	changes, err := d.facade.PendingStatusChanges(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("fetch pending status changes failed", slog.String("error", err.Error()))
		return
	}
	for _, change := range changes {
		select {
		case <-ctx.Done():
			return
		case d.jobs <- change:
		}
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-d.jobs:
			if !ok {
				return
			}
			if err := d.notifier.Publish(ctx, change); err != nil {
				d.logger.Error("publish status change failed",
					slog.String("order", change.Number),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
