package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/andrevlins/pedidoflow/internal/domain/model"
	testhelpers "github.com/andrevlins/pedidoflow/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewDispatcherDefaults(t *testing.T) {
	disp := NewDispatcher(&testhelpers.DispatcherFacadeStub{}, &testhelpers.NotifierStub{}, time.Second, 0, 0, testLogger())
	if disp.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", disp.batchSize)
	}
	if disp.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", disp.workers)
	}
}

func TestDispatcherPublishesChanges(t *testing.T) {
	facade := &testhelpers.DispatcherFacadeStub{
		Batches: [][]model.StatusChange{{
			{OrderID: 1, Number: "PED-000001", Status: model.StatusAwaitingFinance, Actor: "Vendedor"},
			{OrderID: 2, Number: "PED-000002", Status: model.StatusReleased, Actor: "Sistema"},
		}},
	}
	notifier := &testhelpers.NotifierStub{}
	disp := NewDispatcher(facade, notifier, 10*time.Millisecond, 2, 2, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	disp.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		notifier.Lock()
		published := len(notifier.Published) >= 2
		notifier.Unlock()
		if published {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for publishing")
		case <-time.After(10 * time.Millisecond):
		}
	}

	disp.Stop()
	notifier.Lock()
	defer notifier.Unlock()
	numbers := map[string]bool{}
	for _, change := range notifier.Published {
		numbers[change.Number] = true
	}
	if !numbers["PED-000001"] || !numbers["PED-000002"] {
		t.Fatalf("expected both changes published, got %+v", notifier.Published)
	}
}

func TestDispatcherSurvivesFetchError(t *testing.T) {
	calls := 0
	facade := &testhelpers.DispatcherFacadeStub{
		BatchesFn: func(context.Context, int) ([]model.StatusChange, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("db down")
			}
			return []model.StatusChange{{OrderID: 1, Number: "PED-000001", Status: model.StatusDraft}}, nil
		},
	}
	notifier := &testhelpers.NotifierStub{}
	disp := NewDispatcher(facade, notifier, 5*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	disp.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		notifier.Lock()
		published := len(notifier.Published) > 0
		notifier.Unlock()
		if published {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for recovery")
		case <-time.After(5 * time.Millisecond):
		}
	}
	disp.Stop()
}

func TestDispatcherLogsPublishError(t *testing.T) {
	facade := &testhelpers.DispatcherFacadeStub{
		Batches: [][]model.StatusChange{{{OrderID: 1, Number: "PED-000001", Status: model.StatusDraft}}},
	}
	notifier := &testhelpers.NotifierStub{Err: errors.New("broker down")}
	disp := NewDispatcher(facade, notifier, 5*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	disp.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		notifier.Lock()
		attempted := len(notifier.Published) > 0
		notifier.Unlock()
		if attempted {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for publish attempt")
		case <-time.After(5 * time.Millisecond):
		}
	}
	disp.Stop()
}

func TestDispatcherStopWithoutStart(t *testing.T) {
	disp := NewDispatcher(&testhelpers.DispatcherFacadeStub{}, &testhelpers.NotifierStub{}, time.Second, 1, 1, testLogger())
	disp.Stop()
}
