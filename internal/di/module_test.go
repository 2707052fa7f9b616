package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/andrevlins/pedidoflow/internal/adapter/notify"
	"github.com/andrevlins/pedidoflow/internal/app"
	"github.com/andrevlins/pedidoflow/internal/config"
	"github.com/andrevlins/pedidoflow/internal/domain/repository"
	"github.com/andrevlins/pedidoflow/internal/storage/postgres"
	"github.com/andrevlins/pedidoflow/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		AuthSecret:         "secret",
		NotifyPollInterval: time.Millisecond,
		NotifyBatchSize:    1,
		WorkerPoolSize:     1,
		ShutdownTimeout:    time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	orderRepo := &test.OrderRepositoryStub{}
	historyRepo := &test.HistoryRepositoryStub{}
	notifier := &test.NotifierStub{}

	var facade *app.PipelineFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.HistoryRepository(historyRepo)),
			fx.Replace(notify.Notifier(notifier)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected pipeline facade instance")
	}
}
