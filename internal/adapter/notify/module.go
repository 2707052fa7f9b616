package notify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/andrevlins/pedidoflow/internal/config"
)

// Module exposes the notifier implementation to the fx graph.
var Module = fx.Provide(newNotifier)

var dialBroker = Dial

type notifierParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

func newNotifier(p notifierParams) (Notifier, error) {
	if p.Config.AMQPURL == "" {
		p.Logger.Info("no broker configured, status changes go to the log only")
		return NewLogNotifier(p.Logger), nil
	}

	conn, err := dialBroker(p.Config.AMQPURL)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return conn.Close()
		},
	})
	return NewAMQPNotifier(conn, p.Logger), nil
}
