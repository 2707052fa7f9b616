package di

import (
	"go.uber.org/fx"

	"github.com/andrevlins/pedidoflow/internal/adapter/notify"
	"github.com/andrevlins/pedidoflow/internal/app"
	"github.com/andrevlins/pedidoflow/internal/config"
	"github.com/andrevlins/pedidoflow/internal/logger"
	"github.com/andrevlins/pedidoflow/internal/pkg/auth"
	"github.com/andrevlins/pedidoflow/internal/server/http/handlers"
	"github.com/andrevlins/pedidoflow/internal/server/http/router"
	"github.com/andrevlins/pedidoflow/internal/storage/postgres"
	"github.com/andrevlins/pedidoflow/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(func(facade *app.PipelineFacade) handlers.PipelineFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
