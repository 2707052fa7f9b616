package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/andrevlins/pedidoflow/internal/server/http/handlers"
	"github.com/andrevlins/pedidoflow/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PipelineFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	transitionHandler := handlers.NewTransitionHandler(facade)
	qrHandler := handlers.NewQRHandler(facade, facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/transitions", transitionHandler.Apply)

	// The QR page is deliberately unauthenticated: the client holding the
	// printed code tracks and releases the order without an account.
	qr := engine.Group("/qr")
	qr.GET("/:publicID", qrHandler.Show)
	qr.POST("/:publicID/release", qrHandler.Release)

	return engine
}
