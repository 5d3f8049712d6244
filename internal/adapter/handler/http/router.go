package http

import (
	"github.com/gin-gonic/gin"
	"github.com/storewave/payrecon/internal/adapter/config"
	"github.com/storewave/payrecon/internal/core/port"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	orderHandler *OrderHandler,
	webhookHandler *WebhookHandler,
	adminHandler *AdminHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/:number", orderHandler.GetOrder)
			orders.POST("/:number/sync-payment", orderHandler.SyncPayment)
			orders.PUT("/:number/cancel", orderHandler.CancelOrder)
		}

		api.POST("/webhooks/payment", webhookHandler.PaymentCallback)

		admin := api.Group("/admin")
		{
			admin.Use(authCheck(tokenService))
			admin.PATCH("/orders/:number", adminHandler.UpdateStatus)
			admin.PATCH("/orders/:number/payment", adminHandler.OverridePayment)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
