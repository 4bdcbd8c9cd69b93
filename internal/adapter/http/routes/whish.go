package routes

import (
	"payment_relay/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathWhish = "/whish"
)

func addPingRoutes(router *gin.Engine, health *handlers.HealthHandler) {
	router.GET("/", health.Banner)
	router.GET("/health", health.Health)
}

func addWhishRoutes(router *gin.Engine, h *handlers.PaymentHandler, rateLimit, callbackRecovery gin.HandlerFunc) {
	whish := router.Group(PathWhish)
	{
		whish.POST("/create", rateLimit, h.CreatePayment)
		whish.GET("/callback", callbackRecovery, h.Callback)
		whish.GET("/status", rateLimit, h.StatusGet)
		whish.POST("/status", rateLimit, h.StatusPost)
		whish.GET("/balance", h.Balance)
	}
}
