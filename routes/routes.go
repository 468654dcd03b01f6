package routes

import (
	"net/http"
	"time"

	"beresin/handlers"
	"beresin/middleware"
	"beresin/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints.
func RegisterRoutes(
	router *gin.Engine,
	orderHandler *handlers.OrderHandler,
	paymentHandler *handlers.PaymentHandler,
	userHandler *handlers.UserHandler,
) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(router)

	payments := router.Group("/api/payments")
	{
		// The gateway authenticates by payload signature, not bearer token.
		payments.POST("/notification", paymentHandler.NotificationHandler)

		protected := payments.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("/transaction", paymentHandler.CreateTransactionHandler)
	}

	orders := router.Group("/api/orders")
	{
		orders.Use(middleware.JWTAuthMiddleware())
		orders.POST("/claim", orderHandler.ClaimOrderHandler)
	}

	users := router.Group("/api/users")
	{
		users.Use(middleware.JWTAuthMiddleware())
		users.POST("/upgrade-role", userHandler.UpgradeRoleHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}
