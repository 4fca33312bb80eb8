package api

import (
	"net/http"

	v1 "github.com/freshcrate/freshcrate/internal/api/v1"
	"github.com/freshcrate/freshcrate/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Subscription *v1.SubscriptionHandler
	Skip         *v1.SkipHandler
	Billing      *v1.BillingHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Subscription routes
	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.POST("", handlers.Subscription.CreateSubscription)
		subscriptions.GET("", handlers.Subscription.ListSubscriptions)
		subscriptions.GET("/:id", handlers.Subscription.GetSubscription)
		subscriptions.GET("/:id/schedule", handlers.Subscription.GetDeliverySchedule)
		subscriptions.GET("/:id/bill", handlers.Billing.GetSubscriptionBill)

		subscriptions.GET("/:id/skip-calendar", handlers.Skip.GetSkipCalendar)
		subscriptions.POST("/:id/skips", handlers.Skip.ConfirmSkipDays)
	}

	// Order routes
	orders := router.Group("/orders")
	{
		orders.GET("/:id/bill", handlers.Billing.GetOrderBill)
	}
}
