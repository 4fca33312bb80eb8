package v1

import (
	"net/http"

	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/logger"
	"github.com/freshcrate/freshcrate/internal/service"
	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{
		service: service,
		log:     log,
	}
}

func (h *BillingHandler) GetSubscriptionBill(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("subscription ID is required").
			WithHint("Subscription ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetSubscriptionBill(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) GetOrderBill(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("order ID is required").
			WithHint("Order ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetOrderBill(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
