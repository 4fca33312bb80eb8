package v1

import (
	"net/http"

	"github.com/freshcrate/freshcrate/internal/api/dto"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/logger"
	"github.com/freshcrate/freshcrate/internal/service"
	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
	log     *logger.Logger
}

func NewSubscriptionHandler(service service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		log:     log,
	}
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	today, err := resolveToday(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.CreateSubscription(c.Request.Context(), req, today)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("subscription ID is required").
			WithHint("Subscription ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	today, err := resolveToday(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetSubscription(c.Request.Context(), id, today)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.Error(ierr.NewError("user_id is required").
			WithHint("Provide the user_id query parameter").
			Mark(ierr.ErrValidation))
		return
	}

	today, err := resolveToday(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ListUserSubscriptions(c.Request.Context(), userID, today)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) GetDeliverySchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("subscription ID is required").
			WithHint("Subscription ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetDeliverySchedule(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
