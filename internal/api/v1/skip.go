package v1

import (
	"net/http"

	"github.com/freshcrate/freshcrate/internal/api/dto"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/logger"
	"github.com/freshcrate/freshcrate/internal/service"
	"github.com/gin-gonic/gin"
)

type SkipHandler struct {
	service service.SkipService
	log     *logger.Logger
}

func NewSkipHandler(service service.SkipService, log *logger.Logger) *SkipHandler {
	return &SkipHandler{
		service: service,
		log:     log,
	}
}

func (h *SkipHandler) GetSkipCalendar(c *gin.Context) {
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

	resp, err := h.service.GetSkipCalendar(c.Request.Context(), id, today)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SkipHandler) ConfirmSkipDays(c *gin.Context) {
	var req dto.ConfirmSkipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	// the path owns the subscription
	req.SubscriptionID = c.Param("id")

	today, err := resolveToday(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ConfirmSkipDays(c.Request.Context(), req, today)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
