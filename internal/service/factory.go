package service

import (
	"github.com/freshcrate/freshcrate/internal/cache"
	"github.com/freshcrate/freshcrate/internal/config"
	"github.com/freshcrate/freshcrate/internal/domain/order"
	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	"github.com/freshcrate/freshcrate/internal/logger"
	"github.com/freshcrate/freshcrate/internal/pubsub"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	// Repositories
	SubRepo   subscription.Repository
	OrderRepo order.Repository

	// Publisher for skip-commit notifications
	Publisher pubsub.Publisher
}

// NewServiceParams assembles the common service dependencies for injection
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	subRepo subscription.Repository,
	orderRepo order.Repository,
	publisher pubsub.Publisher,
) ServiceParams {
	return ServiceParams{
		Logger:    logger,
		Config:    config,
		Cache:     cache,
		SubRepo:   subRepo,
		OrderRepo: orderRepo,
		Publisher: publisher,
	}
}
