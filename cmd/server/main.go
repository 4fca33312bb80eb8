package main

import (
	"context"
	"net/http"
	"time"

	"github.com/freshcrate/freshcrate/internal/api"
	v1 "github.com/freshcrate/freshcrate/internal/api/v1"
	"github.com/freshcrate/freshcrate/internal/cache"
	"github.com/freshcrate/freshcrate/internal/config"
	"github.com/freshcrate/freshcrate/internal/logger"
	"github.com/freshcrate/freshcrate/internal/notifier"
	"github.com/freshcrate/freshcrate/internal/postgres"
	"github.com/freshcrate/freshcrate/internal/pubsub"
	pubsubMemory "github.com/freshcrate/freshcrate/internal/pubsub/memory"
	"github.com/freshcrate/freshcrate/internal/repository"
	"github.com/freshcrate/freshcrate/internal/service"
	"github.com/freshcrate/freshcrate/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC

	// Load .env in local development; missing file is fine
	_ = godotenv.Load()
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewClient,

			// PubSub
			pubsubMemory.NewPubSub,
			providePublisher,
			provideSubscriber,

			// Repositories
			repository.NewSubscriptionRepository,
			repository.NewOrderRepository,

			// Notification sink and consumer
			notifier.NewWebhookSink,
			provideNotificationConsumer,

			// Services
			service.NewServiceParams,
			service.NewSubscriptionService,
			service.NewSkipService,
			service.NewBillingService,

			// API
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			startNotificationConsumer,
			startServer,
		),
	)

	app.Run()
}

func providePublisher(ps pubsub.PubSub) pubsub.Publisher {
	return ps
}

func provideSubscriber(ps pubsub.PubSub) pubsub.Subscriber {
	return ps
}

func provideNotificationConsumer(
	subscriber pubsub.Subscriber,
	sink notifier.Sink,
	cfg *config.Configuration,
	log *logger.Logger,
) *notifier.Consumer {
	return notifier.NewConsumer(subscriber, sink, cfg.Notification.Topic, log)
}

func provideHandlers(
	log *logger.Logger,
	subscriptionService service.SubscriptionService,
	skipService service.SkipService,
	billingService service.BillingService,
) api.Handlers {
	return api.Handlers{
		Subscription: v1.NewSubscriptionHandler(subscriptionService, log),
		Skip:         v1.NewSkipHandler(skipService, log),
		Billing:      v1.NewBillingHandler(billingService, log),
	}
}

func startNotificationConsumer(lc fx.Lifecycle, consumer *notifier.Consumer, log *logger.Logger) {
	consumerCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := consumer.Start(consumerCtx); err != nil {
				return err
			}
			log.Info("notification consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, cfg *config.Configuration, r *gin.Engine, log *logger.Logger) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("server failed: %v", err)
				}
			}()
			log.Infow("server started", "address", cfg.Server.Address)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
