package testutil

import (
	"context"
	"time"

	"github.com/freshcrate/freshcrate/internal/cache"
	"github.com/freshcrate/freshcrate/internal/config"
	"github.com/freshcrate/freshcrate/internal/domain/order"
	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	"github.com/freshcrate/freshcrate/internal/logger"
	"github.com/freshcrate/freshcrate/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	SubscriptionRepo subscription.Repository
	OrderRepo        order.Repository
}

// BaseServiceTestSuite provides common functionality for all service test
// suites: fresh in-memory stores, a recording pubsub, a cache, and a test
// logger per test.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	subStore  *InMemorySubscriptionStore
	ordStore  *InMemoryOrderStore
	pubsub    *InMemoryPubSub
	cache     cache.Cache
	logger    *logger.Logger
	config    *config.Configuration
	now       time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.subStore = NewInMemorySubscriptionStore()
	s.ordStore = NewInMemoryOrderStore()
	s.stores = Stores{
		SubscriptionRepo: s.subStore,
		OrderRepo:        s.ordStore,
	}
	s.pubsub = NewInMemoryPubSub()
	s.cache = cache.NewInMemoryCache()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.subStore.Clear()
	s.ordStore.Clear()
	s.pubsub.ClearMessages()
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetSubscriptionStore exposes the concrete store for failure injection.
func (s *BaseServiceTestSuite) GetSubscriptionStore() *InMemorySubscriptionStore {
	return s.subStore
}

// GetOrderStore exposes the concrete store for seeding orders and items.
func (s *BaseServiceTestSuite) GetOrderStore() *InMemoryOrderStore {
	return s.ordStore
}

func (s *BaseServiceTestSuite) GetPubSub() *InMemoryPubSub {
	return s.pubsub
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
