package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/glowdesk/glowdesk/internal/cache"
	"github.com/glowdesk/glowdesk/internal/config"
	"github.com/glowdesk/glowdesk/internal/domain/document"
	"github.com/glowdesk/glowdesk/internal/domain/payment"
	"github.com/glowdesk/glowdesk/internal/domain/pendinginvoice"
	"github.com/glowdesk/glowdesk/internal/domain/user"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/postgres"
	"github.com/glowdesk/glowdesk/internal/publisher"
	"github.com/glowdesk/glowdesk/internal/types"
	"github.com/glowdesk/glowdesk/internal/validator"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	PaymentRepo        payment.Repository
	PendingInvoiceRepo pendinginvoice.Repository
	DocumentRepo       document.Repository
	UserRepo           user.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	publisher *InMemoryBillingPublisher
	db        postgres.IClient
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

	cache.Initialize(s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		PaymentRepo:        NewInMemoryPaymentStore(),
		PendingInvoiceRepo: NewInMemoryPendingInvoiceStore(),
		DocumentRepo:       NewInMemoryDocumentStore(),
		UserRepo:           NewInMemoryUserStore(),
	}
	s.db = NewMockPostgresClient(s.logger)
	s.publisher = NewInMemoryBillingPublisher()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
	s.stores.PendingInvoiceRepo.(*InMemoryPendingInvoiceStore).Clear()
	s.stores.DocumentRepo.(*InMemoryDocumentStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.publisher.Clear()
}

// ClearStores resets all repositories mid-test
func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// SetContext replaces the test context, for tests switching identities
func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetPublisher returns the capturing billing event publisher
func (s *BaseServiceTestSuite) GetPublisher() publisher.BillingEventPublisher {
	return s.publisher
}

// GetCapturedEvents returns the billing events published so far
func (s *BaseServiceTestSuite) GetCapturedEvents() []*types.BillingEvent {
	return s.publisher.GetEvents()
}

// GetCapturedEventsNamed returns the published events with the given name
func (s *BaseServiceTestSuite) GetCapturedEventsNamed(name types.BillingEventName) []*types.BillingEvent {
	return s.publisher.EventsNamed(name)
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
