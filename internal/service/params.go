package service

import (
	"github.com/glowdesk/glowdesk/internal/config"
	"github.com/glowdesk/glowdesk/internal/domain/document"
	"github.com/glowdesk/glowdesk/internal/domain/payment"
	"github.com/glowdesk/glowdesk/internal/domain/pendinginvoice"
	"github.com/glowdesk/glowdesk/internal/domain/user"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/postgres"
	"github.com/glowdesk/glowdesk/internal/publisher"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	PaymentRepo        payment.Repository
	PendingInvoiceRepo pendinginvoice.Repository
	DocumentRepo       document.Repository
	UserRepo           user.Repository

	// Publishers
	BillingPublisher publisher.BillingEventPublisher
}

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	paymentRepo payment.Repository,
	pendingInvoiceRepo pendinginvoice.Repository,
	documentRepo document.Repository,
	userRepo user.Repository,
	billingPublisher publisher.BillingEventPublisher,
) ServiceParams {
	return ServiceParams{
		Logger:             logger,
		Config:             config,
		DB:                 db,
		PaymentRepo:        paymentRepo,
		PendingInvoiceRepo: pendingInvoiceRepo,
		DocumentRepo:       documentRepo,
		UserRepo:           userRepo,
		BillingPublisher:   billingPublisher,
	}
}
