package repository

import (
	"github.com/glowdesk/glowdesk/internal/domain/document"
	"github.com/glowdesk/glowdesk/internal/domain/payment"
	"github.com/glowdesk/glowdesk/internal/domain/pendinginvoice"
	"github.com/glowdesk/glowdesk/internal/domain/user"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/postgres"
	postgresRepo "github.com/glowdesk/glowdesk/internal/repository/postgres"
)

func NewPaymentRepository(client postgres.IClient, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(client, logger)
}

func NewPendingInvoiceRepository(client postgres.IClient, logger *logger.Logger) pendinginvoice.Repository {
	return postgresRepo.NewPendingInvoiceRepository(client, logger)
}

func NewDocumentRepository(client postgres.IClient, logger *logger.Logger) document.Repository {
	return postgresRepo.NewDocumentRepository(client, logger)
}

func NewUserRepository(client postgres.IClient, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(client, logger)
}
