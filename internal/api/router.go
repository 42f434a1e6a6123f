package api

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/glowdesk/glowdesk/internal/api/v1"
	"github.com/glowdesk/glowdesk/internal/auth"
	"github.com/glowdesk/glowdesk/internal/config"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/rest/middleware"
	"github.com/glowdesk/glowdesk/internal/types"
)

type Handlers struct {
	Health         *v1.HealthHandler
	Payment        *v1.PaymentHandler
	PendingInvoice *v1.PendingInvoiceHandler
	Invoice        *v1.InvoiceHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, resolver auth.RoleResolver, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.RunModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	v1Group.Use(middleware.AuthenticateMiddleware(cfg, resolver, log))
	registerV1Routes(v1Group, handlers)

	// cron routes are called by the scheduler, not end users
	cron := router.Group("/cron")
	{
		cron.POST("/payments/reconcile-overdue", handlers.Payment.ReconcileOverdue)
	}

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Payment routes
	payments := router.Group("/payments")
	{
		payments.GET("", handlers.Payment.ListPayments)
		payments.GET("/:id", handlers.Payment.GetPayment)
		payments.POST("/:id/pay", handlers.Payment.MarkPaid)
		payments.POST("/:id/unpay", handlers.Payment.MarkUnpaid)
		payments.DELETE("/:id", handlers.Payment.DeletePayment)
	}

	// Per-client views
	clients := router.Group("/clients")
	{
		clients.GET("/:id/billing-summary", handlers.Payment.GetBillingSummary)
		clients.GET("/:id/pending-invoices", handlers.PendingInvoice.ListOpenForClient)
		clients.GET("/:id/invoice-drafts/first", handlers.Invoice.DraftFirstInvoice)
		clients.GET("/:id/invoice-drafts/full", handlers.Invoice.DraftFullInvoice)
	}

	// Commitment routes
	pendingInvoices := router.Group("/pending-invoices")
	{
		pendingInvoices.GET("/:id", handlers.PendingInvoice.GetPendingInvoice)
		pendingInvoices.GET("/:id/invoice-drafts/final", handlers.Invoice.DraftFinalInvoice)
	}

	// Invoice bridge routes
	invoices := router.Group("/invoices")
	{
		invoices.POST("/issued", handlers.Invoice.RecordIssuedInvoice)
	}

	// Document linkage
	documents := router.Group("/documents")
	{
		documents.GET("/:id/counterpart", handlers.Invoice.GetCounterpart)
	}
}
