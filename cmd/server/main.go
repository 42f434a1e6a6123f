package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/glowdesk/glowdesk/internal/api"
	v1 "github.com/glowdesk/glowdesk/internal/api/v1"
	"github.com/glowdesk/glowdesk/internal/auth"
	"github.com/glowdesk/glowdesk/internal/cache"
	"github.com/glowdesk/glowdesk/internal/config"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/postgres"
	"github.com/glowdesk/glowdesk/internal/publisher"
	pubsubmemory "github.com/glowdesk/glowdesk/internal/pubsub/memory"
	"github.com/glowdesk/glowdesk/internal/repository"
	"github.com/glowdesk/glowdesk/internal/service"
	"github.com/glowdesk/glowdesk/internal/validator"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Postgres
			postgres.NewDB,
			postgres.NewClient,

			// PubSub and billing event publisher
			pubsubmemory.NewPubSub,
			publisher.NewPublisher,

			// Repositories
			repository.NewPaymentRepository,
			repository.NewPendingInvoiceRepository,
			repository.NewDocumentRepository,
			repository.NewUserRepository,

			// Auth
			auth.NewRoleResolver,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewPaymentService,
			service.NewPendingInvoiceService,
			service.NewLinkageService,
			service.NewDraftingService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	paymentService service.PaymentService,
	pendingInvoiceService service.PendingInvoiceService,
	linkageService service.LinkageService,
	draftingService service.DraftingService,
) api.Handlers {
	return api.Handlers{
		Health:         v1.NewHealthHandler(logger),
		Payment:        v1.NewPaymentHandler(paymentService, logger),
		PendingInvoice: v1.NewPendingInvoiceHandler(pendingInvoiceService, logger),
		Invoice:        v1.NewInvoiceHandler(draftingService, linkageService, logger),
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	billingPublisher publisher.BillingEventPublisher,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return billingPublisher.Close()
		},
	})
}
