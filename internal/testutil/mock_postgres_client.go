package testutil

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient is a mock implementation of postgres client for testing.
// The in-memory stores do their own bookkeeping, so WithTx just runs the
// function and Querier is never consulted.
type MockPostgresClient struct {
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes the given function without a real transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Querier returns nil; repositories backed by in-memory stores never query it
func (c *MockPostgresClient) Querier(ctx context.Context) sqlx.ExtContext {
	return nil
}
