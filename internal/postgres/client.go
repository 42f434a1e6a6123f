package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/glowdesk/glowdesk/internal/config"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/logger"
)

type txCtxKey struct{}

// IClient defines the interface for postgres client operations
type IClient interface {
	// WithTx wraps the given function in a transaction. Nested calls reuse
	// the surrounding transaction.
	WithTx(ctx context.Context, fn func(context.Context) error) error

	// Querier returns the current transaction if one is in flight, or the
	// regular connection pool
	Querier(ctx context.Context) sqlx.ExtContext
}

// Client wraps sqlx.DB to provide transaction management
type Client struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewDB opens the postgres connection pool, retrying with exponential
// backoff so the service tolerates the database coming up after it
func NewDB(cfg *config.Configuration, log *logger.Logger) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)

	var db *sqlx.DB
	operation := func() error {
		var err error
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			log.Warnw("postgres not ready, retrying", "error", err)
			return err
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not connect to the database").
			Mark(ierr.ErrDatabase)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// NewClient creates a new sqlx client wrapper with transaction management
func NewClient(db *sqlx.DB, log *logger.Logger) IClient {
	return &Client{db: db, logger: log}
}

// WithTx wraps the given function in a transaction
func (c *Client) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not start a database transaction").
			Mark(ierr.ErrDatabase)
	}

	ctx = context.WithValue(ctx, txCtxKey{}, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.logger.Errorw("failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return ierr.WithError(err).
			WithHint("Could not commit the database transaction").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

// Querier returns the current transaction client if in a transaction, or the
// regular client
func (c *Client) Querier(ctx context.Context) sqlx.ExtContext {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return c.db
}

func txFromContext(ctx context.Context) *sqlx.Tx {
	if tx, ok := ctx.Value(txCtxKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return nil
}
