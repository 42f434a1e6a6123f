package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/glowdesk/glowdesk/internal/domain/pendinginvoice"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/postgres"
	"github.com/glowdesk/glowdesk/internal/types"
)

type pendingInvoiceRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewPendingInvoiceRepository creates a postgres-backed commitment repository
func NewPendingInvoiceRepository(client postgres.IClient, log *logger.Logger) pendinginvoice.Repository {
	return &pendingInvoiceRepository{client: client, logger: log}
}

const pendingInvoiceColumns = `id, client_id, advance_invoice_id, final_invoice_id,
	advance_amount, total_amount, remaining_amount, expected_date,
	pending_invoice_status, status, created_at, updated_at, created_by, updated_by`

func (r *pendingInvoiceRepository) Create(ctx context.Context, pfi *pendinginvoice.PendingFinalInvoice) error {
	q := r.client.Querier(ctx)

	query := `INSERT INTO pending_final_invoices (` + pendingInvoiceColumns + `) VALUES (
		:id, :client_id, :advance_invoice_id, :final_invoice_id,
		:advance_amount, :total_amount, :remaining_amount, :expected_date,
		:pending_invoice_status, :status, :created_at, :updated_at,
		:created_by, :updated_by)`

	if _, err := sqlx.NamedExecContext(ctx, q, query, pfi); err != nil {
		return ierr.WithError(err).
			WithHint("Could not create the pending final invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *pendingInvoiceRepository) Get(ctx context.Context, id string) (*pendinginvoice.PendingFinalInvoice, error) {
	q := r.client.Querier(ctx)

	var pfi pendinginvoice.PendingFinalInvoice
	query := `SELECT ` + pendingInvoiceColumns + ` FROM pending_final_invoices WHERE id = $1 AND status != $2`
	err := sqlx.GetContext(ctx, q, &pfi, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("pending final invoice not found").
				WithHintf("Pending final invoice %s does not exist", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Could not fetch the pending final invoice").
			Mark(ierr.ErrDatabase)
	}
	return &pfi, nil
}

func (r *pendingInvoiceRepository) Update(ctx context.Context, pfi *pendinginvoice.PendingFinalInvoice) error {
	q := r.client.Querier(ctx)

	pfi.Touch(ctx)

	// amounts are immutable after creation, only linkage and status move
	query := `UPDATE pending_final_invoices SET
		final_invoice_id = :final_invoice_id,
		expected_date = :expected_date,
		pending_invoice_status = :pending_invoice_status,
		status = :status,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id`

	res, err := sqlx.NamedExecContext(ctx, q, query, pfi)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not update the pending final invoice").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("pending final invoice not found").
			WithHintf("Pending final invoice %s does not exist", pfi.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *pendingInvoiceRepository) List(ctx context.Context, filter *types.PendingInvoiceFilter) ([]*pendinginvoice.PendingFinalInvoice, error) {
	q := r.client.Querier(ctx)

	where, args := pendingInvoiceWhere(filter)

	// expected_date ascending with nulls last so dated commitments surface first
	query := `SELECT ` + pendingInvoiceColumns + ` FROM pending_final_invoices ` + where +
		` ORDER BY expected_date ASC NULLS LAST, created_at ASC`

	if filter != nil && !filter.IsUnlimited() {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.GetLimit(), filter.GetOffset())
	}

	var rows []*pendinginvoice.PendingFinalInvoice
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not list pending final invoices").
			Mark(ierr.ErrDatabase)
	}
	return rows, nil
}

func (r *pendingInvoiceRepository) Count(ctx context.Context, filter *types.PendingInvoiceFilter) (int, error) {
	q := r.client.Querier(ctx)

	where, args := pendingInvoiceWhere(filter)
	var count int
	if err := sqlx.GetContext(ctx, q, &count, `SELECT COUNT(*) FROM pending_final_invoices `+where, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Could not count pending final invoices").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *pendingInvoiceRepository) GetOpenByAdvanceInvoiceID(ctx context.Context, advanceInvoiceID string) (*pendinginvoice.PendingFinalInvoice, error) {
	return r.getByColumn(ctx, "advance_invoice_id", advanceInvoiceID, true)
}

func (r *pendingInvoiceRepository) GetByAdvanceInvoiceID(ctx context.Context, advanceInvoiceID string) (*pendinginvoice.PendingFinalInvoice, error) {
	return r.getByColumn(ctx, "advance_invoice_id", advanceInvoiceID, false)
}

func (r *pendingInvoiceRepository) GetByFinalInvoiceID(ctx context.Context, finalInvoiceID string) (*pendinginvoice.PendingFinalInvoice, error) {
	return r.getByColumn(ctx, "final_invoice_id", finalInvoiceID, false)
}

func (r *pendingInvoiceRepository) getByColumn(ctx context.Context, column, value string, openOnly bool) (*pendinginvoice.PendingFinalInvoice, error) {
	q := r.client.Querier(ctx)

	query := `SELECT ` + pendingInvoiceColumns + ` FROM pending_final_invoices
		WHERE ` + column + ` = $1 AND status != $2`
	args := []interface{}{value, types.StatusDeleted}
	if openOnly {
		query += ` AND pending_invoice_status = $3`
		args = append(args, types.PendingInvoiceStatusPending)
	}

	var pfi pendinginvoice.PendingFinalInvoice
	if err := sqlx.GetContext(ctx, q, &pfi, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("pending final invoice not found").
				WithHintf("No commitment found for %s %s", column, value).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Could not fetch the pending final invoice").
			Mark(ierr.ErrDatabase)
	}
	return &pfi, nil
}

func pendingInvoiceWhere(filter *types.PendingInvoiceFilter) (string, []interface{}) {
	clauses := []string{"status != ?"}
	args := []interface{}{types.StatusDeleted}

	if filter != nil {
		if filter.ClientID != nil {
			clauses = append(clauses, "client_id = ?")
			args = append(args, *filter.ClientID)
		}
		if filter.AdvanceInvoiceID != nil {
			clauses = append(clauses, "advance_invoice_id = ?")
			args = append(args, *filter.AdvanceInvoiceID)
		}
		if filter.PendingInvoiceStatus != nil {
			clauses = append(clauses, "pending_invoice_status = ?")
			args = append(args, *filter.PendingInvoiceStatus)
		}
	}

	return "WHERE " + rebind(strings.Join(clauses, " AND ")), args
}
