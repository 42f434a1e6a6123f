package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/glowdesk/glowdesk/internal/domain/payment"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/postgres"
	"github.com/glowdesk/glowdesk/internal/types"
)

type paymentRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewPaymentRepository creates a postgres-backed payment record repository
func NewPaymentRepository(client postgres.IClient, log *logger.Logger) payment.Repository {
	return &paymentRepository{client: client, logger: log}
}

const paymentColumns = `id, client_id, document_id, amount, due_date, paid_date,
	payment_status, payment_method, notes, metadata, status, created_at,
	updated_at, created_by, updated_by`

func (r *paymentRepository) Create(ctx context.Context, p *payment.PaymentRecord) error {
	q := r.client.Querier(ctx)

	query := `INSERT INTO payments (` + paymentColumns + `) VALUES (
		:id, :client_id, :document_id, :amount, :due_date, :paid_date,
		:payment_status, :payment_method, :notes, :metadata, :status,
		:created_at, :updated_at, :created_by, :updated_by)`

	if _, err := sqlx.NamedExecContext(ctx, q, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Could not create the payment record").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.PaymentRecord, error) {
	q := r.client.Querier(ctx)

	var p payment.PaymentRecord
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 AND status != $2`
	err := sqlx.GetContext(ctx, q, &p, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("payment not found").
				WithHintf("Payment %s does not exist", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Could not fetch the payment record").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *payment.PaymentRecord) error {
	q := r.client.Querier(ctx)

	p.Touch(ctx)

	query := `UPDATE payments SET
		amount = :amount,
		due_date = :due_date,
		paid_date = :paid_date,
		payment_status = :payment_status,
		payment_method = :payment_method,
		notes = :notes,
		metadata = :metadata,
		status = :status,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id`

	res, err := sqlx.NamedExecContext(ctx, q, query, p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not update the payment record").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("payment not found").
			WithHintf("Payment %s does not exist", p.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	q := r.client.Querier(ctx)

	res, err := q.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not delete the payment record").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("payment not found").
			WithHintf("Payment %s does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *paymentRepository) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.PaymentRecord, error) {
	q := r.client.Querier(ctx)

	where, args := paymentWhere(filter)
	query := `SELECT ` + paymentColumns + ` FROM payments ` + where +
		fmt.Sprintf(" ORDER BY %s %s", paymentSortColumn(filter), paymentSortOrder(filter))

	if filter != nil && !filter.IsUnlimited() {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.GetLimit(), filter.GetOffset())
	}

	var records []*payment.PaymentRecord
	if err := sqlx.SelectContext(ctx, q, &records, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not list payment records").
			Mark(ierr.ErrDatabase)
	}
	return records, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	q := r.client.Querier(ctx)

	where, args := paymentWhere(filter)
	var count int
	if err := sqlx.GetContext(ctx, q, &count, `SELECT COUNT(*) FROM payments `+where, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Could not count payment records").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func paymentWhere(filter *types.PaymentFilter) (string, []interface{}) {
	clauses := []string{"status != ?"}
	args := []interface{}{types.StatusDeleted}

	if filter != nil {
		if filter.ClientID != nil {
			clauses = append(clauses, "client_id = ?")
			args = append(args, *filter.ClientID)
		}
		if filter.DocumentID != nil {
			clauses = append(clauses, "document_id = ?")
			args = append(args, *filter.DocumentID)
		}
		if filter.PaymentStatus != nil {
			clauses = append(clauses, "payment_status = ?")
			args = append(args, *filter.PaymentStatus)
		}
		if len(filter.PaymentIDs) > 0 {
			placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.PaymentIDs)), ",")
			clauses = append(clauses, "id IN ("+placeholders+")")
			for _, id := range filter.PaymentIDs {
				args = append(args, id)
			}
		}
		if filter.TimeRangeFilter != nil {
			if filter.StartTime != nil {
				clauses = append(clauses, "due_date >= ?")
				args = append(args, *filter.StartTime)
			}
			if filter.EndTime != nil {
				clauses = append(clauses, "due_date <= ?")
				args = append(args, *filter.EndTime)
			}
		}
	}

	return "WHERE " + rebind(strings.Join(clauses, " AND ")), args
}

func paymentSortColumn(filter *types.PaymentFilter) string {
	if filter == nil || filter.QueryFilter == nil {
		return "created_at"
	}
	switch filter.GetSort() {
	case "due_date", "amount", "created_at":
		return filter.GetSort()
	default:
		return "created_at"
	}
}

func paymentSortOrder(filter *types.PaymentFilter) string {
	if filter == nil || filter.QueryFilter == nil {
		return "DESC"
	}
	if filter.GetOrder() == types.OrderAsc {
		return "ASC"
	}
	return "DESC"
}

// rebind converts ?-style placeholders to postgres $n placeholders
func rebind(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}
