package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/glowdesk/glowdesk/internal/domain/document"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/postgres"
	"github.com/glowdesk/glowdesk/internal/types"
)

type documentRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewDocumentRepository creates a postgres-backed read-only document repository
func NewDocumentRepository(client postgres.IClient, log *logger.Logger) document.Repository {
	return &documentRepository{client: client, logger: log}
}

// documentRow is the flat table shape; the typed variant is resolved here,
// at the store boundary, so callers never read loose payload fields
type documentRow struct {
	ID             string              `db:"id"`
	ClientID       string              `db:"client_id"`
	DocumentType   types.DocumentType  `db:"document_type"`
	Title          string              `db:"title"`
	InvoiceType    *types.InvoiceType  `db:"invoice_type"`
	Amount         decimal.NullDecimal `db:"amount"`
	DueDate        *time.Time          `db:"due_date"`
	DurationMonths *int                `db:"duration_months"`
	Budget         decimal.NullDecimal `db:"budget"`
	CreatedAt      time.Time           `db:"created_at"`
}

const documentColumns = `id, client_id, document_type, title, invoice_type,
	amount, due_date, duration_months, budget, created_at`

func (row *documentRow) toDomain() *document.Document {
	doc := &document.Document{
		ID:           row.ID,
		ClientID:     row.ClientID,
		DocumentType: row.DocumentType,
		Title:        row.Title,
		CreatedAt:    row.CreatedAt,
	}

	switch row.DocumentType {
	case types.DocumentTypeInvoice:
		if row.InvoiceType != nil {
			doc.Invoice = &document.InvoiceData{
				InvoiceType: *row.InvoiceType,
				Amount:      row.Amount.Decimal,
				DueDate:     row.DueDate,
			}
		}
	case types.DocumentTypeContract:
		contract := &document.ContractData{Budget: row.Budget.Decimal}
		if row.DurationMonths != nil {
			contract.DurationMonths = *row.DurationMonths
		}
		doc.Contract = contract
	}

	return doc
}

func (r *documentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	q := r.client.Querier(ctx)

	var row documentRow
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("document not found").
				WithHintf("Document %s does not exist", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Could not fetch the document").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *documentRepository) List(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	q := r.client.Querier(ctx)

	clauses := []string{"1 = 1"}
	args := []interface{}{}
	if filter != nil {
		if filter.ClientID != nil {
			clauses = append(clauses, "client_id = ?")
			args = append(args, *filter.ClientID)
		}
		if filter.DocumentType != nil {
			clauses = append(clauses, "document_type = ?")
			args = append(args, *filter.DocumentType)
		}
		if filter.InvoiceType != nil {
			clauses = append(clauses, "invoice_type = ?")
			args = append(args, *filter.InvoiceType)
		}
	}

	query := `SELECT ` + documentColumns + ` FROM documents WHERE ` +
		rebind(strings.Join(clauses, " AND ")) + ` ORDER BY created_at DESC`
	if filter != nil && filter.QueryFilter != nil && !filter.IsUnlimited() {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.GetLimit(), filter.GetOffset())
	}

	var rows []*documentRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not list documents").
			Mark(ierr.ErrDatabase)
	}

	docs := make([]*document.Document, len(rows))
	for i, row := range rows {
		docs[i] = row.toDomain()
	}
	return docs, nil
}

func (r *documentRepository) GetLatestContract(ctx context.Context, clientID string) (*document.Document, error) {
	q := r.client.Querier(ctx)

	var row documentRow
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE client_id = $1 AND document_type = $2
		ORDER BY created_at DESC LIMIT 1`
	if err := sqlx.GetContext(ctx, q, &row, query, clientID, types.DocumentTypeContract); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("contract not found").
				WithHintf("Client %s has no contract on file", clientID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Could not fetch the latest contract").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}
