package document

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

// Document represents an issued client document. The billing subsystem
// consumes documents read-only; the document subsystem owns their lifecycle.
//
// Each document carries exactly one variant matching its type, resolved once
// at the store boundary instead of reading loose payload fields ad hoc.
type Document struct {
	ID           string             `json:"id"`
	ClientID     string             `json:"client_id"`
	DocumentType types.DocumentType `json:"document_type"`
	Title        string             `json:"title,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`

	Invoice  *InvoiceData  `json:"invoice,omitempty"`
	Contract *ContractData `json:"contract,omitempty"`
}

// InvoiceData is the variant carried by invoice documents
type InvoiceData struct {
	InvoiceType types.InvoiceType `json:"invoice_type"`
	Amount      decimal.Decimal   `json:"amount"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
}

// ContractData is the variant carried by contract documents
type ContractData struct {
	DurationMonths int             `json:"duration_months"`
	Budget         decimal.Decimal `json:"budget"`
}

// InvoiceVariant returns the invoice payload, failing when the document is
// not an invoice or its variant was not resolved
func (d *Document) InvoiceVariant() (*InvoiceData, error) {
	if d.DocumentType != types.DocumentTypeInvoice || d.Invoice == nil {
		return nil, ierr.NewError("document is not an invoice").
			WithHintf("Document %s does not carry invoice data", d.ID).
			Mark(ierr.ErrInvalidOperation)
	}
	return d.Invoice, nil
}

// ContractVariant returns the contract payload, failing when the document is
// not a contract or its variant was not resolved
func (d *Document) ContractVariant() (*ContractData, error) {
	if d.DocumentType != types.DocumentTypeContract || d.Contract == nil {
		return nil, ierr.NewError("document is not a contract").
			WithHintf("Document %s does not carry contract data", d.ID).
			Mark(ierr.ErrInvalidOperation)
	}
	return d.Contract, nil
}
