package types

import (
	"fmt"

	"github.com/samber/lo"
)

// DocumentType categorizes the documents issued for a client
type DocumentType string

const (
	DocumentTypeInvoice      DocumentType = "INVOICE"
	DocumentTypeContract     DocumentType = "CONTRACT"
	DocumentTypeReport       DocumentType = "REPORT"
	DocumentTypePresentation DocumentType = "PRESENTATION"
)

func (t DocumentType) String() string {
	return string(t)
}

func (t DocumentType) Validate() error {
	allowed := []DocumentType{
		DocumentTypeInvoice,
		DocumentTypeContract,
		DocumentTypeReport,
		DocumentTypePresentation,
	}
	if !lo.Contains(allowed, t) {
		return fmt.Errorf("invalid document type: %s", t)
	}
	return nil
}

// InvoiceType distinguishes how an invoice bills the contract.
// Only meaningful for documents of type INVOICE.
type InvoiceType string

const (
	// InvoiceTypeFull bills the entire contract amount in one invoice
	InvoiceTypeFull InvoiceType = "FULL"
	// InvoiceTypeAdvance bills a deposit and opens a pending commitment
	// for the remainder
	InvoiceTypeAdvance InvoiceType = "ADVANCE"
	// InvoiceTypeFinal bills the remainder and closes the commitment
	// opened by the matching advance invoice
	InvoiceTypeFinal InvoiceType = "FINAL"
)

func (t InvoiceType) String() string {
	return string(t)
}

func (t InvoiceType) Validate() error {
	allowed := []InvoiceType{
		InvoiceTypeFull,
		InvoiceTypeAdvance,
		InvoiceTypeFinal,
	}
	if !lo.Contains(allowed, t) {
		return fmt.Errorf("invalid invoice type: %s", t)
	}
	return nil
}

// DocumentFilter represents the filter for listing documents
type DocumentFilter struct {
	*QueryFilter

	ClientID     *string       `json:"client_id,omitempty" form:"client_id"`
	DocumentType *DocumentType `json:"document_type,omitempty" form:"document_type"`
	InvoiceType  *InvoiceType  `json:"invoice_type,omitempty" form:"invoice_type"`
}

// Validate validates the document filter
func (f *DocumentFilter) Validate() error {
	if f == nil {
		return nil
	}

	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}

	if f.DocumentType != nil {
		if err := f.DocumentType.Validate(); err != nil {
			return err
		}
	}

	if f.InvoiceType != nil {
		if err := f.InvoiceType.Validate(); err != nil {
			return err
		}
	}

	return nil
}
