package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/glowdesk/glowdesk/internal/api/dto"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

// LinkageService answers "what is the counterpart of this invoice":
// final for an advance, advance for a final, nothing for a full invoice.
// Resolution is read-only and safe to call repeatedly.
type LinkageService interface {
	ResolveCounterpart(ctx context.Context, documentID string) (*dto.CounterpartResponse, error)
}

type linkageService struct {
	ServiceParams
}

// NewLinkageService creates a new linkage service
func NewLinkageService(params ServiceParams) LinkageService {
	return &linkageService{ServiceParams: params}
}

func (s *linkageService) ResolveCounterpart(ctx context.Context, documentID string) (*dto.CounterpartResponse, error) {
	doc, err := s.DocumentRepo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	invoice, err := doc.InvoiceVariant()
	if err != nil {
		return nil, err
	}

	switch invoice.InvoiceType {
	case types.InvoiceTypeAdvance:
		pfi, err := s.PendingInvoiceRepo.GetByAdvanceInvoiceID(ctx, documentID)
		if err != nil {
			if ierr.IsNotFound(err) {
				// untracked advance invoice; well-formed data never gets here
				s.Logger.Warnw("advance invoice has no commitment", "document_id", documentID)
				return &dto.CounterpartResponse{Applicable: false}, nil
			}
			return nil, err
		}
		if pfi.FinalInvoiceID != nil {
			return &dto.CounterpartResponse{
				Applicable:      true,
				CounterpartType: lo.ToPtr(types.InvoiceTypeFinal),
				DocumentID:      pfi.FinalInvoiceID,
				Exists:          true,
			}, nil
		}
		return &dto.CounterpartResponse{
			Applicable:      true,
			CounterpartType: lo.ToPtr(types.InvoiceTypeFinal),
			Exists:          false,
		}, nil

	case types.InvoiceTypeFinal:
		pfi, err := s.PendingInvoiceRepo.GetByFinalInvoiceID(ctx, documentID)
		if err != nil {
			if ierr.IsNotFound(err) {
				return &dto.CounterpartResponse{Applicable: false}, nil
			}
			return nil, err
		}
		return &dto.CounterpartResponse{
			Applicable:      true,
			CounterpartType: lo.ToPtr(types.InvoiceTypeAdvance),
			DocumentID:      &pfi.AdvanceInvoiceID,
			Exists:          true,
		}, nil

	default:
		// full invoices have no counterpart concept
		return &dto.CounterpartResponse{Applicable: false}, nil
	}
}
