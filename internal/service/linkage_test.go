package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/glowdesk/glowdesk/internal/domain/document"
	"github.com/glowdesk/glowdesk/internal/domain/pendinginvoice"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/testutil"
	"github.com/glowdesk/glowdesk/internal/types"
)

type LinkageServiceSuite struct {
	testutil.BaseServiceTestSuite
	service LinkageService
}

func TestLinkageService(t *testing.T) {
	suite.Run(t, new(LinkageServiceSuite))
}

func (s *LinkageServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewLinkageService(ServiceParams{
		Logger:             s.GetLogger(),
		Config:             s.GetConfig(),
		DB:                 s.GetDB(),
		PaymentRepo:        s.GetStores().PaymentRepo,
		PendingInvoiceRepo: s.GetStores().PendingInvoiceRepo,
		DocumentRepo:       s.GetStores().DocumentRepo,
		UserRepo:           s.GetStores().UserRepo,
		BillingPublisher:   s.GetPublisher(),
	})
}

func (s *LinkageServiceSuite) documents() *testutil.InMemoryDocumentStore {
	return s.GetStores().DocumentRepo.(*testutil.InMemoryDocumentStore)
}

func (s *LinkageServiceSuite) seedInvoice(id string, invoiceType types.InvoiceType, amount int64) {
	s.NoError(s.documents().Add(s.GetContext(), &document.Document{
		ID:           id,
		ClientID:     "client_1",
		DocumentType: types.DocumentTypeInvoice,
		CreatedAt:    s.GetNow(),
		Invoice: &document.InvoiceData{
			InvoiceType: invoiceType,
			Amount:      decimal.NewFromInt(amount),
		},
	}))
}

func (s *LinkageServiceSuite) seedCommitment(advanceID string, finalID *string) {
	status := types.PendingInvoiceStatusPending
	if finalID != nil {
		status = types.PendingInvoiceStatusCompleted
	}
	s.NoError(s.GetStores().PendingInvoiceRepo.Create(s.GetContext(), &pendinginvoice.PendingFinalInvoice{
		ID:                   "pfi_" + advanceID,
		ClientID:             "client_1",
		AdvanceInvoiceID:     advanceID,
		FinalInvoiceID:       finalID,
		AdvanceAmount:        decimal.NewFromInt(2000),
		TotalAmount:          decimal.NewFromInt(4000),
		RemainingAmount:      decimal.NewFromInt(2000),
		PendingInvoiceStatus: status,
		BaseModel:            types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *LinkageServiceSuite) TestAdvanceWithIssuedFinal() {
	s.seedInvoice("doc_adv", types.InvoiceTypeAdvance, 2000)
	s.seedInvoice("doc_final", types.InvoiceTypeFinal, 2000)
	finalID := "doc_final"
	s.seedCommitment("doc_adv", &finalID)

	resp, err := s.service.ResolveCounterpart(s.GetContext(), "doc_adv")
	s.NoError(err)
	s.True(resp.Applicable)
	s.True(resp.Exists)
	s.Equal(types.InvoiceTypeFinal, *resp.CounterpartType)
	s.Equal("doc_final", *resp.DocumentID)
}

func (s *LinkageServiceSuite) TestAdvanceWithOpenCommitment() {
	s.seedInvoice("doc_adv", types.InvoiceTypeAdvance, 2000)
	s.seedCommitment("doc_adv", nil)

	resp, err := s.service.ResolveCounterpart(s.GetContext(), "doc_adv")
	s.NoError(err)
	s.True(resp.Applicable)
	s.False(resp.Exists)
	s.Equal(types.InvoiceTypeFinal, *resp.CounterpartType)
	s.Nil(resp.DocumentID)
}

func (s *LinkageServiceSuite) TestFinalResolvesToAdvance() {
	s.seedInvoice("doc_adv", types.InvoiceTypeAdvance, 2000)
	s.seedInvoice("doc_final", types.InvoiceTypeFinal, 2000)
	finalID := "doc_final"
	s.seedCommitment("doc_adv", &finalID)

	resp, err := s.service.ResolveCounterpart(s.GetContext(), "doc_final")
	s.NoError(err)
	s.True(resp.Applicable)
	s.True(resp.Exists)
	s.Equal(types.InvoiceTypeAdvance, *resp.CounterpartType)
	s.Equal("doc_adv", *resp.DocumentID)
}

func (s *LinkageServiceSuite) TestLinkageIsSymmetric() {
	s.seedInvoice("doc_adv", types.InvoiceTypeAdvance, 2000)
	s.seedInvoice("doc_final", types.InvoiceTypeFinal, 2000)
	finalID := "doc_final"
	s.seedCommitment("doc_adv", &finalID)

	fromAdvance, err := s.service.ResolveCounterpart(s.GetContext(), "doc_adv")
	s.NoError(err)
	fromFinal, err := s.service.ResolveCounterpart(s.GetContext(), "doc_final")
	s.NoError(err)

	s.Equal("doc_final", *fromAdvance.DocumentID)
	s.Equal("doc_adv", *fromFinal.DocumentID)
}

func (s *LinkageServiceSuite) TestFullInvoiceHasNoCounterpart() {
	s.seedInvoice("doc_full", types.InvoiceTypeFull, 4000)

	resp, err := s.service.ResolveCounterpart(s.GetContext(), "doc_full")
	s.NoError(err)
	s.False(resp.Applicable)
	s.Nil(resp.CounterpartType)
}

func (s *LinkageServiceSuite) TestUntrackedAdvanceInvoice() {
	s.seedInvoice("doc_adv", types.InvoiceTypeAdvance, 2000)

	resp, err := s.service.ResolveCounterpart(s.GetContext(), "doc_adv")
	s.NoError(err)
	s.False(resp.Applicable)
}

func (s *LinkageServiceSuite) TestUntrackedFinalInvoice() {
	s.seedInvoice("doc_final", types.InvoiceTypeFinal, 2000)

	resp, err := s.service.ResolveCounterpart(s.GetContext(), "doc_final")
	s.NoError(err)
	s.False(resp.Applicable)
}

func (s *LinkageServiceSuite) TestNonInvoiceDocument() {
	s.NoError(s.documents().Add(s.GetContext(), &document.Document{
		ID:           "doc_contract",
		ClientID:     "client_1",
		DocumentType: types.DocumentTypeContract,
		CreatedAt:    s.GetNow(),
		Contract: &document.ContractData{
			DurationMonths: 12,
			Budget:         decimal.NewFromInt(4000),
		},
	}))

	_, err := s.service.ResolveCounterpart(s.GetContext(), "doc_contract")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *LinkageServiceSuite) TestMissingDocument() {
	_, err := s.service.ResolveCounterpart(s.GetContext(), "doc_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
