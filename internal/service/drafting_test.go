package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/glowdesk/glowdesk/internal/api/dto"
	"github.com/glowdesk/glowdesk/internal/domain/document"
	"github.com/glowdesk/glowdesk/internal/domain/payment"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/testutil"
	"github.com/glowdesk/glowdesk/internal/types"
)

type DraftingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  DraftingService
	payments PaymentService
	tracker  PendingInvoiceService
}

func TestDraftingService(t *testing.T) {
	suite.Run(t, new(DraftingServiceSuite))
}

func (s *DraftingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:             s.GetLogger(),
		Config:             s.GetConfig(),
		DB:                 s.GetDB(),
		PaymentRepo:        s.GetStores().PaymentRepo,
		PendingInvoiceRepo: s.GetStores().PendingInvoiceRepo,
		DocumentRepo:       s.GetStores().DocumentRepo,
		UserRepo:           s.GetStores().UserRepo,
		BillingPublisher:   s.GetPublisher(),
	}
	s.service = NewDraftingService(params)
	s.payments = NewPaymentService(params)
	s.tracker = NewPendingInvoiceService(params)
}

func (s *DraftingServiceSuite) documents() *testutil.InMemoryDocumentStore {
	return s.GetStores().DocumentRepo.(*testutil.InMemoryDocumentStore)
}

func (s *DraftingServiceSuite) seedContract(clientID string, budget int64) {
	s.NoError(s.documents().Add(s.GetContext(), &document.Document{
		ID:           "doc_contract_" + clientID,
		ClientID:     clientID,
		DocumentType: types.DocumentTypeContract,
		CreatedAt:    s.GetNow(),
		Contract: &document.ContractData{
			DurationMonths: 12,
			Budget:         decimal.NewFromInt(budget),
		},
	}))
}

func (s *DraftingServiceSuite) seedInvoiceDoc(id, clientID string, invoiceType types.InvoiceType, amount int64) {
	s.NoError(s.documents().Add(s.GetContext(), &document.Document{
		ID:           id,
		ClientID:     clientID,
		DocumentType: types.DocumentTypeInvoice,
		CreatedAt:    s.GetNow(),
		Invoice: &document.InvoiceData{
			InvoiceType: invoiceType,
			Amount:      decimal.NewFromInt(amount),
		},
	}))
}

func (s *DraftingServiceSuite) TestDraftFirstInvoice() {
	s.seedContract("client_1", 4000)

	draft, err := s.service.DraftFirstInvoice(s.GetContext(), "client_1")
	s.NoError(err)
	s.Equal(types.InvoiceTypeAdvance, draft.InvoiceType)
	s.True(draft.Amount.Equal(decimal.NewFromInt(2000)), "amount: %s", draft.Amount)
	s.NotNil(draft.TotalAmount)
	s.True(draft.TotalAmount.Equal(decimal.NewFromInt(4000)))
}

func (s *DraftingServiceSuite) TestDraftFirstInvoiceRoundsHalfBudget() {
	s.seedContract("client_1", 4001)

	draft, err := s.service.DraftFirstInvoice(s.GetContext(), "client_1")
	s.NoError(err)
	s.True(draft.Amount.Equal(decimal.NewFromFloat(2000.50)), "amount: %s", draft.Amount)
}

func (s *DraftingServiceSuite) TestDraftFirstInvoiceRejectsExistingHistory() {
	s.seedContract("client_1", 4000)
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), &payment.PaymentRecord{
		ID:            "pay_existing",
		ClientID:      "client_1",
		Amount:        decimal.NewFromInt(100),
		DueDate:       s.GetNow(),
		PaymentStatus: types.PaymentStatusPending,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}))

	_, err := s.service.DraftFirstInvoice(s.GetContext(), "client_1")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *DraftingServiceSuite) TestDraftFirstInvoiceRejectsOpenCommitment() {
	s.seedContract("client_1", 4000)
	_, err := s.tracker.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_prior",
		decimal.NewFromInt(1000), decimal.NewFromInt(2000), nil)
	s.NoError(err)

	_, err = s.service.DraftFirstInvoice(s.GetContext(), "client_1")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *DraftingServiceSuite) TestDraftFirstInvoiceWithoutContract() {
	_, err := s.service.DraftFirstInvoice(s.GetContext(), "client_1")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *DraftingServiceSuite) TestDraftFinalInvoice() {
	opened, err := s.tracker.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(2000), decimal.NewFromInt(4000), nil)
	s.NoError(err)

	draft, err := s.service.DraftFinalInvoice(s.GetContext(), opened.ID)
	s.NoError(err)
	s.Equal(types.InvoiceTypeFinal, draft.InvoiceType)
	s.True(draft.Amount.Equal(decimal.NewFromInt(2000)))
	s.True(draft.AdvanceAmount.Equal(decimal.NewFromInt(2000)))
	s.True(draft.TotalAmount.Equal(decimal.NewFromInt(4000)))
	s.Equal(opened.ID, *draft.PendingFinalInvoiceID)
}

func (s *DraftingServiceSuite) TestDraftFinalInvoiceClosedCommitment() {
	opened, err := s.tracker.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(2000), decimal.NewFromInt(4000), nil)
	s.NoError(err)
	_, err = s.tracker.CloseWithFinal(s.GetContext(), "doc_adv_1", "doc_final_1")
	s.NoError(err)

	_, err = s.service.DraftFinalInvoice(s.GetContext(), opened.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *DraftingServiceSuite) TestDraftFullInvoice() {
	s.seedContract("client_1", 4000)

	draft, err := s.service.DraftFullInvoice(s.GetContext(), "client_1")
	s.NoError(err)
	s.Equal(types.InvoiceTypeFull, draft.InvoiceType)
	s.True(draft.Amount.Equal(decimal.NewFromInt(4000)))
	s.Nil(draft.PendingFinalInvoiceID)
}

func (s *DraftingServiceSuite) TestDraftFullInvoiceWithoutContract() {
	draft, err := s.service.DraftFullInvoice(s.GetContext(), "client_1")
	s.NoError(err)
	s.True(draft.Amount.IsZero())
}

func (s *DraftingServiceSuite) TestRecordIssuedAdvanceInvoice() {
	s.seedInvoiceDoc("doc_adv_1", "client_1", types.InvoiceTypeAdvance, 2000)

	resp, err := s.service.RecordIssuedInvoice(s.GetContext(), &dto.IssueInvoiceRequest{
		ClientID:    "client_1",
		DocumentID:  "doc_adv_1",
		InvoiceType: types.InvoiceTypeAdvance,
		Amount:      decimal.NewFromInt(2000),
		DueDate:     s.GetNow().AddDate(0, 0, 14),
		TotalAmount: lo.ToPtr(decimal.NewFromInt(4000)),
	})
	s.NoError(err)
	s.Equal(types.PaymentStatusPending, resp.PaymentStatus)
	s.True(resp.Amount.Equal(decimal.NewFromInt(2000)))
	s.Equal("doc_adv_1", *resp.DocumentID)

	// the commitment opened alongside the payment record
	open, err := s.tracker.ListOpen(s.GetContext(), "client_1")
	s.NoError(err)
	s.Len(open.Items, 1)
	s.Equal("doc_adv_1", open.Items[0].AdvanceInvoiceID)
	s.True(open.Items[0].RemainingAmount.Equal(decimal.NewFromInt(2000)))
}

func (s *DraftingServiceSuite) TestRecordIssuedFinalInvoice() {
	s.seedInvoiceDoc("doc_adv_1", "client_1", types.InvoiceTypeAdvance, 2000)
	s.seedInvoiceDoc("doc_final_1", "client_1", types.InvoiceTypeFinal, 2000)

	_, err := s.service.RecordIssuedInvoice(s.GetContext(), &dto.IssueInvoiceRequest{
		ClientID:    "client_1",
		DocumentID:  "doc_adv_1",
		InvoiceType: types.InvoiceTypeAdvance,
		Amount:      decimal.NewFromInt(2000),
		DueDate:     s.GetNow().AddDate(0, 0, 14),
		TotalAmount: lo.ToPtr(decimal.NewFromInt(4000)),
	})
	s.NoError(err)

	open, err := s.tracker.ListOpen(s.GetContext(), "client_1")
	s.NoError(err)
	s.Require().Len(open.Items, 1)
	pfiID := open.Items[0].ID

	resp, err := s.service.RecordIssuedInvoice(s.GetContext(), &dto.IssueInvoiceRequest{
		ClientID:              "client_1",
		DocumentID:            "doc_final_1",
		InvoiceType:           types.InvoiceTypeFinal,
		Amount:                decimal.NewFromInt(2000),
		DueDate:               s.GetNow().AddDate(0, 1, 0),
		PendingFinalInvoiceID: &pfiID,
	})
	s.NoError(err)
	s.Equal(types.PaymentStatusPending, resp.PaymentStatus)

	// the commitment closed and now links both invoices
	closed, err := s.tracker.GetPendingInvoice(s.GetContext(), pfiID)
	s.NoError(err)
	s.Equal(types.PendingInvoiceStatusCompleted, closed.PendingInvoiceStatus)
	s.Equal("doc_final_1", *closed.FinalInvoiceID)

	// the summary reflects both records and no open remainder
	summary, err := s.payments.Summarize(s.GetContext(), "client_1")
	s.NoError(err)
	s.True(summary.Pending.Equal(decimal.NewFromInt(4000)))
	s.True(summary.PendingFinalTotal.IsZero())
	s.True(summary.Total.Equal(decimal.NewFromInt(4000)))
}

func (s *DraftingServiceSuite) TestRecordIssuedFullInvoice() {
	s.seedInvoiceDoc("doc_full_1", "client_1", types.InvoiceTypeFull, 4000)

	_, err := s.service.RecordIssuedInvoice(s.GetContext(), &dto.IssueInvoiceRequest{
		ClientID:    "client_1",
		DocumentID:  "doc_full_1",
		InvoiceType: types.InvoiceTypeFull,
		Amount:      decimal.NewFromInt(4000),
		DueDate:     s.GetNow().AddDate(0, 0, 14),
	})
	s.NoError(err)

	open, err := s.tracker.ListOpen(s.GetContext(), "client_1")
	s.NoError(err)
	s.Len(open.Items, 0)
}

func (s *DraftingServiceSuite) TestRecordIssuedInvoiceValidation() {
	// advance without a total amount
	_, err := s.service.RecordIssuedInvoice(s.GetContext(), &dto.IssueInvoiceRequest{
		ClientID:    "client_1",
		DocumentID:  "doc_adv_1",
		InvoiceType: types.InvoiceTypeAdvance,
		Amount:      decimal.NewFromInt(2000),
		DueDate:     s.GetNow(),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// final without a commitment id
	_, err = s.service.RecordIssuedInvoice(s.GetContext(), &dto.IssueInvoiceRequest{
		ClientID:    "client_1",
		DocumentID:  "doc_final_1",
		InvoiceType: types.InvoiceTypeFinal,
		Amount:      decimal.NewFromInt(2000),
		DueDate:     s.GetNow(),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// zero amount
	_, err = s.service.RecordIssuedInvoice(s.GetContext(), &dto.IssueInvoiceRequest{
		ClientID:    "client_1",
		DocumentID:  "doc_full_1",
		InvoiceType: types.InvoiceTypeFull,
		Amount:      decimal.Zero,
		DueDate:     s.GetNow(),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DraftingServiceSuite) TestRecordIssuedInvoiceTypeMismatch() {
	s.seedInvoiceDoc("doc_full_1", "client_1", types.InvoiceTypeFull, 4000)

	_, err := s.service.RecordIssuedInvoice(s.GetContext(), &dto.IssueInvoiceRequest{
		ClientID:    "client_1",
		DocumentID:  "doc_full_1",
		InvoiceType: types.InvoiceTypeAdvance,
		Amount:      decimal.NewFromInt(2000),
		DueDate:     s.GetNow(),
		TotalAmount: lo.ToPtr(decimal.NewFromInt(4000)),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DraftingServiceSuite) TestRecordIssuedInvoiceMissingDocument() {
	_, err := s.service.RecordIssuedInvoice(s.GetContext(), &dto.IssueInvoiceRequest{
		ClientID:    "client_1",
		DocumentID:  "doc_missing",
		InvoiceType: types.InvoiceTypeFull,
		Amount:      decimal.NewFromInt(100),
		DueDate:     s.GetNow(),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
