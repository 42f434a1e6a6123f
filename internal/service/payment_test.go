package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/glowdesk/glowdesk/internal/api/dto"
	"github.com/glowdesk/glowdesk/internal/domain/payment"
	"github.com/glowdesk/glowdesk/internal/domain/pendinginvoice"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/testutil"
	"github.com/glowdesk/glowdesk/internal/types"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PaymentService
	testData struct {
		clientID string
		pending  *payment.PaymentRecord
		paid     *payment.PaymentRecord
	}
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *PaymentServiceSuite) serviceParams() ServiceParams {
	return ServiceParams{
		Logger:             s.GetLogger(),
		Config:             s.GetConfig(),
		DB:                 s.GetDB(),
		PaymentRepo:        s.GetStores().PaymentRepo,
		PendingInvoiceRepo: s.GetStores().PendingInvoiceRepo,
		DocumentRepo:       s.GetStores().DocumentRepo,
		UserRepo:           s.GetStores().UserRepo,
		BillingPublisher:   s.GetPublisher(),
	}
}

func (s *PaymentServiceSuite) setupService() {
	s.service = NewPaymentService(s.serviceParams())
}

func (s *PaymentServiceSuite) setupTestData() {
	s.testData.clientID = "client_test_payment"

	s.testData.pending = &payment.PaymentRecord{
		ID:            "pay_test_pending",
		ClientID:      s.testData.clientID,
		Amount:        decimal.NewFromInt(1500),
		DueDate:       s.GetNow().AddDate(0, 0, 14),
		PaymentStatus: types.PaymentStatusPending,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), s.testData.pending))

	s.testData.paid = &payment.PaymentRecord{
		ID:            "pay_test_paid",
		ClientID:      s.testData.clientID,
		Amount:        decimal.NewFromInt(2000),
		DueDate:       s.GetNow().AddDate(0, -1, 0),
		PaidDate:      lo.ToPtr(s.GetNow().AddDate(0, -1, 5)),
		PaymentStatus: types.PaymentStatusPaid,
		PaymentMethod: lo.ToPtr(types.PaymentMethodBankTransfer),
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), s.testData.paid))
}

func (s *PaymentServiceSuite) TestGetPayment() {
	resp, err := s.service.GetPayment(s.GetContext(), s.testData.pending.ID)
	s.NoError(err)
	s.Equal(s.testData.pending.ID, resp.ID)
	s.True(resp.Amount.Equal(decimal.NewFromInt(1500)))
	s.Equal(types.PaymentStatusPending, resp.PaymentStatus)

	_, err = s.service.GetPayment(s.GetContext(), "pay_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PaymentServiceSuite) TestListPaymentsByClient() {
	filter := types.NewNoLimitPaymentFilter()
	filter.ClientID = &s.testData.clientID

	resp, err := s.service.ListPayments(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
}

func (s *PaymentServiceSuite) TestMarkPaid() {
	req := &dto.MarkPaidRequest{
		PaymentMethod: lo.ToPtr(types.PaymentMethodCard),
		Notes:         lo.ToPtr("settled by card"),
	}
	resp, err := s.service.MarkPaid(s.GetContext(), s.testData.pending.ID, req)
	s.NoError(err)
	s.Equal(types.PaymentStatusPaid, resp.PaymentStatus)
	s.NotNil(resp.PaidDate)
	s.NotNil(resp.PaymentMethod)
	s.Equal(types.PaymentMethodCard, *resp.PaymentMethod)

	events := s.GetCapturedEvents()
	s.Len(events, 1)
	s.Equal(types.BillingEventPaymentPaid, events[0].EventName)
	s.Equal(s.testData.clientID, events[0].ClientID)
}

func (s *PaymentServiceSuite) TestMarkPaidAlreadyPaid() {
	_, err := s.service.MarkPaid(s.GetContext(), s.testData.paid.ID, nil)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestMarkPaidCancelled() {
	cancelled := &payment.PaymentRecord{
		ID:            "pay_test_cancelled",
		ClientID:      s.testData.clientID,
		Amount:        decimal.NewFromInt(500),
		DueDate:       s.GetNow(),
		PaymentStatus: types.PaymentStatusCancelled,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), cancelled))

	_, err := s.service.MarkPaid(s.GetContext(), cancelled.ID, nil)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestMarkPaidRequiresBillingAuthority() {
	_, err := s.service.MarkPaid(testutil.SetupStaffContext(), s.testData.pending.ID, nil)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	// record untouched
	p, getErr := s.GetStores().PaymentRepo.Get(s.GetContext(), s.testData.pending.ID)
	s.NoError(getErr)
	s.Equal(types.PaymentStatusPending, p.PaymentStatus)
}

func (s *PaymentServiceSuite) TestMarkUnpaid() {
	resp, err := s.service.MarkUnpaid(s.GetContext(), s.testData.paid.ID)
	s.NoError(err)
	s.Equal(types.PaymentStatusPending, resp.PaymentStatus)
	s.Nil(resp.PaidDate)

	events := s.GetCapturedEvents()
	s.Len(events, 1)
	s.Equal(types.BillingEventPaymentUnpaid, events[0].EventName)
}

func (s *PaymentServiceSuite) TestMarkUnpaidRejectsPending() {
	_, err := s.service.MarkUnpaid(s.GetContext(), s.testData.pending.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestMarkUnpaidRequiresBillingAuthority() {
	_, err := s.service.MarkUnpaid(testutil.SetupStaffContext(), s.testData.paid.ID)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *PaymentServiceSuite) TestDeletePayment() {
	err := s.service.DeletePayment(s.GetContext(), s.testData.pending.ID)
	s.NoError(err)

	_, err = s.service.GetPayment(s.GetContext(), s.testData.pending.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	events := s.GetCapturedEventsNamed(types.BillingEventPaymentDeleted)
	s.Len(events, 1)
	s.Equal(s.testData.clientID, events[0].ClientID)
}

func (s *PaymentServiceSuite) TestDeletePaymentFreesTheRecordID() {
	err := s.service.DeletePayment(s.GetContext(), s.testData.pending.ID)
	s.NoError(err)

	// the delete is a hard delete, so the id can be written again
	recreated := &payment.PaymentRecord{
		ID:            s.testData.pending.ID,
		ClientID:      s.testData.clientID,
		Amount:        decimal.NewFromInt(750),
		DueDate:       s.GetNow().AddDate(0, 0, 7),
		PaymentStatus: types.PaymentStatusPending,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), recreated))

	resp, err := s.service.GetPayment(s.GetContext(), s.testData.pending.ID)
	s.NoError(err)
	s.True(resp.Amount.Equal(decimal.NewFromInt(750)))
}

func (s *PaymentServiceSuite) TestDeletePaymentRequiresBillingAuthority() {
	err := s.service.DeletePayment(testutil.SetupStaffContext(), s.testData.pending.ID)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *PaymentServiceSuite) TestSummarize() {
	// an overdue record on top of the seeded pending and paid ones
	overdue := &payment.PaymentRecord{
		ID:            "pay_test_overdue",
		ClientID:      s.testData.clientID,
		Amount:        decimal.NewFromInt(300),
		DueDate:       s.GetNow().AddDate(0, 0, -10),
		PaymentStatus: types.PaymentStatusOverdue,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), overdue))

	// cancelled records never count
	cancelled := &payment.PaymentRecord{
		ID:            "pay_test_summary_cancelled",
		ClientID:      s.testData.clientID,
		Amount:        decimal.NewFromInt(9999),
		DueDate:       s.GetNow(),
		PaymentStatus: types.PaymentStatusCancelled,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), cancelled))

	// an open commitment contributes its remaining amount
	pfi := &pendinginvoice.PendingFinalInvoice{
		ID:                   "pfi_test_summary",
		ClientID:             s.testData.clientID,
		AdvanceInvoiceID:     "doc_adv_summary",
		AdvanceAmount:        decimal.NewFromInt(2000),
		TotalAmount:          decimal.NewFromInt(4000),
		RemainingAmount:      decimal.NewFromInt(2000),
		PendingInvoiceStatus: types.PendingInvoiceStatusPending,
		BaseModel:            types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PendingInvoiceRepo.Create(s.GetContext(), pfi))

	summary, err := s.service.Summarize(s.GetContext(), s.testData.clientID)
	s.NoError(err)
	s.True(summary.Paid.Equal(decimal.NewFromInt(2000)), "paid: %s", summary.Paid)
	s.True(summary.Pending.Equal(decimal.NewFromInt(1500)), "pending: %s", summary.Pending)
	s.True(summary.Overdue.Equal(decimal.NewFromInt(300)), "overdue: %s", summary.Overdue)
	s.True(summary.PendingFinalTotal.Equal(decimal.NewFromInt(2000)), "pending final: %s", summary.PendingFinalTotal)
	s.True(summary.Total.Equal(decimal.NewFromInt(5800)), "total: %s", summary.Total)
}

func (s *PaymentServiceSuite) TestSummarizeExcludesCompletedCommitments() {
	finalID := "doc_final_done"
	pfi := &pendinginvoice.PendingFinalInvoice{
		ID:                   "pfi_test_completed",
		ClientID:             s.testData.clientID,
		AdvanceInvoiceID:     "doc_adv_done",
		FinalInvoiceID:       &finalID,
		AdvanceAmount:        decimal.NewFromInt(1000),
		TotalAmount:          decimal.NewFromInt(3000),
		RemainingAmount:      decimal.NewFromInt(2000),
		PendingInvoiceStatus: types.PendingInvoiceStatusCompleted,
		BaseModel:            types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PendingInvoiceRepo.Create(s.GetContext(), pfi))

	summary, err := s.service.Summarize(s.GetContext(), s.testData.clientID)
	s.NoError(err)
	s.True(summary.PendingFinalTotal.IsZero())
}

func (s *PaymentServiceSuite) TestSummarizeEmptyClient() {
	summary, err := s.service.Summarize(s.GetContext(), "client_without_history")
	s.NoError(err)
	s.True(summary.Total.IsZero())
}

func (s *PaymentServiceSuite) TestReconcileOverdue() {
	due := &payment.PaymentRecord{
		ID:            "pay_test_due",
		ClientID:      s.testData.clientID,
		Amount:        decimal.NewFromInt(700),
		DueDate:       s.GetNow().AddDate(0, 0, -1),
		PaymentStatus: types.PaymentStatusPending,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), due))

	count, err := s.service.ReconcileOverdue(s.GetContext())
	s.NoError(err)
	s.Equal(1, count)

	p, err := s.GetStores().PaymentRepo.Get(s.GetContext(), due.ID)
	s.NoError(err)
	s.Equal(types.PaymentStatusOverdue, p.PaymentStatus)

	// the not-yet-due record stays pending
	p, err = s.GetStores().PaymentRepo.Get(s.GetContext(), s.testData.pending.ID)
	s.NoError(err)
	s.Equal(types.PaymentStatusPending, p.PaymentStatus)

	events := s.GetCapturedEvents()
	s.Len(events, 1)
	s.Equal(types.BillingEventPaymentOverdue, events[0].EventName)

	// a second pass finds nothing to do
	count, err = s.service.ReconcileOverdue(s.GetContext())
	s.NoError(err)
	s.Equal(0, count)
}
