package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/testutil"
	"github.com/glowdesk/glowdesk/internal/types"
)

type PendingInvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PendingInvoiceService
}

func TestPendingInvoiceService(t *testing.T) {
	suite.Run(t, new(PendingInvoiceServiceSuite))
}

func (s *PendingInvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPendingInvoiceService(ServiceParams{
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

func (s *PendingInvoiceServiceSuite) TestOpenForAdvance() {
	resp, err := s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(2000), decimal.NewFromInt(4000), nil)
	s.NoError(err)
	s.Equal("client_1", resp.ClientID)
	s.Equal("doc_adv_1", resp.AdvanceInvoiceID)
	s.True(resp.RemainingAmount.Equal(decimal.NewFromInt(2000)))
	s.Equal(types.PendingInvoiceStatusPending, resp.PendingInvoiceStatus)
	s.Nil(resp.FinalInvoiceID)

	events := s.GetCapturedEvents()
	s.Len(events, 1)
	s.Equal(types.BillingEventPendingInvoiceOpened, events[0].EventName)
}

func (s *PendingInvoiceServiceSuite) TestOpenForAdvanceRejectsInvalidAmounts() {
	_, err := s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.Zero, decimal.NewFromInt(4000), nil)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(2000), decimal.NewFromInt(-1), nil)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// advance above total
	_, err = s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(5000), decimal.NewFromInt(4000), nil)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PendingInvoiceServiceSuite) TestOpenForAdvanceFullCommitment() {
	// advance equal to total leaves a zero remainder, which is allowed
	resp, err := s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(4000), decimal.NewFromInt(4000), nil)
	s.NoError(err)
	s.True(resp.RemainingAmount.IsZero())
}

func (s *PendingInvoiceServiceSuite) TestOpenForAdvanceDuplicate() {
	_, err := s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(2000), decimal.NewFromInt(4000), nil)
	s.NoError(err)

	_, err = s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(1000), decimal.NewFromInt(3000), nil)
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *PendingInvoiceServiceSuite) TestReopenAfterClose() {
	_, err := s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(2000), decimal.NewFromInt(4000), nil)
	s.NoError(err)

	_, err = s.service.CloseWithFinal(s.GetContext(), "doc_adv_1", "doc_final_1")
	s.NoError(err)

	// once closed, the same advance invoice may open a fresh commitment
	_, err = s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(1000), decimal.NewFromInt(2000), nil)
	s.NoError(err)
}

func (s *PendingInvoiceServiceSuite) TestCloseWithFinal() {
	opened, err := s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(2000), decimal.NewFromInt(4000), nil)
	s.NoError(err)

	closed, err := s.service.CloseWithFinal(s.GetContext(), "doc_adv_1", "doc_final_1")
	s.NoError(err)
	s.Equal(opened.ID, closed.ID)
	s.Equal(types.PendingInvoiceStatusCompleted, closed.PendingInvoiceStatus)
	s.NotNil(closed.FinalInvoiceID)
	s.Equal("doc_final_1", *closed.FinalInvoiceID)
	// amounts are frozen at open time
	s.True(closed.RemainingAmount.Equal(decimal.NewFromInt(2000)))

	events := s.GetCapturedEvents()
	s.Len(events, 2)
	s.Equal(types.BillingEventPendingInvoiceClosed, events[1].EventName)
}

func (s *PendingInvoiceServiceSuite) TestCloseWithFinalNoOpenCommitment() {
	_, err := s.service.CloseWithFinal(s.GetContext(), "doc_adv_untracked", "doc_final_1")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PendingInvoiceServiceSuite) TestCloseWithFinalTwice() {
	_, err := s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(2000), decimal.NewFromInt(4000), nil)
	s.NoError(err)

	_, err = s.service.CloseWithFinal(s.GetContext(), "doc_adv_1", "doc_final_1")
	s.NoError(err)

	_, err = s.service.CloseWithFinal(s.GetContext(), "doc_adv_1", "doc_final_2")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PendingInvoiceServiceSuite) TestListOpen() {
	near := s.GetNow().AddDate(0, 1, 0)
	far := s.GetNow().AddDate(0, 3, 0)

	_, err := s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_undated",
		decimal.NewFromInt(100), decimal.NewFromInt(200), nil)
	s.NoError(err)
	_, err = s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_far",
		decimal.NewFromInt(100), decimal.NewFromInt(200), lo.ToPtr(far))
	s.NoError(err)
	_, err = s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_near",
		decimal.NewFromInt(100), decimal.NewFromInt(200), lo.ToPtr(near))
	s.NoError(err)

	// another client's commitment must not leak in
	_, err = s.service.OpenForAdvance(s.GetContext(), "client_2", "doc_adv_other",
		decimal.NewFromInt(100), decimal.NewFromInt(200), nil)
	s.NoError(err)

	// a closed commitment drops out of the open list
	_, err = s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_closed",
		decimal.NewFromInt(100), decimal.NewFromInt(200), nil)
	s.NoError(err)
	_, err = s.service.CloseWithFinal(s.GetContext(), "doc_adv_closed", "doc_final_closed")
	s.NoError(err)

	resp, err := s.service.ListOpen(s.GetContext(), "client_1")
	s.NoError(err)
	s.Len(resp.Items, 3)
	// expected date ascending, undated last
	s.Equal("doc_adv_near", resp.Items[0].AdvanceInvoiceID)
	s.Equal("doc_adv_far", resp.Items[1].AdvanceInvoiceID)
	s.Equal("doc_adv_undated", resp.Items[2].AdvanceInvoiceID)
}

func (s *PendingInvoiceServiceSuite) TestGetPendingInvoice() {
	opened, err := s.service.OpenForAdvance(s.GetContext(), "client_1", "doc_adv_1",
		decimal.NewFromInt(2000), decimal.NewFromInt(4000), nil)
	s.NoError(err)

	resp, err := s.service.GetPendingInvoice(s.GetContext(), opened.ID)
	s.NoError(err)
	s.Equal(opened.ID, resp.ID)

	_, err = s.service.GetPendingInvoice(s.GetContext(), "pfi_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
