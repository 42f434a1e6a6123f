package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowdesk/glowdesk/internal/api/dto"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/service"
	"github.com/glowdesk/glowdesk/internal/types"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, log: log}
}

// GetPayment handles GET /payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("payment id is required").
			WithHint("Payment id is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetPayment(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListPayments handles GET /payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var filter types.PaymentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListPayments(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MarkPaid handles POST /payments/:id/pay
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	id := c.Param("id")

	// settlement details are optional
	var req dto.MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.log.Error("Failed to bind JSON", "error", err)
			c.Error(ierr.WithError(err).
				WithHint("Invalid request format").
				Mark(ierr.ErrValidation))
			return
		}
	}

	resp, err := h.service.MarkPaid(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MarkUnpaid handles POST /payments/:id/unpay
func (h *PaymentHandler) MarkUnpaid(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.MarkUnpaid(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeletePayment handles DELETE /payments/:id
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeletePayment(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment deleted successfully"})
}

// GetBillingSummary handles GET /clients/:id/billing-summary
func (h *PaymentHandler) GetBillingSummary(c *gin.Context) {
	clientID := c.Param("id")

	resp, err := h.service.Summarize(c.Request.Context(), clientID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ReconcileOverdue handles POST /cron/payments/reconcile-overdue
func (h *PaymentHandler) ReconcileOverdue(c *gin.Context) {
	count, err := h.service.ReconcileOverdue(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reconciled": count})
}
