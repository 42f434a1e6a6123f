package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowdesk/glowdesk/internal/api/dto"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/service"
)

type InvoiceHandler struct {
	drafting service.DraftingService
	linkage  service.LinkageService
	log      *logger.Logger
}

func NewInvoiceHandler(drafting service.DraftingService, linkage service.LinkageService, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{drafting: drafting, linkage: linkage, log: log}
}

// DraftFirstInvoice handles GET /clients/:id/invoice-drafts/first
func (h *InvoiceHandler) DraftFirstInvoice(c *gin.Context) {
	clientID := c.Param("id")

	resp, err := h.drafting.DraftFirstInvoice(c.Request.Context(), clientID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DraftFullInvoice handles GET /clients/:id/invoice-drafts/full
func (h *InvoiceHandler) DraftFullInvoice(c *gin.Context) {
	clientID := c.Param("id")

	resp, err := h.drafting.DraftFullInvoice(c.Request.Context(), clientID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DraftFinalInvoice handles GET /pending-invoices/:id/invoice-drafts/final
func (h *InvoiceHandler) DraftFinalInvoice(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.drafting.DraftFinalInvoice(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RecordIssuedInvoice handles POST /invoices/issued
func (h *InvoiceHandler) RecordIssuedInvoice(c *gin.Context) {
	var req dto.IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.drafting.RecordIssuedInvoice(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetCounterpart handles GET /documents/:id/counterpart
func (h *InvoiceHandler) GetCounterpart(c *gin.Context) {
	documentID := c.Param("id")

	resp, err := h.linkage.ResolveCounterpart(c.Request.Context(), documentID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
