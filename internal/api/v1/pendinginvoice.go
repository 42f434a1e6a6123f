package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/service"
)

type PendingInvoiceHandler struct {
	service service.PendingInvoiceService
	log     *logger.Logger
}

func NewPendingInvoiceHandler(service service.PendingInvoiceService, log *logger.Logger) *PendingInvoiceHandler {
	return &PendingInvoiceHandler{service: service, log: log}
}

// ListOpenForClient handles GET /clients/:id/pending-invoices
func (h *PendingInvoiceHandler) ListOpenForClient(c *gin.Context) {
	clientID := c.Param("id")
	if clientID == "" {
		c.Error(ierr.NewError("client id is required").
			WithHint("Client id is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListOpen(c.Request.Context(), clientID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPendingInvoice handles GET /pending-invoices/:id
func (h *PendingInvoiceHandler) GetPendingInvoice(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetPendingInvoice(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
