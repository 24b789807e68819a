package handlers

import (
	"net/http"

	"github.com/AquaBuilt/aqua-built-backend/billing"
	"github.com/AquaBuilt/aqua-built-backend/types"
	"github.com/gin-gonic/gin"
)

// BillingHandler exposes the invoice summary computation. It is stateless;
// callers supply the order aggregates and receive the derived figures.
type BillingHandler struct{}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler() *BillingHandler {
	return &BillingHandler{}
}

type invoiceSummaryRequest struct {
	Order    types.Order       `json:"order"`
	Items    []types.OrderItem `json:"items"`
	Invoices []types.Invoice   `json:"invoices"`
}

// InvoiceSummary recomputes the derived billing fields for the supplied
// order, items and invoices.
func (h *BillingHandler) InvoiceSummary(c *gin.Context) {
	var req invoiceSummaryRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	summary := billing.ComputeInvoiceSummary(req.Order, req.Items, req.Invoices)
	c.JSON(http.StatusOK, types.SuccessResponse(summary))
}
