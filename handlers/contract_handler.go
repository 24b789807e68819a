package handlers

import (
	"net/http"

	"github.com/AquaBuilt/aqua-built-backend/types"
	"github.com/gin-gonic/gin"
)

// ContractHandler handles contract email ingestion endpoints.
type ContractHandler struct {
	ingestService IngestService
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(ingestService IngestService) *ContractHandler {
	return &ContractHandler{ingestService: ingestService}
}

type extractContractRequest struct {
	// RawEmail is the base64-encoded email body.
	RawEmail string `json:"rawEmail" binding:"required"`
}

// ExtractContract runs the full pipeline over one contract email: customer
// and line-item extraction, link discovery, and per-addendum fetch results.
func (h *ContractHandler) ExtractContract(c *gin.Context) {
	var req extractContractRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	extraction, err := h.ingestService.IngestContract(c.Request.Context(), req.RawEmail)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse(extraction))
}
