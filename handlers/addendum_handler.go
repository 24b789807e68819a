package handlers

import (
	"net/http"

	"github.com/AquaBuilt/aqua-built-backend/types"
	"github.com/gin-gonic/gin"
)

// AddendumHandler handles single-URL addendum operations.
type AddendumHandler struct {
	ingestService IngestService
}

// NewAddendumHandler creates a new AddendumHandler.
func NewAddendumHandler(ingestService IngestService) *AddendumHandler {
	return &AddendumHandler{ingestService: ingestService}
}

type addendumRequest struct {
	URL string `json:"url" binding:"required"`
}

// ValidateAddendum answers whether a URL is a fetchable contract page link.
// Pure shape check, no network traffic.
func (h *AddendumHandler) ValidateAddendum(c *gin.Context) {
	var req addendumRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	result := h.ingestService.ValidateAddendumURL(req.URL)
	c.JSON(http.StatusOK, types.SuccessResponse(result))
}

// DetectAddendum fetches the page and reports its logical sections and
// addendum number. An unreachable page is a valid=false result, not an
// HTTP error.
func (h *AddendumHandler) DetectAddendum(c *gin.Context) {
	var req addendumRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	result := h.ingestService.ProcessAddendum(c.Request.Context(), req.URL)
	result.Items = nil
	c.JSON(http.StatusOK, types.SuccessResponse(result))
}

// ExtractAddendum fetches the page and extracts its line-item table.
func (h *AddendumHandler) ExtractAddendum(c *gin.Context) {
	var req addendumRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	result := h.ingestService.ProcessAddendum(c.Request.Context(), req.URL)
	result.Sections = nil
	c.JSON(http.StatusOK, types.SuccessResponse(result))
}
