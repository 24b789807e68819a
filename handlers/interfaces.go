// Package handlers exposes the extraction pipeline over HTTP.
package handlers

import (
	"context"

	apperrors "github.com/AquaBuilt/aqua-built-backend/errors"
	"github.com/AquaBuilt/aqua-built-backend/types"
	"github.com/gin-gonic/gin"
)

// IngestService is the pipeline surface the handlers consume. Satisfied by
// *services.IngestService; narrowed to an interface for handler tests.
type IngestService interface {
	IngestContract(ctx context.Context, rawEmail string) (*types.ContractExtraction, error)
	ProcessAddendum(ctx context.Context, url string) types.AddendumResult
	ValidateAddendumURL(url string) types.AddendumResult
}

// bindJSONOrError binds JSON request body and sets validation error if binding fails.
// Returns true if binding succeeded, false if error was set (caller should return).
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid_request_payload", err.Error()))
		return false
	}
	return true
}
