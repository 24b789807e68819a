package prodbx

import (
	"github.com/AquaBuilt/aqua-built-backend/errors"
	"github.com/AquaBuilt/aqua-built-backend/extractor"
	"github.com/AquaBuilt/aqua-built-backend/types"
)

// ExtractItems parses line items out of a validated addendum page by
// rendering its visible text and applying the same classification rules used
// on email bodies. Per-page item order is preserved.
func ExtractItems(markup string) ([]types.OrderItem, error) {
	text, err := VisibleText(markup)
	if err != nil {
		return nil, errors.Wrap(err, errors.ExtractionFailure, "addendum page text extraction failed")
	}
	return extractor.ExtractOrderItems(text)
}
