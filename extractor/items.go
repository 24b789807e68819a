package extractor

import (
	"strings"

	"github.com/AquaBuilt/aqua-built-backend/errors"
	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/AquaBuilt/aqua-built-backend/patterns"
	"github.com/AquaBuilt/aqua-built-backend/types"
	"github.com/google/uuid"
)

// ExtractOrderItems classifies every line of a contract body into the
// category → subcategory → item hierarchy and returns the rows in document
// order. Header rows are kept in the list as structural entries; an item row
// belongs to the most recently seen header, so category assignment persists
// until overridden rather than resetting per row.
//
// The result is best-effort: a partially structured document still returns
// whatever rows were recognized. An ExtractionFailed error is returned only
// when no heading and no item-shaped line exist at all.
func ExtractOrderItems(text string) ([]types.OrderItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.ExtractionFailed("empty document", "no text content to extract items from")
	}

	log := logger.GetLogger()
	var items []types.OrderItem

	for _, line := range strings.Split(text, "\n") {
		c := patterns.ClassifyLine(strings.TrimRight(line, " \t\r"))

		switch c.Class {
		case patterns.LineMainCategory:
			items = append(items, types.OrderItem{
				ID:             uuid.New().String(),
				Type:           types.ItemTypeMainCategory,
				ProductService: c.Heading,
			})
		case patterns.LineSubCategory:
			items = append(items, types.OrderItem{
				ID:             uuid.New().String(),
				Type:           types.ItemTypeSubCategory,
				ProductService: c.Heading,
			})
		case patterns.LineItem:
			items = append(items, types.OrderItem{
				ID:             uuid.New().String(),
				Type:           types.ItemTypeItem,
				ProductService: c.Item.Description,
				Qty:            patterns.ParseMoneyPtr(c.Item.Qty),
				Rate:           patterns.ParseMoneyPtr(c.Item.Rate),
				Amount:         patterns.ParseMoney(c.Item.Amount),
			})
		}
	}

	if len(items) == 0 {
		return nil, errors.ExtractionFailed(
			"unstructured document",
			"no heading or item-shaped line found",
		)
	}

	log.Debugw("Extracted order items", "count", len(items))
	return items, nil
}
