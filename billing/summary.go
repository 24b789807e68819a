// Package billing derives invoice-summary figures from an order's persisted
// aggregates. The formula chain mirrors a legacy spreadsheet and downstream
// billing decisions must match it exactly, so nothing here is simplified or
// reordered. All arithmetic runs on decimals at full precision; rounding to
// two places happens once, when the summary is materialized.
package billing

import (
	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/AquaBuilt/aqua-built-backend/types"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeInvoiceSummary recomputes the derived billing fields for an order.
// It is a pure function over already-persisted aggregates: no I/O, safe to
// call concurrently, and idempotent on unchanged inputs.
//
// An item with a non-zero amount but no progress percentage contributes 0 to
// totalCompleted; it does not default to its full amount. Invoices flagged
// exclude=true are omitted from every sum.
func ComputeInvoiceSummary(order types.Order, items []types.OrderItem, invoices []types.Invoice) types.InvoiceSummary {
	originalInvoice := decimal.Zero
	if order.OrderGrandTotal != nil {
		originalInvoice = decimal.NewFromFloat(*order.OrderGrandTotal)
	}

	totalCompleted := decimal.Zero
	for _, item := range items {
		if item.Type != types.ItemTypeItem {
			continue
		}
		pct := decimal.Zero
		if item.ProgressOverallPct != nil {
			pct = decimal.NewFromFloat(*item.ProgressOverallPct)
		}
		amount := decimal.NewFromFloat(item.Amount)
		totalCompleted = totalCompleted.Add(pct.Div(oneHundred).Mul(amount))
	}

	balanceRemaining := originalInvoice.Sub(totalCompleted)

	totalInvoiceAmounts := decimal.Zero
	paymentsReceived := decimal.Zero
	for _, inv := range invoices {
		if inv.Exclude != nil && *inv.Exclude {
			continue
		}
		totalInvoiceAmounts = totalInvoiceAmounts.Add(decimal.NewFromFloat(inv.InvoiceAmount))
		paymentsReceived = paymentsReceived.Add(decimal.NewFromFloat(inv.PaymentsReceived))
	}

	// Negative by convention, matching the spreadsheet layout.
	lessPaymentsReceived := paymentsReceived.Neg()
	totalDueUponReceipt := totalCompleted.Add(lessPaymentsReceived)

	percentCompleted := decimal.Zero
	if originalInvoice.GreaterThan(decimal.Zero) {
		percentCompleted = totalCompleted.Div(originalInvoice).Mul(oneHundred)
	}

	logger.GetLogger().Debugw("Computed invoice summary",
		"orderID", order.ID,
		"originalInvoice", originalInvoice.String(),
		"totalCompleted", totalCompleted.String(),
		"totalInvoiceAmounts", totalInvoiceAmounts.String(),
	)

	return types.InvoiceSummary{
		OriginalInvoice:      round2(originalInvoice),
		TotalCompleted:       round2(totalCompleted),
		BalanceRemaining:     round2(balanceRemaining),
		PercentCompleted:     round2(percentCompleted),
		LessPaymentsReceived: round2(lessPaymentsReceived),
		TotalDueUponReceipt:  round2(totalDueUponReceipt),
	}
}

// round2 is the presentation boundary: two decimal places, applied exactly
// once per output field.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
