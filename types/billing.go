package types

// Order carries the persisted aggregate fields the reconciler reads.
type Order struct {
	ID              string   `json:"id,omitempty"`
	OrderGrandTotal *float64 `json:"orderGrandTotal"`
}

// Invoice is one persisted invoice against an order. Exclude=true removes it
// from every reconciler sum; nil is treated as false.
type Invoice struct {
	ID               string  `json:"id,omitempty"`
	InvoiceAmount    float64 `json:"invoiceAmount"`
	PaymentsReceived float64 `json:"paymentsReceived"`
	Exclude          *bool   `json:"exclude,omitempty"`
}

// InvoiceSummary holds the derived billing fields. It is recomputed on every
// read and never stored. Field names map onto a historical spreadsheet layout
// and must not be renamed.
type InvoiceSummary struct {
	OriginalInvoice      float64 `json:"originalInvoice"`
	TotalCompleted       float64 `json:"totalCompleted"`
	BalanceRemaining     float64 `json:"balanceRemaining"`
	PercentCompleted     float64 `json:"percentCompleted"`
	LessPaymentsReceived float64 `json:"lessPaymentsReceived"`
	TotalDueUponReceipt  float64 `json:"totalDueUponReceipt"`
}
