package types

// ItemType classifies a contract table row.
type ItemType string

const (
	ItemTypeMainCategory ItemType = "maincategory"
	ItemTypeSubCategory  ItemType = "subcategory"
	ItemTypeItem         ItemType = "item"
)

// Location holds the customer and job-site fields extracted from a contract
// email. DbxCustomerID is the external identity key correlating the customer
// across orders, alerts, and vendor records; nil means the document could not
// be confidently classified.
type Location struct {
	DbxCustomerID    *string `json:"dbxCustomerId"`
	ClientName       string  `json:"clientName"`
	Email            string  `json:"email,omitempty"`
	Phone            string  `json:"phone,omitempty"`
	StreetAddress    string  `json:"streetAddress"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Zip              string  `json:"zip"`
	IsLocationParsed bool    `json:"isLocationParsed"`
}

// OrderItem is one row of a contract's line-item table. Maincategory and
// subcategory rows are structural headers with no financial amount; they
// group the item rows that follow them until the next same-or-higher-level
// header. Positional order is significant and must be preserved.
type OrderItem struct {
	ID                    string   `json:"id"`
	Type                  ItemType `json:"type"`
	ProductService        string   `json:"productService"`
	Qty                   *float64 `json:"qty,omitempty"`
	Rate                  *float64 `json:"rate,omitempty"`
	Amount                float64  `json:"amount"`
	ProgressOverallPct    *float64 `json:"progressOverallPct,omitempty"`
	PreviouslyInvoicedPct *float64 `json:"previouslyInvoicedPct,omitempty"`
	VendorName1           string   `json:"vendorName1,omitempty"`
	EstimatedVendorCost   *float64 `json:"estimatedVendorCost,omitempty"`
	VendorBillingToDate   *float64 `json:"vendorBillingToDate,omitempty"`
}

// ExtractedLinks holds the contract and addendum URLs found in an email.
// AddendumURLs is insertion-ordered and may contain duplicates;
// de-duplication is the caller's concern.
type ExtractedLinks struct {
	OriginalContractURL *string  `json:"originalContractUrl"`
	AddendumURLs        []string `json:"addendumUrls"`
}

// ParsedEmail is the output of the MIME-decoding collaborator: the plain-text
// and HTML renderings of an email body.
type ParsedEmail struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// ContractExtraction is the full result of ingesting one contract email.
type ContractExtraction struct {
	Location Location         `json:"location"`
	Items    []OrderItem      `json:"items"`
	Links    ExtractedLinks   `json:"links"`
	Addenda  []AddendumResult `json:"addenda,omitempty"`
}
