// Package patterns holds the named regular expressions and line heuristics
// shared by the contract and addendum extractors. Every matcher lives here so
// new document variants can be handled by adjusting one definition instead of
// restructuring extractor control flow.
package patterns

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultProdbxHost is the hosting domain contract and addendum pages live on.
const DefaultProdbxHost = "l1.prodbx.com"

var (
	// CustomerIDMarker captures the external customer identifier printed near
	// the top of a contract document, e.g. "Customer #: 35587".
	CustomerIDMarker = regexp.MustCompile(`(?i)\bcust(?:omer)?\.?\s*(?:id|#|no\.?|number)\s*[:#-]?\s*([A-Za-z0-9][A-Za-z0-9-]*)`)

	// DollarAmount matches a currency cell, optionally signed, with thousands
	// separators: "$1,234.56", "-500", "(750.00)".
	DollarAmount = regexp.MustCompile(`\(?\$?\s*-?[\d,]+(?:\.\d{1,2})?\)?`)

	// ItemRow matches a table row rendered as whitespace-separated columns:
	// description, qty, rate, amount. The amount column must look numeric to
	// anchor the row; qty and rate cells may hold anything, since blank or
	// non-numeric cells contribute zero downstream rather than failing the row.
	ItemRow = regexp.MustCompile(`^(.{3,}?)\s{2,}(\S*)\s{2,}(\S*)\s{2,}(\(?\$?\s*-?[\d,]+(?:\.\d+)?\)?)\s*$`)

	// ItemRowAmountOnly matches a row carrying only a description and a
	// trailing dollar amount, the common shape for lump-sum lines.
	ItemRowAmountOnly = regexp.MustCompile(`^(.{3,}?)\s{2,}\(?\$\s*(-?[\d,]+(?:\.\d{1,2})?)\)?\s*$`)

	// MainCategoryHeading matches an ALL-CAPS heading line with no currency
	// column, e.g. "POOL CONSTRUCTION" or "PHASE 2 EXCAVATION".
	MainCategoryHeading = regexp.MustCompile(`^\s*([A-Z][A-Z0-9&/()'.,: -]*[A-Z)])\s*$`)

	// SubCategoryHeading matches a dashed heading, e.g. "-PLUMBING-".
	SubCategoryHeading = regexp.MustCompile(`^\s*-\s*([A-Z][A-Z0-9&/()'., -]*?)\s*-\s*$`)

	// OptionalPackageMarker identifies an optional-package section on a hosted
	// page: "-OPTIONAL PACKAGE 3-".
	OptionalPackageMarker = regexp.MustCompile(`-\s*OPTIONAL\s+PACKAGE\s+(\d+)\s*-`)

	// AddendumNumberMarker identifies the addendum header on a hosted page:
	// "Addendum # : 2".
	AddendumNumberMarker = regexp.MustCompile(`(?i)Addendum\s*#\s*:\s*(\d+)`)

	// Contract-identity markers. Any one of them present in a page's visible
	// text means an original-contract section exists.
	ContractNumberHeader     = regexp.MustCompile(`(?i)\bcontract\s*(?:no\.?|number|#)`)
	ProjectInformationHeader = regexp.MustCompile(`(?i)\bproject\s+information\b`)
	ContractPriceHeader      = regexp.MustCompile(`(?i)\bcontract\s+price\b`)
	DescriptionQtyHeader     = regexp.MustCompile(`(?i)\bdescription\b\s+\bqty\b`)

	// Location field labels. Labelled lines win over positional guesses.
	LabeledClientName = regexp.MustCompile(`(?i)^\s*(?:client|customer)(?:\s*name)?\s*:\s*(.+?)\s*$`)
	LabeledEmail      = regexp.MustCompile(`(?i)^\s*e-?mail\s*:\s*(\S+@\S+)\s*$`)
	LabeledPhone      = regexp.MustCompile(`(?i)^\s*(?:phone|tel(?:ephone)?|cell|mobile)\s*:\s*(.+?)\s*$`)
	LabeledAddress    = regexp.MustCompile(`(?i)^\s*(?:street\s*)?address\s*:\s*(.+?)\s*$`)

	// Positional location heuristics.
	EmailAddress  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	PhoneNumber   = regexp.MustCompile(`\(?\d{3}\)?[ .-]?\d{3}[ .-]?\d{4}`)
	CityStateZip  = regexp.MustCompile(`^\s*([A-Za-z .'-]+?),?\s+([A-Z]{2})\.?\s+(\d{5}(?:-\d{4})?)\s*$`)
	StreetAddress = regexp.MustCompile(`^\s*\d+\s+[A-Za-z][A-Za-z0-9 .,'#-]*\s*$`)
)

// ProdbxLinkPattern builds the matcher for contract/addendum links hosted on
// the given domain. The fixed path shape is /go/view/?<opaque-query>.
func ProdbxLinkPattern(host string) *regexp.Regexp {
	if host == "" {
		host = DefaultProdbxHost
	}
	return regexp.MustCompile(`https://` + regexp.QuoteMeta(host) + `/go/view/\?[^\s"'<>)\]]+`)
}

// ParseMoney converts a currency cell to a float. Currency symbols, thousands
// separators and surrounding whitespace are stripped; parentheses indicate a
// negative value. An empty or non-numeric cell yields 0 — spreadsheet-origin
// documents routinely leave numeric cells blank, and a blank cell must not
// fail the row.
func ParseMoney(cell string) float64 {
	v, ok := parseMoney(cell)
	if !ok {
		return 0
	}
	return v
}

// ParseMoneyPtr is ParseMoney for optional columns: a blank or unparsable
// cell yields nil instead of zero so callers can distinguish "absent" from
// "explicitly zero".
func ParseMoneyPtr(cell string) *float64 {
	v, ok := parseMoney(cell)
	if !ok {
		return nil
	}
	return &v
}

func parseMoney(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" || s == "-" || s == "." {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}
