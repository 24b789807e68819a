package types

// SectionType identifies a logical section of a hosted contract/addendum page.
type SectionType string

const (
	SectionOriginal        SectionType = "original"
	SectionOptionalPackage SectionType = "optional-package"
	SectionAddendum        SectionType = "addendum"
)

// DetectedSection describes one logical section found on a fetched page.
// Selected encodes default user intent only; it never blocks extraction.
type DetectedSection struct {
	Type     SectionType `json:"type"`
	Number   *int        `json:"number,omitempty"`
	Name     string      `json:"name,omitempty"`
	Selected bool        `json:"selected"`
}

// AddendumResult is the per-URL outcome of validating, fetching and
// extracting one addendum link. Valid=false carries the reason in Error and
// is a handled state, not a failure of the surrounding operation.
type AddendumResult struct {
	URL            string            `json:"url"`
	Valid          bool              `json:"valid"`
	Error          string            `json:"error,omitempty"`
	AddendumNumber string            `json:"addendumNumber,omitempty"`
	Sections       []DetectedSection `json:"sections,omitempty"`
	Items          []OrderItem       `json:"items,omitempty"`
}
