package patterns

import "strings"

// LineClass is the classification a matcher assigns to one document line.
type LineClass string

const (
	LineNoMatch      LineClass = ""
	LineMainCategory LineClass = "maincategory"
	LineSubCategory  LineClass = "subcategory"
	LineItem         LineClass = "item"
)

// ItemFields carries the raw cells of a line classified as an item row.
// Cells are unparsed strings; numeric conversion (with its fallback-to-zero
// policy) is the extractor's job.
type ItemFields struct {
	Description string
	Qty         string
	Rate        string
	Amount      string
}

// Classification is the outcome of matching one line.
type Classification struct {
	Class   LineClass
	Heading string
	Item    *ItemFields
}

// Matcher is one named classification rule. Matchers are evaluated in order;
// the first match wins.
type Matcher struct {
	Name  string
	Match func(line string) (Classification, bool)
}

// LineMatchers is the ordered rule list for contract table rows. Item rows
// are matched first because they require numeric columns; a dashed heading is
// checked before the ALL-CAPS rule since every dashed heading is also
// uppercase.
var LineMatchers = []Matcher{
	{
		Name: "item-row",
		Match: func(line string) (Classification, bool) {
			if m := ItemRow.FindStringSubmatch(line); m != nil {
				return Classification{
					Class: LineItem,
					Item: &ItemFields{
						Description: strings.TrimSpace(m[1]),
						Qty:         strings.TrimSpace(m[2]),
						Rate:        strings.TrimSpace(m[3]),
						Amount:      strings.TrimSpace(m[4]),
					},
				}, true
			}
			return Classification{}, false
		},
	},
	{
		Name: "item-row-amount-only",
		Match: func(line string) (Classification, bool) {
			if m := ItemRowAmountOnly.FindStringSubmatch(line); m != nil {
				return Classification{
					Class: LineItem,
					Item: &ItemFields{
						Description: strings.TrimSpace(m[1]),
						Amount:      strings.TrimSpace(m[2]),
					},
				}, true
			}
			return Classification{}, false
		},
	},
	{
		Name: "dashed-subcategory",
		Match: func(line string) (Classification, bool) {
			if m := SubCategoryHeading.FindStringSubmatch(line); m != nil {
				return Classification{
					Class:   LineSubCategory,
					Heading: strings.TrimSpace(m[1]),
				}, true
			}
			return Classification{}, false
		},
	},
	{
		Name: "caps-maincategory",
		Match: func(line string) (Classification, bool) {
			m := MainCategoryHeading.FindStringSubmatch(line)
			if m == nil {
				return Classification{}, false
			}
			heading := strings.TrimSpace(m[1])
			// A heading needs at least two letters; bare numbers or currency
			// columns are not categories.
			letters := 0
			for _, r := range heading {
				if r >= 'A' && r <= 'Z' {
					letters++
				}
			}
			if letters < 2 || strings.Contains(line, "$") {
				return Classification{}, false
			}
			return Classification{Class: LineMainCategory, Heading: heading}, true
		},
	},
}

// ClassifyLine runs the ordered matcher list against one line. It returns
// LineNoMatch when no rule applies.
func ClassifyLine(line string) Classification {
	for _, m := range LineMatchers {
		if c, ok := m.Match(line); ok {
			return c
		}
	}
	return Classification{Class: LineNoMatch}
}
