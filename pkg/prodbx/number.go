package prodbx

import (
	"net/url"
	"regexp"

	"github.com/AquaBuilt/aqua-built-backend/patterns"
)

// queryLeadingNumber pulls the first dot-separated token out of a hosted
// page's opaque query string, e.g. "35587.426.20251112100816" -> "35587".
var queryLeadingNumber = regexp.MustCompile(`^(\d+)(?:\.|$)`)

// numberStrategy is one way of determining an addendum's number. Strategies
// run in declaration order until one yields a value, keeping the precedence
// rule visible: the fetched page is authoritative when present, the URL
// structure is the fallback.
type numberStrategy struct {
	Name    string
	Extract func(pageText, rawURL string) (string, bool)
}

var numberStrategies = []numberStrategy{
	{
		Name: "page-text",
		Extract: func(pageText, _ string) (string, bool) {
			if m := patterns.AddendumNumberMarker.FindStringSubmatch(pageText); m != nil {
				return m[1], true
			}
			return "", false
		},
	},
	{
		Name: "url-structure",
		Extract: func(_, rawURL string) (string, bool) {
			u, err := url.Parse(rawURL)
			if err != nil {
				return "", false
			}
			if m := queryLeadingNumber.FindStringSubmatch(u.RawQuery); m != nil {
				return m[1], true
			}
			return "", false
		},
	},
}

// ExtractNumber resolves an addendum's number from the page's visible text
// when possible, falling back to the URL's own structure when the page
// yields no match or no page is available (pass pageText == "" after a
// failed fetch). Both strategies are always attempted in order.
func ExtractNumber(pageText, rawURL string) string {
	for _, s := range numberStrategies {
		if n, ok := s.Extract(pageText, rawURL); ok {
			return n
		}
	}
	return ""
}
