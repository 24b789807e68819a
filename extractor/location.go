// Package extractor turns the plain-text rendering of a contract email into
// structured customer and line-item records. The input embeds a tabular
// layout using whitespace and line breaks rather than real table markup, so
// everything here is heuristic: ordered strategy lists, first match wins,
// partial results over errors.
package extractor

import (
	"regexp"
	"strings"

	"github.com/AquaBuilt/aqua-built-backend/errors"
	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/AquaBuilt/aqua-built-backend/patterns"
	"github.com/AquaBuilt/aqua-built-backend/types"
)

// customerIDScanDepth bounds how far down the document the customer-id
// marker is searched for. The marker sits in the letterhead block of every
// known document variant.
const customerIDScanDepth = 40

// docContext carries the split document plus the customer-id marker position
// so positional strategies can skip the letterhead above it.
type docContext struct {
	lines      []string
	markerLine int // -1 when no marker was found
}

// bodyLines returns the lines below the customer-id marker, or the whole
// document when no marker exists.
func (d docContext) bodyLines() []string {
	if d.markerLine < 0 || d.markerLine+1 >= len(d.lines) {
		return d.lines
	}
	return d.lines[d.markerLine+1:]
}

// fieldStrategy is one way of finding a location field. Strategies are tried
// in declaration order; labelled lines always precede positional guesses so
// an explicit label wins.
type fieldStrategy struct {
	Name    string
	Extract func(doc docContext) (string, bool)
}

func labeledStrategy(name string, re *regexp.Regexp) fieldStrategy {
	return fieldStrategy{
		Name: name,
		Extract: func(doc docContext) (string, bool) {
			for _, line := range doc.lines {
				if m := re.FindStringSubmatch(line); m != nil {
					return strings.TrimSpace(m[1]), true
				}
			}
			return "", false
		},
	}
}

var clientNameStrategies = []fieldStrategy{
	labeledStrategy("labeled-client-name", patterns.LabeledClientName),
	{
		Name: "positional-first-name-line",
		Extract: func(doc docContext) (string, bool) {
			for _, line := range doc.bodyLines() {
				trimmed := strings.TrimSpace(line)
				if trimmed == "" || strings.ContainsAny(trimmed, "@$0123456789") {
					continue
				}
				// Headings belong to the item table, not the customer block.
				if c := patterns.ClassifyLine(trimmed); c.Class != patterns.LineNoMatch {
					continue
				}
				if len(strings.Fields(trimmed)) > 5 {
					continue
				}
				return trimmed, true
			}
			return "", false
		},
	},
}

var emailStrategies = []fieldStrategy{
	labeledStrategy("labeled-email", patterns.LabeledEmail),
	{
		Name: "positional-email",
		Extract: func(doc docContext) (string, bool) {
			for _, line := range doc.lines {
				if m := patterns.EmailAddress.FindString(line); m != "" {
					return m, true
				}
			}
			return "", false
		},
	},
}

var phoneStrategies = []fieldStrategy{
	labeledStrategy("labeled-phone", patterns.LabeledPhone),
	{
		Name: "positional-phone",
		Extract: func(doc docContext) (string, bool) {
			for _, line := range doc.lines {
				if m := patterns.PhoneNumber.FindString(line); m != "" {
					return m, true
				}
			}
			return "", false
		},
	},
}

var streetAddressStrategies = []fieldStrategy{
	labeledStrategy("labeled-address", patterns.LabeledAddress),
	{
		Name: "positional-street-address",
		Extract: func(doc docContext) (string, bool) {
			for _, line := range doc.lines {
				trimmed := strings.TrimSpace(line)
				if patterns.StreetAddress.MatchString(trimmed) && !patterns.PhoneNumber.MatchString(trimmed) {
					return trimmed, true
				}
			}
			return "", false
		},
	},
}

func applyStrategies(strategies []fieldStrategy, doc docContext) string {
	for _, s := range strategies {
		if v, ok := s.Extract(doc); ok {
			return v
		}
	}
	return ""
}

// ExtractLocation scans a contract's plain-text body for the customer-id
// marker and the customer/job fields around it. A missing marker is not an
// error: the result carries a nil DbxCustomerID and IsLocationParsed=false,
// and the caller decides how to treat the unparsed document.
func ExtractLocation(text string) (types.Location, error) {
	if strings.TrimSpace(text) == "" {
		return types.Location{}, errors.ExtractionFailed("empty document", "no text content to extract a location from")
	}

	log := logger.GetLogger()
	doc := docContext{lines: strings.Split(text, "\n"), markerLine: -1}

	loc := types.Location{}

	// Customer-id marker near the top of the document.
	depth := customerIDScanDepth
	if depth > len(doc.lines) {
		depth = len(doc.lines)
	}
	for i, line := range doc.lines[:depth] {
		if m := patterns.CustomerIDMarker.FindStringSubmatch(line); m != nil {
			id := m[1]
			loc.DbxCustomerID = &id
			loc.IsLocationParsed = true
			doc.markerLine = i
			break
		}
	}
	if loc.DbxCustomerID == nil {
		log.Debugw("No customer-id marker found; document treated as unparsed")
	}

	loc.ClientName = applyStrategies(clientNameStrategies, doc)
	loc.Email = applyStrategies(emailStrategies, doc)
	loc.Phone = applyStrategies(phoneStrategies, doc)
	loc.StreetAddress = applyStrategies(streetAddressStrategies, doc)

	for _, line := range doc.lines {
		if m := patterns.CityStateZip.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			loc.City = m[1]
			loc.State = m[2]
			loc.Zip = m[3]
			break
		}
	}

	return loc, nil
}
