package extractor

import (
	"strings"

	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/AquaBuilt/aqua-built-backend/patterns"
	"github.com/AquaBuilt/aqua-built-backend/types"
	"golang.org/x/net/html"
)

// foundLink is one hosted-document link in document order, with whatever
// labelling context surrounded it.
type foundLink struct {
	url             string
	labeledAddendum bool
}

// ExtractContractLinks scans a parsed email for links on the contract
// hosting domain. The HTML body is scanned first because anchors carry
// unambiguous URLs; the text body follows. The first link in document order
// not explicitly labelled as an addendum becomes the original contract URL;
// every other matching link, and any link labelled "Addendum" regardless of
// order, lands in AddendumURLs in the order found. Duplicates are kept —
// de-duplication is the caller's concern — and finding nothing is not an
// error.
func ExtractContractLinks(parsed types.ParsedEmail, host string) types.ExtractedLinks {
	pattern := patterns.ProdbxLinkPattern(host)
	var found []foundLink

	if parsed.HTML != "" {
		found = append(found, scanHTMLAnchors(parsed.HTML, host)...)
	}
	if parsed.Text != "" {
		for _, line := range strings.Split(parsed.Text, "\n") {
			for _, u := range pattern.FindAllString(line, -1) {
				found = append(found, foundLink{
					url:             u,
					labeledAddendum: containsAddendumLabel(line),
				})
			}
		}
	}

	links := types.ExtractedLinks{AddendumURLs: []string{}}
	for _, f := range found {
		if links.OriginalContractURL == nil && !f.labeledAddendum {
			u := f.url
			links.OriginalContractURL = &u
			continue
		}
		links.AddendumURLs = append(links.AddendumURLs, f.url)
	}

	logger.GetLogger().Debugw("Extracted contract links",
		"hasOriginal", links.OriginalContractURL != nil,
		"addendumCount", len(links.AddendumURLs),
	)
	return links
}

// scanHTMLAnchors walks the HTML body's anchor elements in document order.
// A malformed body degrades to a regex scan of the raw markup rather than
// dropping the links.
func scanHTMLAnchors(body, host string) []foundLink {
	pattern := patterns.ProdbxLinkPattern(host)

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		logger.GetLogger().Warnw("HTML body failed to parse; falling back to raw scan", "error", err)
		var found []foundLink
		for _, u := range pattern.FindAllString(body, -1) {
			found = append(found, foundLink{url: u})
		}
		return found
	}

	var found []foundLink
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if u := pattern.FindString(attr.Val); u != "" {
					found = append(found, foundLink{
						url:             u,
						labeledAddendum: containsAddendumLabel(anchorText(n)),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

// anchorText collects the visible text inside an anchor element.
func anchorText(n *html.Node) string {
	var sb strings.Builder
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}

func containsAddendumLabel(s string) bool {
	return strings.Contains(strings.ToLower(s), "addendum")
}
