package prodbx

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// pagePolicy sanitizes fetched markup before parsing. Scripts, styles and
// event handlers vanish; tables survive because line items are laid out in
// them and the column structure must reach the text rendering.
var pagePolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	return p
}()

// VisibleText renders a hosted page's markup as the plain text a viewer
// would see. Table cells are separated by double spaces and rows by
// newlines so the whitespace-column heuristics used on email bodies apply
// unchanged.
func VisibleText(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(pagePolicy.Sanitize(markup)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "td", "th":
				sb.WriteString("  ")
			case "p", "div", "tr", "li", "br", "table", "h1", "h2", "h3", "h4", "h5", "h6":
				sb.WriteString("\n")
			}
		}
	}
	walk(doc)

	return sb.String(), nil
}
