package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// VisibleText returns the text content of an HTML document, roughly as a
// reader would see it: text nodes joined by spaces, with script and style
// contents skipped. Used as a fallback when the renderer did not supply a
// text snapshot.
func VisibleText(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		// html.Parse is extremely tolerant; if it fails anyway, fall back
		// to the raw markup so the regex passes still see something.
		return rawHTML
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return sb.String()
}
