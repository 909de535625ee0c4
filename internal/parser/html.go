package parser

import (
	"html"
	"strings"

	htmlparser "golang.org/x/net/html"
)

// ExtractTitle returns the page title from the body, preferring the
// <title> tag and falling back to the og:title meta tag. Parked pages
// often carry telling titles ("Domain for sale"), so the title travels
// with the outcome as diagnostic context.
func ExtractTitle(body string) string {
	doc, err := htmlparser.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}

	var title, ogTitle string

	var traverse func(*htmlparser.Node)
	traverse = func(n *htmlparser.Node) {
		if n.Type == htmlparser.ElementNode {
			if n.Data == "title" && title == "" && n.FirstChild != nil {
				title = n.FirstChild.Data
			}
			if n.Data == "meta" && ogTitle == "" {
				var property, content string
				for _, attr := range n.Attr {
					switch attr.Key {
					case "property":
						property = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if property == "og:title" {
					ogTitle = content
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if title == "" {
		title = ogTitle
	}
	return html.UnescapeString(strings.TrimSpace(title))
}
