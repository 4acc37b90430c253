package htmlreport

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
)

// inlineStylesheet replaces every stylesheet link in a rendered page with a
// style element carrying the given CSS, producing a single self-contained
// file. Other link elements (the favicon) are left alone.
func inlineStylesheet(page []byte, css string) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered page: %w", err)
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; {
			next := child.NextSibling
			if isStylesheetLink(child) {
				styleNode := &html.Node{Type: html.ElementNode, Data: "style"}
				styleNode.AppendChild(&html.Node{Type: html.TextNode, Data: css})
				n.InsertBefore(styleNode, child)
				n.RemoveChild(child)
			} else {
				walk(child)
			}
			child = next
		}
	}
	walk(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render page with inlined stylesheet: %w", err)
	}
	return buf.Bytes(), nil
}

func isStylesheetLink(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "link" {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == "rel" && attr.Val == "stylesheet" {
			return true
		}
	}
	return false
}
