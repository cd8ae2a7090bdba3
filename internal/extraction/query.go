package extraction

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Query is the lookup capability the extractors need from a document
type Query interface {
	FindFirst(selector string) (Element, bool)
	FindAll(selector string) []Element
}

// Element is one node of a parsed page
type Element struct {
	sel *goquery.Selection
}

// FromDocument wraps a parsed page
func FromDocument(doc *goquery.Document) Element {
	return Element{sel: doc.Selection}
}

// FromSelection wraps an existing goquery selection
func FromSelection(sel *goquery.Selection) Element {
	return Element{sel: sel}
}

// FindFirst returns the first descendant matching selector in document order
func (e Element) FindFirst(selector string) (Element, bool) {
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: found}, true
}

// FindAll returns every descendant matching selector in document order
func (e Element) FindAll(selector string) []Element {
	found := e.sel.Find(selector)
	out := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, Element{sel: s})
	})
	return out
}

// Text returns the combined text of the element and its descendants, trimmed
func (e Element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

// RawText returns the combined text without trimming
func (e Element) RawText() string {
	return e.sel.Text()
}

// Attr returns the value of the named attribute
func (e Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// OwnString returns the element's text when it has exactly one text node
// below a chain of only children, as in <span>Toss</span> or <a><span>x</span></a>.
func (e Element) OwnString() (string, bool) {
	if e.sel == nil || len(e.sel.Nodes) == 0 {
		return "", false
	}

	node := e.sel.Nodes[0]
	for node.FirstChild != nil && node.FirstChild == node.LastChild {
		child := node.FirstChild
		switch child.Type {
		case html.TextNode:
			return child.Data, true
		case html.ElementNode:
			node = child
		default:
			return "", false
		}
	}
	return "", false
}
