// Package goquery implements the lazyframe host document over an HTML tree
// parsed with goquery. DOM additions are written into the tree and can be
// rendered back to HTML.
package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/lazyframe"
	"golang.org/x/net/html"
)

// Ensure Document implements lazyframe.Document at compile time.
var _ lazyframe.Document = (*Document)(nil)

// Document is a parsed HTML document. It hands out one Element per node,
// so elements returned by separate queries compare equal.
//
// Document is not safe for concurrent use.
type Document struct {
	doc      *goquery.Document
	elements map[*html.Node]*Element
}

// NewDocument parses HTML from r.
func NewDocument(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, lazyframe.Errorf(lazyframe.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{
		doc:      doc,
		elements: make(map[*html.Node]*Element),
	}, nil
}

// NewDocumentFromHTML parses an HTML string.
func NewDocumentFromHTML(s string) (*Document, error) {
	return NewDocument(strings.NewReader(s))
}

// QuerySelectorAll returns the elements matching selector in document order.
// Returns EINVALID if the selector does not compile.
func (d *Document) QuerySelectorAll(selector string) ([]lazyframe.Element, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, lazyframe.Errorf(lazyframe.EINVALID, "invalid selector %q: %v", selector, err)
	}

	var elements []lazyframe.Element
	d.doc.FindMatcher(m).Each(func(_ int, sel *goquery.Selection) {
		elements = append(elements, d.element(sel.Get(0)))
	})
	return elements, nil
}

// Element returns the Element for the first node matching selector,
// or nil if nothing matches.
func (d *Document) Element(selector string) *Element {
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return nil
	}
	return d.element(sel.Get(0))
}

func (d *Document) element(n *html.Node) *Element {
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{sel: goquery.NewDocumentFromNode(n).Selection, node: n}
	d.elements[n] = el
	return el
}

// HTML renders the document.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// Render writes the document to w.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.doc.Get(0))
}
