package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lazyframe"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Element implements lazyframe.Element at compile time.
var _ lazyframe.Element = (*Element)(nil)

// Element is an element node of a Document. Click handlers are kept in
// memory; Click runs them in registration order.
type Element struct {
	sel      *goquery.Selection
	node     *html.Node
	handlers []func()
}

// Valid reports whether e refers to a node. A nil *Element, such as the
// result of a Document.Element lookup that matched nothing, is not valid.
func (e *Element) Valid() bool {
	return e != nil && e.node != nil
}

// Node returns the underlying HTML node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Attributes returns the element's attributes in document order.
func (e *Element) Attributes() []lazyframe.Attribute {
	attrs := make([]lazyframe.Attribute, 0, len(e.node.Attr))
	for _, a := range e.node.Attr {
		attrs = append(attrs, lazyframe.Attribute{Name: a.Key, Value: a.Val})
	}
	return attrs
}

// HasClass reports whether the element carries the class.
func (e *Element) HasClass(name string) bool {
	return e.sel.HasClass(name)
}

// AddClass adds a class to the element.
func (e *Element) AddClass(name string) {
	e.sel.AddClass(name)
}

// HasChildren reports whether the element has child elements.
// Text nodes are not counted.
func (e *Element) HasChildren() bool {
	return e.sel.Children().Length() > 0
}

// SetBackgroundImage sets background-image in the style attribute,
// replacing any earlier value and keeping other declarations.
func (e *Element) SetBackgroundImage(value string) {
	style, _ := e.sel.Attr("style")
	var decls []string
	for _, d := range strings.Split(style, ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		prop, _, _ := strings.Cut(d, ":")
		if strings.EqualFold(strings.TrimSpace(prop), "background-image") {
			continue
		}
		decls = append(decls, d)
	}
	decls = append(decls, "background-image: "+value)
	e.sel.SetAttr("style", strings.Join(decls, "; ")+";")
}

// AppendPlayButton appends the play button.
func (e *Element) AppendPlayButton(label string) {
	span := newNode(atom.Span, attr("class", "visually-hidden"))
	span.AppendChild(&html.Node{Type: html.TextNode, Data: label})
	button := newNode(atom.Button, attr("type", "button"), attr("class", lazyframe.ClassPlayBtn))
	button.AppendChild(span)
	e.node.AppendChild(button)
}

// AppendTitle appends a span holding the title as text.
func (e *Element) AppendTitle(title string) {
	span := newNode(atom.Span, attr("class", lazyframe.ClassTitle))
	span.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	e.node.AppendChild(span)
}

// AppendFrame attaches an iframe built from f.
func (e *Element) AppendFrame(f *lazyframe.Frame) {
	e.node.AppendChild(FrameNode(f))
}

// OnClick registers a click handler.
func (e *Element) OnClick(fn func()) {
	e.handlers = append(e.handlers, fn)
}

// Click runs every registered click handler.
func (e *Element) Click() {
	for _, fn := range e.handlers {
		fn()
	}
}

// Path returns a CSS selector that uniquely locates the element from the
// document root, e.g. "html > body:nth-child(2) > div:nth-child(1)".
func (e *Element) Path() string {
	var parts []string
	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if n.Parent == nil || n.Parent.Type != html.ElementNode {
			parts = append(parts, n.Data)
			break
		}
		parts = append(parts, n.Data+":nth-child("+strconv.Itoa(elementIndex(n))+")")
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

// elementIndex returns the 1-based position of n among its element siblings.
func elementIndex(n *html.Node) int {
	i := 1
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			i++
		}
	}
	return i
}

// FrameNode builds the iframe node for f. The src attribute is omitted
// when f has none.
func FrameNode(f *lazyframe.Frame) *html.Node {
	attrs := []html.Attribute{attr("id", f.ID)}
	if f.Src != "" {
		attrs = append(attrs, attr("src", f.Src))
	}
	attrs = append(attrs, attr("frameborder", f.FrameBorder))
	if f.AllowFullscreen {
		attrs = append(attrs, attr("allowfullscreen", ""))
	}
	if f.Allow != "" {
		attrs = append(attrs, attr("allow", f.Allow))
	}
	return newNode(atom.Iframe, attrs...)
}

func newNode(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
