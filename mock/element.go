package mock

import (
	"slices"

	"github.com/fwojciec/lazyframe"
)

var _ lazyframe.Element = (*Element)(nil)

// Element is an in-memory lazyframe.Element that records every mutation.
type Element struct {
	Attrs      []lazyframe.Attribute
	Classes    []string
	Children   []string // "button", "title" or "iframe", in append order
	Titles     []string
	Frames     []*lazyframe.Frame
	Background string
	PlayLabels []string

	handlers []func()
}

// NewElement creates an Element with attributes given as name/value pairs.
func NewElement(pairs ...string) *Element {
	el := &Element{}
	for i := 0; i+1 < len(pairs); i += 2 {
		el.Attrs = append(el.Attrs, lazyframe.Attribute{Name: pairs[i], Value: pairs[i+1]})
	}
	return el
}

func (e *Element) Attributes() []lazyframe.Attribute {
	return e.Attrs
}

func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.Classes, name)
}

func (e *Element) AddClass(name string) {
	if !e.HasClass(name) {
		e.Classes = append(e.Classes, name)
	}
}

func (e *Element) HasChildren() bool {
	return len(e.Children) > 0
}

func (e *Element) SetBackgroundImage(value string) {
	e.Background = value
}

func (e *Element) AppendPlayButton(label string) {
	e.Children = append(e.Children, "button")
	e.PlayLabels = append(e.PlayLabels, label)
}

func (e *Element) AppendTitle(title string) {
	e.Children = append(e.Children, "title")
	e.Titles = append(e.Titles, title)
}

func (e *Element) AppendFrame(f *lazyframe.Frame) {
	e.Children = append(e.Children, "iframe")
	e.Frames = append(e.Frames, f)
}

func (e *Element) OnClick(fn func()) {
	e.handlers = append(e.handlers, fn)
}

func (e *Element) Click() {
	for _, fn := range e.handlers {
		fn()
	}
}
