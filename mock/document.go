package mock

import "github.com/fwojciec/lazyframe"

var _ lazyframe.Document = (*Document)(nil)

// Document is a mock implementation of lazyframe.Document.
type Document struct {
	QuerySelectorAllFn func(selector string) ([]lazyframe.Element, error)
}

func (d *Document) QuerySelectorAll(selector string) ([]lazyframe.Element, error) {
	return d.QuerySelectorAllFn(selector)
}
