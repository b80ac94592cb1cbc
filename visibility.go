package lazyframe

import "context"

// VisibilityEntry reports the visibility of one observed element.
type VisibilityEntry struct {
	Target       Element
	Intersecting bool
}

// VisibilityFunc receives a batch of visibility entries.
type VisibilityFunc func(ctx context.Context, entries []VisibilityEntry)

// VisibilitySource reports when elements enter the viewport.
type VisibilitySource interface {
	// Watch creates a watcher that delivers entries to fn.
	Watch(fn VisibilityFunc) Watcher
}

// Watcher tracks a set of observed elements.
type Watcher interface {
	Observe(el Element)
	Unobserve(el Element)
}
