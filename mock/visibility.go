package mock

import (
	"context"

	"github.com/fwojciec/lazyframe"
)

var _ lazyframe.VisibilitySource = (*VisibilitySource)(nil)

// VisibilitySource is a synchronous lazyframe.VisibilitySource.
// Tests call Show to deliver intersecting entries to every watcher.
type VisibilitySource struct {
	Watchers []*Watcher
}

// Watch creates a Watcher that delivers entries to fn.
func (s *VisibilitySource) Watch(fn lazyframe.VisibilityFunc) lazyframe.Watcher {
	w := &Watcher{fn: fn}
	s.Watchers = append(s.Watchers, w)
	return w
}

// Show reports targets as intersecting to every watcher observing them,
// in the order given.
func (s *VisibilitySource) Show(ctx context.Context, targets ...lazyframe.Element) {
	for _, w := range s.Watchers {
		var entries []lazyframe.VisibilityEntry
		for _, t := range targets {
			if w.Observing(t) {
				entries = append(entries, lazyframe.VisibilityEntry{Target: t, Intersecting: true})
			}
		}
		if len(entries) > 0 {
			w.fn(ctx, entries)
		}
	}
}

var _ lazyframe.Watcher = (*Watcher)(nil)

// Watcher records observed elements.
type Watcher struct {
	Observed []lazyframe.Element

	fn lazyframe.VisibilityFunc
}

func (w *Watcher) Observe(el lazyframe.Element) {
	if !w.Observing(el) {
		w.Observed = append(w.Observed, el)
	}
}

func (w *Watcher) Unobserve(el lazyframe.Element) {
	for i, o := range w.Observed {
		if o == el {
			w.Observed = append(w.Observed[:i], w.Observed[i+1:]...)
			return
		}
	}
}

// Observing reports whether el is being observed.
func (w *Watcher) Observing(el lazyframe.Element) bool {
	for _, o := range w.Observed {
		if o == el {
			return true
		}
	}
	return false
}

// Fire delivers entries to the watcher's callback whether or not the
// targets are observed.
func (w *Watcher) Fire(ctx context.Context, entries ...lazyframe.VisibilityEntry) {
	w.fn(ctx, entries)
}
