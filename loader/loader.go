// Package loader implements the lazyframe element pipeline: registration,
// settings resolution, visibility scheduling, metadata fetching, building
// and activation.
//
// A Loader and the document it mutates belong to a single goroutine. The
// metadata fetch and the visibility callback are the only points where the
// pipeline blocks.
package loader

import (
	"context"

	"github.com/fwojciec/lazyframe"
)

// Loader registers placeholder elements and drives them through the
// lazyframe lifecycle. The zero value is ready to use; without a
// Visibility source every lazy element is initialized immediately and
// without a Metadata fetcher no metadata is fetched.
//
// Loader is not safe for concurrent use.
type Loader struct {
	Metadata   lazyframe.MetadataFetcher
	Visibility lazyframe.VisibilitySource

	// PlayLabel is the hidden label of the play button.
	// Defaults to lazyframe.DefaultPlayLabel.
	PlayLabel string

	registry *Registry
	state    map[*lazyframe.Record]*buildState
	seq      int
}

// buildState is pipeline bookkeeping kept outside the public record.
type buildState struct {
	seq         int
	hadChildren bool
	titled      bool
}

// Registry returns the records registered so far.
func (l *Loader) Registry() *Registry {
	l.setup()
	return l.registry
}

func (l *Loader) setup() {
	if l.registry == nil {
		l.registry = NewRegistry()
	}
	if l.state == nil {
		l.state = make(map[*lazyframe.Record]*buildState)
	}
}

// Init registers targets with the given configuration and returns the
// records created by this call. Nil targets and targets that are already
// registered or loaded are skipped.
//
// With lazy-loading disabled every record is initialized before Init
// returns. Otherwise records are handed to the visibility source, or
// initialized immediately in registration order when there is none.
func (l *Loader) Init(ctx context.Context, cfg lazyframe.Config, targets ...lazyframe.Element) []*lazyframe.Record {
	l.setup()

	lazy := lazyframe.Merge(lazyframe.DefaultSettings(), cfg).Lazyload

	var records []*lazyframe.Record
	for _, el := range targets {
		rec := l.register(ctx, el, cfg, lazy)
		if rec != nil {
			records = append(records, rec)
		}
	}

	if lazy {
		l.schedule(ctx, records)
	}
	return records
}

// InitSelector registers every element of doc matching selector.
func (l *Loader) InitSelector(ctx context.Context, doc lazyframe.Document, selector string, cfg lazyframe.Config) ([]*lazyframe.Record, error) {
	elements, err := doc.QuerySelectorAll(selector)
	if err != nil {
		return nil, lazyframe.Errorf(lazyframe.EINVALID, "query %q: %v", selector, err)
	}
	return l.Init(ctx, cfg, elements...), nil
}

func (l *Loader) register(ctx context.Context, el lazyframe.Element, cfg lazyframe.Config, lazy bool) *lazyframe.Record {
	if !isElement(el) || el.HasClass(lazyframe.ClassLoaded) || l.registry.Find(el) != nil {
		return nil
	}

	rec := &lazyframe.Record{
		Target:   el,
		Settings: lazyframe.Resolve(cfg, el.Attributes()),
	}
	l.seq++
	l.state[rec] = &buildState{
		seq:         l.seq,
		hadChildren: el.HasChildren(),
	}

	el.OnClick(func() { l.activate(rec) })

	if lazy {
		l.build(rec, false)
	} else {
		l.initialize(ctx, rec)
	}
	return rec
}

// validator is implemented by elements that can report a typed nil or
// detached value stored in a non-nil interface.
type validator interface {
	Valid() bool
}

// isElement reports whether el can be registered.
func isElement(el lazyframe.Element) bool {
	if el == nil {
		return false
	}
	if v, ok := el.(validator); ok {
		return v.Valid()
	}
	return true
}

func (l *Loader) playLabel() string {
	if l.PlayLabel == "" {
		return lazyframe.DefaultPlayLabel
	}
	return l.PlayLabel
}
