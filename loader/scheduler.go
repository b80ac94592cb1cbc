package loader

import (
	"context"

	"github.com/fwojciec/lazyframe"
)

// schedule defers initialization of records until they become visible.
func (l *Loader) schedule(ctx context.Context, records []*lazyframe.Record) {
	if l.Visibility == nil {
		for _, rec := range l.registry.Records() {
			l.initialize(ctx, rec)
		}
		return
	}

	var w lazyframe.Watcher
	w = l.Visibility.Watch(func(ctx context.Context, entries []lazyframe.VisibilityEntry) {
		for _, entry := range entries {
			if !entry.Intersecting {
				continue
			}
			rec := l.registry.Find(entry.Target)
			if rec == nil {
				continue
			}
			l.initialize(ctx, rec)
			w.Unobserve(entry.Target)
		}
	})
	for _, rec := range records {
		w.Observe(rec.Target)
	}
}

// initialize runs the initialization sequence for rec exactly once.
func (l *Loader) initialize(ctx context.Context, rec *lazyframe.Record) {
	if rec.Initialized {
		return
	}
	rec.Initialized = true
	rec.Target.AddClass(lazyframe.ClassLoaded)
	rec.Target.AppendPlayButton(l.playLabel())

	l.load(ctx, rec)

	if rec.Settings.InitInView {
		rec.Target.Click()
	}
	rec.Settings.Hooks.Load(rec)
}
