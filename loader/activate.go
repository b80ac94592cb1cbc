package loader

import "github.com/fwojciec/lazyframe"

// activate attaches the built frame on the first click after
// initialization. Later clicks do nothing.
func (l *Loader) activate(rec *lazyframe.Record) {
	if !rec.Initialized || rec.Activated || rec.Frame == nil {
		return
	}
	rec.Target.AppendFrame(rec.Frame)
	rec.Target.AddClass(lazyframe.ClassActivated)
	rec.Activated = true
	rec.Settings.Hooks.Append(rec.Frame)
}
