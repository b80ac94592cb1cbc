package loader

import (
	"context"
	"strconv"

	"github.com/fwojciec/lazyframe"
)

// load fetches missing metadata when the record needs it, then builds.
// A failed fetch leaves the settings untouched.
func (l *Loader) load(ctx context.Context, rec *lazyframe.Record) {
	if rec.Settings.NeedsMetadata() && l.Metadata != nil {
		meta, err := l.Metadata.FetchMetadata(ctx, rec.Settings.Src)
		if err == nil && meta != nil {
			applyMetadata(rec, meta)
		}
	}
	l.build(rec, true)
}

// applyMetadata fills the fields the user did not supply.
func applyMetadata(rec *lazyframe.Record, meta *lazyframe.Metadata) {
	s := &rec.Settings
	if s.Title == "" {
		s.Title = meta.Title
	}
	if s.Thumbnail == "" && meta.Thumbnail != "" {
		s.Thumbnail = meta.Thumbnail
		s.Hooks.ThumbnailLoad(meta.Thumbnail)
	}
}

// build constructs the record's frame and writes the thumbnail and title
// to the target. Repeated calls never duplicate the frame or the title.
func (l *Loader) build(rec *lazyframe.Record, loadThumbnail bool) {
	st := l.state[rec]

	if rec.Frame == nil {
		rec.Frame = newFrame(rec.Settings, st.seq)
	}

	if loadThumbnail && rec.Settings.Thumbnail != "" {
		rec.Target.SetBackgroundImage(lazyframe.ImageSet(rec.Settings.Thumbnail))
	}

	if rec.Settings.Title != "" && !st.hadChildren && !st.titled {
		rec.Target.AppendTitle(rec.Settings.Title)
		st.titled = true
	}

	l.registry.Add(rec)
}

// newFrame builds the iframe description for s. A vendor without a
// resolved ID yields a frame with no src.
func newFrame(s lazyframe.Settings, seq int) *lazyframe.Frame {
	f := &lazyframe.Frame{
		FrameBorder:     "0",
		AllowFullscreen: true,
	}

	if s.ID != "" {
		f.ID = "lazyframe-" + s.ID
	} else {
		f.ID = "lazyframe-" + strconv.Itoa(seq)
	}

	if s.Vendor == lazyframe.VendorNone {
		f.Src = s.Src
	} else if s.ID != "" {
		if u, err := s.Vendor.EmbedURL(s.ID, s.Autoplay, s.Query); err == nil {
			f.Src = u
		}
	}

	if s.Autoplay {
		f.Allow = lazyframe.AutoplayPermissions
	}
	return f
}
