package slog

import (
	"log/slog"

	"github.com/fwojciec/lazyframe"
)

// LoggingHooks wraps hooks so every lifecycle event is logged at debug
// level before the original hook runs.
func LoggingHooks(next lazyframe.Hooks, logger *slog.Logger) lazyframe.Hooks {
	return lazyframe.Hooks{
		OnLoad: func(rec *lazyframe.Record) {
			logger.Debug("lazyframe loaded",
				"vendor", string(rec.Settings.Vendor),
				"id", rec.Settings.ID,
				"src", rec.Settings.Src,
				"embed", frameSrc(rec.Frame),
			)
			next.Load(rec)
		},
		OnAppend: func(frame *lazyframe.Frame) {
			logger.Debug("lazyframe activated",
				"frame", frame.ID,
				"src", frame.Src,
			)
			next.Append(frame)
		},
		OnThumbnailLoad: func(url string) {
			logger.Debug("lazyframe thumbnail", "url", url)
			next.ThumbnailLoad(url)
		},
	}
}

func frameSrc(f *lazyframe.Frame) string {
	if f == nil {
		return ""
	}
	return f.Src
}
