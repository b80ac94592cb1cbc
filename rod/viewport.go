package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/lazyframe"
	"github.com/go-rod/rod"
)

// Default viewport size, matching a common laptop screen.
const (
	DefaultWidth  = 1280
	DefaultHeight = 800
)

// intersectJS scrolls the window and reports, per selector, whether the
// element's bounding box intersects the viewport.
const intersectJS = `(paths, scrollY) => {
	window.scrollTo(0, scrollY);
	const w = window.innerWidth, h = window.innerHeight;
	return paths.map((p) => {
		const el = document.querySelector(p);
		if (!el) return false;
		const r = el.getBoundingClientRect();
		return r.bottom > 0 && r.right > 0 && r.top < h && r.left < w;
	});
}`

// Ensure Viewport implements lazyframe.VisibilitySource at compile time.
var _ lazyframe.VisibilitySource = (*Viewport)(nil)

// PageOpener opens browser pages with a document already loaded.
// BrowserManager implements it.
type PageOpener interface {
	Open(ctx context.Context, content string, width, height int) (*rod.Page, error)
}

// Renderer renders the current state of a document as HTML.
type Renderer interface {
	HTML() (string, error)
}

// Pather is implemented by elements that can be located by a CSS path.
// Observed elements without a path are never reported.
type Pather interface {
	Path() string
}

// Viewport is a visibility source that renders a document in a browser
// viewport and reports which observed elements intersect it. Entries are
// delivered by Scan, on the caller's goroutine.
//
// Viewport is not safe for concurrent use.
type Viewport struct {
	pages    PageOpener
	width    int
	height   int
	scrollY  int
	watchers []*watcher
}

// ViewportOption configures a Viewport.
type ViewportOption func(*Viewport)

// WithSize sets the viewport size in CSS pixels.
func WithSize(width, height int) ViewportOption {
	return func(v *Viewport) {
		v.width = width
		v.height = height
	}
}

// WithScroll sets the vertical scroll offset applied before measuring.
func WithScroll(y int) ViewportOption {
	return func(v *Viewport) {
		v.scrollY = y
	}
}

// NewViewport creates a Viewport that opens pages from pages.
func NewViewport(pages PageOpener, opts ...ViewportOption) *Viewport {
	v := &Viewport{
		pages:  pages,
		width:  DefaultWidth,
		height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Watch creates a watcher delivering entries to fn on each Scan.
func (v *Viewport) Watch(fn lazyframe.VisibilityFunc) lazyframe.Watcher {
	w := &watcher{fn: fn}
	v.watchers = append(v.watchers, w)
	return w
}

// ScrollTo changes the scroll offset used by the next Scan.
func (v *Viewport) ScrollTo(y int) {
	v.scrollY = y
}

// Scan renders doc, measures every observed element and delivers one batch
// of entries to each watcher that observes at least one element.
func (v *Viewport) Scan(ctx context.Context, doc Renderer) error {
	var paths []string
	for _, w := range v.watchers {
		for _, el := range w.observed {
			if p, ok := el.(Pather); ok {
				paths = append(paths, p.Path())
			}
		}
	}
	if len(paths) == 0 {
		return nil
	}

	visible, err := v.measure(ctx, doc, paths)
	if err != nil {
		return err
	}

	batches := make([][]lazyframe.VisibilityEntry, len(v.watchers))
	for i, w := range v.watchers {
		for _, el := range w.observed {
			p, ok := el.(Pather)
			if !ok {
				continue
			}
			batches[i] = append(batches[i], lazyframe.VisibilityEntry{
				Target:       el,
				Intersecting: visible[p.Path()],
			})
		}
	}
	for i, w := range v.watchers {
		if len(batches[i]) > 0 {
			w.fn(ctx, batches[i])
		}
	}
	return nil
}

// measure returns the intersection state of each path.
func (v *Viewport) measure(ctx context.Context, doc Renderer, paths []string) (map[string]bool, error) {
	content, err := doc.HTML()
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	page, err := v.pages.Open(ctx, content, v.width, v.height)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	res, err := page.Eval(intersectJS, paths, v.scrollY)
	if err != nil {
		return nil, fmt.Errorf("measuring elements: %w", err)
	}

	results := res.Value.Arr()
	if len(results) != len(paths) {
		return nil, lazyframe.Errorf(lazyframe.EINTERNAL, "measured %d of %d elements", len(results), len(paths))
	}
	visible := make(map[string]bool, len(paths))
	for i, p := range paths {
		visible[p] = results[i].Bool()
	}
	return visible, nil
}

// watcher is the set of elements observed for one callback.
type watcher struct {
	fn       lazyframe.VisibilityFunc
	observed []lazyframe.Element
}

func (w *watcher) Observe(el lazyframe.Element) {
	for _, o := range w.observed {
		if o == el {
			return
		}
	}
	w.observed = append(w.observed, el)
}

func (w *watcher) Unobserve(el lazyframe.Element) {
	for i, o := range w.observed {
		if o == el {
			w.observed = append(w.observed[:i], w.observed[i+1:]...)
			return
		}
	}
}
