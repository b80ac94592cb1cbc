// Package rod reports placeholder visibility by rendering documents in a
// headless Chrome browser driven by go-rod.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the number of pages a browser serves before it is
// replaced by a fresh one.
const DefaultMaxPages = 75

// instance is one launched Chrome process and the pages it has served.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int64
}

func launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: b, launcher: l}, nil
}

func (in *instance) close() error {
	err := in.browser.Close()
	in.launcher.Kill()
	return err
}

// BrowserManager opens pages loaded with rendered documents. Chrome's memory
// grows with every page, so the browser is relaunched after maxPages pages.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *instance
	maxPages int64
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser serves before relaunch.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser. Close must be
// called to release it. Fails if Chrome or Chromium cannot be started.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	in, err := launch()
	if err != nil {
		return nil, err
	}
	bm.current = in
	return bm, nil
}

// Open returns a page bound to ctx with a width x height viewport and
// content loaded as its document. The caller must close the page.
func (bm *BrowserManager) Open(ctx context.Context, content string, width, height int) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := bm.acquire()
	if err != nil {
		return nil, err
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	page = page.Context(ctx)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("setting viewport: %w", err)
	}
	if err := page.SetDocumentContent(content); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return page, nil
}

// acquire counts one page against the current browser, relaunching it
// first when it has served maxPages. A failed relaunch keeps the old one.
func (bm *BrowserManager) acquire() (*rod.Browser, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, fmt.Errorf("browser manager is closed")
	}

	if bm.current.served >= bm.maxPages {
		if fresh, err := launch(); err == nil {
			_ = bm.current.close()
			bm.current = fresh
		}
	}
	bm.current.served++
	return bm.current.browser, nil
}

// Browser returns the browser serving the next page.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil {
		return nil
	}
	return bm.current.browser
}

// Close shuts the browser down. Later calls do nothing.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return bm.current.close()
}

// LauncherPID returns the process ID of the running browser launcher,
// or 0 once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed || bm.current == nil {
		return 0
	}
	return bm.current.launcher.PID()
}
