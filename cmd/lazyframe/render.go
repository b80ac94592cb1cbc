package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/lazyframe"
	"github.com/fwojciec/lazyframe/goquery"
	"github.com/fwojciec/lazyframe/loader"
	"github.com/fwojciec/lazyframe/rod"
	"golang.org/x/sync/errgroup"
)

// RenderCmd renders placeholders in a set of HTML files.
type RenderCmd struct {
	Files       []string
	Output      string
	Selector    string
	Activate    bool
	Concurrency int
	Viewport    []rod.ViewportOption
	Config      lazyframe.Config
}

// Result summarizes one rendered file.
type Result struct {
	File        string
	Found       int
	Initialized int
	Activated   int
}

// Run processes every file, writing each result to the output directory,
// or to stdout when rendering a single file without one. The first error
// is returned unprinted; main reports it.
func (c *RenderCmd) Run(deps *Dependencies) error {
	if c.Output != "" {
		if err := os.MkdirAll(c.Output, 0o755); err != nil {
			return err
		}
	}

	results := make([]Result, len(c.Files))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(max(c.Concurrency, 1))

	for i, file := range c.Files {
		g.Go(func() error {
			d := *deps
			d.Ctx = ctx
			res, err := c.renderFile(&d, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		deps.Logger.Info("rendered",
			"file", r.File,
			"found", r.Found,
			"initialized", r.Initialized,
			"activated", r.Activated,
		)
	}
	return nil
}

func (c *RenderCmd) renderFile(deps *Dependencies, file string) (Result, error) {
	res := Result{File: file}

	f, err := os.Open(file)
	if err != nil {
		return res, err
	}
	doc, err := goquery.NewDocument(f)
	_ = f.Close()
	if err != nil {
		return res, err
	}

	l := &loader.Loader{Metadata: deps.Metadata}
	var viewport *rod.Viewport
	if deps.Pages != nil {
		viewport = rod.NewViewport(deps.Pages, c.Viewport...)
		l.Visibility = viewport
	}

	records, err := l.InitSelector(deps.Ctx, doc, c.Selector, c.Config)
	if err != nil {
		return res, err
	}
	res.Found = len(records)

	if viewport != nil {
		if err := viewport.Scan(deps.Ctx, doc); err != nil {
			return res, err
		}
	}

	for _, rec := range records {
		if rec.Initialized && c.Activate {
			rec.Target.Click()
		}
		if rec.Initialized {
			res.Initialized++
		}
		if rec.Activated {
			res.Activated++
		}
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return res, err
	}

	if c.Output == "" {
		_, err = deps.Stdout.Write(buf.Bytes())
		return res, err
	}
	return res, os.WriteFile(filepath.Join(c.Output, filepath.Base(file)), buf.Bytes(), 0o644)
}
