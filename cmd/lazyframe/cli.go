package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/lazyframe"
	"github.com/fwojciec/lazyframe/rod"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Files    []string `arg:"" help:"HTML files to process"`
	Output   string   `short:"o" type:"path" help:"Directory for rendered files (default: stdout for a single file)"`
	Selector string   `short:"s" default:".lazyframe" help:"CSS selector of placeholder elements"`

	Vendor     string `help:"Vendor for placeholders without data-vendor (youtube, youtube_nocookie, vimeo)"`
	Lazyload   bool   `default:"true" negatable:"" help:"Initialize placeholders only when visible"`
	Autoplay   bool   `default:"true" negatable:"" help:"Start playback when a frame is attached"`
	InitInView bool   `name:"initinview" help:"Attach frames as soon as placeholders are initialized"`
	Activate   bool   `help:"Attach frames to every initialized placeholder"`

	NoMetadata bool          `name:"no-metadata" help:"Do not fetch missing titles and thumbnails"`
	Endpoint   string        `default:"https://noembed.com/embed" help:"oEmbed metadata endpoint"`
	Timeout    time.Duration `short:"t" default:"10s" help:"Metadata request timeout"`
	RPS        float64       `name:"rps" default:"0" help:"Maximum metadata requests per second (0: unlimited)"`

	Browser bool `help:"Decide visibility by rendering in headless Chrome"`
	Width   int  `default:"1280" help:"Browser viewport width"`
	Height  int  `default:"800" help:"Browser viewport height"`
	Scroll  int  `default:"0" help:"Browser vertical scroll offset"`

	Concurrency int  `short:"c" default:"4" help:"Files processed in parallel"`
	Verbose     bool `short:"v" help:"Log lifecycle events"`
}

// Validate checks flag combinations Kong cannot express.
func (c *CLI) Validate() error {
	if len(c.Files) == 0 {
		return fmt.Errorf("at least one file is required")
	}
	if c.Output == "" && len(c.Files) > 1 {
		return fmt.Errorf("--output is required when rendering more than one file")
	}
	if c.Output != "" {
		seen := make(map[string]string, len(c.Files))
		for _, f := range c.Files {
			name := filepath.Base(f)
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("%s and %s would both be written to %s", prev, f, filepath.Join(c.Output, name))
			}
			seen[name] = f
		}
	}
	if c.Vendor != "" && !lazyframe.ParseVendor(c.Vendor).Known() {
		return fmt.Errorf("unknown vendor %q", c.Vendor)
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	return nil
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Metadata lazyframe.MetadataFetcher
	Pages    rod.PageOpener
}
