package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lazyframe"
	lfhttp "github.com/fwojciec/lazyframe/http"
	"github.com/fwojciec/lazyframe/rod"
	lfslog "github.com/fwojciec/lazyframe/slog"
	"golang.org/x/time/rate"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lazyframe"),
		kong.Description("Pre-render lazy video embed placeholders in HTML files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if err := cli.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	if !cli.NoMetadata {
		opts := []lfhttp.Option{
			lfhttp.WithTimeout(cli.Timeout),
			lfhttp.WithEndpoint(cli.Endpoint),
		}
		if cli.RPS > 0 {
			opts = append(opts, lfhttp.WithLimiter(rate.NewLimiter(rate.Limit(cli.RPS), 1)))
		}
		deps.Metadata = lfslog.NewLoggingMetadataFetcher(lfhttp.NewMetadataFetcher(opts...), logger)
	}

	if cli.Browser {
		manager, err := rod.NewBrowserManager()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer manager.Close()
		deps.Pages = manager
	}

	cmd := &RenderCmd{
		Files:       cli.Files,
		Output:      cli.Output,
		Selector:    cli.Selector,
		Activate:    cli.Activate,
		Concurrency: cli.Concurrency,
		Viewport: []rod.ViewportOption{
			rod.WithSize(cli.Width, cli.Height),
			rod.WithScroll(cli.Scroll),
		},
		Config: lazyframe.Config{
			Vendor:     cli.Vendor,
			Lazyload:   lazyframe.Bool(cli.Lazyload),
			Autoplay:   lazyframe.Bool(cli.Autoplay),
			InitInView: lazyframe.Bool(cli.InitInView),
			Hooks:      lfslog.LoggingHooks(lazyframe.Hooks{}, logger),
		},
	}

	return cmd.Run(deps)
}
