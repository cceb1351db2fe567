package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/vango-dev/vdomkit/internal/config"
	"github.com/vango-dev/vdomkit/internal/demo"
	"github.com/vango-dev/vdomkit/internal/errors"
	"github.com/vango-dev/vdomkit/pkg/host/memdom"
	"github.com/vango-dev/vdomkit/pkg/middleware"
	"github.com/vango-dev/vdomkit/pkg/render"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globals are the persistent flags shared by every command.
type globals struct {
	configPath string
	logLevel   string
	noColor    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "vdomkit",
		Short: "Render and serve virtual DOM demo apps",
		Long: `vdomkit mounts component trees into an in-memory document and
patches only the regions that change.

  • render prints the markup of a demo app
  • serve runs a dev server streaming patches over WebSocket
  • export writes a snapshot to disk or S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor || os.Getenv("NO_COLOR") != "" {
				errors.SetColors(false)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file (default vdomkit.json or vdomkit.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Override log.level")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored error output (also set by NO_COLOR)")

	rootCmd.AddCommand(
		renderCmd(g),
		serveCmd(g),
		exportCmd(g),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the explicit config file, or the one in the working
// directory, falling back to defaults when there is none.
func (g *globals) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case g.configPath != "":
		cfg, err = config.LoadFile(g.configPath)
	default:
		if _, ok := config.Find("."); ok {
			cfg, err = config.Load(".")
		} else {
			cfg = config.New()
		}
	}
	if err != nil {
		return nil, err
	}

	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger described by cfg.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// cycleMiddleware returns the render middleware enabled by cfg. Metrics are
// registered on reg.
func cycleMiddleware(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) []render.Middleware {
	mw := []render.Middleware{middleware.Logger(logger)}
	if cfg.Metrics.Enabled {
		mw = append(mw, middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(reg),
		))
	}
	if cfg.Tracing.Enabled {
		mw = append(mw, middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}
	return mw
}

// mounted is a demo app rendered into an in-memory document.
type mounted struct {
	doc      *memdom.Document
	root     *html.Node
	renderer *render.Renderer
}

// markup returns the content of the mount container.
func (m *mounted) markup() string {
	return m.doc.InnerHTML(m.root)
}

// mountApp renders the demo app called name into a fresh document and fires
// a click at each address in clicks.
func mountApp(name string, clicks []string, opts ...render.Option) (*mounted, error) {
	app, ok := demo.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown app %q (available: %v)", name, demo.Names())
	}

	doc := memdom.New()
	m := &mounted{
		doc:      doc,
		root:     doc.Container("app"),
		renderer: render.New(doc, opts...),
	}
	tree, err := app.Build(m.renderer)
	if err != nil {
		return nil, err
	}
	if err := m.renderer.Render(tree, m.root); err != nil {
		return nil, err
	}

	for _, addr := range clicks {
		if err := doc.Dispatch(addr, "click", vdom.Event{}); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
