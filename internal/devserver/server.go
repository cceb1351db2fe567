package devserver

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/vdomkit/internal/config"
	"github.com/vango-dev/vdomkit/internal/demo"
	"github.com/vango-dev/vdomkit/pkg/host/memdom"
	"github.com/vango-dev/vdomkit/pkg/render"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// RootID is the id of the mount container in the served page.
const RootID = "app"

// Options configures the dev server.
type Options struct {
	// Config is the project configuration. Default: config.New().
	Config *config.Config

	// App is the demo app to mount.
	App demo.App

	// Logger is used by the server and the renderer. Default: slog.Default().
	Logger *slog.Logger

	// Middleware is added to every render cycle.
	Middleware []render.Middleware

	// Gatherer backs the metrics endpoint. Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Server is the development server.
type Server struct {
	config   *config.Config
	app      demo.App
	logger   *slog.Logger
	gatherer prometheus.Gatherer

	doc      *memdom.Document
	root     *html.Node
	renderer *render.Renderer
	hub      *Hub

	// events serializes dispatches; the renderer rejects overlapping cycles.
	events sync.Mutex
}

// New mounts opts.App and returns a server ready to serve it.
func New(opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		config:   cfg,
		app:      opts.App,
		logger:   logger,
		gatherer: gatherer,
		doc:      memdom.New(),
		hub:      NewHub(logger),
	}
	s.root = s.doc.Container(RootID)
	s.renderer = render.New(s.doc,
		render.WithLogger(logger),
		render.WithMiddleware(opts.Middleware...),
		render.WithPatchListener(s.hub.NotifyPatch),
	)

	if opts.App.Build == nil {
		return nil, stderrors.New("devserver: no app to serve")
	}
	tree, err := opts.App.Build(s.renderer)
	if err != nil {
		return nil, err
	}
	if err := s.renderer.Render(tree, s.root); err != nil {
		return nil, err
	}
	return s, nil
}

// Hub returns the patch stream hub.
func (s *Server) Hub() *Hub { return s.hub }

// Renderer returns the renderer the app is mounted with.
func (s *Server) Renderer() *render.Renderer { return s.renderer }

// Document returns the in-memory document.
func (s *Server) Document() *memdom.Document { return s.doc }

// Markup returns the current content of the mount container.
func (s *Server) Markup() string {
	return s.doc.InnerHTML(s.root)
}

// Dispatch fires eventType at addr. A non-empty value is stored in the
// element's value attribute first, and its last character becomes the key of
// the event.
func (s *Server) Dispatch(addr, eventType, value string) error {
	s.events.Lock()
	defer s.events.Unlock()

	e := vdom.Event{}
	if value != "" {
		if el, ok := s.doc.Query(addr); ok {
			s.doc.SetAttr(el, "value", value)
		}
		r := []rune(value)
		e.Value = value
		e.Key = string(r[len(r)-1])
	}
	return s.doc.Dispatch(addr, eventType, e)
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/", templ.Handler(s.page()).ServeHTTP)
	r.Get("/markup", s.handleMarkup)
	r.Post("/dispatch/{address}/{event}", s.handleDispatch)
	r.Get("/ws", s.hub.HandleWebSocket)
	if s.config.Metrics.Enabled {
		r.Handle(s.config.Metrics.Path, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleMarkup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s.Markup()))
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	addr := chi.URLParam(r, "address")
	event := chi.URLParam(r, "event")

	err := s.Dispatch(addr, event, r.FormValue("value"))
	switch {
	case stderrors.Is(err, memdom.ErrNotFound), stderrors.Is(err, memdom.ErrNoHandler):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		s.logger.Error("dispatch failed", "address", addr, "event", event, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.handleMarkup(w, r)
}

// Run listens on the configured address until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully and
// disconnects stream clients.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("dev server running", "app", s.app.Name, "url", "http://"+ln.Addr().String())
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
