package devserver

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-reactmount/pkg/render/template"
	"github.com/goliatone/go-reactmount/pkg/widget"
)

// Option configures the server.
type Option func(*Server)

// WithRuntimeFS serves fsys under /runtime/.
func WithRuntimeFS(fsys fs.FS) Option {
	return func(s *Server) {
		s.runtime = fsys
	}
}

// WithTemplatesFS lets the server answer 404 for templates that do not
// exist. ext is the template file extension.
func WithTemplatesFS(fsys fs.FS, ext string) Option {
	return func(s *Server) {
		s.templates = fsys
		s.ext = ext
	}
}

// WithWidgetRenderer sets the renderer behind POST /render.
func WithWidgetRenderer(r *widget.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.widgets = r
		}
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server renders templates by path and single widgets from JSON requests.
type Server struct {
	engine    template.TemplateRenderer
	widgets   *widget.Renderer
	runtime   fs.FS
	templates fs.FS
	ext       string
	logger    *log.Logger
	router    chi.Router
}

// RenderRequest is the JSON body accepted by POST /render.
type RenderRequest struct {
	Component string         `json:"component"`
	ID        string         `json:"id,omitempty"`
	Variant   string         `json:"variant,omitempty"`
	Props     map[string]any `json:"props,omitempty"`
	Kwargs    map[string]any `json:"kwargs,omitempty"`
	Children  string         `json:"children,omitempty"`
}

type reloader interface {
	Reload(names ...string)
}

// New builds a server around engine.
func New(engine template.TemplateRenderer, options ...Option) *Server {
	s := &Server{
		engine:  engine,
		widgets: widget.Default(),
		ext:     ".tpl",
		logger:  log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if s.runtime != nil {
		r.Handle("/runtime/*", http.StripPrefix("/runtime/", http.FileServerFS(s.runtime)))
	}
	r.Post("/render", s.handleRender)
	r.Get("/*", s.handleTemplate)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Reload drops cached templates when the engine caches them.
func (s *Server) Reload(names ...string) {
	if rl, ok := s.engine.(reloader); ok {
		rl.Reload(names...)
	}
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if name == "" {
		name = "index"
	}
	name = strings.TrimSuffix(name, s.ext)

	if s.templates != nil {
		if _, err := fs.Stat(s.templates, name+s.ext); errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
	}

	query := make(map[string]any, len(r.URL.Query()))
	for key, values := range r.URL.Query() {
		if len(values) == 1 {
			query[key] = values[0]
			continue
		}
		query[key] = values
	}

	out, err := s.engine.RenderTemplate(name, map[string]any{"query": query, "path": r.URL.Path})
	if err != nil {
		s.logger.Printf("render %s: %v", name, err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var body RenderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	variant := s.widgets.Variant()
	if body.Variant != "" {
		v, err := widget.ParseVariant(body.Variant)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		variant = v
	}

	frag, err := s.widgets.RenderVariant(variant, widget.Request{
		Component: body.Component,
		ID:        body.ID,
		Props:     body.Props,
		Kwargs:    body.Kwargs,
		Children:  body.Children,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, widget.ErrMissingComponent) || errors.Is(err, widget.ErrInvalidComponent) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(frag.String()))
}
