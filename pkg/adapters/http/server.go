package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/nfa"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBodySize bounds request bodies.
const MaxBodySize = 1 << 20

// Engine defines what the HTTP adapter needs from the automata engine.
type Engine interface {
	Run(ctx context.Context, doc domain.Document, input string) (*automata.Report, error)
	RunStored(ctx context.Context, documentID, input string) (*automata.Report, error)
	Compile(ctx context.Context, doc domain.Document) (*nfa.Automaton, *editor.Report, error)
	Load(ctx context.Context, documentID string) (*domain.Document, error)
	List(ctx context.Context) ([]string, error)
	Save(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, documentID string) error
}

// Server serves the engine over JSON.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	metrics http.Handler
}

type Option func(*Server)

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = l
	}
}

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	Document domain.Document `json:"document"`
	Input    string          `json:"input"`
}

// InputRequest is the body of POST /documents/{id}/simulate.
type InputRequest struct {
	Input string `json:"input"`
}

// ValidateResponse is returned by POST /validate for a valid document.
type ValidateResponse struct {
	Valid       bool     `json:"valid"`
	States      []string `json:"states"`
	Alphabet    []string `json:"alphabet"`
	Initial     string   `json:"initial"`
	Finals      []string `json:"finals"`
	InitialFrom string   `json:"initial_from"`
	Dropped     []string `json:"dropped,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind,omitempty"`
	States []string `json:"states,omitempty"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine, Logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/simulate", s.Simulate)
	r.Post("/validate", s.Validate)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.ListDocuments)
		r.Get("/{id}", s.GetDocument)
		r.Put("/{id}", s.PutDocument)
		r.Delete("/{id}", s.DeleteDocument)
		r.Post("/{id}/simulate", s.SimulateDocument)
		r.Get("/{id}/graph", s.GetGraph)
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Simulate handles POST /simulate with an inline document.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if !s.decode(w, r, &body) {
		return
	}

	report, err := s.Engine.Run(r.Context(), body.Document, body.Input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// Validate handles POST /validate. The body is a document.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var doc domain.Document
	if !s.decode(w, r, &doc) {
		return
	}

	a, rep, err := s.Engine.Compile(r.Context(), doc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ValidateResponse{
		Valid:       true,
		States:      a.States(),
		Alphabet:    a.Alphabet(),
		Initial:     a.Initial(),
		Finals:      a.Finals().Sorted(),
		InitialFrom: rep.InitialFrom,
		Dropped:     rep.Dropped,
	})
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// GetDocument handles GET /documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Engine.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// PutDocument handles PUT /documents/{id}. The path ID wins over the body's.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request) {
	var doc domain.Document
	if !s.decode(w, r, &doc) {
		return
	}
	doc.ID = chi.URLParam(r, "id")

	if err := s.Engine.Save(r.Context(), &doc); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDocument handles DELETE /documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SimulateDocument handles POST /documents/{id}/simulate.
func (s *Server) SimulateDocument(w http.ResponseWriter, r *http.Request) {
	var body InputRequest
	if !s.decode(w, r, &body) {
		return
	}

	report, err := s.Engine.RunStored(r.Context(), chi.URLParam(r, "id"), body.Input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// GetGraph handles GET /documents/{id}/graph. With ?input=..., the diagram
// highlights the run of that input.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := s.Engine.Load(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	a, _, err := s.Engine.Compile(ctx, *doc)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var overlay *graph.GraphOverlay
	if q := r.URL.Query(); q.Has("input") {
		report, err := s.Engine.Run(ctx, *doc, q.Get("input"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		overlay = graph.OverlayFromTrace(report.Trace)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(a, overlay))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "automata-http",
		"version": strings.TrimSpace(automata.Version),
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.Logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// writeError maps domain errors onto status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var verr *nfa.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		resp.Kind = string(verr.Kind)
		resp.States = verr.States
	case errors.Is(err, automata.ErrSymbolNotInAlphabet):
		status = http.StatusUnprocessableEntity
		resp.Kind = "symbol_not_in_alphabet"
	case errors.Is(err, domain.ErrDocumentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDocument):
		status = http.StatusUnprocessableEntity
		resp.Kind = "invalid_document"
	case errors.Is(err, automata.ErrReadOnlyStore):
		status = http.StatusMethodNotAllowed
	case errors.Is(err, editor.ErrInputTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, editor.ErrInvalidUTF8):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		status = 499 // client closed request
	}

	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
