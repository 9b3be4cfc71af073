// Package admin exposes the operations HTTP surface: health, the live menu
// tree, call history and Prometheus metrics. It is read-only; the phone is
// driven by its keypad, never remotely.
package admin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkarlsen/switchboard/internal/logging"
	"github.com/pkarlsen/switchboard/internal/presentation/graph"
	"github.com/pkarlsen/switchboard/pkg/call"
	"github.com/pkarlsen/switchboard/pkg/menu"
)

// CallSource reports the live call, satisfied by *call.Session.
type CallSource interface {
	Active() bool
	Snapshot() (call.Record, bool)
}

// Server holds the handler's dependencies.
type Server struct {
	tree     func() (*menu.Node, error)
	session  CallSource
	store    call.Store
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithTree supplies the current menu tree for /tree and /tree.mmd.
func WithTree(build func() (*menu.Node, error)) Option {
	return func(s *Server) {
		s.tree = build
	}
}

// WithSession exposes the live call on /call.
func WithSession(session CallSource) Option {
	return func(s *Server) {
		s.session = session
	}
}

// WithStore exposes call history on /calls.
func WithStore(store call.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithGatherer exposes metrics on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler builds the admin router. Endpoints whose dependency was not
// provided answer 404 like any unknown route.
func NewHandler(opts ...Option) http.Handler {
	s := &Server{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	if s.tree != nil {
		r.Get("/tree", s.handleTree)
		r.Get("/tree.mmd", s.handleTreeMermaid)
	}
	if s.session != nil {
		r.Get("/call", s.handleCall)
	}
	if s.store != nil {
		r.Get("/calls", s.handleCalls)
	}
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// nodeDTO is the JSON shape of a tree node. Actions are opaque functions, so
// only their presence crosses the wire.
type nodeDTO struct {
	Prompt           string              `json:"prompt"`
	Mode             string              `json:"mode,omitempty"`
	Timeout          string              `json:"timeout,omitempty"`
	ExtensionLength  int                 `json:"extension_length,omitempty"`
	ExtensionTimeout string              `json:"extension_timeout,omitempty"`
	HasAction        bool                `json:"has_action,omitempty"`
	Options          map[string]*nodeDTO `json:"options,omitempty"`
}

func toDTO(node *menu.Node) *nodeDTO {
	dto := &nodeDTO{
		Prompt:    node.Prompt,
		HasAction: node.Action != nil,
	}
	if node.IsLeaf() {
		return dto
	}
	dto.Mode = string(node.Mode)
	dto.Timeout = node.Timeout.String()
	dto.ExtensionLength = node.ExtensionLength
	dto.ExtensionTimeout = node.ExtensionTimeout.String()
	dto.Options = make(map[string]*nodeDTO, len(node.Children))
	for key, child := range node.Children {
		dto.Options[key] = toDTO(child)
	}
	return dto
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	root, err := s.tree()
	if err != nil {
		s.logger.Error("building tree for admin", "err", err)
		http.Error(w, "tree unavailable", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, toDTO(root))
}

func (s *Server) handleTreeMermaid(w http.ResponseWriter, r *http.Request) {
	root, err := s.tree()
	if err != nil {
		s.logger.Error("building tree for admin", "err", err)
		http.Error(w, "tree unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(root)))
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.session.Snapshot()
	if !ok {
		http.Error(w, "no call yet", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"active": s.session.Active(),
		"record": rec,
	})
}

func (s *Server) handleCalls(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := s.store.List(r.Context(), limit)
	if err != nil && !errors.Is(err, call.ErrNotFound) {
		s.logger.Error("listing calls", "err", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []call.Record{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding admin response", "err", err)
	}
}
