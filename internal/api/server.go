package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pbaille/catkw/internal/derive"
	"github.com/pbaille/catkw/internal/domain"
	"github.com/pbaille/catkw/internal/store"
	"github.com/pbaille/catkw/internal/taxonomy"
	"go.uber.org/zap"
)

// MaxBodyBytes caps derive request bodies
const MaxBodyBytes = 16 << 20

// Server handles HTTP requests for keyword derivation
type Server struct {
	router chi.Router
	store  *store.Store
	log    *zap.Logger
}

// New creates a new API server; s may be nil to disable run history
func New(s *store.Store, log *zap.Logger) *Server {
	srv := &Server{store: s, log: log}
	srv.setupRoutes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(withCORS)

	r.Get("/health", s.health)
	r.Post("/derive", s.derive)
	r.Get("/runs", s.listRuns)
	r.Get("/runs/{id}", s.getRun)

	s.router = r
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeriveRequest is the request body for a derivation
type DeriveRequest struct {
	Paths     []string `json:"paths"`
	Blacklist []string `json:"blacklist"`
	Save      bool     `json:"save,omitempty"`
}

// DeriveResponse is the response for a derivation
type DeriveResponse struct {
	RunID  string           `json:"run_id,omitempty"`
	Report *taxonomy.Report `json:"report"`
}

func (s *Server) derive(w http.ResponseWriter, r *http.Request) {
	var req DeriveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Paths) == 0 {
		writeError(w, http.StatusBadRequest, "paths are required")
		return
	}

	res := derive.FromLists(req.Paths, req.Blacklist)
	resp := DeriveResponse{Report: res.Report}

	if req.Save {
		if s.store == nil {
			writeError(w, http.StatusServiceUnavailable, "run history is disabled")
			return
		}
		run, err := s.store.SaveRun(res.Source, res.Report)
		if err != nil {
			s.log.Error("save run", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.RunID = run.ID
	}

	s.log.Debug("derived keywords",
		zap.Int("paths", len(req.Paths)),
		zap.Int("keywords", len(res.Report.Keywords)),
		zap.Int("residual", len(res.Report.Residual)))

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run history is disabled")
		return
	}

	limit := 20
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}

	runs, err := s.store.ListRuns(limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []domain.Run{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":   runs,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run history is disabled")
		return
	}

	// Support prefix matching
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	run, err := s.store.FindRun(id)
	if errors.Is(err, store.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
