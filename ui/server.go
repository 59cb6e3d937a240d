// Package ui - browser based haiku generator
package ui

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/haiku/generate"
	"github.com/alwitt/haiku/models"
	"github.com/alwitt/haiku/store"
	"github.com/apex/log"
	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxAPIListLimit upper bound of the list size the JSON API returns
const maxAPIListLimit = 100

// ServerParams UI server parameters
type ServerParams struct {
	// Generator haiku generator
	Generator generate.Generator
	// GeneratorErr why no generator is available. Reported in place of generated haikus.
	GeneratorErr error
	// Storage optional haiku storage
	Storage store.HaikuStorage
	// HistoryLimit number of haikus shown in the history sidebar
	HistoryLimit int
}

// Server browser UI server
type Server struct {
	goutils.Component
	generator    generate.Generator
	generatorErr error
	storage      store.HaikuStorage
	historyLimit int
	page         *template.Template
	mux          *http.ServeMux
}

// haikuCard one history entry as displayed
type haikuCard struct {
	ID      string
	Subject string
	When    string
	Lines   []string
}

// pageView page rendering parameters
type pageView struct {
	DefaultSubject   string
	Subject          string
	Lines            []string
	Error            string
	Saved            bool
	StorageAvailable bool
	Query            string
	Count            int64
	History          []haikuCard
}

/*
NewServer define a new UI server

	@param params ServerParams - server parameters
	@returns the server
*/
func NewServer(params ServerParams) (*Server, error) {
	if params.Generator == nil && params.GeneratorErr == nil {
		return nil, fmt.Errorf("either a generator or the reason it is unavailable is required")
	}
	if params.HistoryLimit <= 0 {
		params.HistoryLimit = store.DefaultListLimit
	}

	page, err := template.ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template [%w]", err)
	}

	logTags := log.Fields{"module": "ui", "component": "server"}

	s := &Server{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		generator:    params.Generator,
		generatorErr: params.GeneratorErr,
		storage:      params.Storage,
		historyLimit: params.HistoryLimit,
		page:         page,
		mux:          http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /generate", s.handleGenerate)
	s.mux.HandleFunc("GET /api/haikus", s.handleListHaikus)
	s.mux.HandleFunc("GET /api/haikus/{id}", s.handleGetHaiku)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	return s, nil
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

/*
Run serve the UI until the context is cancelled

	@param ctx context.Context - execution context
	@param listen string - listen address
*/
func (s *Server) Run(ctx context.Context, listen string) error {
	httpServer := &http.Server{
		Addr:              listen,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(s.LogTags).WithField("listen", listen).Info("Starting UI server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// relativeTime render a timestamp relative to now
func relativeTime(t time.Time) string {
	if time.Since(t) < time.Minute {
		return "Just now"
	}
	return humanize.Time(t)
}

// buildView prepare the page, including the history sidebar
func (s *Server) buildView(ctx context.Context, query string) pageView {
	view := pageView{DefaultSubject: generate.DefaultSubject, Query: query}
	if s.storage == nil || !s.storage.IsAvailable(ctx) {
		return view
	}

	view.StorageAvailable = true
	view.Count = s.storage.Count(ctx)
	for _, hk := range s.storage.Search(ctx, query, s.historyLimit) {
		view.History = append(view.History, haikuCard{
			ID:      hk.ID,
			Subject: strings.ToUpper(hk.Subject),
			When:    relativeTime(hk.CreatedAt),
			Lines:   generate.PoemLines(hk.BodyText),
		})
	}
	return view
}

func (s *Server) render(w http.ResponseWriter, status int, view pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, view); err != nil {
		log.WithFields(s.LogTags).WithError(err).Error("Page render failed")
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, s.buildView(r.Context(), r.URL.Query().Get("q")))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := strings.TrimSpace(r.FormValue("subject"))

	if s.generator == nil {
		view := s.buildView(ctx, "")
		view.Subject = subject
		view.Error = s.generatorErr.Error()
		s.render(w, http.StatusServiceUnavailable, view)
		return
	}

	effectiveSubject := subject
	if effectiveSubject == "" {
		effectiveSubject = generate.DefaultSubject
	}

	poem, err := s.generator.Generate(ctx, effectiveSubject)
	if err != nil {
		view := s.buildView(ctx, "")
		view.Subject = subject
		view.Error = fmt.Sprintf("Failed to generate a haiku: %s", err.Error())
		s.render(w, http.StatusBadGateway, view)
		return
	}

	saved := false
	if s.storage != nil {
		_, saved = s.storage.Save(ctx, effectiveSubject, poem, nil)
	}

	// Read the history after saving so the new haiku shows up
	view := s.buildView(ctx, "")
	view.Subject = subject
	view.Lines = generate.PoemLines(poem)
	view.Saved = saved
	s.render(w, http.StatusOK, view)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithFields(s.LogTags).WithError(err).Error("JSON response write failed")
	}
}

// haikuListResponse JSON haiku list
type haikuListResponse struct {
	Haikus []models.Haiku `json:"haikus"`
	Count  int64          `json:"count"`
}

func (s *Server) handleListHaikus(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		s.writeJSON(w, http.StatusOK, haikuListResponse{Haikus: []models.Haiku{}})
		return
	}

	limit := s.historyLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			s.writeJSON(
				w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"},
			)
			return
		}
		limit = min(parsed, maxAPIListLimit)
	}

	ctx := r.Context()
	s.writeJSON(w, http.StatusOK, haikuListResponse{
		Haikus: s.storage.Search(ctx, r.URL.Query().Get("q"), limit),
		Count:  s.storage.Count(ctx),
	})
}

func (s *Server) handleGetHaiku(w http.ResponseWriter, r *http.Request) {
	if s.storage != nil {
		if hk, ok := s.storage.GetByID(r.Context(), r.PathValue("id")); ok {
			s.writeJSON(w, http.StatusOK, hk)
			return
		}
	}
	s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "haiku not found"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	available := s.storage != nil && s.storage.IsAvailable(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]bool{
		"storage":   available,
		"generator": s.generator != nil,
	})
}
