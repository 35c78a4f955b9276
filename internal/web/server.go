package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/ridetracker/ridetracker/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server serves the dashboard page and turns its form posts into
// controller flows.
type Server struct {
	ctrl    *dashboard.Controller
	page    *dashboard.Page
	log     *zap.Logger
	tmpl    *template.Template
	mux     *http.ServeMux
	limiter *rateLimiter
}

// NewServer creates a Server for a controller bound to page. The
// controller must have been built with FormConfirmer.
func NewServer(ctrl *dashboard.Controller, page *dashboard.Page, log *zap.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		ctrl:    ctrl,
		page:    page,
		log:     log,
		tmpl:    tmpl,
		mux:     http.NewServeMux(),
		limiter: newRateLimiter(5, 10),
	}

	s.setupRoutes()
	return s, nil
}

// Close releases the server's background workers. Call it after the
// HTTP server has shut down.
func (s *Server) Close() {
	s.limiter.close()
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return requestIDMiddleware(s.loggingMiddleware(securityHeadersMiddleware(s.mux)))
}

func (s *Server) setupRoutes() {
	// Health check
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Page load
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	// Writes go through the limiter; each one costs an upstream call plus
	// a full refresh.
	write := rateLimitMiddleware(s.limiter)

	s.mux.Handle("POST /corridas", write(http.HandlerFunc(s.handleCreate)))
	s.mux.HandleFunc("GET /corridas/{id}/excluir", s.handleConfirmDelete)
	s.mux.Handle("POST /corridas/{id}/excluir", write(http.HandlerFunc(s.handleDelete)))
	s.mux.HandleFunc("GET /corridas/{id}/editar", s.handleOpenEdit)
	s.mux.Handle("POST /editar", write(http.HandlerFunc(s.handleSaveEdit)))
	s.mux.HandleFunc("POST /editar/fechar", s.handleCloseEdit)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// confirmDialog is the delete confirmation shown over the page.
type confirmDialog struct {
	ID       string
	Question string
}

type pageData struct {
	dashboard.PageState
	Confirm *confirmDialog
}

// render writes the page as it currently stands.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, confirm *confirmDialog) {
	data := pageData{PageState: s.page.Snapshot(), Confirm: confirm}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "dashboard.html", data); err != nil {
		s.log.Error("failed to render dashboard",
			zap.String("request_id", requestID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
