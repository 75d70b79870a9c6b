// Package api exposes the HTTP interface for the voice-agent analysis
// service: one tool-call endpoint plus health.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/voicelead/internal/model"
	"github.com/sells-group/voicelead/internal/pipeline"
)

// Tool names accepted by the tool-call endpoint.
const (
	ToolWebsiteAnalysis = "voice_agent_website_analysis"
	ToolSendReport      = "send_report_to_email"
)

// AnalysisRunner is the orchestrator surface the server needs.
type AnalysisRunner interface {
	Run(ctx context.Context, req model.AnalysisRequest) (string, error)
	ResendReport(ctx context.Context, email string) (string, error)
}

// Server wires HTTP handlers to the pipeline orchestrator.
type Server struct {
	router         chi.Router
	runner         AnalysisRunner
	requestTimeout time.Duration
}

// NewServer constructs a Server with middleware and routes.
func NewServer(runner AnalysisRunner, requestTimeout time.Duration) *Server {
	s := &Server{
		runner:         runner,
		requestTimeout: requestTimeout,
	}

	r := chi.NewRouter()
	// Voice-agent platforms call from browser contexts; allow any origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Accept", "X-Requested-With"},
	}))

	r.Get("/health", s.health)
	r.Post("/tools/call", s.toolCall)

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// toolCallRequest is the inbound envelope.
type toolCallRequest struct {
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) toolCall(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			writeError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
			return
		}
	}

	var req toolCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	switch req.Tool {
	case ToolWebsiteAnalysis:
		s.websiteAnalysis(ctx, w, req.Arguments)
	case ToolSendReport:
		s.sendReport(ctx, w, req.Arguments)
	default:
		writeError(w, http.StatusBadRequest, "unknown tool")
	}
}

func (s *Server) websiteAnalysis(ctx context.Context, w http.ResponseWriter, rawArgs json.RawMessage) {
	var args struct {
		URL string `json:"url"`
	}
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			writeError(w, http.StatusBadRequest, "invalid arguments")
			return
		}
	}
	if args.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	result, err := s.runner.Run(ctx, model.AnalysisRequest{URL: args.URL})
	if err != nil {
		// A RequestError is the only failure the pipeline raises; anything
		// else would be a bug, surfaced as a 500.
		var reqErr *pipeline.RequestError
		if errors.As(err, &reqErr) {
			writeError(w, http.StatusBadRequest, reqErr.Message)
			return
		}
		zap.L().Error("api: analysis failed unexpectedly", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) sendReport(ctx context.Context, w http.ResponseWriter, rawArgs json.RawMessage) {
	var args struct {
		Email string `json:"email"`
	}
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			writeError(w, http.StatusBadRequest, "invalid arguments")
			return
		}
	}
	if args.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	result, err := s.runner.ResendReport(ctx, args.Email)
	if err != nil {
		var reqErr *pipeline.RequestError
		if errors.As(err, &reqErr) {
			writeError(w, http.StatusBadRequest, reqErr.Message)
			return
		}
		zap.L().Error("api: resend failed unexpectedly", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("api: write response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
