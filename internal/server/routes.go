package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/skanbot/skanbot/internal/pipeline"
	"github.com/skanbot/skanbot/internal/svcctx"
)

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.HandleFunc("POST /recognize", s.handleRecognize)
}

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status   string `json:"status"`
	LangTool string `json:"languagetool,omitempty"`
}

// RecognizeRequest asks for a server-local file to be recognized. Uploads go
// through multipart form data instead.
type RecognizeRequest struct {
	Path string `json:"path"`
}

// RecognizeResponse carries the per-page pipeline results.
type RecognizeResponse struct {
	Results []*pipeline.Result `json:"results"`
}

// handleHealth returns basic server health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleReady returns readiness including LanguageTool health. Recognition
// itself works without the grammar service, so a missing client degrades
// instead of failing.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", LangTool: "ok"}

	lt := svcctx.LangToolFrom(r.Context())
	if lt == nil {
		resp.Status = "degraded"
		resp.LangTool = "not_initialized"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	if err := lt.Health(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.LangTool = "unhealthy"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRecognize runs the full pipeline over an uploaded image or a
// server-local path.
func (s *Server) handleRecognize(w http.ResponseWriter, r *http.Request) {
	logger := svcctx.LoggerFrom(r.Context())
	if logger == nil {
		logger = s.logger
	}

	path, cleanup, err := s.inputPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer cleanup()

	sessionID := r.Header.Get("X-Session-Id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	results, err := s.service.ProcessFile(r.Context(), sessionID, path)
	if err != nil {
		logger.Error("recognition failed", "path", path, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, RecognizeResponse{Results: results})
}

// inputPath resolves the request's input file: a multipart upload is saved to
// the temp dir, a JSON body names a server-local path. The returned cleanup
// removes the uploaded copy.
func (s *Server) inputPath(r *http.Request) (string, func(), error) {
	noop := func() {}

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		file, header, err := r.FormFile("image")
		if err != nil {
			return "", noop, fmt.Errorf("read upload: %w", err)
		}
		defer file.Close()

		tempDir := s.tempDir
		if h := svcctx.HomeFrom(r.Context()); h != nil {
			tempDir = h.TempPath()
		}

		ext := filepath.Ext(header.Filename)
		if ext == "" {
			ext = ".png"
		}
		dst := filepath.Join(tempDir, uuid.NewString()+ext)
		out, err := os.Create(dst)
		if err != nil {
			return "", noop, fmt.Errorf("save upload: %w", err)
		}
		defer out.Close()
		if _, err := io.Copy(out, file); err != nil {
			os.Remove(dst)
			return "", noop, fmt.Errorf("save upload: %w", err)
		}
		return dst, func() { os.Remove(dst) }, nil
	}

	var req RecognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", noop, fmt.Errorf("decode request: %w", err)
	}
	if req.Path == "" {
		return "", noop, fmt.Errorf("path is required")
	}
	return req.Path, noop, nil
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
