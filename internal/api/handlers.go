package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/FocuswithJustin/SharpAssistant/core/assistant"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
	"github.com/FocuswithJustin/SharpAssistant/internal/server"
)

const apiVersion = "0.1.0"

// maxMessageLength bounds a single question. Anything longer is
// truncated, not rejected, matching the assistant's tolerance for
// malformed input.
const maxMessageLength = 2000

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Timestamp string `json:"timestamp"`
}

// AskRequest is the request body for a one-shot question.
type AskRequest struct {
	Message     string           `json:"message"`
	Translation string           `json:"translation,omitempty"`
	UserID      string           `json:"user_id,omitempty"`
	History     []assistant.Turn `json:"history,omitempty"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Uptime     string `json:"uptime"`
	CacheSize  int    `json:"cache_size"`
	CacheHits  int64  `json:"cache_hits"`
	FetchCount int64  `json:"fetch_count"`
	Clients    int    `json:"clients"`
}

var startTime = time.Now()

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	info := map[string]interface{}{
		"name":    "Sharp Assistant API",
		"version": apiVersion,
		"endpoints": []string{
			"GET /api/v1/health",
			"POST /api/v1/ask",
			"GET /api/v1/chat (WebSocket)",
		},
	}
	respond(w, http.StatusOK, info, nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use GET")
		return
	}

	info := HealthInfo{
		Status:  "ok",
		Version: apiVersion,
		Uptime:  time.Since(startTime).Round(time.Second).String(),
		Clients: s.hub.ClientCount(),
	}
	if s.fetcher != nil {
		stats := s.fetcher.CacheStats()
		info.CacheSize = stats.Size
		info.CacheHits = stats.Hits
		info.FetchCount = s.fetcher.FetchCount()
	}
	respond(w, http.StatusOK, info, nil)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use POST")
		return
	}

	if !server.ValidateContentType(r.Header.Get("Content-Type"), []string{"application/json"}) {
		respondError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
			"Content-Type must be application/json")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body")
		return
	}

	message := server.SanitizeUserInput(req.Message)
	message = server.LimitStringLength(message, maxMessageLength)
	if message == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "message is required")
		return
	}

	qctx := assistant.Context{
		UserID:  req.UserID,
		History: req.History,
	}
	if req.Translation != "" {
		qctx.SelectedTranslation = text.ParseTranslation(req.Translation)
	}

	resp, err := s.assistant.Answer(r.Context(), message, qctx)
	if err != nil {
		logging.ErrorContext(r.Context(), "ask failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to answer question")
		return
	}

	respond(w, http.StatusOK, resp, nil)
}

// respond writes a successful JSON response with the standard wrapper.
func respond(w http.ResponseWriter, status int, data interface{}, meta *APIMeta) {
	if meta == nil {
		meta = &APIMeta{}
	}
	if meta.Timestamp == "" {
		meta.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// respondError writes an error JSON response with the standard wrapper.
func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
		Meta:    &APIMeta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	})
}
