// Package api provides the Sharp Assistant REST and WebSocket API server.
package api

import (
	"fmt"
	"net/http"
	"os"

	"github.com/FocuswithJustin/SharpAssistant/core/assistant"
	"github.com/FocuswithJustin/SharpAssistant/core/provider"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
	"github.com/FocuswithJustin/SharpAssistant/internal/server"
)

// Server serves the question-answering API over HTTP and WebSocket.
type Server struct {
	cfg        Config
	assistant  *assistant.Assistant
	fetcher    *provider.Fetcher
	hub        *Hub
	corsConfig server.CORSConfig
}

// NewServer validates the configuration and builds a server. The
// fetcher is optional and only feeds cache statistics into the health
// endpoint.
func NewServer(cfg Config, a *assistant.Assistant, fetcher *provider.Fetcher) (*Server, error) {
	if a == nil {
		return nil, fmt.Errorf("assistant is required")
	}

	if err := ValidateAuthConfig(cfg.Auth); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}

	if cfg.TLS.Enabled {
		if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
			return nil, fmt.Errorf("TLS enabled but cert or key file not specified")
		}
		if _, err := os.Stat(cfg.TLS.CertFile); err != nil {
			return nil, fmt.Errorf("TLS cert file not found: %w", err)
		}
		if _, err := os.Stat(cfg.TLS.KeyFile); err != nil {
			return nil, fmt.Errorf("TLS key file not found: %w", err)
		}
	}

	return &Server{
		cfg:        cfg,
		assistant:  a,
		fetcher:    fetcher,
		hub:        NewHub(),
		corsConfig: server.CORSConfig{AllowedOrigins: cfg.AllowedOrigins},
	}, nil
}

// Handler builds the full middleware chain around the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/api/v1/health", s.handleHealth)
	mux.HandleFunc("/api/v1/ask", s.handleAsk)
	mux.HandleFunc("/api/v1/chat", s.handleChat)

	var handler http.Handler = server.SecurityHeaders(server.APICSPConfig(), mux)

	if s.cfg.Auth.Enabled {
		handler = AuthMiddleware(s.cfg.Auth, handler)
		logging.Info("authentication enabled", "note", "API key required")
	} else {
		logging.Warn("authentication disabled", "note", "all requests allowed")
	}

	if s.cfg.RateLimitRequests > 0 {
		rlConfig := RateLimiterConfig{
			RequestsPerMinute: s.cfg.RateLimitRequests,
			BurstSize:         s.cfg.RateLimitBurst,
		}
		if rlConfig.BurstSize == 0 {
			rlConfig.BurstSize = 10
		}
		handler = NewRateLimiter(rlConfig).Middleware(handler)
		logging.Info("rate limiting enabled",
			"requests_per_minute", rlConfig.RequestsPerMinute,
			"burst_size", rlConfig.BurstSize)
	}

	handler = server.CORSMiddleware(s.corsConfig, handler)
	if len(s.cfg.AllowedOrigins) > 0 {
		logging.Info("cors restricted", "allowed_origins_count", len(s.cfg.AllowedOrigins))
	} else {
		logging.Warn("cors permissive",
			"note", "allowing all origins (*) - consider restricting for production")
	}

	return logging.CombinedMiddleware(handler)
}

// Start runs the hub and serves until the listener fails.
func (s *Server) Start() error {
	go s.hub.Run()

	protocol := "http"
	wsProtocol := "ws"
	if s.cfg.TLS.Enabled {
		protocol = "https"
		wsProtocol = "wss"
		logging.Info("TLS enabled", "cert_file", s.cfg.TLS.CertFile)
	} else {
		logging.Warn("TLS disabled - using plain HTTP",
			"recommendation", "consider using TLS or reverse proxy for production")
	}
	logging.ServerStartup("rest_api", protocol, s.cfg.Port,
		"websocket_protocol", wsProtocol)

	handler := s.Handler()
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	if s.cfg.TLS.Enabled {
		return http.ListenAndServeTLS(addr, s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile, handler)
	}
	return http.ListenAndServe(addr, handler)
}
