package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bounty-chat-backend/internal/config"
	"bounty-chat-backend/internal/logger"
	"bounty-chat-backend/internal/metrics"
	"bounty-chat-backend/internal/normalize"
	"bounty-chat-backend/internal/phrases"
	"bounty-chat-backend/internal/store"
	"bounty-chat-backend/internal/types"
)

// Forwarder sends a chat question upstream and returns the raw reply body.
type Forwarder interface {
	Forward(ctx context.Context, message string) (string, error)
}

// ForwarderFunc adapts a function to Forwarder.
type ForwarderFunc func(ctx context.Context, message string) (string, error)

func (f ForwarderFunc) Forward(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

type Server struct {
	router     *chi.Mux
	store      *store.MemoryStore
	webhook    Forwarder
	normalizer *normalize.Normalizer
	phrases    phrases.Phrases
	cfg        config.Config
	log        logger.Logger
}

func NewServer(cfg config.Config, webhook Forwarder, p phrases.Phrases, log logger.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", SessionHeader},
		ExposedHeaders:   []string{SessionHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s := &Server{
		router:     r,
		store:      store.NewMemoryStore(cfg.SessionMaxMessages, cfg.SessionMaxCount, cfg.SessionIdleTTL),
		webhook:    webhook,
		normalizer: normalize.New(p),
		phrases:    p,
		cfg:        cfg,
		log:        log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/chat", s.handleChat)
	s.router.Get("/api/chat/history", s.handleHistory)
	s.router.Delete("/api/chat/history", s.handleClearHistory)
	s.router.Handle("/metrics", promhttp.Handler())
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeEnvelope(w http.ResponseWriter, code int, env types.ResponseEnvelope) {
	metrics.ChatRequests.WithLabelValues(strconv.Itoa(code)).Inc()
	writeJSON(w, code, env)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newSessionID() string {
	return uuid.NewString()
}

// getSessionID retrieves the session ID from the cookie or the header. Only
// ids this server could have issued are accepted.
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && validSessionID(cookie) {
		return cookie
	}
	if sid := r.Header.Get(SessionHeader); validSessionID(sid) {
		return sid
	}
	return ""
}

func validSessionID(sid string) bool {
	_, err := uuid.Parse(sid)
	return err == nil && len(sid) == 36
}

// getOrCreateSessionID returns the caller's session, starting a new one when
// it has none, and echoes it in the response header.
func (s *Server) getOrCreateSessionID(w http.ResponseWriter, r *http.Request) string {
	sid := getSessionID(r)
	if sid == "" {
		sid = newSessionID()
		SetSessionCookie(w, r, sid, s.cfg.SessionIdleTTL)
		s.log.Debug("session created", map[string]interface{}{
			"session_id": sid,
			"path":       r.URL.Path,
		})
	}
	w.Header().Set(SessionHeader, sid)
	return sid
}

func newMessage(typ types.MessageType, content string, data any) types.ChatMessage {
	return types.ChatMessage{
		ID:        uuid.NewString(),
		Type:      typ,
		Content:   content,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
