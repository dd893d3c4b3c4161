package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"bounty-chat-backend/internal/logger"
	"bounty-chat-backend/internal/metrics"
	"bounty-chat-backend/internal/types"
	"bounty-chat-backend/internal/webhook"
)

// handleChat forwards the question to the webhook and answers with the
// normalized envelope. Every failure still produces an envelope with content.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sid := s.getOrCreateSessionID(w, r)
	log := s.log.With(map[string]interface{}{
		"request_id": middleware.GetReqID(r.Context()),
		"session_id": sid,
	})

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, log, fmt.Errorf("decode request: %w", err))
		return
	}
	s.store.Seed(sid, s.welcomeMessage())
	s.store.Append(sid, newMessage(types.MessageUser, req.Message, nil))

	raw, err := s.webhook.Forward(r.Context(), req.Message)
	if err != nil {
		var statusErr *webhook.StatusError
		if errors.As(err, &statusErr) {
			s.reply(w, sid, http.StatusInternalServerError, types.ResponseEnvelope{
				Content: s.phrases.ServiceUnavailable(statusErr.StatusCode),
			})
			return
		}
		s.failSession(w, log, sid, err)
		return
	}

	env, err := s.normalize(raw)
	if err != nil {
		s.failSession(w, log, sid, err)
		return
	}
	s.reply(w, sid, http.StatusOK, env)
}

// normalize runs the normalizer, turning a panic into an error.
func (s *Server) normalize(raw string) (env types.ResponseEnvelope, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("normalize response: %v", rec)
		}
	}()
	env, shape := s.normalizer.Normalize(raw)
	metrics.NormalizedResponses.WithLabelValues(string(shape)).Inc()
	return env, nil
}

// reply records the assistant message in the transcript and writes env.
func (s *Server) reply(w http.ResponseWriter, sid string, code int, env types.ResponseEnvelope) {
	s.store.Append(sid, newMessage(types.MessageAssistant, env.Content, env.Data))
	s.writeEnvelope(w, code, env)
}

func (s *Server) failSession(w http.ResponseWriter, log logger.Logger, sid string, err error) {
	env := s.apology(log, err)
	s.store.Append(sid, newMessage(types.MessageAssistant, env.Content, nil))
	s.writeEnvelope(w, http.StatusInternalServerError, env)
}

func (s *Server) fail(w http.ResponseWriter, log logger.Logger, err error) {
	s.writeEnvelope(w, http.StatusInternalServerError, s.apology(log, err))
}

func (s *Server) apology(log logger.Logger, err error) types.ResponseEnvelope {
	log.Error("chat request failed", map[string]interface{}{"error": err})
	env := types.ResponseEnvelope{Content: s.phrases.Apology}
	if s.cfg.IsDevelopment() {
		env.Error = err.Error()
	}
	return env
}
