package server

import (
	"net/http"
	"time"

	"bounty-chat-backend/internal/types"
)

const welcomeMessageID = "welcome"

func (s *Server) welcomeMessage() types.ChatMessage {
	return types.ChatMessage{
		ID:        welcomeMessageID,
		Type:      types.MessageAssistant,
		Content:   s.phrases.Welcome,
		Timestamp: time.Now().UTC(),
	}
}

// handleHistory returns the session transcript, starting it with the
// welcome message for a new session.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sid := s.getOrCreateSessionID(w, r)
	writeJSON(w, http.StatusOK, types.HistoryResponse{
		SessionID:   sid,
		Messages:    s.store.Seed(sid, s.welcomeMessage()),
		Suggestions: s.phrases.Suggestions,
	})
}

// handleClearHistory starts the session over from the welcome message.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	sid := s.getOrCreateSessionID(w, r)
	s.store.Clear(sid)
	writeJSON(w, http.StatusOK, types.HistoryResponse{
		SessionID:   sid,
		Messages:    s.store.Seed(sid, s.welcomeMessage()),
		Suggestions: s.phrases.Suggestions,
	})
}
