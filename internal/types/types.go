package types

import "time"

type ChatRequest struct {
	Message string `json:"message"`
}

// ResponseEnvelope is the normalized reply the chat UI renders. Content is
// never empty; Data holds whatever structured payload the webhook supplied.
type ResponseEnvelope struct {
	Content string `json:"content"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ResultsData is the results-style payload rendered as a list of entry cards.
type ResultsData struct {
	Results    []Entry `json:"results"`
	TotalFound int64   `json:"total_found"`
	Summary    any     `json:"summary,omitempty"`
}

// Entry is one dataset record. Field sets vary between webhook revisions,
// so values are kept exactly as the webhook sent them.
type Entry map[string]any

// Has reports whether the field holds something the UI would render.
func (e Entry) Has(key string) bool {
	switch v := e[key].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	default:
		return true
	}
}

type MessageType string

const (
	MessageUser      MessageType = "user"
	MessageAssistant MessageType = "assistant"
)

type ChatMessage struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Data      any         `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type HistoryResponse struct {
	SessionID   string        `json:"sessionId"`
	Messages    []ChatMessage `json:"messages"`
	Suggestions []string      `json:"suggestions,omitempty"`
}
