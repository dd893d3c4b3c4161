package store

import (
	"sync"
	"time"

	"bounty-chat-backend/internal/types"
)

type session struct {
	messages []types.ChatMessage
	touched  time.Time
}

// MemoryStore keeps the chat transcript of each session in process memory.
// Transcripts are bounded to maxMessages, dropping the oldest first. Sessions
// idle for longer than idleTTL are dropped on the next write, and at most
// maxSessions are kept, evicting the least recently used.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*session
	maxMessages int
	maxSessions int
	idleTTL     time.Duration
	lastSweep   time.Time
	now         func() time.Time
}

func NewMemoryStore(maxMessages, maxSessions int, idleTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string]*session),
		maxMessages: maxMessages,
		maxSessions: maxSessions,
		idleTTL:     idleTTL,
		now:         time.Now,
	}
}

func (m *MemoryStore) Append(sessionID string, msgs ...types.ChatMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.touchLocked(sessionID)
	sess.messages = append(sess.messages, msgs...)
	m.trimLocked(sess)
}

func (m *MemoryStore) Get(sessionID string) []types.ChatMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sessionID]
	if !ok || m.expired(sess, m.now()) {
		return []types.ChatMessage{}
	}
	copyMsgs := make([]types.ChatMessage, len(sess.messages))
	copy(copyMsgs, sess.messages)
	return copyMsgs
}

// Seed stores msgs as the session's transcript unless it already holds
// messages, and returns the transcript.
func (m *MemoryStore) Seed(sessionID string, msgs ...types.ChatMessage) []types.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.touchLocked(sessionID)
	if len(sess.messages) == 0 {
		sess.messages = append(sess.messages, msgs...)
		m.trimLocked(sess)
	}
	out := make([]types.ChatMessage, len(sess.messages))
	copy(out, sess.messages)
	return out
}

func (m *MemoryStore) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Len returns the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := m.now()
	n := 0
	for _, sess := range m.sessions {
		if !m.expired(sess, now) {
			n++
		}
	}
	return n
}

// touchLocked returns the live session for id, creating it when missing or
// expired, and marks it used.
func (m *MemoryStore) touchLocked(id string) *session {
	now := m.now()
	m.sweepLocked(now, false)

	sess, ok := m.sessions[id]
	if !ok || m.expired(sess, now) {
		if !ok && m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
			m.sweepLocked(now, true)
			if len(m.sessions) >= m.maxSessions {
				m.evictOldestLocked()
			}
		}
		sess = &session{}
		m.sessions[id] = sess
	}
	sess.touched = now
	return sess
}

// sweepLocked drops expired sessions. Unless forced it runs at most once per
// quarter of the idle TTL.
func (m *MemoryStore) sweepLocked(now time.Time, force bool) {
	if m.idleTTL <= 0 {
		return
	}
	if !force && now.Sub(m.lastSweep) < m.idleTTL/4 {
		return
	}
	m.lastSweep = now
	for id, sess := range m.sessions {
		if m.expired(sess, now) {
			delete(m.sessions, id)
		}
	}
}

func (m *MemoryStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, sess := range m.sessions {
		if oldestID == "" || sess.touched.Before(oldest) {
			oldestID, oldest = id, sess.touched
		}
	}
	delete(m.sessions, oldestID)
}

func (m *MemoryStore) expired(sess *session, now time.Time) bool {
	return m.idleTTL > 0 && now.Sub(sess.touched) > m.idleTTL
}

func (m *MemoryStore) trimLocked(sess *session) {
	if m.maxMessages <= 0 {
		return
	}
	if len(sess.messages) > m.maxMessages {
		sess.messages = sess.messages[len(sess.messages)-m.maxMessages:]
	}
}
