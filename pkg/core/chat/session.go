// Package chat maintains the sidebar assistant's conversational sessions.
// Each session keeps its full transcript so the model answers with prior
// turns in context. Sessions are independent of any uploaded analysis.
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"finlens/pkg/core/agent"
	"finlens/pkg/core/llm"
	"finlens/pkg/core/prompt"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	agentType = "chat"
)

// Session is one ongoing conversation.
type Session struct {
	ID        string        `json:"id"`
	Messages  []llm.Message `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Service manages all active chat sessions.
type Service struct {
	agentMgr *agent.Manager
	idle     time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService creates a chat service. Sessions idle longer than idleTTL are
// reaped by a background routine.
func NewService(agentMgr *agent.Manager, idleTTL time.Duration) *Service {
	s := &Service{
		agentMgr: agentMgr,
		idle:     idleTTL,
		sessions: make(map[string]*Session),
	}
	go s.cleanup()
	return s
}

// Start creates a new empty session and returns its id.
func (s *Service) Start() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	now := time.Now()
	s.sessions[id] = &Session{ID: id, CreatedAt: now, UpdatedAt: now}
	return id
}

// History returns a copy of the session transcript.
func (s *Service) History(id string) ([]llm.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return append([]llm.Message(nil), sess.Messages...), true
}

// Send appends the user's question to the transcript, asks the chat agent
// with the full history, and records the answer. A provider failure is
// recorded as an assistant error turn and returned; the session stays
// usable for the next question.
func (s *Service) Send(ctx context.Context, id string, question string) (string, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return "", ErrSessionNotFound
	}
	sess.Messages = append(sess.Messages, llm.Message{Role: RoleUser, Content: question})
	history := append([]llm.Message(nil), sess.Messages...)
	s.mu.Unlock()

	systemPrompt, err := prompt.Get().SystemPrompt(prompt.IDChat)
	if err != nil {
		systemPrompt = ""
	}

	answer, callErr := s.agentMgr.ExecuteChat(ctx, agentType, history, systemPrompt, nil)
	if callErr != nil {
		answer = "Error: could not get a response from the assistant. " + callErr.Error()
	}

	s.mu.Lock()
	sess.Messages = append(sess.Messages, llm.Message{Role: RoleAssistant, Content: answer})
	sess.UpdatedAt = time.Now()
	s.mu.Unlock()

	return answer, callErr
}

// cleanup reaps idle sessions once an hour.
func (s *Service) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	for range ticker.C {
		s.mu.Lock()
		for id, sess := range s.sessions {
			if time.Since(sess.UpdatedAt) > s.idle {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
