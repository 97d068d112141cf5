package session

import (
	"crypto/subtle"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side state of a shop visitor.
type Session struct {
	ID             uuid.UUID      `json:"id"`
	Token          string         `json:"token"`
	UserID         string         `json:"user_id,omitempty"`
	Admin          bool           `json:"admin,omitempty"`
	Challenge      string         `json:"challenge"`
	Data           map[string]any `json:"data,omitempty"`
	Flash          []string       `json:"flash,omitempty"`
	ExpiresAt      time.Time      `json:"expires_at"`
	LastActivityAt time.Time      `json:"last_activity_at"`
	CreatedAt      time.Time      `json:"created_at"`

	modified bool
}

// NewSession creates an anonymous session valid for ttl.
func NewSession(token, challenge string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		Challenge:      challenge,
		Data:           make(map[string]any),
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// IsAuthenticated reports whether a customer is logged in.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != ""
}

// IsAdmin reports whether the session belongs to an authenticated
// administrator.
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.Admin
}

func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// CheckChallenge compares token with the session challenge in constant time.
// An empty token never matches.
func (s *Session) CheckChallenge(token string) bool {
	if s == nil || token == "" || s.Challenge == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.Challenge), []byte(token)) == 1
}

func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
	s.modified = true
}

func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	if _, ok := s.Data[key]; ok {
		delete(s.Data, key)
		s.modified = true
	}
}

// AddFlash queues a message for the next page render.
func (s *Session) AddFlash(msg string) {
	if s == nil || msg == "" {
		return
	}
	s.Flash = append(s.Flash, msg)
	s.modified = true
}

// Flashes returns the queued messages and clears the queue.
func (s *Session) Flashes() []string {
	if s == nil || len(s.Flash) == 0 {
		return nil
	}
	msgs := slices.Clone(s.Flash)
	s.Flash = nil
	s.modified = true
	return msgs
}

// Modified reports whether the session changed since it was loaded.
func (s *Session) Modified() bool {
	return s != nil && s.modified
}

func (s *Session) Touch() {
	if s == nil {
		return
	}
	s.LastActivityAt = time.Now()
}

func (s *Session) clone() *Session {
	c := *s
	c.modified = false
	c.Data = maps.Clone(s.Data)
	c.Flash = slices.Clone(s.Flash)
	return &c
}
