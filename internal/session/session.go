// Package session owns the visitor's browser session: one record per browser,
// holding at most one backend API token plus any pending flash messages.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ErrNoSession is returned by Store.Get when no record exists for the ID.
// "Never logged in" and "explicitly cleared" both surface as this sentinel or
// as a record whose Credentials reports ok=false; callers never infer login
// state from an empty string.
type errNoSession struct{}

func (errNoSession) Error() string { return "no such session" }

var ErrNoSession error = errNoSession{}

// FlashKind selects how the view presents a queued message.
type FlashKind string

const (
	FlashAlert   FlashKind = "alert"
	FlashSuccess FlashKind = "success"
)

type Flash struct {
	Kind FlashKind `json:"kind"`
	Text string    `json:"text"`
}

// Session is the per-browser record. APIToken is the opaque credential issued
// by the hotel service; empty means the visitor is not logged in.
type Session struct {
	ID        string    `json:"id"`
	APIToken  string    `json:"api_token,omitempty"`
	Flash     []Flash   `json:"flash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New creates an anonymous session valid for ttl.
func New(ttl time.Duration) Session {
	now := time.Now()
	return Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Credentials returns the stored token. ok is false when the visitor has
// never logged in or has logged out.
func (s *Session) Credentials() (token string, ok bool) {
	return s.APIToken, s.APIToken != ""
}

// SetToken records a fresh token, replacing any prior one.
func (s *Session) SetToken(token string) {
	s.APIToken = token
}

// ClearToken logs the session out without discarding queued flashes.
func (s *Session) ClearToken() {
	s.APIToken = ""
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(kind FlashKind, text string) {
	s.Flash = append(s.Flash, Flash{Kind: kind, Text: text})
}

// TakeFlash returns and removes all queued messages.
func (s *Session) TakeFlash() []Flash {
	flashes := s.Flash
	s.Flash = nil
	return flashes
}

// Store persists sessions across requests (and page reloads).
type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, sess Session) error
	Delete(ctx context.Context, id string) error
}
