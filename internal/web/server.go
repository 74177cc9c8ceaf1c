// Package web is the browser-facing front end: it renders the single booking
// page one section at a time and translates form submissions into calls
// against the remote hotel service.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hotelbook/hotel-web/internal/hotel"
	"github.com/hotelbook/hotel-web/internal/session"
	"github.com/hotelbook/hotel-web/pkg/events"
	"github.com/hotelbook/hotel-web/pkg/logger"
)

type Options struct {
	CookieName   string
	SessionTTL   time.Duration
	SecureCookie bool
}

type Server struct {
	api       hotel.API
	sessions  session.Store
	publisher events.Publisher
	render    *renderer
	opts      Options
}

func NewServer(api hotel.API, sessions session.Store, publisher events.Publisher, opts Options) (*Server, error) {
	if opts.CookieName == "" {
		opts.CookieName = "hotel_session"
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	render, err := newRenderer()
	if err != nil {
		return nil, err
	}

	return &Server{
		api:       api,
		sessions:  sessions,
		publisher: publisher,
		render:    render,
		opts:      opts,
	}, nil
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.handleHome)
	r.Get("/rooms", s.handleRooms)
	r.Get("/bookings", s.handleBookings)
	r.Get("/bookings/new", s.handleBookingForm)
	r.Post("/bookings", s.handleBookingSubmit)
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	return r
}

// loadSession returns the visitor's session, creating and persisting a fresh
// anonymous one when none exists yet. The returned request carries the
// session ID in its context for logging.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (session.Session, *http.Request) {
	if cookie, err := r.Cookie(s.opts.CookieName); err == nil && cookie.Value != "" {
		sess, err := s.sessions.Get(r.Context(), cookie.Value)
		if err == nil {
			return sess, s.withSessionID(r, sess.ID)
		}
		if !errors.Is(err, session.ErrNoSession) {
			logger.ErrorContext(r.Context(), "Failed to load session", "error", err)
		}
	}

	sess := session.New(s.opts.SessionTTL)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		logger.ErrorContext(r.Context(), "Failed to create session", "error", err)
	}
	s.setCookie(w, sess.ID)

	return sess, s.withSessionID(r, sess.ID)
}

func (s *Server) withSessionID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), logger.SessionIDKey, id)
	return r.WithContext(ctx)
}

func (s *Server) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.opts.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) saveSession(ctx context.Context, sess session.Session) {
	if err := s.sessions.Save(ctx, sess); err != nil {
		logger.ErrorContext(ctx, "Failed to save session", "error", err)
	}
}

// popFlash drains queued flash messages and persists the drained state so a
// reload doesn't replay them.
func (s *Server) popFlash(ctx context.Context, sess *session.Session) []session.Flash {
	flashes := sess.TakeFlash()
	if len(flashes) > 0 {
		s.saveSession(ctx, *sess)
	}
	return flashes
}

func (s *Server) publish(ctx context.Context, subject string, payload interface{}) {
	if err := s.publisher.Publish(ctx, subject, payload); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}
