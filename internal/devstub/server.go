// Package devstub is an in-memory stand-in for the remote hotel booking
// service, for local development and tests. It is not the production backend
// and implements only the contract the front end consumes.
package devstub

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hotelbook/hotel-web/internal/hotel"
	"github.com/hotelbook/hotel-web/pkg/logger"
)

const dateLayout = "2006-01-02"

type ctxKey string

const ctxUsername ctxKey = "username"

type Server struct {
	store    *Store
	secret   string
	tokenTTL time.Duration
}

func NewServer(store *Store, secret string, tokenTTL time.Duration) *Server {
	return &Server{
		store:    store,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/api/login", s.handleLogin)
	r.Get("/api/rooms", s.handleListRooms)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/api/bookings", s.handleListBookings)
		r.Post("/api/bookings", s.handleCreateBooking)
	})

	return r
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization header", CodeUnauthorized)
			return
		}

		claims, err := ParseToken(strings.TrimPrefix(authHeader, "Bearer "), s.secret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token", CodeInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUsername, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func username(r *http.Request) string {
	if v, ok := r.Context().Value(ctxUsername).(string); ok {
		return v
	}
	return ""
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req hotel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", CodeInvalidInput)
		return
	}

	if !s.store.Authenticate(req.Username, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password", CodeUnauthorized)
		return
	}

	token, err := NewToken(strings.ToLower(strings.TrimSpace(req.Username)), s.secret, s.tokenTTL)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to issue token", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, hotel.LoginResponse{Token: token})
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Rooms())
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	status := r.URL.Query().Get("status")

	bookings := s.store.BookingsFor(username(r), limit, offset, status)
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req hotel.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", CodeInvalidInput)
		return
	}

	if msg, code := s.validateBooking(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg, code)
		return
	}

	booking := s.store.AddBooking(username(r), req)
	logger.InfoContext(r.Context(), "Booking created", "booking_id", booking.ID, "room_type", booking.RoomType)

	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) validateBooking(req hotel.BookingRequest) (message, code string) {
	if req.RoomType == "" {
		return "Room type is required", CodeInvalidInput
	}
	if !s.store.HasRoomType(req.RoomType) {
		return "Unknown room type: " + req.RoomType, CodeUnknownRoom
	}

	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		return "Check-in date must be in YYYY-MM-DD format", CodeInvalidInput
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		return "Check-out date must be in YYYY-MM-DD format", CodeInvalidInput
	}

	if !checkOut.After(checkIn) {
		return "Check-out date must be after check-in date", CodeInvalidInput
	}

	today := time.Now().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return "Check-in date cannot be in the past", CodePastDate
	}

	return "", ""
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}
