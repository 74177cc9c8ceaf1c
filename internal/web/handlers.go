package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/hotelbook/hotel-web/internal/hotel"
	"github.com/hotelbook/hotel-web/internal/session"
	"github.com/hotelbook/hotel-web/pkg/events"
	"github.com/hotelbook/hotel-web/pkg/logger"
)

// User-facing messages. The wording is part of the page's contract and is
// asserted by tests, so keep changes deliberate.
const (
	msgLoginFailed       = "Login failed. Invalid username or password."
	msgRoomsLoadFailed   = "Failed to load rooms. Please try again later."
	msgBookingsLoginGate = "Please log in to view your bookings."
	msgBookingLoginGate  = "Please log in to create a booking."
	msgBookingCreated    = "Booking created successfully!"
	msgRoomTypesFailed   = "Could not load room types. Please try again later."
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sess, r := s.loadSession(w, r)
	_, loggedIn := sess.Credentials()

	s.render.page(w, r, pageData{
		Section:  SectionHome,
		LoggedIn: loggedIn,
		Flash:    s.popFlash(r.Context(), &sess),
	})
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	sess, r := s.loadSession(w, r)
	_, loggedIn := sess.Credentials()

	data := pageData{
		Section:  SectionRooms,
		LoggedIn: loggedIn,
		Flash:    s.popFlash(r.Context(), &sess),
	}

	rooms, err := s.api.ListRooms(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Error loading rooms", "error", err)
		data.RoomsError = msgRoomsLoadFailed
	} else {
		data.Rooms = rooms
	}

	s.render.page(w, r, data)
}

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	sess, r := s.loadSession(w, r)

	data := s.bookingsData(r, &sess)
	data.Flash = s.popFlash(r.Context(), &sess)

	s.render.page(w, r, data)
}

// bookingsData loads the bookings section. A visitor without a token gets the
// login notice and the bookings endpoint is never called.
func (s *Server) bookingsData(r *http.Request, sess *session.Session) pageData {
	data := pageData{Section: SectionBookings}

	token, loggedIn := sess.Credentials()
	data.LoggedIn = loggedIn
	if !loggedIn {
		data.BookingsNotice = msgBookingsLoginGate
		return data
	}

	bookings, err := s.api.ListBookings(r.Context(), token, hotel.ListOptions{})
	if err != nil {
		logger.ErrorContext(r.Context(), "Error loading user bookings", "error", err)
		data.BookingsNotice = "Failed to load your bookings. " + hotel.UserMessage(err, "Please try again later.")
		return data
	}

	data.Bookings = bookings
	return data
}

func (s *Server) handleBookingForm(w http.ResponseWriter, r *http.Request) {
	sess, r := s.loadSession(w, r)

	if _, loggedIn := sess.Credentials(); !loggedIn {
		sess.AddFlash(session.FlashAlert, msgBookingLoginGate)
		s.saveSession(r.Context(), sess)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := s.bookingFormData(r, &sess, bookingForm{}, "")
	data.Flash = s.popFlash(r.Context(), &sess)

	s.render.page(w, r, data)
}

// bookingFormData renders the bookings section with the submission form
// revealed and its room-type selector populated from the live inventory.
func (s *Server) bookingFormData(r *http.Request, sess *session.Session, form bookingForm, formError string) pageData {
	data := s.bookingsData(r, sess)
	data.ShowBookingForm = true
	data.Form = form
	data.FormError = formError

	rooms, err := s.api.ListRooms(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to populate room types", "error", err)
		data.RoomTypesError = msgRoomTypesFailed
		return data
	}

	data.RoomTypes = hotel.DistinctRoomTypes(rooms)
	return data
}

func (s *Server) handleBookingSubmit(w http.ResponseWriter, r *http.Request) {
	sess, r := s.loadSession(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	form := bookingForm{
		RoomType:     strings.TrimSpace(r.PostFormValue("roomType")),
		CheckInDate:  strings.TrimSpace(r.PostFormValue("checkInDate")),
		CheckOutDate: strings.TrimSpace(r.PostFormValue("checkOutDate")),
	}

	token, loggedIn := sess.Credentials()
	if !loggedIn {
		sess.AddFlash(session.FlashAlert, msgBookingLoginGate)
		s.saveSession(r.Context(), sess)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	booking, err := s.api.CreateBooking(r.Context(), token, hotel.BookingRequest{
		RoomType:     form.RoomType,
		CheckInDate:  form.CheckInDate,
		CheckOutDate: form.CheckOutDate,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "Booking creation failed", "error", err)
		formError := "Failed to create booking. " + hotel.UserMessage(err, "Please try again.")
		data := s.bookingFormData(r, &sess, form, formError)
		data.Flash = s.popFlash(r.Context(), &sess)
		s.render.page(w, r, data)
		return
	}

	logger.InfoContext(r.Context(), "Booking created", "booking_id", booking.ID, "room_type", booking.RoomType)
	s.publish(r.Context(), events.BookingCreated, events.BookingCreatedEvent{
		RoomType:     booking.RoomType,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		CreatedAt:    time.Now(),
	})

	sess.AddFlash(session.FlashSuccess, msgBookingCreated)
	s.saveSession(r.Context(), sess)
	http.Redirect(w, r, "/bookings", http.StatusSeeOther)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	sess, r := s.loadSession(w, r)
	_, loggedIn := sess.Credentials()

	// Entering the login section always starts with a clean error area; the
	// inline message only ever comes from the failed submit itself.
	s.render.page(w, r, pageData{
		Section:  SectionLogin,
		LoggedIn: loggedIn,
		Flash:    s.popFlash(r.Context(), &sess),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess, r := s.loadSession(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	token, err := s.api.Login(r.Context(), username, password)
	if err != nil {
		logger.ErrorContext(r.Context(), "Login failed", "error", err, "username", username)
		s.render.page(w, r, pageData{
			Section:    SectionLogin,
			LoggedIn:   false,
			LoginError: msgLoginFailed,
		})
		return
	}

	sess.SetToken(token)
	s.saveSession(r.Context(), sess)

	logger.InfoContext(r.Context(), "User logged in", "username", username)
	s.publish(r.Context(), events.SessionLogin, events.SessionLoginEvent{
		Username: username,
		LoggedAt: time.Now(),
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, r := s.loadSession(w, r)

	if _, loggedIn := sess.Credentials(); !loggedIn {
		// Nothing to log out of; fall through to the login section the way
		// the nav link would.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sess.ClearToken()
	s.saveSession(r.Context(), sess)

	logger.InfoContext(r.Context(), "User logged out")
	s.publish(r.Context(), events.SessionLogout, events.SessionLogoutEvent{LoggedAt: time.Now()})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
