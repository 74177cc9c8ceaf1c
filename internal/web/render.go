package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/hotelbook/hotel-web/internal/hotel"
	"github.com/hotelbook/hotel-web/internal/session"
	"github.com/hotelbook/hotel-web/pkg/logger"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Section names. Exactly one section is rendered per response.
const (
	SectionHome     = "home"
	SectionRooms    = "rooms"
	SectionBookings = "bookings"
	SectionLogin    = "login"
)

// pageData feeds the single-page template. Only the fields for the active
// section are populated; everything else renders empty.
type pageData struct {
	Section  string
	LoggedIn bool
	Flash    []session.Flash

	Rooms      []hotel.Room
	RoomsError string

	Bookings       []hotel.Booking
	BookingsNotice string

	ShowBookingForm bool
	RoomTypes       []string
	RoomTypesError  string
	Form            bookingForm
	FormError       string

	LoginError string
}

type bookingForm struct {
	RoomType     string
	CheckInDate  string
	CheckOutDate string
}

type renderer struct {
	t *template.Template
}

func newRenderer() (*renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &renderer{t: t}, nil
}

// page renders the full page into a buffer first so a template failure can
// still produce a clean 500 instead of a half-written body.
func (rd *renderer) page(w http.ResponseWriter, r *http.Request, data pageData) {
	var buf bytes.Buffer
	if err := rd.t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.ErrorContext(r.Context(), "Template rendering failed", "error", err, "section", data.Section)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.ErrorContext(r.Context(), "Failed to write response body", "error", err)
	}
}
