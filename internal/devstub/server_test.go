package devstub_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hotelbook/hotel-web/internal/devstub"
	"github.com/hotelbook/hotel-web/internal/hotel"
)

const testSecret = "test-secret"

func setupStub(t *testing.T) *httptest.Server {
	t.Helper()

	store := devstub.NewStore()
	if err := store.AddUser("guest", "guest123"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	store.SeedRooms([]hotel.Room{
		{ID: 1, Number: "101", Type: "Single", PricePerNight: 95},
		{ID: 2, Number: "201", Type: "Double", PricePerNight: 140},
		{ID: 3, Number: "301", Type: "Suite", PricePerNight: 250},
	})

	server := httptest.NewServer(devstub.NewServer(store, testSecret, time.Hour).Routes())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url, token string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func get(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func loginToken(t *testing.T, server *httptest.Server) string {
	t.Helper()

	resp := postJSON(t, server.URL+"/api/login", "", hotel.LoginRequest{
		Username: "guest",
		Password: "guest123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}

	var out hotel.LoginResponse
	decodeBody(t, resp, &out)
	if out.Token == "" {
		t.Fatal("expected a token")
	}
	return out.Token
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestLogin(t *testing.T) {
	server := setupStub(t)

	t.Run("valid credentials", func(t *testing.T) {
		token := loginToken(t, server)
		claims, err := devstub.ParseToken(token, testSecret)
		if err != nil {
			t.Fatalf("issued token failed to parse: %v", err)
		}
		if claims.Username != "guest" {
			t.Fatalf("expected username guest in claims, got %q", claims.Username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/login", "", hotel.LoginRequest{
			Username: "guest",
			Password: "nope",
		})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}

		var envelope struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		decodeBody(t, resp, &envelope)
		if envelope.Error != "Invalid username or password" {
			t.Fatalf("unexpected error message: %q", envelope.Error)
		}
		if envelope.Code != devstub.CodeUnauthorized {
			t.Fatalf("unexpected error code: %q", envelope.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/login", "", hotel.LoginRequest{
			Username: "stranger",
			Password: "guest123",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})
}

func TestListRooms(t *testing.T) {
	server := setupStub(t)

	resp := get(t, server.URL+"/api/rooms", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var rooms []hotel.Room
	decodeBody(t, resp, &rooms)
	if len(rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(rooms))
	}
	if rooms[0].Type != "Single" || rooms[0].Number != "101" {
		t.Fatalf("unexpected first room: %+v", rooms[0])
	}
}

func TestBookings_RequireToken(t *testing.T) {
	server := setupStub(t)

	resp := get(t, server.URL+"/api/bookings", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp = get(t, server.URL+"/api/bookings", "not-a-jwt")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", resp.StatusCode)
	}
}

func TestCreateBooking(t *testing.T) {
	server := setupStub(t)
	token := loginToken(t, server)

	t.Run("valid booking", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/bookings", token, hotel.BookingRequest{
			RoomType:     "Double",
			CheckInDate:  futureDate(1),
			CheckOutDate: futureDate(3),
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}

		var booking hotel.Booking
		decodeBody(t, resp, &booking)
		if booking.ID == 0 {
			t.Fatal("expected an assigned booking ID")
		}
		if booking.Status != "confirmed" {
			t.Fatalf("expected status confirmed, got %q", booking.Status)
		}
		if booking.RoomType != "Double" {
			t.Fatalf("expected room type echoed back, got %q", booking.RoomType)
		}
	})

	rejectionTests := []struct {
		name string
		req  hotel.BookingRequest
		code string
	}{
		{
			name: "missing room type",
			req:  hotel.BookingRequest{CheckInDate: futureDate(1), CheckOutDate: futureDate(2)},
			code: devstub.CodeInvalidInput,
		},
		{
			name: "unknown room type",
			req:  hotel.BookingRequest{RoomType: "Penthouse", CheckInDate: futureDate(1), CheckOutDate: futureDate(2)},
			code: devstub.CodeUnknownRoom,
		},
		{
			name: "bad date format",
			req:  hotel.BookingRequest{RoomType: "Single", CheckInDate: "01/10/2026", CheckOutDate: futureDate(2)},
			code: devstub.CodeInvalidInput,
		},
		{
			name: "check-out before check-in",
			req:  hotel.BookingRequest{RoomType: "Single", CheckInDate: futureDate(3), CheckOutDate: futureDate(1)},
			code: devstub.CodeInvalidInput,
		},
		{
			name: "check-in in the past",
			req:  hotel.BookingRequest{RoomType: "Single", CheckInDate: futureDate(-2), CheckOutDate: futureDate(1)},
			code: devstub.CodePastDate,
		},
	}

	for _, tc := range rejectionTests {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, server.URL+"/api/bookings", token, tc.req)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}

			var envelope struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}
			decodeBody(t, resp, &envelope)
			if envelope.Code != tc.code {
				t.Fatalf("expected code %q, got %q (%s)", tc.code, envelope.Code, envelope.Error)
			}
		})
	}
}

func TestListBookings(t *testing.T) {
	server := setupStub(t)
	token := loginToken(t, server)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, server.URL+"/api/bookings", token, hotel.BookingRequest{
			RoomType:     "Single",
			CheckInDate:  futureDate(i + 1),
			CheckOutDate: futureDate(i + 2),
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed booking %d failed with status %d", i, resp.StatusCode)
		}
	}

	t.Run("lists own bookings", func(t *testing.T) {
		resp := get(t, server.URL+"/api/bookings", token)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var bookings []hotel.Booking
		decodeBody(t, resp, &bookings)
		if len(bookings) != 3 {
			t.Fatalf("expected 3 bookings, got %d", len(bookings))
		}
	})

	t.Run("pagination", func(t *testing.T) {
		resp := get(t, server.URL+"/api/bookings?limit=1&offset=1", token)
		var bookings []hotel.Booking
		decodeBody(t, resp, &bookings)
		if len(bookings) != 1 {
			t.Fatalf("expected a single page entry, got %d", len(bookings))
		}
		if bookings[0].ID != 2 {
			t.Fatalf("expected the second booking, got ID %d", bookings[0].ID)
		}
	})

	t.Run("offset past the end", func(t *testing.T) {
		resp := get(t, server.URL+"/api/bookings?offset=10", token)
		var bookings []hotel.Booking
		decodeBody(t, resp, &bookings)
		if len(bookings) != 0 {
			t.Fatalf("expected empty list, got %d", len(bookings))
		}
	})

	t.Run("status filter", func(t *testing.T) {
		resp := get(t, server.URL+"/api/bookings?status=cancelled", token)
		var bookings []hotel.Booking
		decodeBody(t, resp, &bookings)
		if len(bookings) != 0 {
			t.Fatalf("expected no cancelled bookings, got %d", len(bookings))
		}
	})
}

func TestBookings_IsolatedPerUser(t *testing.T) {
	server := setupStub(t)
	token := loginToken(t, server)

	resp := postJSON(t, server.URL+"/api/bookings", token, hotel.BookingRequest{
		RoomType:     "Suite",
		CheckInDate:  futureDate(1),
		CheckOutDate: futureDate(2),
	})
	resp.Body.Close()

	otherToken, err := devstub.NewToken("other", testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	resp = get(t, server.URL+"/api/bookings", otherToken)
	var bookings []hotel.Booking
	decodeBody(t, resp, &bookings)
	if len(bookings) != 0 {
		t.Fatalf("expected no bookings for another user, got %d", len(bookings))
	}
}
