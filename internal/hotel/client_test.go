package hotel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestLogin_Success(t *testing.T) {
	var gotBody LoginRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(LoginResponse{Token: "tok-123"})
	})
	defer server.Close()

	token, err := client.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("expected token tok-123, got %q", token)
	}
	if gotBody.Username != "alice" || gotBody.Password != "secret" {
		t.Fatalf("unexpected login payload: %+v", gotBody)
	}
}

func TestLogin_RejectedCredentials(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid username or password", "code": "UNAUTHORIZED"})
	})
	defer server.Close()

	_, err := client.Login(context.Background(), "alice", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAuthentication(err) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	if got := UserMessage(err, "fallback"); got != "Invalid username or password" {
		t.Fatalf("expected backend message, got %q", got)
	}
}

func TestListRooms_Success(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rooms" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Room{
			{ID: 1, Type: "Single"},
			{ID: 2, Type: "Double"},
		})
	})
	defer server.Close()

	rooms, err := client.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("ListRooms failed: %v", err)
	}
	if len(rooms) != 2 || rooms[0].Type != "Single" {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}
}

func TestListRooms_ServerError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := client.ListRooms(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if IsAuthentication(err) || IsAuthorization(err) || IsValidation(err) {
		t.Fatalf("expected service error kind, got %v", err)
	}
}

func TestListRooms_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second)

	_, err := client.ListRooms(context.Background())
	if err == nil {
		t.Fatal("expected error for unreachable service")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindService || apiErr.Status != 0 {
		t.Fatalf("expected transport service error, got %v", err)
	}
}

func TestListBookings_SendsTokenAndQuery(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Fatalf("expected bearer token, got %q", got)
		}
		q := r.URL.Query()
		if q.Get("limit") != "10" || q.Get("status") != "confirmed" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]Booking{{ID: 7, RoomType: "Suite"}})
	})
	defer server.Close()

	bookings, err := client.ListBookings(context.Background(), "tok-123", ListOptions{Limit: 10, Status: "confirmed"})
	if err != nil {
		t.Fatalf("ListBookings failed: %v", err)
	}
	if len(bookings) != 1 || bookings[0].ID != 7 {
		t.Fatalf("unexpected bookings: %+v", bookings)
	}
}

func TestListBookings_RejectedToken(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid token", "code": "INVALID_TOKEN"})
	})
	defer server.Close()

	_, err := client.ListBookings(context.Background(), "stale", ListOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAuthorization(err) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestCreateBooking_Success(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/bookings" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req BookingRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Booking{
			ID:           42,
			RoomType:     req.RoomType,
			CheckInDate:  req.CheckInDate,
			CheckOutDate: req.CheckOutDate,
			Status:       "confirmed",
		})
	})
	defer server.Close()

	booking, err := client.CreateBooking(context.Background(), "tok", BookingRequest{
		RoomType:     "Double",
		CheckInDate:  "2026-10-01",
		CheckOutDate: "2026-10-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if booking.ID != 42 || booking.RoomType != "Double" {
		t.Fatalf("unexpected booking: %+v", booking)
	}
}

func TestCreateBooking_ValidationError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Check-out date must be after check-in date", "code": "INVALID_INPUT"})
	})
	defer server.Close()

	_, err := client.CreateBooking(context.Background(), "tok", BookingRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := UserMessage(err, "fallback"); got != "Check-out date must be after check-in date" {
		t.Fatalf("expected backend message verbatim, got %q", got)
	}
}

func TestUserMessage_Fallback(t *testing.T) {
	err := &Error{Kind: KindService, Status: 502}
	if got := UserMessage(err, "Please try again."); got != "Please try again." {
		t.Fatalf("expected fallback, got %q", got)
	}
}
