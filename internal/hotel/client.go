package hotel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/hotelbook/hotel-web/pkg/logger"
)

// API is everything the view layer needs from the remote hotel service.
// Every call is a single best-effort round trip; failures are returned to the
// caller and never retried here.
type API interface {
	Login(ctx context.Context, username, password string) (string, error)
	ListRooms(ctx context.Context) ([]Room, error)
	ListBookings(ctx context.Context, token string, opts ListOptions) ([]Booking, error)
	CreateBooking(ctx context.Context, token string, req BookingRequest) (*Booking, error)
}

// Client talks to the remote hotel booking service over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", "", LoginRequest{
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		// A rejected login comes back as 401; reclassify it so the caller
		// can tell bad credentials apart from a rejected token.
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == KindAuthorization {
			apiErr.Kind = KindAuthentication
		}
		return "", err
	}
	return out.Token, nil
}

func (c *Client) ListRooms(ctx context.Context) ([]Room, error) {
	var rooms []Room
	if err := c.do(ctx, http.MethodGet, "/api/rooms", "", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *Client) ListBookings(ctx context.Context, token string, opts ListOptions) ([]Booking, error) {
	values, err := query.Values(opts)
	if err != nil {
		return nil, &Error{Kind: KindService, Message: err.Error()}
	}

	path := "/api/bookings"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var bookings []Booking
	if err := c.do(ctx, http.MethodGet, path, token, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) CreateBooking(ctx context.Context, token string, req BookingRequest) (*Booking, error) {
	var booking Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", token, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// do performs one request and decodes either the success payload into out or
// the service's {error, code} envelope into a classified *Error.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindService, Message: err.Error()}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return &Error{Kind: KindService, Message: err.Error()}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := ctx.Value(logger.RequestIDKey); requestID != nil {
		if id, ok := requestID.(string); ok {
			req.Header.Set("X-Request-ID", id)
		}
	}

	logger.DebugContext(ctx, "Calling hotel service", "method", method, "path", path)

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Kind: KindService, Message: "hotel service unreachable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: KindService, Status: resp.StatusCode, Message: "invalid response from hotel service"}
		}
		return nil
	}

	return c.errorFromResponse(resp)
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	var envelope struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&envelope); err == nil {
		apiErr.Message = envelope.Error
		apiErr.Code = envelope.Code
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		apiErr.Kind = KindAuthorization
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		apiErr.Kind = KindValidation
	default:
		apiErr.Kind = KindService
	}

	return apiErr
}
