package hotel

import "time"

// Room is owned and defined by the remote service. The front end treats it as
// read-only display data; Type is the only field it depends on.
type Room struct {
	ID            int64   `json:"id"`
	Number        string  `json:"number"`
	Type          string  `json:"type"`
	PricePerNight float64 `json:"pricePerNight"`
}

// Booking associates the authenticated user with a room type and a stay
// window. Dates are carried as the service's YYYY-MM-DD strings; the front
// end never parses or validates them.
type Booking struct {
	ID           int64     `json:"id"`
	RoomType     string    `json:"roomType"`
	CheckInDate  string    `json:"checkInDate"`
	CheckOutDate string    `json:"checkOutDate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type BookingRequest struct {
	RoomType     string `json:"roomType"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// ListOptions are encoded onto the bookings listing query string.
type ListOptions struct {
	Limit  int    `url:"limit,omitempty"`
	Offset int    `url:"offset,omitempty"`
	Status string `url:"status,omitempty"`
}

// DistinctRoomTypes reduces the room inventory to its distinct type values,
// preserving first-seen order, for the booking form dropdown.
func DistinctRoomTypes(rooms []Room) []string {
	seen := make(map[string]struct{}, len(rooms))
	types := make([]string, 0, len(rooms))

	for _, room := range rooms {
		if _, ok := seen[room.Type]; ok {
			continue
		}
		seen[room.Type] = struct{}{}
		types = append(types, room.Type)
	}

	return types
}
