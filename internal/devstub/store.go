package devstub

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/hotelbook/hotel-web/internal/hotel"
)

// Store is the stub's in-memory state: seeded users and rooms, plus the
// bookings created against it. Everything is lost on restart, which is the
// point of a development stub.
type Store struct {
	mu       sync.RWMutex
	users    map[string]string // username -> password hash
	rooms    []hotel.Room
	bookings map[string][]hotel.Booking // username -> bookings
	nextID   int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]string),
		bookings: make(map[string][]hotel.Booking),
		nextID:   1,
	}
}

func (s *Store) AddUser(username, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.users[username] = hash
	s.mu.Unlock()
	return nil
}

// Authenticate reports whether the credentials match a seeded user.
func (s *Store) Authenticate(username, password string) bool {
	username = strings.ToLower(strings.TrimSpace(username))

	s.mu.RLock()
	hash, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, hash)
	return err == nil && match
}

func (s *Store) SeedRooms(rooms []hotel.Room) {
	s.mu.Lock()
	s.rooms = append(s.rooms, rooms...)
	s.mu.Unlock()
}

func (s *Store) Rooms() []hotel.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]hotel.Room, len(s.rooms))
	copy(rooms, s.rooms)
	return rooms
}

func (s *Store) HasRoomType(roomType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, room := range s.rooms {
		if room.Type == roomType {
			return true
		}
	}
	return false
}

func (s *Store) AddBooking(username string, req hotel.BookingRequest) hotel.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking := hotel.Booking{
		ID:           s.nextID,
		RoomType:     req.RoomType,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Status:       "confirmed",
		CreatedAt:    time.Now(),
	}
	s.nextID++
	s.bookings[username] = append(s.bookings[username], booking)

	return booking
}

// BookingsFor lists a user's bookings with the same limit/offset/status
// semantics the production service exposes.
func (s *Store) BookingsFor(username string, limit, offset int, status string) []hotel.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.bookings[username]
	result := make([]hotel.Booking, 0, len(all))
	for _, booking := range all {
		if status != "" && booking.Status != status {
			continue
		}
		result = append(result, booking)
	}

	if offset >= len(result) {
		return []hotel.Booking{}
	}
	end := offset + limit
	if limit <= 0 || end > len(result) {
		end = len(result)
	}

	return result[offset:end]
}
