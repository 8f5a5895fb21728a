package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"paint-estimator/models"
)

// RoomService is the ordered, in-memory room list of one session.
// Insertion order is display and export order.
type RoomService struct {
	mu     sync.RWMutex
	rooms  []models.Room
	logger *zap.Logger
}

// NewRoomService Constructor
func NewRoomService(logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{logger: logger}
}

// NewRoom validates input and builds a Room with its derived areas.
func NewRoom(in models.RoomInput) (models.Room, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Room{}, fmt.Errorf("room name cannot be empty: %w", ErrInvalidInput)
	}
	for _, d := range []float64{in.Length, in.Width, in.Height} {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return models.Room{}, fmt.Errorf("dimensions must be finite numbers: %w", ErrInvalidInput)
		}
		if d < 0 || d > models.MaxDimension {
			return models.Room{}, fmt.Errorf("dimensions must be between 0 and %d ft: %w", models.MaxDimension, ErrInvalidInput)
		}
	}
	if in.Doors < 0 || in.Windows < 0 || in.Doors > models.MaxOpenings || in.Windows > models.MaxOpenings {
		return models.Room{}, fmt.Errorf("door and window counts must be between 0 and %d: %w", models.MaxOpenings, ErrInvalidInput)
	}
	if in.Coats < 1 || in.Coats > models.MaxCoats {
		return models.Room{}, fmt.Errorf("coats must be between 1 and %d: %w", models.MaxCoats, ErrInvalidInput)
	}

	return models.Room{
		ID:          uuid.NewString(),
		Name:        name,
		Length:      in.Length,
		Width:       in.Width,
		Height:      in.Height,
		Doors:       in.Doors,
		Windows:     in.Windows,
		Coats:       in.Coats,
		RoomMetrics: ComputeMetrics(in.Length, in.Width, in.Height, in.Doors, in.Windows, in.Coats),
	}, nil
}

// Create validates the input, appends the resulting room and returns it.
func (s *RoomService) Create(in models.RoomInput) (models.Room, error) {
	room, err := NewRoom(in)
	if err != nil {
		s.logger.Debug("room rejected", zap.String("name", in.Name), zap.Error(err))
		return models.Room{}, err
	}
	s.Add(room)
	return room, nil
}

// Add appends a room to the end of the list.
func (s *RoomService) Add(room models.Room) {
	s.mu.Lock()
	s.rooms = append(s.rooms, room)
	count := len(s.rooms)
	s.mu.Unlock()

	s.logger.Info("room added",
		zap.String("room_id", room.ID),
		zap.String("name", room.Name),
		zap.Float64("total_area_with_coats", room.TotalAreaWithCoats),
		zap.Int("count", count),
	)
}

// List returns a copy of the rooms in insertion order.
func (s *RoomService) List() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

func (s *RoomService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

func (s *RoomService) IsEmpty() bool {
	return s.Count() == 0
}

// DeleteAt removes and returns the room at 1-based position.
func (s *RoomService) DeleteAt(position int) (models.Room, error) {
	s.mu.Lock()
	if position < 1 || position > len(s.rooms) {
		count := len(s.rooms)
		s.mu.Unlock()
		return models.Room{}, &PositionError{Position: position, Count: count}
	}
	room := s.removeLocked(position - 1)
	s.mu.Unlock()

	s.logger.Info("room deleted", zap.String("room_id", room.ID), zap.Int("position", position))
	return room, nil
}

// DeleteAtText parses a user-typed position and deletes it.
func (s *RoomService) DeleteAtText(raw string) (models.Room, error) {
	position, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return models.Room{}, fmt.Errorf("position %q: %w", raw, ErrInvalidInput)
	}
	return s.DeleteAt(position)
}

// DeleteByID removes the room bound to id, as selected from the form page.
func (s *RoomService) DeleteByID(id string) (models.Room, error) {
	s.mu.Lock()
	for i, r := range s.rooms {
		if r.ID == id {
			room := s.removeLocked(i)
			s.mu.Unlock()
			s.logger.Info("room deleted", zap.String("room_id", id), zap.Int("position", i+1))
			return room, nil
		}
	}
	s.mu.Unlock()
	return models.Room{}, fmt.Errorf("room %s: %w", id, ErrOutOfRange)
}

func (s *RoomService) removeLocked(i int) models.Room {
	room := s.rooms[i]
	s.rooms = append(s.rooms[:i:i], s.rooms[i+1:]...)
	return room
}
