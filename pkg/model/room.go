package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/limaJavier/staffrota/pkg/timeline"
)

var ErrUnknownRoom = errors.New("unknown room category")

type RoomCategory string

const (
	ClubHouse  RoomCategory = "CH"
	GreatHall  RoomCategory = "GH"
	SmallCabin RoomCategory = "SC"
)

// RoomSpec describes the daily opening hours ("15:04") and capacity of a room category
type RoomSpec struct {
	Open     string
	Close    string
	Capacity int
}

// Catalog maps every room category to its opening hours and capacity
type Catalog map[RoomCategory]RoomSpec

func DefaultCatalog() Catalog {
	return Catalog{
		ClubHouse:  {Open: "09:30", Close: "14:30", Capacity: 2},
		GreatHall:  {Open: "09:30", Close: "21:00", Capacity: 3},
		SmallCabin: {Open: "09:30", Close: "14:30", Capacity: 1},
	}
}

// With returns a copy of the catalog where overrides replace or extend the existing categories
func (catalog Catalog) With(overrides Catalog) Catalog {
	merged := make(Catalog, len(catalog)+len(overrides))
	for category, spec := range catalog {
		merged[category] = spec
	}
	for category, spec := range overrides {
		merged[category] = spec
	}
	return merged
}

// NewRoom builds the room of the given category for the operating day
func (catalog Catalog) NewRoom(category RoomCategory, day time.Time) (*Room, error) {
	spec, ok := catalog[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoom, category)
	}
	if spec.Capacity < 1 {
		return nil, fmt.Errorf("room %q must hold at least one staff member: %v", category, spec.Capacity)
	}

	open, err := timeline.At(day, spec.Open)
	if err != nil {
		return nil, err
	}
	closing, err := timeline.At(day, spec.Close)
	if err != nil {
		return nil, err
	}
	window, err := timeline.NewPeriod(open, closing)
	if err != nil {
		return nil, fmt.Errorf("invalid opening hours for room %q: %w", category, err)
	}

	return &Room{Category: category, Open: window, MaxCapacity: spec.Capacity}, nil
}

// Room is immutable after construction
type Room struct {
	Category    RoomCategory
	Open        timeline.Period
	MaxCapacity int
}

func NewRoom(category RoomCategory, day time.Time) (*Room, error) {
	return DefaultCatalog().NewRoom(category, day)
}

func (room *Room) Window() timeline.Period { return room.Open }

func (room *Room) String() string { return string(room.Category) }

// Checks whether the room is open at t. A room still counts as open at its closing instant
func (room *Room) OpenAt(t time.Time) bool {
	return room.Open.ContainsTimeInclusive(t)
}

// Checks whether the room has already closed at t
func (room *Room) ClosedAt(t time.Time) bool {
	return room.Open.End().Before(t)
}
