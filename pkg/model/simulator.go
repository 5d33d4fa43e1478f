package model

import (
	"errors"
	"log/slog"
	"time"
)

var (
	ErrDuplicateStaff = errors.New("duplicate staff name")
	ErrNoRooms        = errors.New("at least one room is required")
)

const (
	DefaultTickSize       = 30 * time.Minute
	DefaultRotationCutoff = 90 * time.Minute
)

type SimulatorOptions struct {
	TickSize       time.Duration
	RotationCutoff time.Duration
	Logger         *slog.Logger
}

func DefaultSimulatorOptions() SimulatorOptions {
	return SimulatorOptions{
		TickSize:       DefaultTickSize,
		RotationCutoff: DefaultRotationCutoff,
	}
}

// Simulator walks the operating day tick by tick placing, backfilling and rotating staff across rooms
type Simulator interface {
	// Returns one snapshot per tick from the earliest opening to the latest closing, both included.
	// Fails when a staff member on shift cannot be placed in any open room
	Simulate(rooms []*Room, staff []*Staff) (*Schedule, error)
}

func NewSimulator(options SimulatorOptions) Simulator {
	if options.TickSize <= 0 {
		options.TickSize = DefaultTickSize
	}
	if options.RotationCutoff <= 0 {
		options.RotationCutoff = DefaultRotationCutoff
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	return &simulatorImplementation{
		tickSize:       options.TickSize,
		rotationCutoff: options.RotationCutoff,
		logger:         options.Logger,
	}
}
