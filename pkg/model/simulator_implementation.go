package model

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/limaJavier/staffrota/pkg/timeline"
	"github.com/samber/lo"
)

type simulatorImplementation struct {
	tickSize       time.Duration
	rotationCutoff time.Duration
	logger         *slog.Logger
}

func (simulator *simulatorImplementation) Simulate(rooms []*Room, staff []*Staff) (*Schedule, error) {
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	if duplicates := lo.FindDuplicatesBy(staff, func(staff *Staff) string { return staff.Name }); len(duplicates) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrDuplicateStaff, duplicates[0].Name)
	}

	for _, member := range staff {
		member.ClearAssignment()
	}

	opening := lo.MinBy(rooms, func(a, b *Room) bool { return a.Open.Start().Before(b.Open.Start()) }).Open.Start()
	closing := lo.MaxBy(rooms, func(a, b *Room) bool { return a.Open.End().After(b.Open.End()) }).Open.End()

	schedule := NewSchedule(simulator.tickSize)
	current := NewTimeAssignment(opening, rooms, simulator.logger)
	for now := opening; !now.After(closing); now = now.Add(simulator.tickSize) {
		if now.After(opening) {
			current = current.snapshot(now)
		}
		if err := simulator.step(current, staff); err != nil {
			return nil, err
		}
		schedule.Add(current)
	}

	simulator.logger.Info("simulation finished",
		"ticks", schedule.Len(),
		"from", timeline.Clock(opening),
		"to", timeline.Clock(closing),
		"overflows", len(schedule.Overflows()))
	return schedule, nil
}

// Applies arrivals, departures, closures, rebalancing and rotation to the tick, in that order
func (simulator *simulatorImplementation) step(current *TimeAssignment, staff []*Staff) error {
	now := current.Time

	//** Arrivals
	for _, member := range staff {
		if member.Shift.ContainsTime(now) && !current.Contains(member) {
			if err := current.Insert(member); err != nil {
				return err
			}
		}
	}

	//** Departures
	for _, member := range current.Staff() {
		if member.Shift.End().Before(now) {
			current.Evict(member)
		}
	}

	//** Closures
	if err := current.Close(); err != nil {
		return err
	}

	//** Overflow resolution
	if moves := current.Rebalance(); moves > 0 {
		simulator.logger.Debug("rebalanced overflowing rooms", "moves", moves, "time", timeline.Clock(now))
	}

	//** Rotation
	if swaps := current.Rotate(simulator.rotationCutoff); swaps > 0 {
		simulator.logger.Debug("rotated staff", "swaps", swaps, "time", timeline.Clock(now))
	}

	return nil
}
