package model

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/limaJavier/staffrota/pkg/timeline"
	"github.com/samber/lo"
)

var ErrNoOpenRoom = errors.New("no open room")

// Overflow records a staff member placed in a room that was already full
type Overflow struct {
	Time  time.Time
	Room  RoomCategory
	Staff string
}

// TimeAssignment is the state of every room at a single tick
type TimeAssignment struct {
	Time      time.Time
	Rooms     []*RoomAssignment
	Overflows []Overflow

	logger *slog.Logger
}

func NewTimeAssignment(t time.Time, rooms []*Room, logger *slog.Logger) *TimeAssignment {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TimeAssignment{
		Time:   t,
		Rooms:  lo.Map(rooms, func(room *Room, _ int) *RoomAssignment { return NewRoomAssignment(room) }),
		logger: logger,
	}
}

// Locate returns the room holding the staff member, nil if it is not placed
func (assignment *TimeAssignment) Locate(staff *Staff) *RoomAssignment {
	room, _ := lo.Find(assignment.Rooms, func(room *RoomAssignment) bool { return room.Contains(staff) })
	return room
}

func (assignment *TimeAssignment) Contains(staff *Staff) bool {
	return assignment.Locate(staff) != nil
}

// Staff returns every placed staff member in room order
func (assignment *TimeAssignment) Staff() []*Staff {
	return lo.FlatMap(assignment.Rooms, func(room *RoomAssignment, _ int) []*Staff { return room.Staff })
}

// Headroom is the number of staff that could be away at this tick without leaving any room empty
func (assignment *TimeAssignment) Headroom() int {
	return lo.SumBy(assignment.Rooms, func(room *RoomAssignment) int { return room.Headroom() })
}

// Insert places the staff member in the least occupied open room with spare capacity.
// When every open room is full the least occupied one takes it anyway and the overflow is recorded
func (assignment *TimeAssignment) Insert(staff *Staff) error {
	open := lo.Filter(assignment.Rooms, func(room *RoomAssignment, _ int) bool { return room.Room.OpenAt(assignment.Time) })
	if len(open) == 0 {
		return fmt.Errorf("%w: cannot place %v at %v", ErrNoOpenRoom, staff, timeline.Clock(assignment.Time))
	}

	slices.SortStableFunc(open, func(a, b *RoomAssignment) int { return cmp.Compare(a.Occupancy(), b.Occupancy()) })
	target, ok := lo.Find(open, func(room *RoomAssignment) bool { return room.HasRoom() })
	if !ok {
		target = open[0]
		assignment.Overflows = append(assignment.Overflows, Overflow{Time: assignment.Time, Room: target.Room.Category, Staff: staff.Name})
		assignment.logger.Warn("room over capacity", "staff", staff.Name, "room", target.Room.Category, "occupancy", target.Occupancy()+1, "capacity", target.MaxCapacity(), "time", timeline.Clock(assignment.Time))
	}

	target.Add(staff)
	staff.MarkAssigned(assignment.Time)
	assignment.logger.Debug("insert", "staff", staff.Name, "room", target.Room.Category, "occupancy", target.Occupancy(), "time", timeline.Clock(assignment.Time))
	return nil
}

// Evict removes the staff member from its room. A room left empty while still open is backfilled
func (assignment *TimeAssignment) Evict(staff *Staff) bool {
	room := assignment.Locate(staff)
	if room == nil {
		return false
	}

	room.Remove(staff)
	staff.ClearAssignment()
	assignment.logger.Debug("leave", "staff", staff.Name, "room", room.Room.Category, "time", timeline.Clock(assignment.Time))

	if room.Occupancy() == 0 && room.Room.OpenAt(assignment.Time) {
		assignment.fillSpot(room)
	}
	return true
}

// Moves the longest resident staff member of any room holding more than one into target
func (assignment *TimeAssignment) fillSpot(target *RoomAssignment) bool {
	var (
		donor  *RoomAssignment
		moving *Staff
	)
	for _, room := range assignment.Rooms {
		if room == target || room.Occupancy() <= 1 {
			continue
		}
		for _, staff := range room.Staff {
			if moving == nil || staff.lastAssigned.Before(moving.lastAssigned) {
				donor, moving = room, staff
			}
		}
	}
	if moving == nil {
		return false
	}

	assignment.move(moving, donor, target)
	return true
}

// Close evacuates every room whose window ended before this tick
func (assignment *TimeAssignment) Close() error {
	for _, room := range assignment.Rooms {
		if !room.Room.ClosedAt(assignment.Time) || room.Occupancy() == 0 {
			continue
		}

		evacuated := slices.Clone(room.Staff)
		room.Staff = room.Staff[:0]
		assignment.logger.Debug("close", "room", room.Room.Category, "evacuated", len(evacuated), "time", timeline.Clock(assignment.Time))
		for _, staff := range evacuated {
			if err := assignment.Insert(staff); err != nil {
				return err
			}
		}
	}
	return nil
}

// Rebalance moves the most recently placed staff out of overflowing rooms while some open room has spare capacity
func (assignment *TimeAssignment) Rebalance() int {
	moves := 0
	for _, room := range assignment.Rooms {
		for room.Overflow() > 0 {
			spare := lo.Filter(assignment.Rooms, func(other *RoomAssignment, _ int) bool {
				return other != room && other.Room.OpenAt(assignment.Time) && other.HasRoom()
			})
			if len(spare) == 0 {
				break
			}
			target := lo.MinBy(spare, func(a, b *RoomAssignment) bool { return a.Occupancy() < b.Occupancy() })
			// Later positions win ties: they joined the room last
			newest := lo.MaxBy(room.Staff, func(a, b *Staff) bool { return !a.lastAssigned.Before(b.lastAssigned) })

			assignment.move(newest, room, target)
			moves++
		}
	}
	return moves
}

type swapCandidate struct {
	room     int
	position int
	staff    *Staff
}

// Lists every placed staff member that stayed in the same room for at least cutoff,
// longest resident first
func (assignment *TimeAssignment) swapCandidates(cutoff time.Duration) []swapCandidate {
	candidates := make([]swapCandidate, 0)
	for roomIndex, room := range assignment.Rooms {
		for position, staff := range room.Staff {
			if staff.Idle(assignment.Time, cutoff) {
				candidates = append(candidates, swapCandidate{room: roomIndex, position: position, staff: staff})
			}
		}
	}
	slices.SortStableFunc(candidates, func(a, b swapCandidate) int {
		return a.staff.lastAssigned.Compare(b.staff.lastAssigned)
	})
	return candidates
}

// Rotate greedily pairs swap candidates sitting in different rooms and exchanges their rooms.
// Returns the number of swaps performed
func (assignment *TimeAssignment) Rotate(cutoff time.Duration) int {
	candidates := assignment.swapCandidates(cutoff)
	updated := func(candidate swapCandidate) bool {
		return candidate.staff.lastAssigned.Equal(assignment.Time)
	}

	swaps := 0
	for i := 0; i < len(candidates)-1; i++ {
		current := candidates[i]
		if updated(current) {
			continue
		}
		for j := i + 1; j < len(candidates); j++ {
			other := candidates[j]
			if !updated(other) && other.room != current.room {
				assignment.swap(current, other)
				swaps++
				break
			}
		}
	}
	return swaps
}

func (assignment *TimeAssignment) swap(first, second swapCandidate) {
	firstRoom, secondRoom := assignment.Rooms[first.room], assignment.Rooms[second.room]
	firstRoom.Staff[first.position], secondRoom.Staff[second.position] = second.staff, first.staff
	first.staff.MarkAssigned(assignment.Time)
	second.staff.MarkAssigned(assignment.Time)
	assignment.logger.Debug("swap",
		"first", first.staff.Name, "from", firstRoom.Room.Category,
		"second", second.staff.Name, "to", secondRoom.Room.Category,
		"time", timeline.Clock(assignment.Time))
}

func (assignment *TimeAssignment) move(staff *Staff, from, to *RoomAssignment) {
	from.Remove(staff)
	to.Add(staff)
	staff.MarkAssigned(assignment.Time)
	assignment.logger.Debug("move", "staff", staff.Name, "from", from.Room.Category, "to", to.Room.Category, "time", timeline.Clock(assignment.Time))
}

// Copies the occupancy layer into the assignment for the next tick
func (assignment *TimeAssignment) snapshot(next time.Time) *TimeAssignment {
	return &TimeAssignment{
		Time:   next,
		Rooms:  lo.Map(assignment.Rooms, func(room *RoomAssignment, _ int) *RoomAssignment { return room.clone() }),
		logger: assignment.logger,
	}
}
