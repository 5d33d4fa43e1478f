package model

import (
	"time"

	"github.com/limaJavier/staffrota/pkg/timeline"
	"github.com/samber/lo"
)

const EmptySlot = "-"

// Schedule is the ordered history of room assignments, one snapshot per tick
type Schedule struct {
	TickSize    time.Duration
	Assignments []*TimeAssignment
}

func NewSchedule(tickSize time.Duration) *Schedule {
	return &Schedule{TickSize: tickSize, Assignments: make([]*TimeAssignment, 0)}
}

func (schedule *Schedule) Add(assignment *TimeAssignment) {
	schedule.Assignments = append(schedule.Assignments, assignment)
}

func (schedule *Schedule) Len() int { return len(schedule.Assignments) }

func (schedule *Schedule) At(index int) *TimeAssignment { return schedule.Assignments[index] }

// Index returns the position of the tick at t
func (schedule *Schedule) Index(t time.Time) (int, bool) {
	if schedule.Len() == 0 || schedule.TickSize <= 0 {
		return 0, false
	}
	offset := t.Sub(schedule.Assignments[0].Time)
	if offset < 0 || offset%schedule.TickSize != 0 {
		return 0, false
	}
	index := int(offset / schedule.TickSize)
	return index, index < schedule.Len()
}

// Headroom returns the extra capacity of the tick at index
func (schedule *Schedule) Headroom(index int) int {
	return schedule.Assignments[index].Headroom()
}

// Occupancy returns the number of staff per room at the tick at index
func (schedule *Schedule) Occupancy(index int) map[RoomCategory]int {
	return lo.SliceToMap(schedule.Assignments[index].Rooms, func(room *RoomAssignment) (RoomCategory, int) {
		return room.Room.Category, room.Occupancy()
	})
}

// Overflows returns every over-capacity insertion that happened during the run
func (schedule *Schedule) Overflows() []Overflow {
	return lo.FlatMap(schedule.Assignments, func(assignment *TimeAssignment, _ int) []Overflow { return assignment.Overflows })
}

// Table renders the schedule with one row per tick and one column group per room, sized to the room's capacity
func (schedule *Schedule) Table() [][]string {
	if schedule.Len() == 0 {
		return nil
	}

	// Widen a room's group when an overflow put more staff than its capacity
	widths := lo.Map(schedule.Assignments[0].Rooms, func(room *RoomAssignment, i int) int {
		widest := lo.MaxBy(schedule.Assignments, func(a, b *TimeAssignment) bool {
			return a.Rooms[i].Occupancy() > b.Rooms[i].Occupancy()
		})
		return max(room.MaxCapacity(), widest.Rooms[i].Occupancy())
	})

	header := []string{""}
	for i, room := range schedule.Assignments[0].Rooms {
		header = append(header, string(room.Room.Category))
		header = append(header, lo.Times(widths[i]-1, func(_ int) string { return "" })...)
	}

	table := [][]string{header}
	for _, assignment := range schedule.Assignments {
		row := []string{timeline.Clock(assignment.Time)}
		for i, room := range assignment.Rooms {
			for slot := range widths[i] {
				if slot < room.Occupancy() {
					row = append(row, room.Staff[slot].Name)
				} else {
					row = append(row, EmptySlot)
				}
			}
		}
		table = append(table, row)
	}
	return table
}

// StaffTable renders one row per tick and one column per staff member holding the room it is placed in
func (schedule *Schedule) StaffTable(roster []*Staff) [][]string {
	header := append([]string{""}, lo.Map(roster, func(staff *Staff, _ int) string { return staff.Name })...)

	table := [][]string{header}
	for _, assignment := range schedule.Assignments {
		row := []string{timeline.Clock(assignment.Time)}
		for _, staff := range roster {
			if room := assignment.Locate(staff); room != nil {
				row = append(row, string(room.Room.Category))
			} else {
				row = append(row, EmptySlot)
			}
		}
		table = append(table, row)
	}
	return table
}
