package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(testDay.Year(), testDay.Month(), testDay.Day(), hour, minute, 0, 0, time.UTC)
}

func newTestStaff(t *testing.T, name string, startHour, startMinute, endHour, endMinute int) *Staff {
	t.Helper()
	staff, err := NewStaff(name, Counselor, at(startHour, startMinute), at(endHour, endMinute))
	require.NoError(t, err)
	return staff
}

func newTestRoom(t *testing.T, catalog Catalog, category RoomCategory) *Room {
	t.Helper()
	room, err := catalog.NewRoom(category, testDay)
	require.NoError(t, err)
	return room
}

// Builds a schedule where every tick holds the same occupants
func steadySchedule(t *testing.T, from time.Time, ticks int, rooms []*Room, occupants map[RoomCategory][]*Staff) *Schedule {
	t.Helper()
	schedule := NewSchedule(DefaultTickSize)
	for i := range ticks {
		assignment := NewTimeAssignment(from.Add(time.Duration(i)*DefaultTickSize), rooms, nil)
		for _, room := range assignment.Rooms {
			for _, staff := range occupants[room.Room.Category] {
				room.Add(staff)
			}
		}
		schedule.Add(assignment)
	}
	return schedule
}
