package model

import (
	"slices"

	"github.com/limaJavier/staffrota/pkg/timeline"
	"github.com/samber/lo"
)

// RoomAssignment keeps track of which staff members are currently placed in a room
type RoomAssignment struct {
	Room  *Room
	Staff []*Staff
}

func NewRoomAssignment(room *Room) *RoomAssignment {
	return &RoomAssignment{Room: room, Staff: make([]*Staff, 0, room.MaxCapacity)}
}

func (assignment *RoomAssignment) Window() timeline.Period { return assignment.Room.Open }

func (assignment *RoomAssignment) Occupancy() int { return len(assignment.Staff) }

func (assignment *RoomAssignment) MaxCapacity() int { return assignment.Room.MaxCapacity }

// Checks whether the room can take another staff member without exceeding its capacity
func (assignment *RoomAssignment) HasRoom() bool {
	return assignment.Occupancy() < assignment.MaxCapacity()
}

// Overflow is the number of staff placed beyond the room's capacity
func (assignment *RoomAssignment) Overflow() int {
	return max(0, assignment.Occupancy()-assignment.MaxCapacity())
}

// Headroom is the number of staff that could leave without emptying the room
func (assignment *RoomAssignment) Headroom() int {
	return max(0, assignment.Occupancy()-1)
}

func (assignment *RoomAssignment) Add(staff *Staff) {
	assignment.Staff = append(assignment.Staff, staff)
}

// Remove drops the staff member (matched by name) and reports whether it was present
func (assignment *RoomAssignment) Remove(staff *Staff) bool {
	index := assignment.indexOf(staff)
	if index < 0 {
		return false
	}
	assignment.Staff = slices.Delete(assignment.Staff, index, index+1)
	return true
}

func (assignment *RoomAssignment) Contains(staff *Staff) bool {
	return assignment.indexOf(staff) >= 0
}

func (assignment *RoomAssignment) Names() []string {
	return lo.Map(assignment.Staff, func(staff *Staff, _ int) string { return staff.Name })
}

func (assignment *RoomAssignment) indexOf(staff *Staff) int {
	return slices.IndexFunc(assignment.Staff, func(present *Staff) bool { return present.Name == staff.Name })
}

// Copies the occupancy list; staff members themselves are shared
func (assignment *RoomAssignment) clone() *RoomAssignment {
	return &RoomAssignment{Room: assignment.Room, Staff: slices.Clone(assignment.Staff)}
}
