package model

import (
	"fmt"
	"time"

	"github.com/limaJavier/staffrota/pkg/timeline"
)

type StaffCategory string

const (
	Counselor StaffCategory = "counselor"
	FrontDesk StaffCategory = "front_desk"
)

// Staff is a person working a single shift. Name is the identity key
type Staff struct {
	Name     string
	Category StaffCategory
	Shift    timeline.Shift

	lastAssigned time.Time
	assigned     bool
}

func NewStaff(name string, category StaffCategory, start, end time.Time) (*Staff, error) {
	shift, err := timeline.NewShift(start, end)
	if err != nil {
		return nil, fmt.Errorf("invalid shift for staff %q: %w", name, err)
	}
	return &Staff{Name: name, Category: category, Shift: shift}, nil
}

func (staff *Staff) Window() timeline.Period { return staff.Shift.Period }

func (staff *Staff) String() string { return staff.Name }

// LastAssigned returns the instant the staff member last moved into a room, false when not in any room
func (staff *Staff) LastAssigned() (time.Time, bool) {
	return staff.lastAssigned, staff.assigned
}

func (staff *Staff) MarkAssigned(t time.Time) {
	staff.lastAssigned = t
	staff.assigned = true
}

func (staff *Staff) ClearAssignment() {
	staff.lastAssigned = time.Time{}
	staff.assigned = false
}

// Checks whether the staff member's shift strictly overlaps the other window
func (staff *Staff) Coincides(other timeline.Windowed) bool {
	return timeline.Overlap(staff, other)
}

// Checks whether the staff member's shift contains the entire other window
func (staff *Staff) Available(other timeline.Windowed) bool {
	return timeline.Covers(staff, other)
}

// Checks whether the staff member has been in the same room for at least cutoff at time now
func (staff *Staff) Idle(now time.Time, cutoff time.Duration) bool {
	return staff.assigned && now.Sub(staff.lastAssigned) >= cutoff
}
