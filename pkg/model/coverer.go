package model

import "github.com/limaJavier/staffrota/pkg/timeline"

// Coverage is the partition of a room's open window together with every valid covering of it.
// Assignments[i][j] is the staff member covering Periods[j] in the i-th covering
type Coverage struct {
	Periods     []timeline.Period
	Assignments [][]*Staff
}

// Empty reports whether no valid covering exists
func (coverage Coverage) Empty() bool {
	return len(coverage.Assignments) == 0
}

// Coverer finds every way of covering a single room with non-repeating staff
type Coverer interface {
	// Returns an empty coverage when the staff cannot cover the room, an error only for invalid input
	Cover(room *Room, staff []*Staff) (Coverage, error)

	// Checks whether every covering is contiguous, complete, available and free of repeated staff
	Verify(room *Room, coverage Coverage) bool
}

func NewCoverer() Coverer {
	return &covererImplementation{}
}
