package model

import (
	"fmt"
	"strings"

	"github.com/limaJavier/staffrota/pkg/timeline"
	"github.com/samber/lo"
)

// BreakCell is the optimizer state after a number of staff has been processed, seen from a given tick.
// Pending holds, for every break still running at that tick, how many ticks (current one included) it keeps holding capacity
type BreakCell struct {
	Capacity int
	Granted  int
	Pending  []int
}

func (cell BreakCell) String() string {
	pending := lo.Map(cell.Pending, func(offset int, _ int) string { return fmt.Sprint(offset) })
	return fmt.Sprintf("(%d, %d, [%v])", cell.Capacity, cell.Granted, strings.Join(pending, " "))
}

type BreakAssignment struct {
	Staff  *Staff
	Window timeline.Period
}

type BreakPlan struct {
	// Staff in the order the optimizer processed them
	Order []*Staff
	// Table[t][k] is the cell at tick t after processing the first k staff of Order
	Table   [][]BreakCell
	Breaks  []BreakAssignment
	Granted int
}

// Break returns the break window granted to the staff member, if any
func (plan BreakPlan) Break(staff *Staff) (timeline.Period, bool) {
	assignment, ok := lo.Find(plan.Breaks, func(assignment BreakAssignment) bool { return assignment.Staff.Name == staff.Name })
	return assignment.Window, ok
}

// BreakOptimizer grants as many staff as possible a single break without leaving any room empty
type BreakOptimizer interface {
	Optimize(schedule *Schedule, roster []*Staff) (BreakPlan, error)

	// Checks whether every break lies within its shift and no tick lends more staff than its headroom
	Verify(plan BreakPlan, schedule *Schedule) bool
}

func NewBreakOptimizer() BreakOptimizer {
	return &breakOptimizerImplementation{}
}
