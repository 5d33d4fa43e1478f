package model

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/limaJavier/staffrota/pkg/timeline"
	"github.com/samber/lo"
)

type breakChoice int

const (
	origin breakChoice = iota
	carried
	skipped
	granted
)

type breakNode struct {
	cell   BreakCell
	choice breakChoice
}

type breakOptimizerImplementation struct{}

func (optimizer *breakOptimizerImplementation) Optimize(schedule *Schedule, roster []*Staff) (BreakPlan, error) {
	if schedule == nil || schedule.Len() == 0 {
		return BreakPlan{}, nil
	}
	if duplicates := lo.FindDuplicatesBy(roster, func(staff *Staff) string { return staff.Name }); len(duplicates) > 0 {
		return BreakPlan{}, fmt.Errorf("%w: %v", ErrDuplicateStaff, duplicates[0].Name)
	}

	//** Extract per-tick headroom
	ticks := schedule.Len()
	capacity := lo.Times(ticks, schedule.Headroom)

	//** Order staff by shift end, then shift start
	order := slices.Clone(roster)
	slices.SortStableFunc(order, func(a, b *Staff) int {
		return cmp.Or(
			a.Shift.End().Compare(b.Shift.End()),
			a.Shift.Start().Compare(b.Shift.Start()),
		)
	})

	//** Fill table
	table := make([][]breakNode, len(order)+1)
	table[0] = make([]breakNode, ticks)
	table[0][0] = breakNode{cell: BreakCell{Capacity: capacity[0]}, choice: origin}
	for t := 1; t < ticks; t++ {
		table[0][t] = breakNode{cell: advance(table[0][t-1].cell, capacity[t]), choice: carried}
	}

	for k := 1; k <= len(order); k++ {
		staff := order[k-1]
		table[k] = make([]breakNode, ticks)

		for t := range ticks {
			var best breakNode
			found := false
			consider := func(cell BreakCell, choice breakChoice) {
				if !found || better(cell, best.cell) {
					best, found = breakNode{cell: cell, choice: choice}, true
				}
			}

			// Keep the decisions taken so far and move the cursor forward, consuming pending offsets
			if t > 0 {
				consider(advance(table[k][t-1].cell, capacity[t]), carried)
			}
			// Leave this staff member without a break
			consider(table[k-1][t].cell, skipped)
			// Start this staff member's break at the cursor
			if cell, ok := optimizer.grant(table[k-1][t].cell, schedule, capacity, t, staff); ok {
				consider(cell, granted)
			}

			table[k][t] = best
		}
	}

	return optimizer.backtrace(table, order, schedule), nil
}

func (optimizer *breakOptimizerImplementation) Verify(plan BreakPlan, schedule *Schedule) bool {
	if schedule == nil || schedule.Len() == 0 {
		return len(plan.Breaks) == 0
	}
	if len(plan.Breaks) != plan.Granted {
		return false
	}
	if len(lo.UniqBy(plan.Breaks, func(assignment BreakAssignment) string { return assignment.Staff.Name })) != len(plan.Breaks) {
		return false
	}

	usage := make([]int, schedule.Len())
	for _, assignment := range plan.Breaks {
		shift := assignment.Staff.Shift
		if assignment.Window.Duration() != shift.BreakLength() || !timeline.Covers(shift, assignment.Window) {
			return false
		}
		start, ok := schedule.Index(assignment.Window.Start())
		if !ok {
			return false
		}
		for offset := range breakTicks(shift, schedule.TickSize) {
			if start+offset >= schedule.Len() {
				return false
			}
			usage[start+offset]++
		}
	}

	for t, used := range usage {
		if used > schedule.Headroom(t) {
			return false
		}
	}
	return true
}

// Starts the staff member's break at tick t when the shift allows it and every tick of the break still has capacity
func (optimizer *breakOptimizerImplementation) grant(cell BreakCell, schedule *Schedule, capacity []int, t int, staff *Staff) (BreakCell, bool) {
	length := breakTicks(staff.Shift, schedule.TickSize)
	start := schedule.At(t).Time
	end := start.Add(staff.Shift.BreakLength())

	if start.Before(staff.Shift.Start()) || end.After(staff.Shift.End()) || t+length > len(capacity) {
		return BreakCell{}, false
	}
	if cell.Capacity < 1 {
		return BreakCell{}, false
	}
	for offset := 1; offset < length; offset++ {
		holding := lo.CountBy(cell.Pending, func(pending int) bool { return pending > offset })
		if capacity[t+offset]-holding < 1 {
			return BreakCell{}, false
		}
	}

	return BreakCell{
		Capacity: cell.Capacity - 1,
		Granted:  cell.Granted + 1,
		Pending:  append(slices.Clone(cell.Pending), length),
	}, true
}

func (optimizer *breakOptimizerImplementation) backtrace(table [][]breakNode, order []*Staff, schedule *Schedule) BreakPlan {
	staffCount, ticks := len(table)-1, len(table[0])

	plan := BreakPlan{Order: order, Table: make([][]BreakCell, ticks)}
	for t := range ticks {
		plan.Table[t] = lo.Map(table, func(row []breakNode, _ int) BreakCell { return row[t].cell })
	}

	// Earliest tick holding the largest number of granted breaks
	last := 0
	for t := 1; t < ticks; t++ {
		if table[staffCount][t].cell.Granted > table[staffCount][last].cell.Granted {
			last = t
		}
	}
	plan.Granted = table[staffCount][last].cell.Granted

	breaks := make([]BreakAssignment, 0, plan.Granted)
	for k, t := staffCount, last; k > 0; {
		switch table[k][t].choice {
		case carried:
			t--
		case granted:
			staff := order[k-1]
			start := schedule.At(t).Time
			breaks = append(breaks, BreakAssignment{
				Staff:  staff,
				Window: timeline.MustPeriod(start, start.Add(staff.Shift.BreakLength())),
			})
			k--
		default:
			k--
		}
	}
	slices.Reverse(breaks)
	plan.Breaks = breaks

	return plan
}

// Moves a cell one tick forward: finished breaks release their capacity
func advance(cell BreakCell, capacity int) BreakCell {
	pending := lo.FilterMap(cell.Pending, func(offset int, _ int) (int, bool) { return offset - 1, offset > 1 })
	return BreakCell{
		Capacity: capacity - len(pending),
		Granted:  cell.Granted,
		Pending:  pending,
	}
}

// More breaks first, then more remaining capacity, then shorter outstanding commitments
func better(candidate, current BreakCell) bool {
	if candidate.Granted != current.Granted {
		return candidate.Granted > current.Granted
	}
	if candidate.Capacity != current.Capacity {
		return candidate.Capacity > current.Capacity
	}
	return lo.Sum(candidate.Pending) < lo.Sum(current.Pending)
}

// Number of ticks a break of the shift spans
func breakTicks(shift timeline.Shift, tickSize time.Duration) int {
	length := shift.BreakLength()
	ticks := int(length / tickSize)
	if length%tickSize > 0 {
		ticks++
	}
	return ticks
}
