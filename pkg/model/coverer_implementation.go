package model

import (
	"slices"
	"time"

	"github.com/limaJavier/staffrota/pkg/timeline"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type covererImplementation struct{}

func (coverer *covererImplementation) Cover(room *Room, staff []*Staff) (Coverage, error) {
	pool := lo.Filter(staff, func(staff *Staff, _ int) bool { return staff.Coincides(room) })

	for {
		if len(pool) == 0 || !enoughCoverage(room, pool) {
			return Coverage{}, nil
		}

		periods, err := room.Open.Split(len(pool))
		if err != nil {
			return Coverage{}, err
		}
		candidates := breakdown(periods, pool)

		usable := lo.Uniq(lo.Flatten(candidates))
		if len(usable) == len(pool) {
			// Nothing left to drop: either every period has a candidate or the partition is contradictory
			if lo.SomeBy(candidates, func(candidates []*Staff) bool { return len(candidates) == 0 }) {
				return Coverage{}, nil
			}
			if !assignable(periods, candidates) {
				return Coverage{}, nil
			}
			return Coverage{Periods: periods, Assignments: enumerate(candidates)}, nil
		}

		// Roster order is kept
		pool = lo.Filter(pool, func(staff *Staff, _ int) bool { return slices.Contains(usable, staff) })
	}
}

func (coverer *covererImplementation) Verify(room *Room, coverage Coverage) bool {
	if coverage.Empty() {
		return true
	}

	//** Periods must tile the open window
	if len(coverage.Periods) == 0 ||
		!coverage.Periods[0].Start().Equal(room.Open.Start()) ||
		!coverage.Periods[len(coverage.Periods)-1].End().Equal(room.Open.End()) {
		return false
	}
	for i := 1; i < len(coverage.Periods); i++ {
		if !coverage.Periods[i-1].End().Equal(coverage.Periods[i].Start()) {
			return false
		}
	}

	//** Every covering assigns one available staff member per period, none repeated
	for _, assignment := range coverage.Assignments {
		if len(assignment) != len(coverage.Periods) {
			return false
		}
		if len(lo.UniqBy(assignment, func(staff *Staff) string { return staff.Name })) != len(assignment) {
			return false
		}
		for j, staff := range assignment {
			if !staff.Available(coverage.Periods[j]) {
				return false
			}
		}
	}
	return true
}

// Checks whether the staff's combined shifts cover every tick of the room's window
func enoughCoverage(room *Room, staff []*Staff) bool {
	covered := make(map[int64]bool)
	for _, member := range staff {
		for _, tick := range member.Shift.Composition() {
			covered[tick.Unix()] = true
		}
	}
	return lo.EveryBy(room.Open.Composition(), func(tick time.Time) bool { return covered[tick.Unix()] })
}

// Lists, for every period, the staff whose shift contains it entirely
func breakdown(periods []timeline.Period, staff []*Staff) [][]*Staff {
	return lo.Map(periods, func(period timeline.Period, _ int) []*Staff {
		return lo.Filter(staff, func(staff *Staff, _ int) bool { return staff.Available(period) })
	})
}

// Checks whether a matching between periods and distinct staff can saturate every period
func assignable(periods []timeline.Period, candidates [][]*Staff) bool {
	staff := lo.Uniq(lo.Flatten(candidates))

	periodsAny := lo.Map(periods, func(_ timeline.Period, index int) any { return index })
	staffAny := lo.Map(staff, func(staff *Staff, _ int) any { return staff })
	neighbors := func(periodAny any, staffAny any) (bool, error) {
		return slices.Contains(candidates[periodAny.(int)], staffAny.(*Staff)), nil
	}

	graph, err := bipartitegraph.NewBipartiteGraph(periodsAny, staffAny, neighbors)
	if err != nil {
		return false
	}
	return len(graph.LargestMatching()) == len(periods)
}

// Enumerates every path picking one unused candidate per period
func enumerate(candidates [][]*Staff) [][]*Staff {
	coverings := make([][]*Staff, 0)
	path := make([]*Staff, 0, len(candidates))
	used := make(map[string]bool)

	var walk func(period int)
	walk = func(period int) {
		if period == len(candidates) {
			coverings = append(coverings, slices.Clone(path))
			return
		}
		for _, staff := range candidates[period] {
			if used[staff.Name] {
				continue
			}
			used[staff.Name] = true
			path = append(path, staff)

			walk(period + 1)

			path = path[:len(path)-1]
			used[staff.Name] = false
		}
	}
	walk(0)

	return coverings
}
