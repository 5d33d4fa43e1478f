package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/limaJavier/staffrota/pkg/model"
	"github.com/limaJavier/staffrota/pkg/timeline"
)

type runOptions struct {
	mode      string
	room      string
	view      string
	format    string
	simulator model.SimulatorOptions
}

type roomCoverage struct {
	Room     *model.Room
	Coverage model.Coverage
	// Set when the room could not be partitioned among the roster
	Err error
}

type result struct {
	Roster    []*model.Staff
	Coverages []roomCoverage
	Schedule  *model.Schedule
	Plan      *model.BreakPlan
}

func (options runOptions) runs(modes ...string) bool {
	return options.mode == "all" || slices.Contains(modes, options.mode)
}

// Runs the engines selected by the options over the roster
func run(input model.Input, options runOptions) (result, error) {
	res := result{Roster: input.Staff}

	//** Single-room coverage
	if options.runs("cover") {
		rooms := input.Rooms
		if options.room != "" {
			room, ok := input.Room(model.RoomCategory(options.room))
			if !ok {
				return result{}, fmt.Errorf("%w: %q is not part of the roster", model.ErrUnknownRoom, options.room)
			}
			rooms = []*model.Room{room}
		}

		coverer := model.NewCoverer()
		for _, room := range rooms {
			coverage, err := coverer.Cover(room, input.Staff)
			if errors.Is(err, timeline.ErrTooManyParts) && options.mode == "all" {
				res.Coverages = append(res.Coverages, roomCoverage{Room: room, Err: err})
				continue
			} else if err != nil {
				return result{}, fmt.Errorf("cannot cover room %v: %w", room.Category, err)
			} else if !coverer.Verify(room, coverage) {
				return result{}, fmt.Errorf("coverage of room %v is not valid", room.Category)
			}
			res.Coverages = append(res.Coverages, roomCoverage{Room: room, Coverage: coverage})
		}
	}

	if !options.runs("simulate", "breaks") {
		return res, nil
	}

	//** Multi-room simulation
	schedule, err := model.NewSimulator(options.simulator).Simulate(input.Rooms, input.Staff)
	if err != nil {
		return result{}, err
	}
	res.Schedule = schedule

	//** Breaks
	if options.runs("breaks") {
		optimizer := model.NewBreakOptimizer()
		plan, err := optimizer.Optimize(schedule, input.Staff)
		if err != nil {
			return result{}, err
		} else if !optimizer.Verify(plan, schedule) {
			return result{}, errors.New("break plan is not valid")
		}
		res.Plan = &plan
	}

	return res, nil
}
