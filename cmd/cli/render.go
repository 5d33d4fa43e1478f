package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/limaJavier/staffrota/pkg/model"
	"github.com/limaJavier/staffrota/pkg/timeline"
	"github.com/samber/lo"
)

type coverageJson struct {
	Room      string     `json:"room"`
	Periods   []string   `json:"periods"`
	Coverings [][]string `json:"coverings"`
	Error     string     `json:"error,omitempty"`
}

type tickJson struct {
	Time  string              `json:"time"`
	Rooms map[string][]string `json:"rooms"`
}

type overflowJson struct {
	Time  string `json:"time"`
	Room  string `json:"room"`
	Staff string `json:"staff"`
}

type scheduleJson struct {
	Ticks     []tickJson     `json:"ticks"`
	Overflows []overflowJson `json:"overflows"`
}

type breakJson struct {
	Staff string `json:"staff"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type breaksJson struct {
	Granted int         `json:"granted"`
	Breaks  []breakJson `json:"breaks"`
}

type reportJson struct {
	Coverages []coverageJson `json:"coverages,omitempty"`
	Schedule  *scheduleJson  `json:"schedule,omitempty"`
	Breaks    *breaksJson    `json:"breaks,omitempty"`
}

func writeJson(w io.Writer, res result) error {
	report := reportJson{
		Coverages: lo.Map(res.Coverages, func(coverage roomCoverage, _ int) coverageJson {
			output := coverageJson{
				Room:    string(coverage.Room.Category),
				Periods: lo.Map(coverage.Coverage.Periods, func(period timeline.Period, _ int) string { return period.String() }),
				Coverings: lo.Map(coverage.Coverage.Assignments, func(covering []*model.Staff, _ int) []string {
					return staffNames(covering)
				}),
			}
			if coverage.Err != nil {
				output.Error = coverage.Err.Error()
			}
			return output
		}),
	}

	if res.Schedule != nil {
		report.Schedule = &scheduleJson{
			Ticks: lo.Map(res.Schedule.Assignments, func(assignment *model.TimeAssignment, _ int) tickJson {
				return tickJson{
					Time: timeline.Clock(assignment.Time),
					Rooms: lo.SliceToMap(assignment.Rooms, func(room *model.RoomAssignment) (string, []string) {
						return string(room.Room.Category), room.Names()
					}),
				}
			}),
			Overflows: lo.Map(res.Schedule.Overflows(), func(overflow model.Overflow, _ int) overflowJson {
				return overflowJson{Time: timeline.Clock(overflow.Time), Room: string(overflow.Room), Staff: overflow.Staff}
			}),
		}
	}

	if res.Plan != nil {
		report.Breaks = &breaksJson{
			Granted: res.Plan.Granted,
			Breaks: lo.Map(res.Plan.Breaks, func(assignment model.BreakAssignment, _ int) breakJson {
				return breakJson{
					Staff: assignment.Staff.Name,
					Start: timeline.Clock(assignment.Window.Start()),
					End:   timeline.Clock(assignment.Window.End()),
				}
			}),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func writeTables(w io.Writer, res result, view string) error {
	sections := make([]func() error, 0, 3)

	for _, coverage := range res.Coverages {
		sections = append(sections, func() error {
			room := coverage.Room.Category
			switch {
			case coverage.Err != nil:
				_, err := fmt.Fprintf(w, "Room %v: %v\n", room, coverage.Err)
				return err
			case coverage.Coverage.Empty():
				_, err := fmt.Fprintf(w, "Room %v cannot be covered by the roster\n", room)
				return err
			}

			if _, err := fmt.Fprintf(w, "Room %v (%d coverings)\n", room, len(coverage.Coverage.Assignments)); err != nil {
				return err
			}
			header := lo.Map(coverage.Coverage.Periods, func(period timeline.Period, _ int) string { return period.String() })
			rows := lo.Map(coverage.Coverage.Assignments, func(covering []*model.Staff, _ int) []string { return staffNames(covering) })
			return writeTable(w, append([][]string{header}, rows...))
		})
	}

	if res.Schedule != nil {
		sections = append(sections, func() error {
			if _, err := fmt.Fprintln(w, "Schedule"); err != nil {
				return err
			}
			table := res.Schedule.Table()
			if view == "staff" {
				table = res.Schedule.StaffTable(res.Roster)
			}
			if err := writeTable(w, table); err != nil {
				return err
			}
			for _, overflow := range res.Schedule.Overflows() {
				if _, err := fmt.Fprintf(w, "overflow: %v placed in full room %v at %v\n", overflow.Staff, overflow.Room, timeline.Clock(overflow.Time)); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if res.Plan != nil {
		sections = append(sections, func() error {
			if _, err := fmt.Fprintf(w, "Breaks (%d of %d granted)\n", res.Plan.Granted, len(res.Roster)); err != nil {
				return err
			}
			rows := [][]string{{"", "break"}}
			for _, staff := range res.Roster {
				window := model.EmptySlot
				if period, ok := res.Plan.Break(staff); ok {
					window = period.String()
				}
				rows = append(rows, []string{staff.Name, window})
			}
			return writeTable(w, rows)
		})
	}

	for i, section := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := section(); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, table [][]string) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range table {
		if _, err := fmt.Fprintln(writer, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func staffNames(staff []*model.Staff) []string {
	return lo.Map(staff, func(member *model.Staff, _ int) string { return member.Name })
}
