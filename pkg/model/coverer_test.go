package model

import (
	"fmt"
	"testing"

	"github.com/limaJavier/staffrota/pkg/timeline"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(staff []*Staff) []string {
	return lo.Map(staff, func(staff *Staff, _ int) string { return staff.Name })
}

func TestCover(t *testing.T) {
	coverer := NewCoverer()
	room := newTestRoom(t, DefaultCatalog(), SmallCabin)

	t.Run("Two halves", func(t *testing.T) {
		//** Arrange
		staff := []*Staff{
			newTestStaff(t, "ana", 9, 30, 12, 0),
			newTestStaff(t, "ben", 12, 0, 14, 30),
		}

		//** Act
		coverage, err := coverer.Cover(room, staff)

		//** Assert
		require.NoError(t, err)
		require.Len(t, coverage.Periods, 2)
		require.Len(t, coverage.Assignments, 1)
		assert.Equal(t, []string{"ana", "ben"}, names(coverage.Assignments[0]))
		assert.True(t, coverer.Verify(room, coverage))
	})

	t.Run("Staff overlapping the window share it equally", func(t *testing.T) {
		//** Arrange
		staff := []*Staff{
			newTestStaff(t, "ana", 9, 0, 17, 0),
			newTestStaff(t, "ben", 9, 0, 15, 0),
			newTestStaff(t, "cal", 10, 0, 15, 0),
			newTestStaff(t, "dee", 15, 0, 21, 0),
		}

		//** Act
		coverage, err := coverer.Cover(room, staff)

		//** Assert
		require.NoError(t, err)
		require.Len(t, coverage.Periods, 3)
		assert.True(t, coverage.Periods[0].Equal(timeline.MustPeriod(at(9, 30), at(11, 0))))
		assert.True(t, coverage.Periods[1].Equal(timeline.MustPeriod(at(11, 0), at(12, 30))))
		assert.True(t, coverage.Periods[2].Equal(timeline.MustPeriod(at(12, 30), at(14, 30))))

		coverings := lo.Map(coverage.Assignments, func(assignment []*Staff, _ int) string { return fmt.Sprint(names(assignment)) })
		assert.ElementsMatch(t, []string{
			"[ana ben cal]",
			"[ana cal ben]",
			"[ben ana cal]",
			"[ben cal ana]",
		}, coverings)
		assert.True(t, coverer.Verify(room, coverage))
	})

	t.Run("Insufficient coverage", func(t *testing.T) {
		staff := []*Staff{
			newTestStaff(t, "ana", 9, 30, 11, 0),
			newTestStaff(t, "ben", 12, 0, 14, 30),
		}

		coverage, err := coverer.Cover(room, staff)

		require.NoError(t, err)
		assert.True(t, coverage.Empty())
	})

	t.Run("Nobody overlaps the window", func(t *testing.T) {
		coverage, err := coverer.Cover(room, []*Staff{newTestStaff(t, "ana", 14, 30, 21, 0)})

		require.NoError(t, err)
		assert.True(t, coverage.Empty())
	})

	t.Run("Unusable staff are dropped", func(t *testing.T) {
		//** Arrange
		staff := []*Staff{
			newTestStaff(t, "ana", 9, 30, 14, 30),
			newTestStaff(t, "ben", 14, 0, 17, 0),
		}

		//** Act
		coverage, err := coverer.Cover(room, staff)

		//** Assert
		require.NoError(t, err)
		require.Len(t, coverage.Periods, 1)
		assert.True(t, coverage.Periods[0].Equal(room.Open))
		require.Len(t, coverage.Assignments, 1)
		assert.Equal(t, []string{"ana"}, names(coverage.Assignments[0]))
	})

	t.Run("Contradictory partition", func(t *testing.T) {
		staff := []*Staff{
			newTestStaff(t, "ana", 9, 30, 12, 0),
			newTestStaff(t, "ben", 12, 0, 14, 30),
			newTestStaff(t, "cal", 9, 30, 11, 0),
		}

		coverage, err := coverer.Cover(room, staff)

		require.NoError(t, err)
		assert.True(t, coverage.Empty())
	})

	t.Run("No matching saturates every period", func(t *testing.T) {
		staff := []*Staff{
			newTestStaff(t, "ana", 9, 30, 14, 30),
			newTestStaff(t, "ben", 9, 30, 12, 0),
			newTestStaff(t, "cal", 9, 30, 12, 0),
		}

		coverage, err := coverer.Cover(room, staff)

		require.NoError(t, err)
		assert.True(t, coverage.Empty())
	})

	t.Run("More staff than ticks", func(t *testing.T) {
		staff := lo.Times(11, func(i int) *Staff {
			return newTestStaff(t, fmt.Sprintf("staff%d", i), 9, 0, 17, 0)
		})

		_, err := coverer.Cover(room, staff)

		assert.ErrorIs(t, err, timeline.ErrTooManyParts)
	})
}

func TestCoverNeverRepeatsStaff(t *testing.T) {
	coverer := NewCoverer()
	room := newTestRoom(t, DefaultCatalog(), GreatHall)
	staff := []*Staff{
		newTestStaff(t, "ana", 9, 0, 21, 0),
		newTestStaff(t, "ben", 9, 30, 17, 0),
		newTestStaff(t, "cal", 12, 0, 21, 0),
		newTestStaff(t, "dee", 9, 30, 21, 0),
	}

	coverage, err := coverer.Cover(room, staff)

	require.NoError(t, err)
	require.False(t, coverage.Empty())
	for _, assignment := range coverage.Assignments {
		assert.Len(t, lo.Uniq(names(assignment)), len(coverage.Periods))
	}
	assert.True(t, coverer.Verify(room, coverage))
}

func TestVerifyCoverage(t *testing.T) {
	coverer := NewCoverer()
	room := newTestRoom(t, DefaultCatalog(), SmallCabin)
	ana, ben := newTestStaff(t, "ana", 9, 30, 12, 0), newTestStaff(t, "ben", 12, 0, 14, 30)
	periods, err := room.Open.Split(2)
	require.NoError(t, err)

	assert.True(t, coverer.Verify(room, Coverage{Periods: periods, Assignments: [][]*Staff{{ana, ben}}}))
	assert.False(t, coverer.Verify(room, Coverage{Periods: periods, Assignments: [][]*Staff{{ben, ana}}}))
	assert.False(t, coverer.Verify(room, Coverage{Periods: periods, Assignments: [][]*Staff{{ana, ana}}}))
	assert.False(t, coverer.Verify(room, Coverage{Periods: periods[:1], Assignments: [][]*Staff{{ana}}}))
}
