package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func clock(hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func TestNewPeriod(t *testing.T) {
	t.Run("Rejects non increasing bounds", func(t *testing.T) {
		_, err := NewPeriod(clock(10, 0), clock(10, 0))
		assert.ErrorIs(t, err, ErrInvalidPeriod)

		_, err = NewPeriod(clock(11, 0), clock(10, 0))
		var timeErr *TimeError
		require.True(t, errors.As(err, &timeErr))
		assert.True(t, timeErr.Start.Equal(clock(11, 0)))
	})

	t.Run("Equality depends only on bounds", func(t *testing.T) {
		a := MustPeriod(clock(9, 30), clock(14, 30))
		b := MustPeriod(clock(9, 30), clock(14, 30))
		c := MustPeriod(clock(9, 30), clock(15, 0))

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
		assert.Equal(t, "09:30 AM - 02:30 PM", a.String())
	})
}

func TestComposition(t *testing.T) {
	scenarios := [][4]int{
		{9, 30, 14, 30},
		{9, 0, 9, 30},
		{9, 0, 17, 0},
		{12, 30, 21, 0},
	}

	for _, scenario := range scenarios {
		//** Arrange
		period := MustPeriod(clock(scenario[0], scenario[1]), clock(scenario[2], scenario[3]))

		//** Act
		composition := period.Composition()

		//** Assert
		assert.Len(t, composition, int(period.Duration()/Tick)+1)
		assert.True(t, composition[0].Equal(period.Start()))
		assert.True(t, composition[len(composition)-1].Equal(period.End()))
		for i := 1; i < len(composition); i++ {
			assert.Equal(t, Tick, composition[i].Sub(composition[i-1]))
		}
	}
}

func TestSplit(t *testing.T) {
	period := MustPeriod(clock(9, 30), clock(14, 30))

	t.Run("Equal parts", func(t *testing.T) {
		parts, err := period.Split(2)
		require.NoError(t, err)
		require.Len(t, parts, 2)
		assert.True(t, parts[0].Equal(MustPeriod(clock(9, 30), clock(12, 0))))
		assert.True(t, parts[1].Equal(MustPeriod(clock(12, 0), clock(14, 30))))
	})

	t.Run("Last part absorbs remainder", func(t *testing.T) {
		parts, err := period.Split(3)
		require.NoError(t, err)
		require.Len(t, parts, 3)
		assert.True(t, parts[0].Equal(MustPeriod(clock(9, 30), clock(11, 0))))
		assert.True(t, parts[1].Equal(MustPeriod(clock(11, 0), clock(12, 30))))
		assert.True(t, parts[2].Equal(MustPeriod(clock(12, 30), clock(14, 30))))
	})

	t.Run("One part per tick", func(t *testing.T) {
		parts, err := period.Split(10)
		require.NoError(t, err)
		for _, part := range parts {
			assert.Equal(t, Tick, part.Duration())
		}
	})

	t.Run("Too many parts", func(t *testing.T) {
		_, err := period.Split(11)
		assert.ErrorIs(t, err, ErrTooManyParts)
		_, err = period.Split(0)
		assert.ErrorIs(t, err, ErrTooManyParts)
	})
}

func TestRelations(t *testing.T) {
	room := MustPeriod(clock(9, 30), clock(14, 30))

	assert.True(t, Overlap(room, MustPeriod(clock(9, 0), clock(10, 0))))
	assert.False(t, Overlap(room, MustPeriod(clock(14, 30), clock(17, 0))), "touching ends must not overlap")
	assert.True(t, Covers(room, MustPeriod(clock(10, 0), clock(11, 0))))
	assert.False(t, Covers(room, MustPeriod(clock(9, 0), clock(11, 0))))
	assert.True(t, room.ContainsTime(clock(9, 30)))
	assert.False(t, room.ContainsTime(clock(14, 30)))
	assert.True(t, room.ContainsTimeInclusive(clock(14, 30)))
}

func TestAt(t *testing.T) {
	parsedDay, err := ParseDay("2024-01-15")
	require.NoError(t, err)

	instant, err := At(parsedDay, "09:30")
	require.NoError(t, err)
	assert.True(t, instant.Equal(clock(9, 30)))

	_, err = At(parsedDay, "9h30")
	assert.Error(t, err)
	assert.Equal(t, 3, Ticks(61*time.Minute))
}
