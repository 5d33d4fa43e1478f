package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakLength(t *testing.T) {
	long, err := NewShift(clock(9, 0), clock(17, 0))
	require.NoError(t, err)
	short, err := NewShift(clock(9, 0), clock(14, 0))
	require.NoError(t, err)
	justOver, err := NewShift(clock(9, 0), clock(14, 30))
	require.NoError(t, err)

	assert.Equal(t, time.Hour, long.BreakLength())
	assert.Equal(t, 30*time.Minute, short.BreakLength())
	assert.Equal(t, time.Hour, justOver.BreakLength())
}

func TestPossibleBreaks(t *testing.T) {
	t.Run("Every aligned window inside the shift", func(t *testing.T) {
		shift, err := NewShift(clock(12, 0), clock(20, 0))
		require.NoError(t, err)

		breaks := shift.PossibleBreaks()

		assert.Len(t, breaks, 15)
		assert.True(t, breaks[0].Equal(MustPeriod(clock(12, 0), clock(13, 0))))
		assert.True(t, breaks[len(breaks)-1].Equal(MustPeriod(clock(19, 0), clock(20, 0))))
		for _, window := range breaks {
			assert.True(t, Covers(shift, window))
		}
	})

	t.Run("Shift as long as its break", func(t *testing.T) {
		shift, err := NewShift(clock(12, 0), clock(12, 30))
		require.NoError(t, err)

		breaks := shift.PossibleBreaks()

		require.Len(t, breaks, 1)
		assert.True(t, breaks[0].Equal(shift.Period))
	})
}
