package main

import (
	"bytes"
	"testing"

	"github.com/limaJavier/staffrota/pkg/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTests(t *testing.T) {
	tests := getTests(2, []int{6, 12})

	require.Len(t, tests, 4)
	assert.Equal(t, TestMetadata{Seed: 1, Staff: 6, Rooms: 3}, tests[0])
	assert.Equal(t, TestMetadata{Seed: 2, Staff: 12, Rooms: 3}, tests[3])
}

func TestGenerateRoster(t *testing.T) {
	//** Arrange
	test := TestMetadata{Seed: 7, Staff: 24, Rooms: 3}

	//** Act
	rooms, staff := generateRoster(test)
	_, again := generateRoster(test)

	//** Assert
	assert.Len(t, rooms, 3)
	require.Len(t, staff, 24)
	for i, member := range staff {
		assert.True(t, member.Shift.Start().Equal(again[i].Shift.Start()), "rosters must be reproducible")
		assert.False(t, member.Shift.Start().Before(rooms[1].Open.Start()))
		assert.False(t, member.Shift.End().After(rooms[1].Open.End()))
	}
	assert.Empty(t, lo.FindDuplicatesBy(staff, func(member *model.Staff) string { return member.Name }))
}

func TestBenchmark(t *testing.T) {
	results := benchmark(TestMetadata{Seed: 3, Staff: 12, Rooms: 3})

	require.Len(t, results, 3)
	assert.Equal(t, []EngineType{coverer, simulator, breakOptimizer}, lo.Map(results, func(result BenchmarkResult, _ int) EngineType { return result.Engine }))
	assert.GreaterOrEqual(t, results[2].Outcome, 0)
}

func TestToCsv(t *testing.T) {
	//** Arrange
	var output bytes.Buffer
	results := []BenchmarkResult{{
		Engine:   simulator,
		Test:     TestMetadata{Seed: 1, Staff: 6, Rooms: 3},
		Duration: 1500,
		Memory:   0.25,
		Outcome:  2,
	}}

	//** Act
	err := toCsv(&output, results)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "Engine,Seed,Staff,Rooms,Duration(us),Memory(MB),Outcome\nsimulator,1,6,3,1500,0.250,2\n", output.String())
}
