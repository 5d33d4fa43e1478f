package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/limaJavier/staffrota/pkg/model"
	"github.com/limaJavier/staffrota/pkg/timeline"
	"github.com/samber/lo"
)

const (
	MB float32 = 1024 * 1024
	// Largest roster handed to the coverer; enumeration grows factorially with it
	coverLimit = 6
)

var benchmarkDay = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

type EngineType int

const (
	coverer EngineType = iota
	simulator
	breakOptimizer
)

var engineTypes = map[EngineType]string{
	coverer:        "coverer",
	simulator:      "simulator",
	breakOptimizer: "break-optimizer",
}

type TestMetadata struct {
	Seed  uint64
	Staff int
	Rooms int
}

type BenchmarkResult struct {
	Engine   EngineType
	Test     TestMetadata
	Duration int64
	Memory   float32
	// Coverings found, overflows recorded or breaks granted, depending on the engine
	Outcome int
}

func main() {
	outFilePtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file where the results will be written")
	seedsPtr := flag.Int("seeds", 5, "Number of random rosters generated per roster size")
	flag.Parse()

	tests := getTests(*seedsPtr, []int{6, 12, 24, 48})
	results := make([]BenchmarkResult, 0, len(tests)*len(engineTypes))

	for _, test := range tests {
		fmt.Printf("Benchmarking roster of %v staff with seed %v\n", test.Staff, test.Seed)
		results = append(results, benchmark(test)...)
	}

	file, err := os.Create(*outFilePtr)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := toCsv(file, results); err != nil {
		log.Panicf("cannot write CSV file: %v", err)
	}
}

func getTests(seeds int, sizes []int) []TestMetadata {
	return lo.FlatMap(sizes, func(size int, _ int) []TestMetadata {
		return lo.Times(seeds, func(seed int) TestMetadata {
			return TestMetadata{Seed: uint64(seed + 1), Staff: size, Rooms: len(model.DefaultCatalog())}
		})
	})
}

// Builds the default rooms and a roster of random tick-aligned shifts that fit inside the operating day
func generateRoster(test TestMetadata) ([]*model.Room, []*model.Staff) {
	catalog := model.DefaultCatalog()
	rooms := lo.Map([]model.RoomCategory{model.ClubHouse, model.GreatHall, model.SmallCabin}, func(category model.RoomCategory, _ int) *model.Room {
		return lo.Must(catalog.NewRoom(category, benchmarkDay))
	})

	opening := lo.Must(timeline.At(benchmarkDay, "09:30"))
	closing := lo.Must(timeline.At(benchmarkDay, "21:00"))
	random := rand.New(rand.NewPCG(test.Seed, uint64(test.Staff)))

	staff := lo.Times(test.Staff, func(i int) *model.Staff {
		start := opening.Add(time.Duration(random.IntN(13)) * timeline.Tick)
		end := start.Add(time.Duration(6+random.IntN(11)) * timeline.Tick)
		if end.After(closing) {
			end = closing
		}
		category := model.Counselor
		if random.IntN(4) == 0 {
			category = model.FrontDesk
		}
		return lo.Must(model.NewStaff(fmt.Sprintf("staff-%02d", i), category, start, end))
	})
	return rooms, staff
}

func benchmark(test TestMetadata) []BenchmarkResult {
	rooms, staff := generateRoster(test)
	results := make([]BenchmarkResult, 0, len(engineTypes))

	result, coverage := measure(func() (model.Coverage, error) {
		return model.NewCoverer().Cover(rooms[0], lo.Slice(staff, 0, coverLimit))
	})
	result.Outcome = len(coverage.Assignments)
	results = append(results, result)

	result, schedule := measure(func() (*model.Schedule, error) {
		return model.NewSimulator(model.DefaultSimulatorOptions()).Simulate(rooms, staff)
	})
	result.Outcome = len(schedule.Overflows())
	results = append(results, result)

	result, plan := measure(func() (model.BreakPlan, error) {
		return model.NewBreakOptimizer().Optimize(schedule, staff)
	})
	result.Outcome = plan.Granted
	results = append(results, result)

	for i := range results {
		results[i].Engine = EngineType(i)
		results[i].Test = test
	}
	return results
}

// Times a single engine run and the memory it allocated
func measure[T any](engine func() (T, error)) (BenchmarkResult, T) {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	start := time.Now()
	output, err := engine()
	duration := time.Since(start)

	runtime.ReadMemStats(&after)
	if err != nil {
		log.Fatalf("an error occurred during the benchmark: %v", err)
	}

	return BenchmarkResult{
		Duration: duration.Microseconds(),
		Memory:   float32(after.TotalAlloc-before.TotalAlloc) / MB,
	}, output
}

func toCsv(w io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(w)

	header := []string{"Engine", "Seed", "Staff", "Rooms", "Duration(us)", "Memory(MB)", "Outcome"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			engineTypes[result.Engine],
			fmt.Sprintf("%d", result.Test.Seed),
			fmt.Sprintf("%d", result.Test.Staff),
			fmt.Sprintf("%d", result.Test.Rooms),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.3f", result.Memory),
			fmt.Sprintf("%d", result.Outcome),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
