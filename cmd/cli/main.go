package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/limaJavier/staffrota/internal/config"
	"github.com/limaJavier/staffrota/pkg/model"
)

var (
	validModes   = []string{"cover", "simulate", "breaks", "all"}
	validViews   = []string{"rooms", "staff"}
	validFormats = []string{"table", "json"}
)

func main() {
	// An absent .env file is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("cannot load .env file: %v", err)
	}

	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the roster file (JSON or YAML)")
	modePtr := flag.String("mode", "all", `Engine to run. Allowed values are: "cover", "simulate", "breaks" and "all", where "all" is the default`)
	roomPtr := flag.String("room", "", "Room category to cover in \"cover\" mode; if empty, every room of the roster is covered")
	viewPtr := flag.String("view", "rooms", `Schedule table layout. Allowed values are: "rooms" and "staff", where "rooms" is the default`)
	formatPtr := flag.String("format", "table", `Output format. Allowed values are: "table" and "json", where "table" is the default`)
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	flag.Parse()
	options := runOptions{
		mode:   strings.ToLower(*modePtr),
		room:   strings.ToUpper(*roomPtr),
		view:   strings.ToLower(*viewPtr),
		format: strings.ToLower(*formatPtr),
	}
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if !slices.Contains(validModes, options.mode) {
		log.Fatalf("%v is not a valid mode", options.mode)
	} else if !slices.Contains(validViews, options.view) {
		log.Fatalf("%v is not a valid view", options.view)
	} else if !slices.Contains(validFormats, options.format) {
		log.Fatalf("%v is not a valid format", options.format)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	options.simulator = model.SimulatorOptions{
		TickSize:       cfg.TickSize,
		RotationCutoff: cfg.RotationCutoff,
		Logger:         logger,
	}

	// Extract input
	input, err := model.InputFromFile(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	// Run engines
	result, err := run(input, options)
	if err != nil {
		log.Fatalf("an error occurred while scheduling: %v", err)
	}

	var output bytes.Buffer
	if options.format == "json" {
		err = writeJson(&output, result)
	} else {
		err = writeTables(&output, result, options.view)
	}
	if err != nil {
		log.Fatalf("an error occurred while building output: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Print(output.String())
	} else if err := os.WriteFile(outFile, output.Bytes(), 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}
}
