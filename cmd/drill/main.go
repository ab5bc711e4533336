package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/libero/internal/drill"
)

// Default configuration constants.
const (
	defaultNumScouts      = 100
	defaultEventsPerScout = 50
	defaultTopN           = 10
	defaultWorkers        = 2 // multiplier for runtime.NumCPU()
	defaultTimeout        = 30 * time.Second
	defaultDrillTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL        = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numScouts      = flag.Int("scouts", defaultNumScouts, "Number of scouts to register")
		eventsPerScout = flag.Int("events", defaultEventsPerScout, "Number of observations per scout")
		topN           = flag.Int("top", defaultTopN, "Number of top ledgers to display")
		workers        = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout        = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile     = flag.String("output", "", "Output file for generated observations (default: generated_observations_TIMESTAMP.json)")
		logFile        = flag.String("log", "", "Log file for drill output (default: drill_log_TIMESTAMP.log)")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
		help           = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		drill.ShowHelp()
		return
	}

	// Setup logging
	if err := drill.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultDrillTimeout)
	defer cancel()

	// Create drill configuration
	config := &drill.Config{
		BaseURL:        *baseURL,
		NumScouts:      *numScouts,
		EventsPerScout: *eventsPerScout,
		TopN:           *topN,
		Workers:        *workers,
		Timeout:        *timeout,
		OutputFile:     *outputFile,
		LogFile:        *logFile,
		Verbose:        *verbose,
	}

	// Run the drill
	if err := drill.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Drill failed: " + err.Error() + "\n")
		return
	}
}
