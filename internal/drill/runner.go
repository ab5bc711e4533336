package drill

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/libero/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete observation drill.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting libero observation drill",
		logger.String("baseURL", config.BaseURL),
		logger.Int("scouts", config.NumScouts),
		logger.Int("eventsPerScout", config.EventsPerScout),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate and register scouts
	scouts := generateScouts(ctx, config)
	if err := registerScouts(ctx, config, scouts, stats); err != nil {
		return fmt.Errorf("scout registration failed: %w", err)
	}

	// Step 3: Generate observations
	events, err := generateObservations(ctx, config, scouts, stats)
	if err != nil {
		return fmt.Errorf("observation generation failed: %w", err)
	}

	// Step 4: Submit observations concurrently
	if err := submitObservations(ctx, config, events, stats); err != nil {
		return fmt.Errorf("observation submission failed: %w", err)
	}

	// Step 5: Wait for accrual workers to drain the queue
	logger.Get().Info(ctx, "waiting for observations to be processed")
	time.Sleep(ProcessingDelay)

	// Step 6: Retrieve ledgers concurrently
	ledgers, err := retrieveLedgers(ctx, config, scouts, stats)
	if err != nil {
		return fmt.Errorf("ledger retrieval failed: %w", err)
	}

	// Step 7: Verify ledgers against the expected accrual
	if err := verifyLedgers(config, scouts, events, ledgers, stats); err != nil {
		return fmt.Errorf("ledger verification failed: %w", err)
	}

	// Step 8: Probe session generation determinism
	if err := probeSessions(ctx, config, stats); err != nil {
		return fmt.Errorf("session probe failed: %w", err)
	}

	// Step 9: Save observations to file
	if err := saveObservationsToFile(ctx, config, events); err != nil {
		logger.Get().Warn(ctx, "failed to save observations to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "drill completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveObservationsToFile saves the generated observations to a JSON file.
func saveObservationsToFile(ctx context.Context, config *Config, events []Observation) error {
	if len(events) == 0 {
		return fmt.Errorf("no observations to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_observations_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write observations to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, event := range events {
		jsonData, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal observation %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write observation %d: %w", i, err)
		}

		// Add comma except for last observation
		if i < len(events)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "observations saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final drill statistics.
func displayFinalStats(stats *Stats) {
	var successRate, eventsPerSecond float64

	if stats.EventsSubmitted > 0 {
		successRate = float64(stats.EventsSuccessful) / float64(stats.EventsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		eventsPerSecond = float64(stats.EventsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("scoutsRegistered", stats.ScoutsRegistered),
		logger.Int("eventsGenerated", stats.EventsGenerated),
		logger.Int("eventsSubmitted", stats.EventsSubmitted),
		logger.Int("eventsSuccessful", stats.EventsSuccessful),
		logger.Int("eventsDuplicate", stats.EventsDuplicate),
		logger.Int("eventsFailed", stats.EventsFailed),
		logger.Int("ledgersRetrieved", stats.LedgersRetrieved),
		logger.Int("ledgersVerified", stats.LedgersVerified),
		logger.Int("ledgerMismatches", stats.LedgerMismatches),
		logger.Int("sessionsProbed", stats.SessionsProbed),
		logger.Int("sessionsVerified", stats.SessionsVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("eventsPerSecond", eventsPerSecond))
}
