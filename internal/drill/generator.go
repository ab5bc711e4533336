package drill

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/okian/libero/pkg/logger"
)

// Constants for random number generation.
const (
	tierRollDivisor = 100
	sourceDivisor   = 8
	specDivisor     = 4
	intuitionRange  = 20
	fatigueRange    = 61
)

// Tier distribution thresholds out of 100. Solid work dominates, poor
// and exceptional work are rare, matching a plausible scouting week.
const (
	tierPoorBelow       = 10
	tierSolidBelow      = 65
	tierImpressiveBelow = 90
)

var observationSources = []string{
	"venue_observation",
	"match_observation",
	"report_filed",
	"trial_day",
	"technical_drill",
	"character_interview",
	"tactical_review",
	"network_call",
}

var specializations = []string{
	"technical",
	"character",
	"tactical",
	"network",
}

// randInt returns a random int in [0, n) using crypto/rand.
func randInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// generateScouts creates the specified number of scouts with varied
// specializations, intuition, and fatigue.
func generateScouts(ctx context.Context, config *Config) []Scout {
	logger.Get().Info(ctx, "generating scouts", logger.Int("numScouts", config.NumScouts))

	scouts := make([]Scout, config.NumScouts)
	for i := range scouts {
		scouts[i] = Scout{
			ID:             uuid.New().String(),
			Name:           "Drill Scout " + strconv.Itoa(i),
			Specialization: specializations[randInt(specDivisor)],
			Intuition:      1 + int(randInt(intuitionRange)),
			Fatigue:        int(randInt(fatigueRange)),
		}
	}
	return scouts
}

// generateObservations creates EventsPerScout observations for every scout.
func generateObservations(ctx context.Context, config *Config, scouts []Scout, stats *Stats) ([]Observation, error) {
	total := config.NumScouts * config.EventsPerScout
	logger.Get().Info(ctx, "generating observations", logger.Int("numEvents", total))

	events := make([]Observation, total)

	type eventResult struct {
		index int
		event Observation
		err   error
	}

	resultChan := make(chan eventResult, total)

	// Use worker pool for event generation
	workerCount := minInt(config.Workers, total)
	eventsPerWorker := total / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * eventsPerWorker
		end := start + eventsPerWorker
		if worker == workerCount-1 {
			end = total // Last worker gets remaining events
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- eventResult{index: i, err: ctx.Err()}
					return
				default:
					scout := scouts[i/config.EventsPerScout]
					resultChan <- eventResult{index: i, event: generateSingleObservation(i, scout.ID)}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during event generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate event %d: %w", result.index, result.err)
			}
			events[result.index] = result.event
		}
	}

	stats.EventsGenerated = len(events)
	logger.Get().Info(ctx, "generated observations successfully", logger.Int("count", len(events)))

	return events, nil
}

// generateSingleObservation creates one observation for the given scout.
func generateSingleObservation(index int, scoutID string) Observation {
	eventID := "obs_" + strconv.FormatInt(int64(index), 10) + "_" + strconv.FormatInt(time.Now().Unix(), 10) + "_" + strconv.FormatInt(randInt(10000), 10)

	return Observation{
		EventID: eventID,
		ScoutID: scoutID,
		Source:  observationSources[randInt(sourceDivisor)],
		Tier:    generateVariedTier(),
		Week:    1 + index%4,
		TS:      time.Now().UTC().Format(time.RFC3339),
	}
}

// generateVariedTier draws a quality tier with a realistic skew.
func generateVariedTier() string {
	roll := randInt(tierRollDivisor)
	switch {
	case roll < tierPoorBelow:
		return "poor"
	case roll < tierSolidBelow:
		return "solid"
	case roll < tierImpressiveBelow:
		return "impressive"
	default:
		return "exceptional"
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
