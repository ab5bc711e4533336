package drill

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// retrieveLedgers retrieves the insight ledger for every scout concurrently.
func retrieveLedgers(ctx context.Context, config *Config, scouts []Scout, stats *Stats) ([]Ledger, error) {
	log.Printf("📒 Retrieving ledgers for %d scouts with %d workers...", len(scouts), config.Workers)

	client := newHTTPClient(config.Timeout)

	// Results storage
	ledgers := make([]Ledger, len(scouts))
	var (
		retrieved int64
		failed    int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	scoutChan := make(chan int, config.Workers*WorkerChannelMultiplier) // Send indices instead of IDs
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range scoutChan {
				select {
				case <-ctx.Done():
					return
				default:
					scoutID := scouts[index].ID
					ledger, err := retrieveSingleLedger(client, config.BaseURL, scoutID)

					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to get ledger for %s: %v", scoutID, err)
						}
					} else {
						ledgers[index] = ledger
						atomic.AddInt64(&retrieved, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&retrieved) + atomic.LoadInt64(&failed)
						ret := atomic.LoadInt64(&retrieved)
						fail := atomic.LoadInt64(&failed)

						log.Printf("📒 Ledgers: %d/%d retrieved (success: %d, failed: %d)",
							total, len(scouts), ret, fail)
					}
				}
			}
		}()
	}

	// Send scout indices to workers
	go func() {
		defer close(scoutChan)
		for i := range scouts {
			select {
			case <-ctx.Done():
				return
			case scoutChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Filter out empty entries (failed retrievals)
	validLedgers := make([]Ledger, 0, len(ledgers))
	for _, ledger := range ledgers {
		if ledger.ScoutID != "" { // Empty ScoutID indicates failed retrieval
			validLedgers = append(validLedgers, ledger)
		}
	}

	// Update stats
	stats.LedgersRetrieved = len(validLedgers)

	log.Printf(`✅ Ledger retrieval completed:
   Retrieved: %d
   Failed: %d
`, len(validLedgers), int(atomic.LoadInt64(&failed)))

	return validLedgers, nil
}

// retrieveSingleLedger retrieves the ledger for a single scout.
func retrieveSingleLedger(client *HTTPClient, baseURL, scoutID string) (Ledger, error) {
	url := fmt.Sprintf("%s/insight/%s", baseURL, scoutID)

	resp, err := client.Get(url)
	if err != nil {
		return Ledger{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Ledger{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return Ledger{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var ledger Ledger
	if err := json.Unmarshal(body, &ledger); err != nil {
		return Ledger{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return ledger, nil
}
