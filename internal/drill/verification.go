package drill

import (
	"fmt"
	"log"
	"sort"

	"github.com/okian/libero/internal/domain/insight"
	"github.com/okian/libero/internal/domain/model"
)

// verifyLedgers checks every retrieved ledger against the accrual the
// submitted observations should have produced.
func verifyLedgers(config *Config, scouts []Scout, events []Observation, ledgers []Ledger, stats *Stats) error {
	log.Println("🔍 Verifying ledgers...")

	if len(ledgers) == 0 {
		return fmt.Errorf("no ledgers to verify")
	}

	economy := insight.NewEconomy()

	scoutsByID := make(map[string]Scout, len(scouts))
	for _, s := range scouts {
		scoutsByID[s.ID] = s
	}

	// Replay the accrual formula client-side to get the exact expected
	// lifetime earnings per scout.
	expected := make(map[string]int, len(scouts))
	for _, ev := range events {
		s, ok := scoutsByID[ev.ScoutID]
		if !ok {
			continue
		}
		profile := model.ScoutProfile{
			ID:             s.ID,
			Specialization: model.Specialization(s.Specialization),
			Intuition:      s.Intuition,
			Fatigue:        s.Fatigue,
		}
		expected[ev.ScoutID] += economy.CalculateAccumulation(insight.Source(ev.Source), insight.QualityTier(ev.Tier), profile)
	}

	for _, ledger := range ledgers {
		scout, ok := scoutsByID[ledger.ScoutID]
		if !ok {
			continue
		}

		want := expected[ledger.ScoutID]
		wantCapacity := economy.Capacity(scout.Intuition)

		ok = true
		if ledger.Capacity != wantCapacity {
			log.Printf("⚠️  Scout %s: capacity %d, want %d", ledger.ScoutID, ledger.Capacity, wantCapacity)
			ok = false
		}
		if ledger.State.LifetimeEarned != want {
			log.Printf("⚠️  Scout %s: lifetime earned %d, want %d", ledger.ScoutID, ledger.State.LifetimeEarned, want)
			ok = false
		}
		wantPoints := minInt(want, wantCapacity)
		if ledger.State.Points != wantPoints {
			log.Printf("⚠️  Scout %s: points %d, want %d", ledger.ScoutID, ledger.State.Points, wantPoints)
			ok = false
		}

		if ok {
			stats.LedgersVerified++
		} else {
			stats.LedgerMismatches++
		}
	}

	displayTopLedgers(ledgers, config.TopN, config.Verbose)

	if stats.LedgerMismatches > 0 {
		return fmt.Errorf("%d of %d ledgers did not match expected accrual", stats.LedgerMismatches, len(ledgers))
	}

	log.Printf("✅ Verified %d ledgers against expected accrual", stats.LedgersVerified)
	return nil
}

// displayTopLedgers shows the scouts with the most lifetime insight.
func displayTopLedgers(ledgers []Ledger, topN int, verbose bool) {
	sorted := make([]Ledger, len(ledgers))
	copy(sorted, ledgers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].State.LifetimeEarned > sorted[j].State.LifetimeEarned
	})

	if topN > len(sorted) {
		topN = len(sorted)
	}

	log.Printf("🏆 Top %d scouts by lifetime insight:", topN)
	for i := 0; i < topN; i++ {
		ledger := sorted[i]
		log.Printf("   %d. %s - earned: %d, banked: %d/%d", i+1, ledger.ScoutID, ledger.State.LifetimeEarned, ledger.State.Points, ledger.Capacity)
	}

	if verbose && len(sorted) > 0 {
		sum := 0
		for _, ledger := range sorted {
			sum += ledger.State.LifetimeEarned
		}
		capped := 0
		for _, ledger := range sorted {
			if ledger.State.Points == ledger.Capacity {
				capped++
			}
		}
		log.Printf(`📊 Accrual statistics:
   Average earned: %.1f
   Scouts at capacity: %d/%d
`, float64(sum)/float64(len(sorted)), capped, len(sorted))
	}
}
