package drill

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
)

// Session probe constants.
const (
	probeSessionCount = 5
	probeRosterSize   = 6
	minSessionPhases  = 12
	maxSessionPhases  = 18
)

// sessionRequest is the free-form generation payload
type sessionRequest struct {
	SessionID string        `json:"session_id,omitempty"`
	Venue     string        `json:"venue,omitempty"`
	Seed      int64         `json:"seed"`
	Players   []probePlayer `json:"players"`
}

type probePlayer struct {
	PlayerID string `json:"player_id"`
	Focused  bool   `json:"focused,omitempty"`
}

// sessionView is the subset of the generated session the probe inspects
type sessionView struct {
	ID     string `json:"id"`
	State  string `json:"state"`
	Phases []struct {
		StartMinute int `json:"start_minute"`
	} `json:"phases"`
}

// probeSessions generates a handful of free-form sessions and checks the
// phase bounds and seed determinism of each.
func probeSessions(ctx context.Context, config *Config, stats *Stats) error {
	log.Printf("🎫 Probing %d session generations...", probeSessionCount)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/sessions"

	for i := 0; i < probeSessionCount; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		roster := make([]probePlayer, probeRosterSize)
		for j := range roster {
			roster[j] = probePlayer{
				PlayerID: "probe_" + strconv.Itoa(i) + "_" + strconv.Itoa(j),
				Focused:  j < 2,
			}
		}
		req := sessionRequest{Seed: int64(1000 + i), Players: roster}

		first, err := generateSingleSession(client, url, req)
		if err != nil {
			return fmt.Errorf("session probe %d failed: %w", i, err)
		}

		ok := true
		if first.State != "populated" {
			log.Printf("⚠️  Session %s: state %q, want populated", first.ID, first.State)
			ok = false
		}
		if n := len(first.Phases); n < minSessionPhases || n > maxSessionPhases {
			log.Printf("⚠️  Session %s: %d phases, want %d-%d", first.ID, n, minSessionPhases, maxSessionPhases)
			ok = false
		}

		// Replay with the same id and seed; the core promises an
		// identical session.
		req.SessionID = first.ID
		second, err := generateSingleSession(client, url, req)
		if err != nil {
			return fmt.Errorf("session replay %d failed: %w", i, err)
		}
		if len(second.Phases) != len(first.Phases) {
			log.Printf("⚠️  Session %s: replay produced %d phases, first run %d", first.ID, len(second.Phases), len(first.Phases))
			ok = false
		}
		for j := range first.Phases {
			if j < len(second.Phases) && second.Phases[j].StartMinute != first.Phases[j].StartMinute {
				log.Printf("⚠️  Session %s: replay phase %d at minute %d, first run %d", first.ID, j, second.Phases[j].StartMinute, first.Phases[j].StartMinute)
				ok = false
				break
			}
		}

		if ok {
			stats.SessionsVerified++
		} else {
			stats.SessionMismatches++
		}
		stats.SessionsProbed++
	}

	if stats.SessionMismatches > 0 {
		return fmt.Errorf("%d of %d session probes did not hold", stats.SessionMismatches, stats.SessionsProbed)
	}

	log.Printf("✅ Verified %d session generations", stats.SessionsVerified)
	return nil
}

// generateSingleSession posts one generation request and decodes the view.
func generateSingleSession(client *HTTPClient, url string, req sessionRequest) (sessionView, error) {
	resp, err := client.Post(url, req)
	if err != nil {
		return sessionView{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return sessionView{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusCreated {
		return sessionView{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var view sessionView
	if err := json.Unmarshal(body, &view); err != nil {
		return sessionView{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return view, nil
}
