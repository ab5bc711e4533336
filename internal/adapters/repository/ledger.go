package repository

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/okian/libero/internal/domain/insight"
	"github.com/okian/libero/pkg/metrics"
)

// Sharded, in-memory Store implementation.
//
// Every operation is a point access keyed by scout id, so the store
// spreads ledgers across mutex-guarded map shards and takes exactly one
// shard lock per call. Apply holds that lock across the caller's
// read-modify-write, which is what makes spends atomic against
// concurrent credits.

const defaultShardCount = 16

type shard struct {
	mu      sync.RWMutex
	ledgers map[string]insight.State
}

// LedgerStore is the in-memory sharded ledger.
type LedgerStore struct {
	shardCount int
	shards     []*shard
}

// NewLedgerStore creates a ledger store with configuration options.
func NewLedgerStore(opts ...Option) *LedgerStore {
	s := &LedgerStore{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{ledgers: make(map[string]insight.State)}
	}
	metrics.UpdateLedgerShardCount(s.shardCount)
	return s
}

func (s *LedgerStore) shardFor(scoutID string) (*shard, int) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(scoutID))
	idx := int(h.Sum32()) % s.shardCount
	if idx < 0 {
		idx += s.shardCount
	}
	return s.shards[idx], idx
}

// Create registers a fresh ledger for a scout.
func (s *LedgerStore) Create(_ context.Context, scoutID string, st insight.State) error {
	start := time.Now()
	sh, idx := s.shardFor(scoutID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, exists := sh.ledgers[scoutID]; exists {
		return ErrAlreadyExists
	}
	sh.ledgers[scoutID] = st
	metrics.UpdateLedgerRecordsPerShard(strconv.Itoa(idx), len(sh.ledgers))
	metrics.RecordLedgerUpdateLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// Get returns the ledger for a scout.
func (s *LedgerStore) Get(_ context.Context, scoutID string) (insight.State, error) {
	start := time.Now()
	sh, _ := s.shardFor(scoutID)
	sh.mu.RLock()
	st, ok := sh.ledgers[scoutID]
	sh.mu.RUnlock()
	metrics.RecordLedgerQueryLatency(float64(time.Since(start).Milliseconds()))
	if !ok {
		return insight.State{}, ErrNotFound
	}
	return st, nil
}

// Credit adds earned points to a scout's ledger.
func (s *LedgerStore) Credit(ctx context.Context, scoutID string, points int) (insight.State, error) {
	return s.Apply(ctx, scoutID, func(st insight.State) (insight.State, error) {
		return st.Credit(points), nil
	})
}

// Apply runs fn under the shard lock and stores the result. When fn
// returns an error the ledger is left untouched.
func (s *LedgerStore) Apply(_ context.Context, scoutID string, fn func(insight.State) (insight.State, error)) (insight.State, error) {
	start := time.Now()
	sh, _ := s.shardFor(scoutID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	st, ok := sh.ledgers[scoutID]
	if !ok {
		return insight.State{}, ErrNotFound
	}
	next, err := fn(st)
	if err != nil {
		return st, err
	}
	sh.ledgers[scoutID] = next
	metrics.RecordLedgerUpdateLatency(float64(time.Since(start).Milliseconds()))
	return next, nil
}

// Tick advances every ledger by one week.
func (s *LedgerStore) Tick(_ context.Context) int {
	ticked := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for id, st := range sh.ledgers {
			sh.ledgers[id] = st.WeekTick()
			ticked++
		}
		sh.mu.Unlock()
	}
	return ticked
}

// Count returns the number of scouts tracked.
func (s *LedgerStore) Count(_ context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.ledgers)
		sh.mu.RUnlock()
	}
	metrics.UpdateLedgerRecordsTotal(total)
	return total
}

// Entries returns every ledger, unordered.
func (s *LedgerStore) Entries(_ context.Context) []Entry {
	var out []Entry
	for _, sh := range s.shards {
		sh.mu.RLock()
		for id, st := range sh.ledgers {
			out = append(out, Entry{ScoutID: id, State: st})
		}
		sh.mu.RUnlock()
	}
	return out
}
