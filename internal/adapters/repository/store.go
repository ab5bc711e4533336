// Package repository defines the insight ledger store interface and errors.
package repository

import (
	"context"

	"github.com/okian/libero/internal/domain/insight"
)

// Entry couples a scout id with its ledger state.
type Entry struct {
	ScoutID string
	State   insight.State
}

// Store provides read/write access to per-scout insight ledgers.
type Store interface {
	// Create registers a fresh ledger for a scout.
	// Returns ErrAlreadyExists when the scout already has one.
	Create(ctx context.Context, scoutID string, st insight.State) error

	// Get returns the ledger for a scout.
	// Returns ErrNotFound if the scout is unknown.
	Get(ctx context.Context, scoutID string) (insight.State, error)

	// Credit adds earned points to a scout's ledger, capped at capacity.
	Credit(ctx context.Context, scoutID string, points int) (insight.State, error)

	// Apply runs fn against the current ledger under the shard lock and
	// stores the result. The spend path uses this so validate-then-spend
	// is atomic with respect to concurrent credits.
	Apply(ctx context.Context, scoutID string, fn func(insight.State) (insight.State, error)) (insight.State, error)

	// Tick advances every ledger by one week and returns how many were
	// ticked.
	Tick(ctx context.Context) int

	// Count returns the number of scouts tracked in the ledger.
	Count(ctx context.Context) int

	// Entries returns every ledger, unordered. Stats and drills only;
	// not a hot path.
	Entries(ctx context.Context) []Entry
}
