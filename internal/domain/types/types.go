// Package types contains common request and view types shared between
// the HTTP adapters and the application service.
package types

import (
	"github.com/okian/libero/internal/domain/insight"
	"github.com/okian/libero/internal/domain/match"
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/session"
)

// LedgerEntry is the read shape returned by insight ledger queries.
type LedgerEntry struct {
	ScoutID  string        `json:"scout_id"`
	State    insight.State `json:"state"`
	Ready    bool          `json:"ready"`
	Capacity int           `json:"capacity"`
}

// SpendRequest carries an insight spend plus the world data the action
// operates on. Player and contact data arrive inline with the request;
// the core holds no world state of its own.
type SpendRequest struct {
	ActionID       string                `json:"action_id"`
	Mode           model.ObservationMode `json:"mode"`
	Week           int                   `json:"week"`
	Seed           int64                 `json:"seed"`
	TargetPlayerID string                `json:"target_player_id,omitempty"`
	Players        []model.PlayerRecord  `json:"players,omitempty"`
	Contacts       []model.Contact       `json:"contacts,omitempty"`
	Pool           []model.PlayerRecord  `json:"pool,omitempty"`
	Session        *session.Session      `json:"session,omitempty"`
}

// SpendOutcome pairs the post-spend ledger with the action result. Deny
// is set instead of Result when validation refused the spend.
type SpendOutcome struct {
	State  insight.State      `json:"state"`
	Result insight.Result     `json:"result"`
	Deny   insight.DenyReason `json:"deny_reason,omitempty"`
}

// SessionRequest describes a free-form observation session to generate.
type SessionRequest struct {
	SessionID string           `json:"session_id,omitempty"`
	Venue     string           `json:"venue,omitempty"`
	Seed      int64            `json:"seed"`
	Players   []session.Player `json:"players"`
}

// MatchRequest describes a live match to simulate. Focused ids mark the
// players the observing scout has allocated attention to.
type MatchRequest struct {
	SessionID string     `json:"session_id,omitempty"`
	Venue     string     `json:"venue,omitempty"`
	Seed      int64      `json:"seed"`
	Home      match.Team `json:"home"`
	Away      match.Team `json:"away"`
	Focused   []string   `json:"focused,omitempty"`
}

// MatchOutcome pairs the populated session with the sampled final score.
type MatchOutcome struct {
	Session session.Session `json:"session"`
	Result  match.Result    `json:"result"`
}
