package insight

import "errors"

var (
	// ErrUnknownAction is returned when an action id has no catalog entry.
	// Unknown ids are a caller bug, never a silent no-op.
	ErrUnknownAction = errors.New("insight: unknown action id")
	// ErrNotValidated is returned when a spend is attempted while a
	// validation check fails; callers run CanUse first.
	ErrNotValidated = errors.New("insight: spend attempted without passing validation")
	// ErrNoTarget is returned when an action needs a target player the
	// context does not carry.
	ErrNoTarget = errors.New("insight: action requires a target player")
)
