package wish

import (
	"errors"
	"fmt"
)

var (
	// ErrSplitSum reports a focus/non-focus split that does not sum to 100.
	ErrSplitSum = errors.New("split percentages must sum to 100")
	// ErrFocusUnset reports a negative (unset) focus size.
	ErrFocusUnset = errors.New("focus sizes must be set and non-negative")
	// ErrFocusRange reports a focus size too large for the share encoding.
	ErrFocusRange = errors.New("focus sizes must be at most 127")
	// ErrRateRange reports per-mille rates outside [1, 999] or summing past 1000.
	ErrRateRange = errors.New("rates must be in 1..999 per-mille and sum to at most 1000")
	// ErrPityConfig reports inconsistent pity parameters for the selected model.
	ErrPityConfig = errors.New("invalid pity configuration")
	// ErrGoalUnavailable reports a goal that no focus slot on the banner can satisfy.
	ErrGoalUnavailable = errors.New("goal is not available on this banner")
	// ErrTrialCeiling reports a trial that exceeded the safety cutoff.
	ErrTrialCeiling = errors.New("trial exceeded the draw ceiling")
)

// DecodeError reports a malformed or truncated share code. Decoding never
// falls back to defaults; the caller always sees the failure.
type DecodeError struct {
	What   string // "banner" or "goal"
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.What, e.Reason)
}

func decodeErr(what, reason string) error {
	return &DecodeError{What: what, Reason: reason}
}
