package dicee

import "errors"

// Input validation errors, surfaced synchronously to the caller.
// None of these are retryable: the computation is deterministic, so a
// failed validation will fail the same way every time.
var (
	// ErrInvalidDice indicates a die value outside [1, 6] or a dice
	// count other than 5.
	ErrInvalidDice = errors.New("invalid dice")

	// ErrInvalidRollsRemaining indicates a rolls-remaining value
	// outside {0, 1, 2}.
	ErrInvalidRollsRemaining = errors.New("invalid rolls remaining")

	// ErrNoCategories indicates that no categories are available and no
	// rolls remain, so no action exists. This is a contract violation
	// by the caller, never silently resolved to a zero score.
	ErrNoCategories = errors.New("no categories available")

	// ErrInvalidState indicates an internal state with an out-of-range
	// configuration index. It signals a programming defect rather than
	// a recoverable runtime condition.
	ErrInvalidState = errors.New("invalid solver state")
)
