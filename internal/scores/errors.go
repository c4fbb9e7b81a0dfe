package scores

import (
	"errors"
	"fmt"
)

// Validation failures map to HTTP 400. Messages match what the frontend
// already parses.
var (
	ErrInvalidScoreFormat = errors.New("Scores must be valid numbers")
	ErrScoreOutOfRange    = errors.New("Scores must be between 0 and 121")
	ErrOpponentRequired   = errors.New("Either opponent_user_id or guest_opponent_name must be provided")
	ErrUnknownOpponent    = errors.New("Referenced opponent_user_id does not exist")
	ErrInvalidGuestName   = errors.New("guest_opponent_name must be a string")
)

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

// IsValidationError reports whether err is a client-fixable submission
// problem rather than a storage failure.
func IsValidationError(err error) bool {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return true
	}
	for _, v := range []error{
		ErrInvalidScoreFormat,
		ErrScoreOutOfRange,
		ErrOpponentRequired,
		ErrUnknownOpponent,
		ErrInvalidGuestName,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
