package scores

import (
	"errors"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/pegcount/cribbage-backend/internal/models"
	"gorm.io/gorm"
)

// UserLookup resolves registered users while validating a submission.
// *database.Database satisfies it.
type UserLookup interface {
	GetUser(id string) (*models.User, error)
}

var requiredFields = []string{"user_score", "opponent_score", "is_skunk", "is_double_skunk"}

// Validate runs the submission checks in a fixed order (first failure wins)
// and builds the record to persist. The recorder is always the
// authenticated caller, never anything found in the payload.
func Validate(payload map[string]any, recorderID uuid.UUID, users UserLookup) (*models.GameRecord, error) {
	for _, field := range requiredFields {
		if _, ok := payload[field]; !ok {
			return nil, &MissingFieldError{Field: field}
		}
	}

	userScore, err := scoreValue(payload["user_score"])
	if err != nil {
		return nil, ErrInvalidScoreFormat
	}
	opponentScore, err := scoreValue(payload["opponent_score"])
	if err != nil {
		return nil, ErrInvalidScoreFormat
	}

	if userScore < 0 || userScore > models.WinningScore ||
		opponentScore < 0 || opponentScore > models.WinningScore {
		return nil, ErrScoreOutOfRange
	}

	opponentRaw, hasOpponent := presentValue(payload, "opponent_user_id")
	guestRaw, hasGuest := presentValue(payload, "guest_opponent_name")

	if !hasOpponent && !hasGuest {
		return nil, ErrOpponentRequired
	}

	game := &models.GameRecord{
		RecorderID:    recorderID,
		RecorderScore: userScore,
		OpponentScore: opponentScore,
		IsSkunk:       truthy(payload["is_skunk"]),
		IsDoubleSkunk: truthy(payload["is_double_skunk"]),
	}
	if notes, ok := payload["notes"].(string); ok {
		game.Notes = notes
	}

	if hasOpponent {
		// A guest name sent alongside a registered opponent is discarded:
		// the registered user takes precedence.
		id, ok := opponentRaw.(string)
		if !ok {
			return nil, ErrUnknownOpponent
		}
		opponentID, err := uuid.Parse(id)
		if err != nil {
			return nil, ErrUnknownOpponent
		}
		if _, err := users.GetUser(opponentID.String()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownOpponent
			}
			return nil, err
		}
		game.OpponentUserID = &opponentID
		return game, nil
	}

	guest, ok := guestRaw.(string)
	if !ok {
		return nil, ErrInvalidGuestName
	}
	game.GuestOpponentName = &guest
	return game, nil
}

// presentValue treats an explicit JSON null the same as an absent key.
func presentValue(payload map[string]any, key string) (any, bool) {
	v, ok := payload[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// scoreValue accepts JSON numbers and numeric strings. Fractional values
// do not parse as integers.
func scoreValue(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, ErrInvalidScoreFormat
		}
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, ErrInvalidScoreFormat
	}
}

// truthy coerces the skunk flags the way the frontend has always sent them:
// any non-zero, non-empty value counts as set.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return false
	}
}
