package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// WinningScore is the score a cribbage game is played to. A finished game
// has exactly one side at this value.
const WinningScore = 121

// GameRecord is one finished two-player game as logged by the recorder.
// Exactly one of OpponentUserID / GuestOpponentName is set.
type GameRecord struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecorderID        uuid.UUID  `gorm:"not null;index"`
	RecorderScore     int        `gorm:"not null"`
	OpponentUserID    *uuid.UUID `gorm:"index"`
	GuestOpponentName *string
	OpponentScore     int    `gorm:"not null"`
	IsSkunk           bool   `gorm:"not null;default:false"`
	IsDoubleSkunk     bool   `gorm:"not null;default:false"`
	Notes             string
	CreatedAt         time.Time

	Recorder User  `gorm:"foreignKey:RecorderID"`
	Opponent *User `gorm:"foreignKey:OpponentUserID"`
}

func (g *GameRecord) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	return nil
}

// Decided reports whether either side reached the winning score. Records
// that fail this slipped past submission validation.
func (g *GameRecord) Decided() bool {
	return g.RecorderScore == WinningScore || g.OpponentScore == WinningScore
}

// OpponentDisplayName resolves the opponent's name: registered username,
// then guest name, then a fallback literal.
func (g *GameRecord) OpponentDisplayName() string {
	if g.Opponent != nil {
		return g.Opponent.Username
	}
	if g.GuestOpponentName != nil && *g.GuestOpponentName != "" {
		return *g.GuestOpponentName
	}
	return "Unknown Opponent"
}
