package database

import (
	"github.com/pegcount/cribbage-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveGame persists a new game record inside a transaction, so a failed
// write leaves no partial row behind.
func (d *Database) SaveGame(game *models.GameRecord) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		// Recorder and Opponent are read-side associations, never written
		// through a game record.
		return tx.Omit(clause.Associations).Create(game).Error
	})
}

func (d *Database) GetGame(id string) (*models.GameRecord, error) {
	var game models.GameRecord
	err := d.db.Preload("Recorder").Preload("Opponent").First(&game, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// ListGamesForUser returns every game where the user is either the recorder
// or the registered opponent, newest first. Ties on created_at fall back to
// id so the ordering stays deterministic.
func (d *Database) ListGamesForUser(userID string) ([]models.GameRecord, error) {
	var games []models.GameRecord

	err := d.db.
		Where("recorder_id = ? OR opponent_user_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Preload("Recorder").
		Preload("Opponent").
		Find(&games).Error

	if err != nil {
		return nil, err
	}

	return games, nil
}
