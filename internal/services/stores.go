package services

import "github.com/pegcount/cribbage-backend/internal/models"

// UserStore is the credential and account storage used by handlers.
type UserStore interface {
	SaveUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	ListUsersExcept(id string) ([]models.User, error)
}

// GameStore persists and queries finished game records.
type GameStore interface {
	SaveGame(game *models.GameRecord) error
	GetGame(id string) (*models.GameRecord, error)
	ListGamesForUser(userID string) ([]models.GameRecord, error)
}

// Store is what the full database implementation provides.
type Store interface {
	UserStore
	GameStore
}
