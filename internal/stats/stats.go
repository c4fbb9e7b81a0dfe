package stats

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pegcount/cribbage-backend/internal/models"
)

const recentGamesLimit = 10

// GameView is one entry of the dashboard's recent-games list.
type GameView struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	UserUsername     string     `json:"user_username"`
	UserScore        int        `json:"user_score"`
	OpponentUserID   *uuid.UUID `json:"opponent_user_id"`
	OpponentUsername string     `json:"opponent_username"`
	OpponentScore    int        `json:"opponent_score"`
	IsSkunk          bool       `json:"is_skunk"`
	IsDoubleSkunk    bool       `json:"is_double_skunk"`
	GameDate         time.Time  `json:"game_date"`
	Notes            string     `json:"notes"`
	ViewerWon        bool       `json:"viewer_won"`
}

type Summary struct {
	Username        string     `json:"username"`
	TotalGames      int        `json:"total_games"`
	TotalWins       int        `json:"total_wins"`
	TotalLosses     int        `json:"total_losses"`
	ConsecutiveWins int        `json:"consecutive_wins"`
	RecentGames     []GameView `json:"recent_games"`
}

// Summarize computes the dashboard for a viewer from their game history.
// games must already be ordered newest first; the current-streak walk
// depends on it.
func Summarize(viewerID uuid.UUID, username string, games []models.GameRecord) Summary {
	summary := Summary{
		Username:    username,
		TotalGames:  len(games),
		RecentGames: []GameView{},
	}

	streakAlive := true
	for i := range games {
		game := &games[i]
		won := ViewerWon(viewerID, game)
		lost := viewerLost(viewerID, game)

		switch {
		case won:
			summary.TotalWins++
		case lost:
			summary.TotalLosses++
		default:
			// Upstream validation should make this unreachable: a finished
			// game has one side at 121.
			log.Printf("game %s has no winning side (%d-%d), excluded from win/loss totals",
				game.ID, game.RecorderScore, game.OpponentScore)
		}

		// The streak is the run of wins at the head of the history. The
		// first non-win ends it for good, older wins don't count.
		if streakAlive {
			if won {
				summary.ConsecutiveWins++
			} else {
				streakAlive = false
			}
		}

		if i < recentGamesLimit {
			summary.RecentGames = append(summary.RecentGames, gameView(game, won))
		}
	}

	return summary
}

// ViewerWon reports whether the viewer's side of the record reached 121.
// The viewer may sit on either side: recorder or registered opponent.
func ViewerWon(viewerID uuid.UUID, g *models.GameRecord) bool {
	if g.RecorderID == viewerID && g.RecorderScore == models.WinningScore {
		return true
	}
	if g.OpponentUserID != nil && *g.OpponentUserID == viewerID && g.OpponentScore == models.WinningScore {
		return true
	}
	return false
}

func viewerLost(viewerID uuid.UUID, g *models.GameRecord) bool {
	if ViewerWon(viewerID, g) {
		return false
	}
	if g.RecorderID == viewerID && g.OpponentScore == models.WinningScore {
		return true
	}
	if g.OpponentUserID != nil && *g.OpponentUserID == viewerID && g.RecorderScore == models.WinningScore {
		return true
	}
	return false
}

func gameView(g *models.GameRecord, viewerWon bool) GameView {
	return GameView{
		ID:               g.ID,
		UserID:           g.RecorderID,
		UserUsername:     g.Recorder.Username,
		UserScore:        g.RecorderScore,
		OpponentUserID:   g.OpponentUserID,
		OpponentUsername: g.OpponentDisplayName(),
		OpponentScore:    g.OpponentScore,
		IsSkunk:          g.IsSkunk,
		IsDoubleSkunk:    g.IsDoubleSkunk,
		GameDate:         g.CreatedAt,
		Notes:            g.Notes,
		ViewerWon:        viewerWon,
	}
}
