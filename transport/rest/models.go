package rest

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// NewGameRequest is the body of POST /games. Every field is optional.
type NewGameRequest struct {
	PlayerID   string `json:"player_id" binding:"omitempty,max=64"`
	Mark       string `json:"mark" binding:"omitempty,mark"`
	Difficulty string `json:"difficulty" binding:"omitempty,difficulty"`
}

type MoveRequest struct {
	Cell *int `json:"cell" binding:"required,min=0,max=8"`
}

type AnalysisResponse struct {
	GameID string          `json:"game_id"`
	Moves  []engine.Result `json:"moves"`
}

type StatsResponse struct {
	*entity.Stats
	TotalGames int `json:"total_games"`
	WinRate    int `json:"win_rate"`
}

func newStatsResponse(stats *entity.Stats) StatsResponse {
	return StatsResponse{
		Stats:      stats,
		TotalGames: stats.TotalGames(),
		WinRate:    stats.WinRate(),
	}
}
