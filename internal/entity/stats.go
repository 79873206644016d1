package entity

import "math"

type GameResult string

const (
	ResultHumanWin  GameResult = "human_win"
	ResultEngineWin GameResult = "engine_win"
	ResultDraw      GameResult = "draw"
)

// Stats is the scoreboard of one player against the engine.
type Stats struct {
	PlayerID   string `json:"player_id"`
	HumanWins  int    `json:"human_wins"`
	EngineWins int    `json:"engine_wins"`
	Draws      int    `json:"draws"`
}

func (that *Stats) TotalGames() int {
	return that.HumanWins + that.EngineWins + that.Draws
}

// WinRate is the share of games won by the human, as a rounded percentage.
func (that *Stats) WinRate() int {
	total := that.TotalGames()
	if total == 0 {
		return 0
	}

	return int(math.Round(float64(that.HumanWins) * 100 / float64(total)))
}

func (that *Stats) Add(result GameResult) {
	switch result {
	case ResultHumanWin:
		that.HumanWins++
	case ResultEngineWin:
		that.EngineWins++
	case ResultDraw:
		that.Draws++
	}
}
