package entity

import (
	"sync"
	"sync/atomic"
	"time"
)

// Game is one human-versus-engine session. Callers hold the lock while
// reading or mutating Board and History.
type Game struct {
	mu sync.Mutex

	ID         string
	PlayerID   string
	HumanMark  Mark
	EngineMark Mark
	Difficulty string

	Board   *Board
	History *History

	// Scored is set once the finished game has been added to the scoreboard.
	Scored bool

	// unix nanoseconds, 0 means the session never expires
	expiresAt atomic.Int64
}

// GameState is a read-only snapshot of a Game, safe to hand to other goroutines.
type GameState struct {
	ID         string          `json:"id"`
	PlayerID   string          `json:"player_id"`
	Board      [BoardSize]Mark `json:"board"`
	Turn       Mark            `json:"turn,omitempty"`
	Outcome    Outcome         `json:"outcome"`
	HumanMark  Mark            `json:"human_mark"`
	EngineMark Mark            `json:"engine_mark"`
	Difficulty string          `json:"difficulty"`
	Moves      []Move          `json:"moves"`
	CanUndo    bool            `json:"can_undo"`
	CanRedo    bool            `json:"can_redo"`
}

func NewGame(id, playerID string, humanMark Mark, difficulty string, strictHistory bool) *Game {
	return &Game{
		ID:         id,
		PlayerID:   playerID,
		HumanMark:  humanMark,
		EngineMark: humanMark.Opponent(),
		Difficulty: difficulty,
		Board:      NewBoard(),
		History:    NewHistory(strictHistory),
	}
}

func (that *Game) Lock() {
	that.mu.Lock()
}

func (that *Game) Unlock() {
	that.mu.Unlock()
}

func (that *Game) Outcome() Outcome {
	return that.Board.Winner()
}

func (that *Game) IsFinished() bool {
	return that.Outcome().IsTerminal()
}

// Touch pushes the expiry to now+ttl. A non-positive ttl disables expiry.
func (that *Game) Touch(now time.Time, ttl time.Duration) {
	if ttl <= 0 {
		that.expiresAt.Store(0)
		return
	}

	that.expiresAt.Store(now.Add(ttl).UnixNano())
}

// Expired can be called without holding the lock.
func (that *Game) Expired(now time.Time) bool {
	expiresAt := that.expiresAt.Load()

	return expiresAt != 0 && now.UnixNano() >= expiresAt
}

// IsEngineTurn reports whether the engine is due to move in an ongoing game.
func (that *Game) IsEngineTurn() bool {
	return !that.IsFinished() && that.Board.Turn() == that.EngineMark
}

// CanUndo reports whether a full human+engine pair can be taken back.
func (that *Game) CanUndo() bool {
	return !that.IsFinished() && !that.IsEngineTurn() && that.History.Len() >= PlySpan
}

func (that *Game) CanRedo() bool {
	return !that.IsFinished() && !that.IsEngineTurn() && that.History.Redoable() > 0
}

// Result converts a finished game into a scoreboard entry from the human's side.
func (that *Game) Result() (GameResult, bool) {
	outcome := that.Outcome()

	switch {
	case outcome.IsDraw():
		return ResultDraw, true
	case outcome.IsWin() && outcome.Winner == that.HumanMark:
		return ResultHumanWin, true
	case outcome.IsWin():
		return ResultEngineWin, true
	default:
		return "", false
	}
}

func (that *Game) Snapshot() *GameState {
	outcome := that.Outcome()

	state := &GameState{
		ID:         that.ID,
		PlayerID:   that.PlayerID,
		Board:      that.Board.Cells(),
		Outcome:    outcome,
		HumanMark:  that.HumanMark,
		EngineMark: that.EngineMark,
		Difficulty: that.Difficulty,
		Moves:      that.History.Done(),
		CanUndo:    that.CanUndo(),
		CanRedo:    that.CanRedo(),
	}

	if !outcome.IsTerminal() {
		state.Turn = that.Board.Turn()
	}

	return state
}
