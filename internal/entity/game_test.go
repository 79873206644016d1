package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a new game is created for a human playing O
	game := NewGame("123", "player-1", PlayerO, "hard", false)

	// Then: the engine plays X on an empty board
	assert.Equal(t, "123", game.ID)
	assert.Equal(t, "player-1", game.PlayerID)
	assert.Equal(t, PlayerO, game.HumanMark)
	assert.Equal(t, PlayerX, game.EngineMark)
	assert.Equal(t, [BoardSize]Mark{}, game.Board.Cells())
	assert.Zero(t, game.History.Len())
	assert.True(t, game.IsEngineTurn())
	assert.False(t, game.IsFinished())
}

func TestGame_CanUndo(t *testing.T) {
	t.Run("Needs a full pair", func(t *testing.T) {
		// Given: a game where the engine opened as X
		game := NewGame("123", "p", PlayerO, "hard", false)
		play(t, game.Board, game.History, 4)

		// Then: the engine's opening move cannot be undone
		assert.False(t, game.CanUndo())

		// When: a human and engine ply follow
		play(t, game.Board, game.History, 0, 8)

		// Then: the pair can be undone
		assert.True(t, game.CanUndo())
	})

	t.Run("Refused while the engine is to move", func(t *testing.T) {
		game := NewGame("123", "p", PlayerX, "hard", false)
		play(t, game.Board, game.History, 4, 0, 8)

		assert.True(t, game.IsEngineTurn())
		assert.False(t, game.CanUndo())
	})

	t.Run("Refused on a finished game", func(t *testing.T) {
		game := NewGame("123", "p", PlayerX, "hard", false)
		play(t, game.Board, game.History, 0, 3, 1, 4, 2)

		assert.True(t, game.IsFinished())
		assert.False(t, game.CanUndo())
		assert.False(t, game.IsEngineTurn())
	})
}

func TestGame_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Never touched", func(t *testing.T) {
		game := NewGame("123", "p", PlayerX, "hard", false)

		assert.False(t, game.Expired(now.Add(24*time.Hour)))
	})

	t.Run("Expires after the ttl", func(t *testing.T) {
		game := NewGame("123", "p", PlayerX, "hard", false)

		game.Touch(now, time.Minute)

		assert.False(t, game.Expired(now.Add(59*time.Second)))
		assert.True(t, game.Expired(now.Add(time.Minute)))
	})

	t.Run("Touch extends the expiry", func(t *testing.T) {
		game := NewGame("123", "p", PlayerX, "hard", false)
		game.Touch(now, time.Minute)

		game.Touch(now.Add(50*time.Second), time.Minute)

		assert.False(t, game.Expired(now.Add(90*time.Second)))
	})

	t.Run("Zero ttl disables expiry", func(t *testing.T) {
		game := NewGame("123", "p", PlayerX, "hard", false)
		game.Touch(now, time.Minute)

		game.Touch(now, 0)

		assert.False(t, game.Expired(now.Add(time.Hour)))
	})
}

func TestGame_Result(t *testing.T) {
	t.Run("Human win", func(t *testing.T) {
		game := NewGame("123", "p", PlayerX, "easy", false)
		play(t, game.Board, game.History, 0, 3, 1, 4, 2)

		result, ok := game.Result()

		require.True(t, ok)
		assert.Equal(t, ResultHumanWin, result)
	})

	t.Run("Engine win", func(t *testing.T) {
		game := NewGame("123", "p", PlayerO, "easy", false)
		play(t, game.Board, game.History, 0, 3, 1, 4, 2)

		result, ok := game.Result()

		require.True(t, ok)
		assert.Equal(t, ResultEngineWin, result)
	})

	t.Run("Draw", func(t *testing.T) {
		game := NewGame("123", "p", PlayerX, "hard", false)
		play(t, game.Board, game.History, 0, 4, 8, 1, 7, 6, 2, 5, 3)

		result, ok := game.Result()

		require.True(t, ok)
		assert.Equal(t, ResultDraw, result)
	})

	t.Run("Ongoing game has no result", func(t *testing.T) {
		game := NewGame("123", "p", PlayerX, "hard", false)
		play(t, game.Board, game.History, 4)

		_, ok := game.Result()

		assert.False(t, ok)
	})
}

func TestGame_Snapshot(t *testing.T) {
	// Given: a game with one pair played
	game := NewGame("123", "p", PlayerX, "hard", false)
	play(t, game.Board, game.History, 0, 4)

	// When: a snapshot is taken and the game moves on
	state := game.Snapshot()
	play(t, game.Board, game.History, 8)

	// Then: the snapshot kept the old position
	assert.Equal(t, [BoardSize]Mark{x, e, e, e, o, e, e, e, e}, state.Board)
	assert.Equal(t, PlayerX, state.Turn)
	assert.Equal(t, InProgress, state.Outcome)
	assert.Equal(t, []Move{NewMove(0, x), NewMove(4, o)}, state.Moves)
	assert.True(t, state.CanUndo)
	assert.False(t, state.CanRedo)
}

func TestStats(t *testing.T) {
	stats := &Stats{PlayerID: "p"}
	assert.Zero(t, stats.WinRate())

	stats.Add(ResultHumanWin)
	stats.Add(ResultEngineWin)
	stats.Add(ResultDraw)

	assert.Equal(t, 3, stats.TotalGames())
	assert.Equal(t, 33, stats.WinRate())

	stats.Add(ResultHumanWin)
	assert.Equal(t, 50, stats.WinRate())

	stats.Add(ResultHumanWin)
	assert.Equal(t, 60, stats.WinRate())
}
