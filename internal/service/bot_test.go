package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func newBot() BotService {
	return NewBotService(discardLogger(), rand.New(rand.NewPCG(7, 11)), time.Minute)
}

func humanMove(t *testing.T, game *entity.Game, cell int) {
	t.Helper()

	_, err := tictactoe.ApplyMove(game.Board, game.History, cell, game.HumanMark)
	require.NoError(t, err)
}

func TestBotService_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Hard bot answers a corner with the center", func(t *testing.T) {
		// Given: the human opened in the corner
		game := entity.NewGame("123", "p", entity.PlayerX, "hard", false)
		humanMove(t, game, 0)

		// When: the bot moves
		move, err := newBot().MakeTurn(ctx, game)

		// Then: it took the center and recorded the move
		require.NoError(t, err)
		assert.Equal(t, entity.NewMove(4, entity.PlayerO), move)
		assert.Equal(t, entity.PlayerO, game.Board.At(4))
		assert.Equal(t, 2, game.History.Len())
	})

	t.Run("Hard bot opens in the first corner", func(t *testing.T) {
		game := entity.NewGame("123", "p", entity.PlayerO, "hard", false)

		move, err := newBot().MakeTurn(ctx, game)

		require.NoError(t, err)
		assert.Equal(t, entity.NewMove(0, entity.PlayerX), move)
	})

	t.Run("Easy bot plays a legal cell", func(t *testing.T) {
		game := entity.NewGame("123", "p", entity.PlayerX, "easy", false)
		humanMove(t, game, 4)
		legal := game.Board.LegalMoveList()

		move, err := newBot().MakeTurn(ctx, game)

		require.NoError(t, err)
		assert.Contains(t, legal, move.Index)
	})

	t.Run("Error on human's turn", func(t *testing.T) {
		game := entity.NewGame("123", "p", entity.PlayerX, "hard", false)

		_, err := newBot().MakeTurn(ctx, game)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Error on finished game", func(t *testing.T) {
		game := entity.NewGame("123", "p", entity.PlayerX, "hard", false)
		for _, cell := range []int{0, 3, 1, 4, 2} {
			require.NoError(t, game.Board.Apply(cell, game.Board.Turn()))
		}

		_, err := newBot().MakeTurn(ctx, game)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Error on unknown difficulty", func(t *testing.T) {
		game := entity.NewGame("123", "p", entity.PlayerO, "godlike", false)

		_, err := newBot().MakeTurn(ctx, game)

		require.ErrorIs(t, err, apperror.ErrUnknownDifficulty)
		assert.Zero(t, game.History.Len())
	})

	t.Run("Error on canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		game := entity.NewGame("123", "p", entity.PlayerO, "hard", false)

		_, err := newBot().MakeTurn(canceled, game)

		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, game.Board.MoveCount())
	})
}

func TestBotService_MakeTurn_ConcurrentRandomLevels(t *testing.T) {
	// Given: one bot serving easy and medium games
	bot := newBot()

	// When: many games ask for a reply at the same time
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		for _, difficulty := range []string{"easy", "medium"} {
			wg.Add(1)
			go func(difficulty string) {
				defer wg.Done()

				game := entity.NewGame("123", "p", entity.PlayerO, difficulty, false)
				move, err := bot.MakeTurn(context.Background(), game)

				// Then: each game gets its own legal opening
				assert.NoError(t, err)
				assert.True(t, move.IsValid())
				assert.Equal(t, 1, game.History.Len())
			}(difficulty)
		}
	}
	wg.Wait()
}

func TestBotService_Analyze(t *testing.T) {
	// Given: the human opened in the corner
	game := entity.NewGame("123", "p", entity.PlayerX, "easy", false)
	humanMove(t, game, 0)

	// When: the position is analyzed
	results, err := newBot().Analyze(context.Background(), game)

	// Then: every reply is scored and only the center holds the draw
	require.NoError(t, err)
	require.Len(t, results, 8)
	for _, result := range results {
		if result.Index == 4 {
			assert.Equal(t, engine.DrawScore, result.Score)
			continue
		}
		assert.Equal(t, engine.LossScore, result.Score, "cell %d", result.Index)
	}
}
