package engine

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		name string
		want Difficulty
	}{
		{name: "easy", want: DifficultyEasy},
		{name: "Medium", want: DifficultyMedium},
		{name: " hard ", want: DifficultyHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDifficulty(tt.name)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Unknown name", func(t *testing.T) {
		_, err := ParseDifficulty("impossible")

		require.ErrorIs(t, err, apperror.ErrUnknownDifficulty)
	})
}

func TestNewStrategy(t *testing.T) {
	easy, err := NewStrategy(DifficultyEasy, seeded())
	require.NoError(t, err)
	assert.IsType(t, &Random{}, easy)

	medium, err := NewStrategy(DifficultyMedium, seeded())
	require.NoError(t, err)
	assert.IsType(t, &Tactical{}, medium)

	hard, err := NewStrategy(DifficultyHard, nil)
	require.NoError(t, err)
	assert.IsType(t, &Minimax{}, hard)

	_, err = NewStrategy("nightmare", nil)
	require.ErrorIs(t, err, apperror.ErrUnknownDifficulty)
}

func TestMinimax_ChooseMove(t *testing.T) {
	board := mustBoard(t, [entity.BoardSize]entity.Mark{x, e, e, e, e, e, e, e, e})

	var searched Stats
	strategy := &Minimax{OnSearch: func(_ Result, stats Stats) { searched = stats }}

	move, err := strategy.ChooseMove(context.Background(), board, o)

	require.NoError(t, err)
	assert.Equal(t, entity.NewMove(4, o), move)
	assert.Positive(t, searched.Nodes)
	assert.Positive(t, searched.Leaves)
}

func TestRandom_ChooseMove(t *testing.T) {
	t.Run("Always legal", func(t *testing.T) {
		// Given: a board with three empty cells
		board := mustBoard(t, [entity.BoardSize]entity.Mark{
			x, o, x,
			e, o, e,
			o, x, e,
		})
		random := NewRandom(seeded())

		for i := 0; i < 50; i++ {
			// When: a move is drawn
			move, err := random.ChooseMove(context.Background(), board, x)

			// Then: it lands on an empty cell
			require.NoError(t, err)
			assert.Contains(t, []int{3, 5, 8}, move.Index)
			assert.Equal(t, x, move.Mark)
		}
	})

	t.Run("Same seed, same moves", func(t *testing.T) {
		first, second := NewRandom(seeded()), NewRandom(seeded())

		for i := 0; i < 10; i++ {
			a, err := first.ChooseMove(context.Background(), entity.Board{}, x)
			require.NoError(t, err)
			b, err := second.ChooseMove(context.Background(), entity.Board{}, x)
			require.NoError(t, err)

			assert.Equal(t, a, b)
		}
	})

	t.Run("Error on a finished board", func(t *testing.T) {
		board := mustBoard(t, [entity.BoardSize]entity.Mark{x, x, x, o, o, e, e, e, e})

		_, err := NewRandom(seeded()).ChooseMove(context.Background(), board, o)

		require.ErrorIs(t, err, apperror.ErrPreconditionViolation)
	})
}

func TestTactical_ChooseMove(t *testing.T) {
	t.Run("Takes the win over the block", func(t *testing.T) {
		// Given: both sides threaten a line, O to move
		board := mustBoard(t, [entity.BoardSize]entity.Mark{
			x, x, e,
			o, o, e,
			e, e, x,
		})

		move, err := NewTactical(NewRandom(seeded())).ChooseMove(context.Background(), board, o)

		// Then: O completes its own row
		require.NoError(t, err)
		assert.Equal(t, entity.NewMove(5, o), move)
	})

	t.Run("Blocks the opponent's line", func(t *testing.T) {
		board := mustBoard(t, [entity.BoardSize]entity.Mark{
			x, x, e,
			e, o, e,
			e, e, e,
		})

		move, err := NewTactical(NewRandom(seeded())).ChooseMove(context.Background(), board, o)

		require.NoError(t, err)
		assert.Equal(t, entity.NewMove(2, o), move)
	})

	t.Run("Falls back to a legal random move", func(t *testing.T) {
		board := mustBoard(t, [entity.BoardSize]entity.Mark{x, e, e, e, e, e, e, e, e})

		move, err := NewTactical(NewRandom(seeded())).ChooseMove(context.Background(), board, o)

		require.NoError(t, err)
		assert.Contains(t, board.LegalMoveList(), move.Index)
	})
}

func TestRandom_SharedBetweenStrategies(t *testing.T) {
	// Given: easy and medium drawing from one generator
	random := NewRandom(seeded())
	strategies := []Strategy{random, NewTactical(random)}
	board := mustBoard(t, [entity.BoardSize]entity.Mark{x, e, e, e, e, e, e, e, e})

	// When: both are used from many goroutines at once
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		for _, strategy := range strategies {
			wg.Add(1)
			go func(strategy Strategy) {
				defer wg.Done()

				move, err := strategy.ChooseMove(context.Background(), board, o)

				// Then: every move is legal
				assert.NoError(t, err)
				assert.Contains(t, board.LegalMoveList(), move.Index)
			}(strategy)
		}
	}
	wg.Wait()
}
