package tictactoe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func TestNewGame(t *testing.T) {
	board, history := NewGame()

	assert.Equal(t, [entity.BoardSize]entity.Mark{}, board.Cells())
	assert.Zero(t, history.Len())
	assert.Zero(t, history.Redoable())
	assert.False(t, history.IsStrict())
}

func TestApplyMove(t *testing.T) {
	t.Run("ApplyMove", func(t *testing.T) {
		// Given: a new game
		board, history := NewGame()

		// When: player X plays the center
		outcome, err := ApplyMove(board, history, 4, entity.PlayerX)

		// Then: the move is on the board and in the history
		require.NoError(t, err)
		assert.Equal(t, entity.InProgress, outcome)
		assert.Equal(t, entity.PlayerX, board.At(4))
		assert.Equal(t, []entity.Move{entity.NewMove(4, entity.PlayerX)}, history.Done())
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X on cell 0
		board, history := NewGame()
		_, err := ApplyMove(board, history, 0, entity.PlayerX)
		require.NoError(t, err)
		before := board.Cells()

		// When: O tries the same cell
		_, err = ApplyMove(board, history, 0, entity.PlayerO)

		// Then: ErrOccupiedCell is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrOccupiedCell)
		assert.Equal(t, before, board.Cells())
		assert.Equal(t, 1, history.Len())
	})

	t.Run("Error on index out of range", func(t *testing.T) {
		board, history := NewGame()

		_, err := ApplyMove(board, history, 9, entity.PlayerX)

		require.ErrorIs(t, err, apperror.ErrIndexOutOfRange)
		assert.Zero(t, history.Len())
	})

	t.Run("Error on not your turn", func(t *testing.T) {
		board, history := NewGame()

		_, err := ApplyMove(board, history, 0, entity.PlayerO)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Win ends the game", func(t *testing.T) {
		// Given: X is one move away from the top row
		board, history := NewGame()
		for i, index := range []int{0, 3, 1, 4} {
			mark := entity.PlayerX
			if i%2 == 1 {
				mark = entity.PlayerO
			}
			_, err := ApplyMove(board, history, index, mark)
			require.NoError(t, err)
		}

		// When: X completes it
		outcome, err := ApplyMove(board, history, 2, entity.PlayerX)

		// Then: X wins and further moves are refused
		require.NoError(t, err)
		assert.Equal(t, entity.Win(entity.PlayerX), outcome)

		_, err = ApplyMove(board, history, 5, entity.PlayerO)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestRequestBestMove(t *testing.T) {
	// Given: X opened in the corner
	board, history := NewGame()
	_, err := ApplyMove(board, history, 0, entity.PlayerX)
	require.NoError(t, err)

	// When: the best reply for O is requested
	move, err := RequestBestMove(context.Background(), board, entity.PlayerO)

	// Then: O is told to take the center and the board is untouched
	require.NoError(t, err)
	assert.Equal(t, entity.NewMove(4, entity.PlayerO), move)
	assert.Equal(t, entity.Empty, board.At(4))
}

func TestRequestBestMove_FinishedGame(t *testing.T) {
	board, err := entity.FromCells([entity.BoardSize]entity.Mark{
		entity.PlayerX, entity.PlayerO, entity.PlayerX,
		entity.PlayerX, entity.PlayerO, entity.PlayerO,
		entity.PlayerO, entity.PlayerX, entity.PlayerX,
	})
	require.NoError(t, err)

	_, err = RequestBestMove(context.Background(), &board, entity.PlayerO)

	require.ErrorIs(t, err, apperror.ErrPreconditionViolation)
}

func TestUndoRedo(t *testing.T) {
	// Given: a human move answered by the engine
	board, history := NewGame()
	_, err := ApplyMove(board, history, 0, entity.PlayerX)
	require.NoError(t, err)

	reply, err := RequestBestMove(context.Background(), board, entity.PlayerO)
	require.NoError(t, err)
	_, err = ApplyMove(board, history, reply.Index, reply.Mark)
	require.NoError(t, err)
	before := board.Cells()

	// When: the pair is undone
	undone, outcome, err := Undo(board, history)

	// Then: the board is empty again
	require.NoError(t, err)
	assert.Equal(t, 2, undone)
	assert.Equal(t, entity.InProgress, outcome)
	assert.Equal(t, [entity.BoardSize]entity.Mark{}, board.Cells())

	// When: the pair is redone
	redone, outcome, err := Redo(board, history)

	// Then: the board is back
	require.NoError(t, err)
	assert.Equal(t, 2, redone)
	assert.Equal(t, entity.InProgress, outcome)
	assert.Equal(t, before, board.Cells())
}

func TestUndo_StrictHistory(t *testing.T) {
	board, history := entity.NewBoard(), entity.NewHistory(true)

	_, _, err := Undo(board, history)
	require.ErrorIs(t, err, apperror.ErrPreconditionViolation)

	_, _, err = Redo(board, history)
	require.ErrorIs(t, err, apperror.ErrPreconditionViolation)
}
