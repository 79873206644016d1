// Package tictactoe is the entry point for hosts of the engine: it ties the
// board, the move history and the search together.
package tictactoe

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// NewGame returns an empty board and an empty non-strict history.
func NewGame() (*entity.Board, *entity.History) {
	return entity.NewBoard(), entity.NewHistory(false)
}

// ApplyMove plays index for mark and records it. It returns the outcome after the move.
func ApplyMove(board *entity.Board, history *entity.History, index int, mark entity.Mark) (entity.Outcome, error) {
	if board.Winner().IsTerminal() {
		return board.Winner(), apperror.ErrGameFinished
	}

	if err := validateTurn(board, mark); err != nil {
		return entity.InProgress, fmt.Errorf("invalid turn: %w", err)
	}

	if err := board.Apply(index, mark); err != nil {
		return entity.InProgress, fmt.Errorf("invalid turn: %w", err)
	}

	history.Record(entity.NewMove(index, mark))

	return board.Winner(), nil
}

// RequestBestMove returns the optimal move for mark. The board is not modified.
func RequestBestMove(ctx context.Context, board *entity.Board, mark entity.Mark) (entity.Move, error) {
	return (&engine.Minimax{}).ChooseMove(ctx, *board, mark)
}

// Undo takes back the last human and engine moves.
func Undo(board *entity.Board, history *entity.History) (int, entity.Outcome, error) {
	undone, err := history.Undo(board)
	if err != nil {
		return 0, board.Winner(), fmt.Errorf("failed to undo: %w", err)
	}

	return undone, board.Winner(), nil
}

// Redo replays what the last Undo took back.
func Redo(board *entity.Board, history *entity.History) (int, entity.Outcome, error) {
	redone, err := history.Redo(board)
	if err != nil {
		return redone, board.Winner(), fmt.Errorf("failed to redo: %w", err)
	}

	return redone, board.Winner(), nil
}

func validateTurn(board *entity.Board, mark entity.Mark) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if board.Turn() != mark {
		return apperror.ErrNotYourTurn
	}

	return nil
}
