package entity

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// PlySpan is how many plies one undo or redo step covers: the human move
// plus the engine reply.
const PlySpan = 2

// History keeps the applied moves (done) and the undone moves (redo).
type History struct {
	done   []Move
	redo   []Move
	strict bool
}

// NewHistory creates empty stacks. In strict mode Undo and Redo on an empty
// stack fail with ErrPreconditionViolation instead of doing nothing.
func NewHistory(strict bool) *History {
	return &History{strict: strict}
}

// Record pushes a freshly applied move and drops everything that could be redone.
func (that *History) Record(move Move) {
	that.done = append(that.done, move)
	that.redo = nil
}

// Undo pops up to PlySpan moves, clearing each from the board, and returns how many were undone.
func (that *History) Undo(board *Board) (int, error) {
	if len(that.done) == 0 && that.strict {
		return 0, fmt.Errorf("%w: nothing to undo", apperror.ErrPreconditionViolation)
	}

	undone := 0
	for ; undone < PlySpan && len(that.done) > 0; undone++ {
		move := that.done[len(that.done)-1]
		that.done = that.done[:len(that.done)-1]

		board.Clear(move.Index)
		that.redo = append(that.redo, move)
	}

	return undone, nil
}

// Redo replays up to PlySpan moves in the order they were originally played.
func (that *History) Redo(board *Board) (int, error) {
	if len(that.redo) == 0 && that.strict {
		return 0, fmt.Errorf("%w: nothing to redo", apperror.ErrPreconditionViolation)
	}

	redone := 0
	for ; redone < PlySpan && len(that.redo) > 0; redone++ {
		move := that.redo[len(that.redo)-1]

		if err := board.Apply(move.Index, move.Mark); err != nil {
			return redone, fmt.Errorf("failed to redo move %d: %w", move.Index, err)
		}

		that.redo = that.redo[:len(that.redo)-1]
		that.done = append(that.done, move)
	}

	return redone, nil
}

// Checkpoint is a copy of both stacks taken by History.Checkpoint.
type Checkpoint struct {
	done []Move
	redo []Move
}

func (that *History) Checkpoint() Checkpoint {
	return Checkpoint{done: slices.Clone(that.done), redo: slices.Clone(that.redo)}
}

// Restore puts the history and board back to checkpoint. board must match the current done stack.
func (that *History) Restore(board *Board, checkpoint Checkpoint) error {
	for _, move := range that.done {
		board.Clear(move.Index)
	}

	for _, move := range checkpoint.done {
		if err := board.Apply(move.Index, move.Mark); err != nil {
			return fmt.Errorf("failed to restore move %d: %w", move.Index, err)
		}
	}

	that.done = slices.Clone(checkpoint.done)
	that.redo = slices.Clone(checkpoint.redo)

	return nil
}

// Reset empties both stacks.
func (that *History) Reset() {
	that.done = nil
	that.redo = nil
}

// Done returns a copy of the applied moves, oldest first.
func (that *History) Done() []Move {
	return append([]Move(nil), that.done...)
}

func (that *History) Len() int {
	return len(that.done)
}

func (that *History) Redoable() int {
	return len(that.redo)
}

func (that *History) IsStrict() bool {
	return that.strict
}

// Replay rebuilds a board from an empty grid by applying the done stack in order.
func (that *History) Replay() (Board, error) {
	var board Board
	for _, move := range that.done {
		if err := board.Apply(move.Index, move.Mark); err != nil {
			return Board{}, fmt.Errorf("failed to replay move %d: %w", move.Index, err)
		}
	}

	return board, nil
}
