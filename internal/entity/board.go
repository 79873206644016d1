package entity

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const BoardSize = 9

// WinLines lists rows, then columns, then diagonals.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid in row-major order. The zero value is an empty board.
// Cells change only through Apply and Clear; a Board copied by value is an
// independent scratch board.
type Board struct {
	cells [BoardSize]Mark
}

func NewBoard() *Board {
	return &Board{}
}

// FromCells builds a board from raw cells and checks it could occur in a legal game.
func FromCells(cells [BoardSize]Mark) (Board, error) {
	board := Board{cells: cells}
	if err := board.Validate(); err != nil {
		return Board{}, err
	}

	return board, nil
}

// Apply places mark on the cell at index. A failed Apply leaves the board unchanged.
func (that *Board) Apply(index int, mark Mark) error {
	if index < 0 || index >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrIndexOutOfRange, index)
	}

	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that.cells[index] != Empty {
		return fmt.Errorf("%w: cell %d", apperror.ErrOccupiedCell, index)
	}

	that.cells[index] = mark

	return nil
}

// Clear empties the cell at index. Out of range indices are ignored.
func (that *Board) Clear(index int) {
	if index < 0 || index >= BoardSize {
		return
	}

	that.cells[index] = Empty
}

// At returns the mark at index, Empty for out of range indices.
func (that *Board) At(index int) Mark {
	if index < 0 || index >= BoardSize {
		return Empty
	}

	return that.cells[index]
}

// Cells returns a copy of the grid.
func (that *Board) Cells() [BoardSize]Mark {
	return that.cells
}

// LegalMoves yields the empty cell indices in ascending order. The sequence
// reads the board lazily, at iteration time.
func (that *Board) LegalMoves() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range that.cells {
			if that.cells[i] != Empty {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}

func (that *Board) LegalMoveList() []int {
	moves := make([]int, 0, BoardSize)
	for index := range that.LegalMoves() {
		moves = append(moves, index)
	}

	return moves
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == Empty {
			return false
		}
	}

	return true
}

// Winner reports the outcome of the position.
func (that *Board) Winner() Outcome {
	for _, line := range WinLines {
		a, b, c := that.cells[line[0]], that.cells[line[1]], that.cells[line[2]]
		if a != Empty && a == b && b == c {
			return Win(a)
		}
	}

	if that.IsFull() {
		return Draw
	}

	return InProgress
}

// Turn derives the mark to move from the mark counts. X always moves first.
func (that *Board) Turn() Mark {
	x, o := that.counts()
	if x > o {
		return PlayerO
	}

	return PlayerX
}

// MoveCount is the number of marks on the board.
func (that *Board) MoveCount() int {
	x, o := that.counts()
	return x + o
}

// Validate checks the invariants of a board reachable in a legal game:
// X leads O by zero or one mark, and at most one mark owns a winning line.
func (that *Board) Validate() error {
	for i, cell := range that.cells {
		if cell != Empty && !cell.IsPlayer() {
			return fmt.Errorf("%w: cell %d holds %q", apperror.ErrInvalidBoard, i, cell)
		}
	}

	x, o := that.counts()
	if diff := x - o; diff < 0 || diff > 1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidBoard, x, o)
	}

	if winners := that.winningMarks(); len(winners) > 1 {
		return fmt.Errorf("%w: both marks complete a line", apperror.ErrInvalidBoard)
	}

	return nil
}

// String renders the grid as three rows, '.' for empty cells.
func (that *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(that.cells[row*3+col].symbol())
		}
	}

	return sb.String()
}

func (that *Board) counts() (x, o int) {
	for _, cell := range that.cells {
		switch cell {
		case PlayerX:
			x++
		case PlayerO:
			o++
		}
	}

	return x, o
}

// winningMarks returns every distinct mark that completes some line.
func (that *Board) winningMarks() []Mark {
	var marks []Mark
	for _, line := range WinLines {
		a, b, c := that.cells[line[0]], that.cells[line[1]], that.cells[line[2]]
		if a == Empty || a != b || b != c {
			continue
		}
		if !slices.Contains(marks, a) {
			marks = append(marks, a)
		}
	}

	return marks
}
