package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Mark is the content of a single cell: one of the two player symbols or Empty.
type Mark string

const (
	Empty   Mark = ""
	PlayerX Mark = "X"
	PlayerO Mark = "O"
)

// ParseMark accepts "x" or "o" in any case.
func ParseMark(value string) (Mark, error) {
	mark := Mark(strings.ToUpper(strings.TrimSpace(value)))
	if !mark.IsPlayer() {
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, value)
	}

	return mark, nil
}

// IsPlayer reports whether the mark is one of the two player symbols.
func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

func (that Mark) symbol() string {
	if that == Empty {
		return "."
	}
	return string(that)
}
