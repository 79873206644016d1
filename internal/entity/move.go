package entity

// Move is a single ply: a mark placed on a cell.
type Move struct {
	Index int  `json:"index"`
	Mark  Mark `json:"mark"`
}

func NewMove(index int, mark Mark) Move {
	return Move{Index: index, Mark: mark}
}

func (that Move) IsValid() bool {
	return that.Index >= 0 && that.Index < BoardSize && that.Mark.IsPlayer()
}
