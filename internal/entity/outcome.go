package entity

type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWin     Status = "win"
	StatusDraw    Status = "draw"
)

// Outcome is derived from a Board on demand and never stored as game state.
type Outcome struct {
	Status Status `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

var (
	InProgress = Outcome{Status: StatusOngoing}
	Draw       = Outcome{Status: StatusDraw}
)

func Win(mark Mark) Outcome {
	return Outcome{Status: StatusWin, Winner: mark}
}

func (that Outcome) IsTerminal() bool {
	return that.Status == StatusWin || that.Status == StatusDraw
}

func (that Outcome) IsWin() bool {
	return that.Status == StatusWin
}

func (that Outcome) IsDraw() bool {
	return that.Status == StatusDraw
}
