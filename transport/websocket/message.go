package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	actionState    = "game:state"
	actionTurn     = "game:turn"
	actionUndo     = "game:undo"
	actionRedo     = "game:redo"
	actionAnalysis = "game:analysis"
	actionError    = "error"
)

// Message is one frame in either direction.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Cell     *int              `json:"cell,omitempty"`
	Game     *entity.GameState `json:"game,omitempty"`
	Analysis []engine.Result   `json:"analysis,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func newMessage(action string, payload Payload) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{Action: action, Payload: raw}, nil
}
