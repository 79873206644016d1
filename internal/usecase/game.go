package usecase

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// GameUseCase is what the transports drive.
type GameUseCase interface {
	NewGame(ctx context.Context, playerID, mark, difficulty string) (*entity.GameState, error)
	GetGame(ctx context.Context, gameID string) (*entity.GameState, error)
	EndGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.GameState, error)
	Undo(ctx context.Context, gameID string) (*entity.GameState, error)
	Redo(ctx context.Context, gameID string) (*entity.GameState, error)
	Analyze(ctx context.Context, gameID string) ([]engine.Result, error)

	GetStats(ctx context.Context, playerID string) (*entity.Stats, error)
	ResetStats(ctx context.Context, playerID string) error
}

type gamePlayService interface {
	StartGame(ctx context.Context, playerID string, humanMark entity.Mark, difficulty string) (*entity.GameState, error)
	GetGameState(ctx context.Context, gameID string) (*entity.GameState, error)
	EndGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.GameState, error)
	Undo(ctx context.Context, gameID string) (*entity.GameState, error)
	Redo(ctx context.Context, gameID string) (*entity.GameState, error)
	Analyze(ctx context.Context, gameID string) ([]engine.Result, error)
}

type statsService interface {
	GetStats(ctx context.Context, playerID string) (*entity.Stats, error)
	ResetStats(ctx context.Context, playerID string) error
}
