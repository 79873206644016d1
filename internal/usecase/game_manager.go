package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type GameManager struct {
	logger *slog.Logger

	gamePlayService gamePlayService
	statsService    statsService

	defaultDifficulty engine.Difficulty
}

var _ GameUseCase = (*GameManager)(nil)

func NewGameManager(logger *slog.Logger, gamePlayService gamePlayService, statsService statsService, defaultDifficulty engine.Difficulty) *GameManager {
	return &GameManager{
		logger: logger,

		gamePlayService: gamePlayService,
		statsService:    statsService,

		defaultDifficulty: defaultDifficulty,
	}
}

// NewGame starts a session. An empty playerID gets a fresh one, an empty mark means X
// and an empty difficulty means the configured default.
func (that *GameManager) NewGame(ctx context.Context, playerID, mark, difficulty string) (*entity.GameState, error) {
	log := that.logger.With("method", "NewGame")

	if playerID == "" {
		playerID = uuid.NewString()
	}

	humanMark := entity.PlayerX
	if mark != "" {
		parsed, err := entity.ParseMark(mark)
		if err != nil {
			return nil, err
		}
		humanMark = parsed
	}

	level := that.defaultDifficulty
	if difficulty != "" {
		parsed, err := engine.ParseDifficulty(difficulty)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	state, err := that.gamePlayService.StartGame(ctx, playerID, humanMark, string(level))
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	log.Info("game started", "gameID", state.ID, "playerID", playerID, "humanMark", humanMark, "difficulty", level)

	return state, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.GameState, error) {
	state, err := that.gamePlayService.GetGameState(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}

	return state, nil
}

func (that *GameManager) EndGame(ctx context.Context, gameID string) error {
	if err := that.gamePlayService.EndGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	return nil
}

func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.GameState, error) {
	state, err := that.gamePlayService.MakeTurn(ctx, gameID, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	return state, nil
}

func (that *GameManager) Undo(ctx context.Context, gameID string) (*entity.GameState, error) {
	state, err := that.gamePlayService.Undo(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to undo: %w", err)
	}

	return state, nil
}

func (that *GameManager) Redo(ctx context.Context, gameID string) (*entity.GameState, error) {
	state, err := that.gamePlayService.Redo(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to redo: %w", err)
	}

	return state, nil
}

func (that *GameManager) Analyze(ctx context.Context, gameID string) ([]engine.Result, error) {
	results, err := that.gamePlayService.Analyze(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze: %w", err)
	}

	return results, nil
}

func (that *GameManager) GetStats(ctx context.Context, playerID string) (*entity.Stats, error) {
	stats, err := that.statsService.GetStats(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

func (that *GameManager) ResetStats(ctx context.Context, playerID string) error {
	log := that.logger.With("method", "ResetStats")

	if err := that.statsService.ResetStats(ctx, playerID); err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}

	log.Info("stats reset", "playerID", playerID)

	return nil
}
