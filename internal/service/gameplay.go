package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// GamePlayService runs human-versus-engine sessions. Every method returns a
// snapshot taken under the session lock.
type GamePlayService interface {
	StartGame(ctx context.Context, playerID string, humanMark entity.Mark, difficulty string) (*entity.GameState, error)
	GetGameState(ctx context.Context, gameID string) (*entity.GameState, error)
	EndGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.GameState, error)
	Undo(ctx context.Context, gameID string) (*entity.GameState, error)
	Redo(ctx context.Context, gameID string) (*entity.GameState, error)
	Analyze(ctx context.Context, gameID string) ([]engine.Result, error)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService  GameService
	botService   BotService
	statsService StatsService
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, botService BotService, statsService StatsService) GamePlayService {
	return &gamePlayService{
		logger:       logger,
		gameService:  gameService,
		botService:   botService,
		statsService: statsService,
	}
}

// StartGame creates a session. When the human plays O the engine opens.
func (that *gamePlayService) StartGame(ctx context.Context, playerID string, humanMark entity.Mark, difficulty string) (*entity.GameState, error) {
	game, err := that.gameService.CreateGame(ctx, playerID, humanMark, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create new game: %w", err)
	}

	game.Lock()
	defer game.Unlock()

	if game.IsEngineTurn() {
		if _, err = that.botService.MakeTurn(ctx, game); err != nil {
			that.CleanupGame(ctx, game)
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	that.gameService.KeepAlive(game)

	return game.Snapshot(), nil
}

func (that *gamePlayService) GetGameState(ctx context.Context, gameID string) (*entity.GameState, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Lock()
	defer game.Unlock()

	return game.Snapshot(), nil
}

func (that *gamePlayService) EndGame(ctx context.Context, gameID string) error {
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	return nil
}

// MakeTurn plays the human move on cell and, unless that ended the game, the engine reply.
// If the engine cannot answer, the human move is taken back and the game is left as it was.
func (that *gamePlayService) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.GameState, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Lock()
	defer game.Unlock()

	if game.IsEngineTurn() {
		return nil, apperror.ErrNotYourTurn
	}

	checkpoint := game.History.Checkpoint()

	if _, err = tictactoe.ApplyMove(game.Board, game.History, cell, game.HumanMark); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if !game.IsFinished() {
		if _, err = that.botService.MakeTurn(ctx, game); err != nil {
			that.rollback(game, checkpoint)
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if game.IsFinished() {
		that.recordResult(ctx, game)
	}

	that.gameService.KeepAlive(game)

	return game.Snapshot(), nil
}

// Undo takes back the last human move together with the engine reply.
func (that *gamePlayService) Undo(ctx context.Context, gameID string) (*entity.GameState, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Lock()
	defer game.Unlock()

	if err = checkRewind(game, game.CanUndo()); err != nil {
		return nil, fmt.Errorf("failed to undo: %w", err)
	}

	if game.CanUndo() {
		if _, _, err = tictactoe.Undo(game.Board, game.History); err != nil {
			return nil, err
		}
		that.gameService.KeepAlive(game)
	}

	return game.Snapshot(), nil
}

func (that *gamePlayService) Redo(ctx context.Context, gameID string) (*entity.GameState, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Lock()
	defer game.Unlock()

	if err = checkRewind(game, game.CanRedo()); err != nil {
		return nil, fmt.Errorf("failed to redo: %w", err)
	}

	if game.CanRedo() {
		if _, _, err = tictactoe.Redo(game.Board, game.History); err != nil {
			return nil, err
		}
		that.gameService.KeepAlive(game)
	}

	return game.Snapshot(), nil
}

func (that *gamePlayService) Analyze(ctx context.Context, gameID string) ([]engine.Result, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Lock()
	defer game.Unlock()

	results, err := that.botService.Analyze(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze game: %w", err)
	}

	return results, nil
}

func (that *gamePlayService) CleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "cleanupGame", "gameID", game.ID)

	if err := that.gameService.DeleteGame(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}
}

func (that *gamePlayService) rollback(game *entity.Game, checkpoint entity.Checkpoint) {
	log := that.logger.With("method", "rollback", "gameID", game.ID)

	if err := game.History.Restore(game.Board, checkpoint); err != nil {
		log.Error("failed to take back the human move", "error", err)
	}
}

func (that *gamePlayService) recordResult(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordResult", "gameID", game.ID, "playerID", game.PlayerID)

	stats, err := that.statsService.RecordResult(ctx, game)
	if err != nil {
		log.Error("failed to record result", "error", err)
		return
	}

	if stats != nil {
		log.Info("game finished", "outcome", game.Outcome().Status, "winner", game.Outcome().Winner, "winRate", stats.WinRate())
	}
}

// checkRewind refuses undo and redo on finished games and, in strict mode, when there is nothing to rewind.
func checkRewind(game *entity.Game, possible bool) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if game.IsEngineTurn() {
		return apperror.ErrNotYourTurn
	}

	if !possible && game.History.IsStrict() {
		return apperror.ErrPreconditionViolation
	}

	return nil
}
