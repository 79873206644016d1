package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Move, error)
	Analyze(ctx context.Context, game *entity.Game) ([]engine.Result, error)
}

type botService struct {
	logger *slog.Logger

	strategies    map[engine.Difficulty]engine.Strategy
	searchTimeout time.Duration
}

// NewBotService builds one strategy per difficulty. The easy and medium levels share rng, which may be nil.
func NewBotService(logger *slog.Logger, rng *rand.Rand, searchTimeout time.Duration) BotService {
	log := logger.With("component", "bot")
	random := engine.NewRandom(rng)

	return &botService{
		logger: log,
		strategies: map[engine.Difficulty]engine.Strategy{
			engine.DifficultyEasy:   random,
			engine.DifficultyMedium: engine.NewTactical(random),
			engine.DifficultyHard: &engine.Minimax{OnSearch: func(result engine.Result, stats engine.Stats) {
				log.Debug("search finished", "index", result.Index, "score", result.Score, "nodes", stats.Nodes, "leaves", stats.Leaves)
			}},
		},
		searchTimeout: searchTimeout,
	}
}

// MakeTurn plays the engine's move. The caller holds the game lock.
func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (entity.Move, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	if game.IsFinished() {
		return entity.Move{}, apperror.ErrGameFinished
	}

	if !game.IsEngineTurn() {
		return entity.Move{}, apperror.ErrNotYourTurn
	}

	strategy, err := that.strategy(game.Difficulty)
	if err != nil {
		return entity.Move{}, err
	}

	if that.searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.searchTimeout)
		defer cancel()
	}

	move, err := strategy.ChooseMove(ctx, *game.Board, game.EngineMark)
	if err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to choose a move: %w", err)
	}

	if _, err = tictactoe.ApplyMove(game.Board, game.History, move.Index, move.Mark); err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot made turn", "cell", move.Index, "mark", move.Mark, "difficulty", game.Difficulty)

	return move, nil
}

// Analyze scores every legal move of the side to move.
func (that *botService) Analyze(ctx context.Context, game *entity.Game) ([]engine.Result, error) {
	if game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if that.searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.searchTimeout)
		defer cancel()
	}

	results, err := engine.ScoreMoves(ctx, *game.Board, game.Board.Turn())
	if err != nil {
		return nil, fmt.Errorf("failed to score moves: %w", err)
	}

	return results, nil
}

func (that *botService) strategy(name string) (engine.Strategy, error) {
	difficulty, err := engine.ParseDifficulty(name)
	if err != nil {
		return nil, err
	}

	return that.strategies[difficulty], nil
}
