package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type StatsService interface {
	RecordResult(ctx context.Context, game *entity.Game) (*entity.Stats, error)
	GetStats(ctx context.Context, playerID string) (*entity.Stats, error)
	ResetStats(ctx context.Context, playerID string) error
}

type statsRepo interface {
	Record(ctx context.Context, playerID string, result entity.GameResult) (*entity.Stats, error)
	GetByPlayerID(ctx context.Context, playerID string) (*entity.Stats, error)
	DeleteByPlayerID(ctx context.Context, playerID string) error
}

type statsService struct {
	statsRepo statsRepo
}

func NewStatsService(statsRepo statsRepo) StatsService {
	return &statsService{
		statsRepo: statsRepo,
	}
}

// RecordResult adds a finished game to its player's scoreboard, once.
// It returns nil stats when there was nothing to record. The caller holds the game lock.
func (that *statsService) RecordResult(ctx context.Context, game *entity.Game) (*entity.Stats, error) {
	if game.Scored {
		return nil, nil
	}

	result, ok := game.Result()
	if !ok {
		return nil, nil
	}

	stats, err := that.statsRepo.Record(ctx, game.PlayerID, result)
	if err != nil {
		return nil, fmt.Errorf("record result %w", err)
	}

	game.Scored = true

	return stats, nil
}

func (that *statsService) GetStats(ctx context.Context, playerID string) (*entity.Stats, error) {
	stats, err := that.statsRepo.GetByPlayerID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get stats by player id %w", err)
	}

	return stats, nil
}

func (that *statsService) ResetStats(ctx context.Context, playerID string) error {
	if err := that.statsRepo.DeleteByPlayerID(ctx, playerID); err != nil {
		return fmt.Errorf("reset stats %w", err)
	}

	return nil
}
