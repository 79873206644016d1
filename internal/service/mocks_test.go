package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockStatsService struct {
	mock.Mock
}

func (that *mockStatsService) RecordResult(ctx context.Context, game *entity.Game) (*entity.Stats, error) {
	args := that.Called(ctx, game)
	stats, _ := args.Get(0).(*entity.Stats)
	return stats, args.Error(1)
}

func (that *mockStatsService) GetStats(ctx context.Context, playerID string) (*entity.Stats, error) {
	args := that.Called(ctx, playerID)
	stats, _ := args.Get(0).(*entity.Stats)
	return stats, args.Error(1)
}

func (that *mockStatsService) ResetStats(ctx context.Context, playerID string) error {
	return that.Called(ctx, playerID).Error(0)
}

type mockStatsRepo struct {
	mock.Mock
}

func (that *mockStatsRepo) Record(ctx context.Context, playerID string, result entity.GameResult) (*entity.Stats, error) {
	args := that.Called(ctx, playerID, result)
	stats, _ := args.Get(0).(*entity.Stats)
	return stats, args.Error(1)
}

func (that *mockStatsRepo) GetByPlayerID(ctx context.Context, playerID string) (*entity.Stats, error) {
	args := that.Called(ctx, playerID)
	stats, _ := args.Get(0).(*entity.Stats)
	return stats, args.Error(1)
}

func (that *mockStatsRepo) DeleteByPlayerID(ctx context.Context, playerID string) error {
	return that.Called(ctx, playerID).Error(0)
}
