package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	fieldHumanWins  = "human_wins"
	fieldEngineWins = "engine_wins"
	fieldDraws      = "draws"
)

// StatsRepository keeps the per-player scoreboard.
type StatsRepository interface {
	Record(ctx context.Context, playerID string, result entity.GameResult) (*entity.Stats, error)
	GetByPlayerID(ctx context.Context, playerID string) (*entity.Stats, error)
	DeleteByPlayerID(ctx context.Context, playerID string) error
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func statsKey(playerID string) string {
	return "stats:" + playerID
}

// Record increments the counter of result and returns the updated scoreboard.
func (that *dbStats) Record(ctx context.Context, playerID string, result entity.GameResult) (*entity.Stats, error) {
	field, err := resultField(result)
	if err != nil {
		return nil, err
	}

	key := statsKey(playerID)

	var all *redis.MapStringStringCmd
	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, field, 1)
		all = pipe.HGetAll(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record result: %w", err)
	}

	return parseStats(playerID, all.Val())
}

// GetByPlayerID returns zero counters for a player who has not finished a game yet.
func (that *dbStats) GetByPlayerID(ctx context.Context, playerID string) (*entity.Stats, error) {
	data, err := that.client.HGetAll(ctx, statsKey(playerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats by player ID: %w", err)
	}

	return parseStats(playerID, data)
}

func (that *dbStats) DeleteByPlayerID(ctx context.Context, playerID string) error {
	if err := that.client.Del(ctx, statsKey(playerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete stats by player ID: %w", err)
	}

	return nil
}

func resultField(result entity.GameResult) (string, error) {
	switch result {
	case entity.ResultHumanWin:
		return fieldHumanWins, nil
	case entity.ResultEngineWin:
		return fieldEngineWins, nil
	case entity.ResultDraw:
		return fieldDraws, nil
	default:
		return "", fmt.Errorf("unknown game result %q", result)
	}
}

func parseStats(playerID string, data map[string]string) (*entity.Stats, error) {
	stats := &entity.Stats{PlayerID: playerID}

	for field, target := range map[string]*int{
		fieldHumanWins:  &stats.HumanWins,
		fieldEngineWins: &stats.EngineWins,
		fieldDraws:      &stats.Draws,
	} {
		raw, ok := data[field]
		if !ok {
			continue
		}

		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field, err)
		}

		*target = value
	}

	return stats, nil
}
