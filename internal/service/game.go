package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// SessionTTL is how long a session stays in memory after its last change.
// Zero keeps it until it is deleted explicitly.
type SessionTTL struct {
	Idle     time.Duration
	Finished time.Duration
}

type GameService interface {
	CreateGame(ctx context.Context, playerID string, humanMark entity.Mark, difficulty string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	GetGameByID(ctx context.Context, id string) (*entity.Game, error)

	// KeepAlive restarts the expiry of game. The caller holds the game lock.
	KeepAlive(game *entity.Game)
	DeleteExpired(ctx context.Context) int
	RunSweeper(ctx context.Context, interval time.Duration)
}

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) int
}

type gameService struct {
	logger *slog.Logger

	gameRepo      gameRepo
	strictHistory bool
	ttl           SessionTTL

	now func() time.Time
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo, strictHistory bool, ttl SessionTTL) GameService {
	return &gameService{
		logger:        logger,
		gameRepo:      gameRepo,
		strictHistory: strictHistory,
		ttl:           ttl,
		now:           time.Now,
	}
}

func (that *gameService) CreateGame(ctx context.Context, playerID string, humanMark entity.Mark, difficulty string) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), playerID, humanMark, difficulty, that.strictHistory)
	game.Touch(that.now(), that.ttl.Idle)

	if err := that.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game in storage: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// KeepAlive uses the finished ttl once the game is over.
func (that *gameService) KeepAlive(game *entity.Game) {
	ttl := that.ttl.Idle
	if game.IsFinished() {
		ttl = that.ttl.Finished
	}

	game.Touch(that.now(), ttl)
}

func (that *gameService) DeleteExpired(ctx context.Context) int {
	return that.gameRepo.DeleteExpired(ctx, that.now())
}

// RunSweeper deletes expired sessions every interval until ctx is done.
func (that *gameService) RunSweeper(ctx context.Context, interval time.Duration) {
	log := that.logger.With("method", "RunSweeper")

	if interval <= 0 {
		log.Warn("session sweeper disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if deleted := that.DeleteExpired(ctx); deleted > 0 {
				log.Info("expired sessions removed", "count", deleted)
			}
		}
	}
}
