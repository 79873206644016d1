package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// GameRepository holds the sessions that are currently being played.
type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) int
	Count(ctx context.Context) int
}

// memoryGame keeps sessions for the lifetime of the process only.
type memoryGame struct {
	mu    sync.RWMutex
	games map[string]*entity.Game
}

func NewGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]*entity.Game),
	}
}

func (that *memoryGame) Create(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = game

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return game, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

// DeleteExpired drops every session whose expiry is at or before now and returns how many went.
func (that *memoryGame) DeleteExpired(_ context.Context, now time.Time) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	deleted := 0
	for id, game := range that.games {
		if game.Expired(now) {
			delete(that.games, id)
			deleted++
		}
	}

	return deleted
}

func (that *memoryGame) Count(_ context.Context) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.games)
}
