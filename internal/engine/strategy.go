package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Strategy picks the next move for mark on board.
type Strategy interface {
	ChooseMove(ctx context.Context, board entity.Board, mark entity.Mark) (entity.Move, error)
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(name string) (Difficulty, error) {
	switch difficulty := Difficulty(strings.ToLower(strings.TrimSpace(name))); difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, name)
	}
}

// NewStrategy maps a difficulty to its strategy. rng may be nil; it must not be
// shared with anything that does not go through the returned strategy.
func NewStrategy(difficulty Difficulty, rng *rand.Rand) (Strategy, error) {
	switch difficulty {
	case DifficultyEasy:
		return NewRandom(rng), nil
	case DifficultyMedium:
		return NewTactical(NewRandom(rng)), nil
	case DifficultyHard:
		return &Minimax{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}
}

// Minimax plays perfectly. OnSearch, when set, receives the counters of every search.
type Minimax struct {
	OnSearch func(Result, Stats)
}

func (that *Minimax) ChooseMove(ctx context.Context, board entity.Board, mark entity.Mark) (entity.Move, error) {
	result, stats, err := Search(ctx, board, mark)
	if err != nil {
		return entity.Move{}, err
	}

	if that.OnSearch != nil {
		that.OnSearch(result, stats)
	}

	return entity.NewMove(result.Index, mark), nil
}

// Random plays a uniformly random legal move. It is safe for concurrent use and
// owns rng: every draw from it must go through the same Random.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom uses rng as the source of randomness, or a freshly seeded one when rng is nil.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // it's ok
	}

	return &Random{rng: rng}
}

func (that *Random) ChooseMove(ctx context.Context, board entity.Board, mark entity.Mark) (entity.Move, error) {
	if err := checkPosition(&board, mark); err != nil {
		return entity.Move{}, err
	}

	if err := ctx.Err(); err != nil {
		return entity.Move{}, err
	}

	return entity.NewMove(that.pick(board.LegalMoveList()), mark), nil
}

func (that *Random) pick(moves []int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return moves[that.rng.IntN(len(moves))]
}

// Tactical wins when it can, blocks when it must and otherwise moves at random.
type Tactical struct {
	random *Random
}

// NewTactical falls back to random. Pass the same Random to share one generator between strategies.
func NewTactical(random *Random) *Tactical {
	if random == nil {
		random = NewRandom(nil)
	}

	return &Tactical{random: random}
}

func (that *Tactical) ChooseMove(ctx context.Context, board entity.Board, mark entity.Mark) (entity.Move, error) {
	if err := checkPosition(&board, mark); err != nil {
		return entity.Move{}, err
	}

	if index, ok := completingMove(&board, mark); ok {
		return entity.NewMove(index, mark), nil
	}

	if index, ok := completingMove(&board, mark.Opponent()); ok {
		return entity.NewMove(index, mark), nil
	}

	return that.random.ChooseMove(ctx, board, mark)
}

// completingMove returns the lowest empty index that would give mark a line.
func completingMove(board *entity.Board, mark entity.Mark) (int, bool) {
	for index := range board.LegalMoves() {
		if err := board.Apply(index, mark); err != nil {
			continue
		}

		won := board.Winner().Winner == mark
		board.Clear(index)

		if won {
			return index, true
		}
	}

	return NoMove, false
}
