// Package engine computes moves for a tic-tac-toe position.
//
// The search is plain exhaustive minimax: no pruning, no transposition cache
// and no depth adjustment of leaf scores. Among equally scored moves the
// lowest index wins, so results are reproducible.
package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	WinScore  = 10
	LossScore = -10
	DrawScore = 0

	// NoMove is the index reported for leaf positions.
	NoMove = -1
)

// Result is a candidate move and its game-theoretic score for the maximizer.
type Result struct {
	Index int `json:"index"`
	Score int `json:"score"`
}

// Stats counts the work done by one search.
type Stats struct {
	Nodes  int `json:"nodes"`
	Leaves int `json:"leaves"`
}

type searcher struct {
	ctx       context.Context
	maximizer entity.Mark
	stats     Stats
}

// BestMove returns the optimal move for maximizer, who is to move on board.
func BestMove(board entity.Board, maximizer entity.Mark) (Result, error) {
	return BestMoveContext(context.Background(), board, maximizer)
}

// BestMoveContext is BestMove with a cancellation check at every node.
func BestMoveContext(ctx context.Context, board entity.Board, maximizer entity.Mark) (Result, error) {
	result, _, err := Search(ctx, board, maximizer)
	return result, err
}

// Search runs the minimax search and reports how many nodes it visited.
// The board is taken by value and serves as the scratch board.
func Search(ctx context.Context, board entity.Board, maximizer entity.Mark) (Result, Stats, error) {
	if err := checkPosition(&board, maximizer); err != nil {
		return Result{}, Stats{}, err
	}

	s := &searcher{ctx: ctx, maximizer: maximizer}

	result, err := s.minimax(&board, maximizer)
	if err != nil {
		return Result{}, s.stats, err
	}

	return result, s.stats, nil
}

// ScoreMoves scores every legal move of maximizer in ascending index order.
func ScoreMoves(ctx context.Context, board entity.Board, maximizer entity.Mark) ([]Result, error) {
	if err := checkPosition(&board, maximizer); err != nil {
		return nil, err
	}

	s := &searcher{ctx: ctx, maximizer: maximizer}

	moves := board.LegalMoveList()
	results := make([]Result, 0, len(moves))
	for _, index := range moves {
		score, err := s.try(&board, index, maximizer)
		if err != nil {
			return nil, err
		}

		results = append(results, Result{Index: index, Score: score})
	}

	return results, nil
}

func checkPosition(board *entity.Board, maximizer entity.Mark) error {
	if !maximizer.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, maximizer)
	}

	if outcome := board.Winner(); outcome.IsTerminal() {
		return fmt.Errorf("%w: no move on a finished board (%s)", apperror.ErrPreconditionViolation, outcome.Status)
	}

	return nil
}

func (that *searcher) minimax(board *entity.Board, toMove entity.Mark) (Result, error) {
	if err := that.ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("search aborted: %w", err)
	}

	that.stats.Nodes++

	if outcome := board.Winner(); outcome.IsTerminal() {
		that.stats.Leaves++
		return Result{Index: NoMove, Score: that.leafScore(outcome)}, nil
	}

	maximizing := toMove == that.maximizer

	best := Result{Index: NoMove, Score: math.MaxInt}
	if maximizing {
		best.Score = math.MinInt
	}

	for _, index := range board.LegalMoveList() {
		score, err := that.try(board, index, toMove)
		if err != nil {
			return Result{}, err
		}

		// strict comparisons keep the lowest index among equal scores
		if maximizing && score > best.Score || !maximizing && score < best.Score {
			best = Result{Index: index, Score: score}
		}
	}

	return best, nil
}

// try plays index for mark, scores the reply tree and takes the move back.
func (that *searcher) try(board *entity.Board, index int, mark entity.Mark) (int, error) {
	if err := board.Apply(index, mark); err != nil {
		return 0, fmt.Errorf("failed to try move %d: %w", index, err)
	}
	defer board.Clear(index)

	reply, err := that.minimax(board, mark.Opponent())
	if err != nil {
		return 0, err
	}

	return reply.Score, nil
}

func (that *searcher) leafScore(outcome entity.Outcome) int {
	switch {
	case outcome.IsWin() && outcome.Winner == that.maximizer:
		return WinScore
	case outcome.IsWin():
		return LossScore
	default:
		return DrawScore
	}
}
