// Package ai selects moves for the computer opponent. Easy picks a
// random empty cell; Medium and Hard run minimax over disposable board
// copies, Medium with a 3-ply depth limit and Hard with a limit of 9,
// which on a 3x3 board is a full-tree search.
package ai

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gridrock/tictactoe-backend/internal/apperror"
	"github.com/gridrock/tictactoe-backend/internal/entity"
)

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// winScore is the base value of a decided game; the depth adjustment
// below keeps every adjusted score strictly inside (-winScore, winScore).
const winScore = 10

// Difficulty selects how far ahead the engine searches.
type Difficulty string

func (that Difficulty) IsValid() bool {
	return that == Easy || that == Medium || that == Hard
}

// maxDepth is the search depth limit in plies.
func (that Difficulty) maxDepth() int {
	switch that {
	case Medium:
		return 3
	case Hard:
		return entity.BoardSize * entity.BoardSize
	default:
		return 1
	}
}

// SelectMove picks a move for the player whose turn it is. It fails
// with ErrNoLegalMove when the game is over or the board is full.
func SelectMove(game *entity.Game, difficulty Difficulty) (int, int, error) {
	moves := game.LegalMoves()
	if game.IsFinished() || len(moves) == 0 {
		return 0, 0, apperror.ErrNoLegalMove
	}

	if difficulty == Easy {
		move := moves[rand.Intn(len(moves))] //nolint: gosec // it's ok
		return move[0], move[1], nil
	}

	return bestMove(game, difficulty.maxDepth())
}

// bestMove runs minimax from the current position for the player to
// move. Ties are broken by keeping the first best-scoring move in
// row-major order, so equally good positions always produce the same
// choice.
func bestMove(game *entity.Game, maxDepth int) (int, int, error) {
	aiMark := game.CurrentTurn

	bestScore := math.MinInt
	var best [2]int

	for _, move := range game.LegalMoves() {
		child := game.Clone()
		if _, err := child.AttemptMove(move[0], move[1], aiMark); err != nil {
			return 0, 0, fmt.Errorf("failed to simulate move: %w", err)
		}

		if score := minimax(child, aiMark, 1, maxDepth, false); score > bestScore {
			bestScore = score
			best = move
		}
	}

	return best[0], best[1], nil
}

// minimax scores a position from aiMark's point of view. A win is worth
// more the sooner it happens and a loss less the later it happens, so
// the engine takes the quickest win and drags out a forced loss. A
// depth-limit cutoff on a live position scores 0 (neutral).
func minimax(game *entity.Game, aiMark entity.Mark, depth, maxDepth int, maximizing bool) int {
	if winner, ok := game.Status.Winner(); ok {
		if winner == aiMark {
			return winScore - depth
		}
		return -winScore + depth
	}

	if game.Status.IsDraw() || depth == maxDepth {
		return 0
	}

	if maximizing {
		best := math.MinInt
		for _, move := range game.LegalMoves() {
			child := game.Clone()
			if _, err := child.AttemptMove(move[0], move[1], child.CurrentTurn); err != nil {
				continue
			}
			if score := minimax(child, aiMark, depth+1, maxDepth, false); score > best {
				best = score
			}
		}
		return best
	}

	worst := math.MaxInt
	for _, move := range game.LegalMoves() {
		child := game.Clone()
		if _, err := child.AttemptMove(move[0], move[1], child.CurrentTurn); err != nil {
			continue
		}
		if score := minimax(child, aiMark, depth+1, maxDepth, true); score < worst {
			worst = score
		}
	}
	return worst
}
