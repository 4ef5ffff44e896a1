package entity

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gridrock/tictactoe-backend/internal/apperror"
)

// BoardSize is fixed: the rules of the game are 3x3 only.
const BoardSize = 3

// Board is the 3x3 grid, row-major, value-typed so a plain assignment
// produces an independent copy.
type Board [BoardSize][BoardSize]Cell

// winLines are all 8 lines that decide a game: 3 rows, 3 columns and
// both diagonals, as (row, col) coordinates.
var winLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

func (that Board) IsFull() bool {
	for row := range that {
		for col := range that[row] {
			if that[row][col].IsEmpty() {
				return false
			}
		}
	}
	return true
}

func (that Board) CountOccupied() int {
	count := 0
	for row := range that {
		for col := range that[row] {
			if !that[row][col].IsEmpty() {
				count++
			}
		}
	}
	return count
}

// Game is the authoritative state of one match. It is mutated only
// through AttemptMove; everything else reads it.
type Game struct {
	ID          string `json:"id"`
	Board       Board  `json:"board"`
	CurrentTurn Mark   `json:"current_turn"`
	Status      Status `json:"status"`
}

// NewGame creates a fresh game with an empty board and a new ID.
func NewGame(startingPlayer Mark) *Game {
	return NewGameWithID(uuid.NewString(), startingPlayer)
}

// NewGameWithID creates a fresh game with the given ID, used when
// reconstructing a game from its history.
func NewGameWithID(id string, startingPlayer Mark) *Game {
	return &Game{
		ID:          id,
		CurrentTurn: startingPlayer,
		Status:      InProgress(),
	}
}

// AttemptMove places the player's mark at (row, col). Preconditions are
// checked in a fixed order, each with its own error: the game must be
// in progress, the position on the board, the cell empty, and it must
// be the player's turn. A rejected move leaves the game untouched.
func (that *Game) AttemptMove(row, col int, player Mark) (Status, error) {
	if that.Status.IsTerminal() {
		return that.Status, apperror.ErrGameFinished
	}

	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return that.Status, fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidPosition, row, col)
	}

	if !that.Board[row][col].IsEmpty() {
		return that.Status, fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	if player != that.CurrentTurn {
		return that.Status, apperror.ErrNotYourTurn
	}

	that.Board[row][col] = OccupiedCell(player)
	that.updateStatus(player)

	// The turn only passes while the game is live; on a terminal move
	// CurrentTurn keeps the mark of the player who ended the game.
	if that.Status.IsInProgress() {
		that.CurrentTurn = player.Opponent()
	}

	return that.Status, nil
}

// updateStatus scans all 8 lines for three-in-a-row of the given mark,
// then checks for a draw. It writes Status and nothing else.
func (that *Game) updateStatus(player Mark) {
	for _, line := range winLines {
		if that.owns(line, player) {
			that.Status = Won(player)
			return
		}
	}

	if that.Board.IsFull() {
		that.Status = Draw()
	}
}

func (that *Game) owns(line [3][2]int, player Mark) bool {
	for _, pos := range line {
		if that.Board[pos[0]][pos[1]] != OccupiedCell(player) {
			return false
		}
	}
	return true
}

// LegalMoves lists the empty cells in row-major order.
func (that *Game) LegalMoves() [][2]int {
	moves := make([][2]int, 0, BoardSize*BoardSize)
	for row := range that.Board {
		for col := range that.Board[row] {
			if that.Board[row][col].IsEmpty() {
				moves = append(moves, [2]int{row, col})
			}
		}
	}
	return moves
}

// Clone returns an independent copy; the board is an array, so the copy
// shares nothing with the original.
func (that *Game) Clone() *Game {
	clone := *that
	return &clone
}

func (that *Game) IsFinished() bool {
	return that.Status.IsTerminal()
}
