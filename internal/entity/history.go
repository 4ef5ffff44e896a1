package entity

import (
	"fmt"
	"iter"
	"time"
)

// Move is one recorded turn. Immutable once created.
type Move struct {
	Player    Mark      `json:"player"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Timestamp time.Time `json:"timestamp"`
}

// History is the append-only move log of one game, keyed by the game's
// ID. It does not own the game; replaying the log against a fresh game
// with the same starting player reproduces the final board and status.
type History struct {
	GameID         string     `json:"game_id"`
	StartingPlayer Mark       `json:"starting_player"`
	Moves          []Move     `json:"moves"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	FinalStatus    *Status    `json:"final_status,omitempty"`
}

func NewHistory(gameID string, startingPlayer Mark) *History {
	return &History{
		GameID:         gameID,
		StartingPlayer: startingPlayer,
		Moves:          []Move{},
		StartedAt:      time.Now().UTC(),
	}
}

// Record appends a move. Entries are never removed or reordered.
func (that *History) Record(move Move) {
	that.Moves = append(that.Moves, move)
}

// Close sets the terminal snapshot. The caller must call it exactly
// once, after the game has reached a terminal status.
func (that *History) Close(finalStatus Status, endedAt time.Time) {
	that.EndedAt = &endedAt
	that.FinalStatus = &finalStatus
}

func (that *History) IsClosed() bool {
	return that.FinalStatus != nil
}

// Replay applies every recorded move to a fresh game and returns the
// resulting state. It is idempotent: the history itself is untouched.
func (that *History) Replay() (*Game, error) {
	game := NewGameWithID(that.GameID, that.StartingPlayer)

	for i, move := range that.Moves {
		if _, err := game.AttemptMove(move.Row, move.Col, move.Player); err != nil {
			return nil, fmt.Errorf("failed to replay move %d: %w", i, err)
		}
	}

	return game, nil
}

// Snapshots lazily yields an independent game state after each recorded
// move, in order. A move that does not apply yields a nil state with the
// error and ends the sequence.
func (that *History) Snapshots() iter.Seq2[*Game, error] {
	return func(yield func(*Game, error) bool) {
		game := NewGameWithID(that.GameID, that.StartingPlayer)

		for i, move := range that.Moves {
			if _, err := game.AttemptMove(move.Row, move.Col, move.Player); err != nil {
				yield(nil, fmt.Errorf("failed to replay move %d: %w", i, err))
				return
			}

			if !yield(game.Clone(), nil) {
				return
			}
		}
	}
}
