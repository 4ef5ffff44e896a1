// Package player unifies the two sources a move can come from, so
// orchestration code asks "whose turn, get a move, apply it" without
// caring whether a human or the engine answers.
package player

import (
	"fmt"

	"github.com/gridrock/tictactoe-backend/internal/ai"
	"github.com/gridrock/tictactoe-backend/internal/entity"
)

// GamePlayer produces the next move for a game.
type GamePlayer interface {
	GetMove(game *entity.Game) (row, col int, err error)
	Mark() entity.Mark
	DisplayName() string
}

// MoveSource supplies a human move from outside the engine, typically
// the coordinates carried by an HTTP request.
type MoveSource func(game *entity.Game) (row, col int, err error)

type Human struct {
	mark   entity.Mark
	name   string
	source MoveSource
}

func NewHuman(mark entity.Mark, name string, source MoveSource) *Human {
	return &Human{
		mark:   mark,
		name:   name,
		source: source,
	}
}

func (that *Human) GetMove(game *entity.Game) (int, int, error) {
	return that.source(game)
}

func (that *Human) Mark() entity.Mark {
	return that.mark
}

func (that *Human) DisplayName() string {
	return fmt.Sprintf("%s (human)", that.name)
}

type Bot struct {
	mark       entity.Mark
	difficulty ai.Difficulty
}

func NewBot(mark entity.Mark, difficulty ai.Difficulty) *Bot {
	return &Bot{
		mark:       mark,
		difficulty: difficulty,
	}
}

func (that *Bot) GetMove(game *entity.Game) (int, int, error) {
	row, col, err := ai.SelectMove(game, that.difficulty)
	if err != nil {
		return 0, 0, fmt.Errorf("bot failed to pick a move: %w", err)
	}

	return row, col, nil
}

func (that *Bot) Mark() entity.Mark {
	return that.mark
}

func (that *Bot) DisplayName() string {
	return fmt.Sprintf("bot (%s)", that.difficulty)
}
