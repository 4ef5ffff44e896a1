package service

import (
	"fmt"

	"github.com/gridrock/tictactoe-backend/internal/ai"
	"github.com/gridrock/tictactoe-backend/internal/apperror"
	"github.com/gridrock/tictactoe-backend/internal/entity"
	"github.com/gridrock/tictactoe-backend/internal/player"
)

type BotService interface {
	PickMove(game *entity.Game, difficulty ai.Difficulty) (row, col int, err error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// PickMove asks a bot player for the mark whose turn it is. The engine
// assumes a legal move exists, so the terminal/full-board guard lives
// here with the caller.
func (that *botService) PickMove(game *entity.Game, difficulty ai.Difficulty) (int, int, error) {
	if game.IsFinished() || len(game.LegalMoves()) == 0 {
		return 0, 0, apperror.ErrNoLegalMove
	}

	bot := player.NewBot(game.CurrentTurn, difficulty)

	row, col, err := bot.GetMove(game)
	if err != nil {
		return 0, 0, fmt.Errorf("%s failed to move: %w", bot.DisplayName(), err)
	}

	return row, col, nil
}
