package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gridrock/tictactoe-backend/internal/ai"
	"github.com/gridrock/tictactoe-backend/internal/entity"
	"github.com/gridrock/tictactoe-backend/internal/player"
)

type GamePlayService interface {
	CreateGame(ctx context.Context, startingPlayer entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	GetHistory(ctx context.Context, gameID string) (*entity.History, error)
	ListGames(ctx context.Context) ([]*entity.Game, error)

	MakeMove(ctx context.Context, gameID string, row, col int, mark entity.Mark) (*entity.Game, error)
	MakeBotMove(ctx context.Context, gameID string, difficulty ai.Difficulty) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService GameService
	botService  BotService

	// one mutex per game ID: moves on the same game are serialized,
	// different games proceed in parallel.
	locks sync.Map
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:      logger.With("component", "gameplay_service"),
		gameService: gameService,
		botService:  botService,
	}
}

func (that *gamePlayService) CreateGame(ctx context.Context, startingPlayer entity.Mark) (*entity.Game, error) {
	return that.gameService.CreateGame(ctx, startingPlayer)
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.gameService.GetGameByID(ctx, gameID)
}

func (that *gamePlayService) GetHistory(ctx context.Context, gameID string) (*entity.History, error) {
	return that.gameService.GetHistoryByID(ctx, gameID)
}

func (that *gamePlayService) ListGames(ctx context.Context) ([]*entity.Game, error) {
	return that.gameService.ListGames(ctx)
}

// MakeMove validates and applies one move, records it in the game's
// history, and closes and archives the history when the move ends the
// game. A rejected move changes nothing.
func (that *gamePlayService) MakeMove(ctx context.Context, gameID string, row, col int, mark entity.Mark) (*entity.Game, error) {
	lock := that.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	// The caller-supplied coordinates go through the same player
	// contract as a bot move.
	human := player.NewHuman(mark, string(mark), func(_ *entity.Game) (int, int, error) {
		return row, col, nil
	})

	moveRow, moveCol, err := human.GetMove(game)
	if err != nil {
		return nil, fmt.Errorf("failed to get move: %w", err)
	}

	return that.applyMove(ctx, game, moveRow, moveCol, human.Mark())
}

// MakeBotMove asks the engine for a move on behalf of the mark whose
// turn it is, then applies it through the same path as a human move.
func (that *gamePlayService) MakeBotMove(ctx context.Context, gameID string, difficulty ai.Difficulty) (*entity.Game, error) {
	lock := that.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	row, col, err := that.botService.PickMove(game, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to pick bot move: %w", err)
	}

	return that.applyMove(ctx, game, row, col, game.CurrentTurn)
}

func (that *gamePlayService) applyMove(ctx context.Context, game *entity.Game, row, col int, mark entity.Mark) (*entity.Game, error) {
	history, err := that.gameService.GetHistoryByID(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	if _, err = game.AttemptMove(row, col, mark); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	now := time.Now().UTC()
	history.Record(entity.Move{
		Player:    mark,
		Row:       row,
		Col:       col,
		Timestamp: now,
	})

	if game.IsFinished() {
		history.Close(game.Status, now)

		if err = that.gameService.ArchiveGame(ctx, game, history); err != nil {
			return nil, fmt.Errorf("failed to archive finished game: %w", err)
		}

		that.logger.Info("game finished", "game_id", game.ID, "status", game.Status.String())
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if err = that.gameService.UpdateHistory(ctx, history); err != nil {
		return nil, fmt.Errorf("failed to update history: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) gameLock(gameID string) *sync.Mutex {
	lock, _ := that.locks.LoadOrStore(gameID, &sync.Mutex{})
	return lock.(*sync.Mutex) //nolint: forcetypeassert // only mutexes are stored
}
