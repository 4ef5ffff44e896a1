package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gridrock/tictactoe-backend/internal/entity"
)

type gameRepo interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListIDs(ctx context.Context) ([]string, error)
	DeleteByID(ctx context.Context, id string) error
}

type historyRepo interface {
	Save(ctx context.Context, history *entity.History) error
	GetByID(ctx context.Context, gameID string) (*entity.History, error)
	DeleteByID(ctx context.Context, gameID string) error
}

type archiveRepo interface {
	SaveFinished(ctx context.Context, game *entity.Game, history *entity.History) error
}

type GameService interface {
	CreateGame(ctx context.Context, startingPlayer entity.Mark) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	GetHistoryByID(ctx context.Context, gameID string) (*entity.History, error)
	ListGames(ctx context.Context) ([]*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	UpdateHistory(ctx context.Context, history *entity.History) error
	ArchiveGame(ctx context.Context, game *entity.Game, history *entity.History) error
}

type gameService struct {
	logger    *slog.Logger
	games     gameRepo
	histories historyRepo
	archive   archiveRepo
}

func NewGameService(logger *slog.Logger, games gameRepo, histories historyRepo, archive archiveRepo) GameService {
	return &gameService{
		logger:    logger.With("component", "game_service"),
		games:     games,
		histories: histories,
		archive:   archive,
	}
}

// CreateGame starts a fresh game and its empty history, keyed by the
// same new game ID.
func (that *gameService) CreateGame(ctx context.Context, startingPlayer entity.Mark) (*entity.Game, error) {
	game := entity.NewGame(startingPlayer)
	history := entity.NewHistory(game.ID, startingPlayer)

	if err := that.games.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	if err := that.histories.Save(ctx, history); err != nil {
		return nil, fmt.Errorf("failed to save history: %w", err)
	}

	that.logger.Info("game created", "game_id", game.ID, "starting_player", string(startingPlayer))

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.games.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

func (that *gameService) GetHistoryByID(ctx context.Context, gameID string) (*entity.History, error) {
	history, err := that.histories.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history by id: %w", err)
	}

	return history, nil
}

func (that *gameService) ListGames(ctx context.Context) ([]*entity.Game, error) {
	ids, err := that.games.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list game ids: %w", err)
	}

	games := make([]*entity.Game, 0, len(ids))
	for _, id := range ids {
		game, err := that.games.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get game by id: %w", err)
		}
		games = append(games, game)
	}

	return games, nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.games.Save(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameService) UpdateHistory(ctx context.Context, history *entity.History) error {
	if err := that.histories.Save(ctx, history); err != nil {
		return fmt.Errorf("failed to update history: %w", err)
	}

	return nil
}

func (that *gameService) ArchiveGame(ctx context.Context, game *entity.Game, history *entity.History) error {
	if err := that.archive.SaveFinished(ctx, game, history); err != nil {
		return fmt.Errorf("failed to archive game: %w", err)
	}

	that.logger.Info("game archived", "game_id", game.ID, "status", game.Status.String())

	return nil
}
