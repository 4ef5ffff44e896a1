package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gridrock/tictactoe-backend/internal/apperror"
	"github.com/gridrock/tictactoe-backend/internal/entity"
)

const historyKeyPrefix = "history:"

type HistoryRepository interface {
	Save(ctx context.Context, history *entity.History) error
	GetByID(ctx context.Context, gameID string) (*entity.History, error)
	DeleteByID(ctx context.Context, gameID string) error
}

type dbHistory struct {
	client *redis.Client
}

func NewHistoryRepository(client *redis.Client) HistoryRepository {
	return &dbHistory{
		client: client,
	}
}

func (that *dbHistory) Save(ctx context.Context, history *entity.History) error {
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("could not marshal history: %w", err)
	}

	historyKey := historyKeyPrefix + history.GameID
	if err = that.client.Set(ctx, historyKey, historyJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set history: %w", err)
	}

	return nil
}

func (that *dbHistory) GetByID(ctx context.Context, gameID string) (*entity.History, error) {
	historyKey := historyKeyPrefix + gameID

	response, err := that.client.Get(ctx, historyKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrHistoryNotFound, gameID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get history by id: %w", err)
	}

	var history entity.History
	if err = json.Unmarshal([]byte(response), &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	return &history, nil
}

func (that *dbHistory) DeleteByID(ctx context.Context, gameID string) error {
	historyKey := historyKeyPrefix + gameID

	if err := that.client.Del(ctx, historyKey).Err(); err != nil {
		return fmt.Errorf("failed to delete history by id: %w", err)
	}

	return nil
}
