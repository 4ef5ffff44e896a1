package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gridrock/tictactoe-backend/internal/apperror"
	"github.com/gridrock/tictactoe-backend/internal/entity"
)

// ArchivedGame is the durable record of a finished game: its terminal
// status plus the full move log it can be replayed from.
type ArchivedGame struct {
	ID        string
	Status    entity.Status
	StartedAt time.Time
	EndedAt   time.Time
	History   entity.History
}

type ArchiveRepository interface {
	SaveFinished(ctx context.Context, game *entity.Game, history *entity.History) error
	GetByID(ctx context.Context, id string) (*ArchivedGame, error)
}

type dbArchive struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &dbArchive{
		conn: conn,
	}
}

var errHistoryNotClosed = errors.New("history is not closed")

func (that *dbArchive) SaveFinished(ctx context.Context, game *entity.Game, history *entity.History) error {
	if history.FinalStatus == nil || history.EndedAt == nil {
		return fmt.Errorf("%w: game %s", errHistoryNotClosed, game.ID)
	}

	statusJSON, err := json.Marshal(game.Status)
	if err != nil {
		return fmt.Errorf("could not marshal status: %w", err)
	}

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("could not marshal history: %w", err)
	}

	var winner sql.NullString
	if mark, ok := game.Status.Winner(); ok {
		winner = sql.NullString{String: string(mark), Valid: true}
	}

	query := `INSERT OR REPLACE INTO archived_games (id, status, winner, started_at, ended_at, history)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err = that.conn.ExecContext(ctx, query,
		game.ID, string(statusJSON), winner, history.StartedAt, *history.EndedAt, string(historyJSON))
	if err != nil {
		return fmt.Errorf("failed to archive game: %w", err)
	}

	return nil
}

func (that *dbArchive) GetByID(ctx context.Context, id string) (*ArchivedGame, error) {
	query := `SELECT id, status, started_at, ended_at, history FROM archived_games WHERE id = ?`

	var (
		archived    ArchivedGame
		statusJSON  string
		historyJSON string
	)

	row := that.conn.QueryRowContext(ctx, query, id)

	err := row.Scan(&archived.ID, &statusJSON, &archived.StartedAt, &archived.EndedAt, &historyJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get archived game: %w", err)
	}

	if err = json.Unmarshal([]byte(statusJSON), &archived.Status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %w", err)
	}

	if err = json.Unmarshal([]byte(historyJSON), &archived.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	return &archived, nil
}
