package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridrock/tictactoe-backend/internal/apperror"
	"github.com/gridrock/tictactoe-backend/internal/entity"
	"github.com/gridrock/tictactoe-backend/internal/repository/storage/sqlite"
)

func newArchive(t *testing.T) (context.Context, ArchiveRepository) {
	t.Helper()

	ctx := context.Background()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	require.NoError(t, store.Init(ctx))

	return ctx, NewArchiveRepository(store.Connection)
}

// finishedGame plays a quick X win and returns the game with its closed
// history.
func finishedGame(t *testing.T) (*entity.Game, *entity.History) {
	t.Helper()

	game := entity.NewGame(entity.MarkX)
	history := entity.NewHistory(game.ID, entity.MarkX)

	for _, move := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		mark := game.CurrentTurn
		_, err := game.AttemptMove(move[0], move[1], mark)
		require.NoError(t, err)
		history.Record(entity.Move{Player: mark, Row: move[0], Col: move[1], Timestamp: time.Now().UTC()})
	}

	require.True(t, game.IsFinished())
	history.Close(game.Status, time.Now().UTC())

	return game, history
}

func TestArchiveRepository_SaveFinishedAndGet(t *testing.T) {
	ctx, archive := newArchive(t)

	// Given: a finished game with a closed history
	game, history := finishedGame(t)

	// When: archiving it and reading it back
	require.NoError(t, archive.SaveFinished(ctx, game, history))
	archived, err := archive.GetByID(ctx, game.ID)

	// Then: status and the full move log survive
	require.NoError(t, err)
	assert.Equal(t, game.ID, archived.ID)
	assert.Equal(t, game.Status, archived.Status)
	require.Len(t, archived.History.Moves, 5)

	// And: the archived history still replays to the final board
	replayed, err := archived.History.Replay()
	require.NoError(t, err)
	assert.Equal(t, game.Board, replayed.Board)
	assert.Equal(t, game.Status, replayed.Status)
}

func TestArchiveRepository_SaveFinished_RejectsOpenHistory(t *testing.T) {
	ctx, archive := newArchive(t)

	// Given: a game whose history was never closed
	game := entity.NewGame(entity.MarkX)
	history := entity.NewHistory(game.ID, entity.MarkX)

	// When: archiving it
	err := archive.SaveFinished(ctx, game, history)

	// Then: the archive refuses the open history
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not closed")
}

func TestArchiveRepository_GetByID_NotFound(t *testing.T) {
	ctx, archive := newArchive(t)

	// When: fetching an unknown ID
	_, err := archive.GetByID(ctx, "missing")

	// Then: an ErrGameNotFound error should be returned
	require.ErrorIs(t, err, apperror.ErrGameNotFound)
}
