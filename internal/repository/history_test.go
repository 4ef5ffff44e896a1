package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridrock/tictactoe-backend/internal/apperror"
	"github.com/gridrock/tictactoe-backend/internal/entity"
	"github.com/gridrock/tictactoe-backend/testing/suite"
)

func TestHistoryRepository_SaveAndGet(t *testing.T) {
	ctx, st := suite.New(t)

	historyRepo := NewHistoryRepository(st.Storage)

	// Given: a history with two recorded moves
	history := entity.NewHistory("game-1", entity.MarkX)
	history.Record(entity.Move{Player: entity.MarkX, Row: 0, Col: 0, Timestamp: time.Now().UTC()})
	history.Record(entity.Move{Player: entity.MarkO, Row: 1, Col: 1, Timestamp: time.Now().UTC()})

	// When: the history is saved and loaded back
	require.NoError(t, historyRepo.Save(ctx, history))
	retrieved, err := historyRepo.GetByID(ctx, "game-1")

	// Then: the move log survives the round trip, in order
	require.NoError(t, err)
	assert.Equal(t, history.GameID, retrieved.GameID)
	assert.Equal(t, history.StartingPlayer, retrieved.StartingPlayer)
	require.Len(t, retrieved.Moves, 2)
	assert.Equal(t, entity.MarkX, retrieved.Moves[0].Player)
	assert.Equal(t, entity.MarkO, retrieved.Moves[1].Player)
	assert.False(t, retrieved.IsClosed())
}

func TestHistoryRepository_ClosedHistoryRoundTrip(t *testing.T) {
	ctx, st := suite.New(t)

	historyRepo := NewHistoryRepository(st.Storage)

	// Given: a closed history
	history := entity.NewHistory("game-2", entity.MarkX)
	history.Record(entity.Move{Player: entity.MarkX, Row: 0, Col: 0, Timestamp: time.Now().UTC()})
	history.Close(entity.Won(entity.MarkX), time.Now().UTC())

	// When: saved and loaded back
	require.NoError(t, historyRepo.Save(ctx, history))
	retrieved, err := historyRepo.GetByID(ctx, "game-2")

	// Then: the terminal snapshot survives
	require.NoError(t, err)
	require.True(t, retrieved.IsClosed())
	winner, ok := retrieved.FinalStatus.Winner()
	require.True(t, ok)
	assert.Equal(t, entity.MarkX, winner)
	require.NotNil(t, retrieved.EndedAt)
}

func TestHistoryRepository_GetByID_NotFound(t *testing.T) {
	ctx, st := suite.New(t)

	historyRepo := NewHistoryRepository(st.Storage)

	// When: GetByID is called with a non-existent game ID
	_, err := historyRepo.GetByID(ctx, "missing")

	// Then: an ErrHistoryNotFound error should be returned
	require.ErrorIs(t, err, apperror.ErrHistoryNotFound)
}

func TestHistoryRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	historyRepo := NewHistoryRepository(st.Storage)

	// Given: a stored history
	history := entity.NewHistory("game-3", entity.MarkO)
	require.NoError(t, historyRepo.Save(ctx, history))

	// When: DeleteByID is called
	require.NoError(t, historyRepo.DeleteByID(ctx, "game-3"))

	// Then: the history is gone
	_, err := historyRepo.GetByID(ctx, "game-3")
	require.ErrorIs(t, err, apperror.ErrHistoryNotFound)
}
