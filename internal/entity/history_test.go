package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playRecorded applies the moves to the game and records each one, the
// way the gameplay layer does.
func playRecorded(t *testing.T, game *Game, history *History, moves [][2]int) {
	t.Helper()

	for _, move := range moves {
		mark := game.CurrentTurn
		_, err := game.AttemptMove(move[0], move[1], mark)
		require.NoError(t, err)

		history.Record(Move{
			Player:    mark,
			Row:       move[0],
			Col:       move[1],
			Timestamp: time.Now().UTC(),
		})
	}
}

func TestNewHistory(t *testing.T) {
	// Given: a new history for a game starting with O
	history := NewHistory("game-1", MarkO)

	// Then: it is open, empty and keyed by the game
	assert.Equal(t, "game-1", history.GameID)
	assert.Equal(t, MarkO, history.StartingPlayer)
	assert.Empty(t, history.Moves)
	assert.False(t, history.IsClosed())
	assert.False(t, history.StartedAt.IsZero())
}

func TestHistory_RecordAndClose(t *testing.T) {
	// Given: a history with two recorded moves
	history := NewHistory("game-1", MarkX)
	history.Record(Move{Player: MarkX, Row: 0, Col: 0, Timestamp: time.Now().UTC()})
	history.Record(Move{Player: MarkO, Row: 1, Col: 1, Timestamp: time.Now().UTC()})

	// Then: the moves are kept in order
	require.Len(t, history.Moves, 2)
	assert.Equal(t, MarkX, history.Moves[0].Player)
	assert.Equal(t, MarkO, history.Moves[1].Player)

	// When: the game ends
	endedAt := time.Now().UTC()
	history.Close(Won(MarkX), endedAt)

	// Then: the terminal snapshot is set
	require.True(t, history.IsClosed())
	require.NotNil(t, history.FinalStatus)
	winner, ok := history.FinalStatus.Winner()
	require.True(t, ok)
	assert.Equal(t, MarkX, winner)
	assert.Equal(t, endedAt, *history.EndedAt)
}

func TestHistory_ReplayEquivalence(t *testing.T) {
	t.Run("Replay reproduces a won game", func(t *testing.T) {
		// Given: a game played to an X win, with every move recorded
		game := NewGame(MarkX)
		history := NewHistory(game.ID, MarkX)
		playRecorded(t, game, history, [][2]int{
			{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2},
		})
		require.True(t, game.IsFinished())

		// When: replaying the history
		replayed, err := history.Replay()

		// Then: board and status match the live game exactly
		require.NoError(t, err)
		assert.Equal(t, game.Board, replayed.Board)
		assert.Equal(t, game.Status, replayed.Status)
		assert.Equal(t, game.ID, replayed.ID)
	})

	t.Run("Replay reproduces a draw", func(t *testing.T) {
		game := NewGame(MarkX)
		history := NewHistory(game.ID, MarkX)
		playRecorded(t, game, history, drawSequence)
		require.True(t, game.Status.IsDraw())

		replayed, err := history.Replay()
		require.NoError(t, err)
		assert.Equal(t, game.Board, replayed.Board)
		assert.Equal(t, game.Status, replayed.Status)
	})

	t.Run("Replay honors the starting player", func(t *testing.T) {
		// Given: a game that O opened
		game := NewGame(MarkO)
		history := NewHistory(game.ID, MarkO)
		playRecorded(t, game, history, [][2]int{{1, 1}, {0, 0}})

		// When: replaying
		replayed, err := history.Replay()

		// Then: the marks land where the live game put them
		require.NoError(t, err)
		assert.Equal(t, OccupiedCell(MarkO), replayed.Board[1][1])
		assert.Equal(t, OccupiedCell(MarkX), replayed.Board[0][0])
	})

	t.Run("Replay is idempotent", func(t *testing.T) {
		game := NewGame(MarkX)
		history := NewHistory(game.ID, MarkX)
		playRecorded(t, game, history, [][2]int{{0, 0}, {1, 1}, {2, 2}})

		first, err := history.Replay()
		require.NoError(t, err)
		second, err := history.Replay()
		require.NoError(t, err)

		assert.Equal(t, first.Board, second.Board)
		assert.Equal(t, first.Status, second.Status)
	})

	t.Run("Replay fails on a corrupted move order", func(t *testing.T) {
		// Given: a log whose second move repeats the same player
		history := NewHistory("game-1", MarkX)
		history.Record(Move{Player: MarkX, Row: 0, Col: 0})
		history.Record(Move{Player: MarkX, Row: 0, Col: 1})

		// When: replaying
		_, err := history.Replay()

		// Then: the bad move is reported
		require.Error(t, err)
		assert.Contains(t, err.Error(), "replay move 1")
	})
}

func TestHistory_Snapshots(t *testing.T) {
	t.Run("Yields one state per move, lazily", func(t *testing.T) {
		// Given: a recorded three-move game
		game := NewGame(MarkX)
		history := NewHistory(game.ID, MarkX)
		playRecorded(t, game, history, [][2]int{{0, 0}, {1, 1}, {2, 2}})

		// When: iterating all snapshots
		var snapshots []*Game
		for snapshot, err := range history.Snapshots() {
			require.NoError(t, err)
			snapshots = append(snapshots, snapshot)
		}

		// Then: occupancy grows move by move
		require.Len(t, snapshots, 3)
		for i, snapshot := range snapshots {
			assert.Equal(t, i+1, snapshot.Board.CountOccupied())
		}
	})

	t.Run("Stops early when the consumer breaks", func(t *testing.T) {
		game := NewGame(MarkX)
		history := NewHistory(game.ID, MarkX)
		playRecorded(t, game, history, [][2]int{{0, 0}, {1, 1}, {2, 2}, {0, 1}})

		seen := 0
		for _, err := range history.Snapshots() {
			require.NoError(t, err)
			seen++
			if seen == 2 {
				break
			}
		}

		assert.Equal(t, 2, seen)
	})

	t.Run("Surfaces a replay error and ends the sequence", func(t *testing.T) {
		history := NewHistory("game-1", MarkX)
		history.Record(Move{Player: MarkO, Row: 0, Col: 0})

		var lastErr error
		for snapshot, err := range history.Snapshots() {
			if err != nil {
				lastErr = err
				assert.Nil(t, snapshot)
			}
		}

		require.Error(t, lastErr)
	})
}
