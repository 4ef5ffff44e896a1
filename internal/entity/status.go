package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	stateInProgress = "in_progress"
	stateWon        = "won"
	stateDraw       = "draw"
)

var ErrInvalidStatus = errors.New("invalid game status")

// Status is the tagged outcome of a game: in progress, won by a player,
// or drawn. Won and Draw are terminal.
type Status struct {
	state  string
	winner Mark
}

func InProgress() Status {
	return Status{state: stateInProgress}
}

func Won(winner Mark) Status {
	return Status{state: stateWon, winner: winner}
}

func Draw() Status {
	return Status{state: stateDraw}
}

func (that Status) IsInProgress() bool {
	return that.state == stateInProgress || that.state == ""
}

func (that Status) IsDraw() bool {
	return that.state == stateDraw
}

// Winner returns the winning mark, or false if the game was not won.
func (that Status) Winner() (Mark, bool) {
	if that.state != stateWon {
		return "", false
	}
	return that.winner, true
}

// IsTerminal reports whether no further moves are legal.
func (that Status) IsTerminal() bool {
	return !that.IsInProgress()
}

func (that Status) String() string {
	if winner, ok := that.Winner(); ok {
		return "won by " + string(winner)
	}
	if that.IsDraw() {
		return "draw"
	}
	return "in progress"
}

// MarshalJSON serializes a status as "InProgress", "Draw" or {"Won":"X"|"O"}.
func (that Status) MarshalJSON() ([]byte, error) {
	switch {
	case that.IsInProgress():
		return json.Marshal("InProgress")
	case that.IsDraw():
		return json.Marshal("Draw")
	default:
		return json.Marshal(map[string]Mark{"Won": that.winner})
	}
}

func (that *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		switch raw {
		case "InProgress":
			*that = InProgress()
		case "Draw":
			*that = Draw()
		default:
			return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
		}
		return nil
	}

	var tagged struct {
		Won Mark `json:"Won"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("failed to unmarshal status: %w", err)
	}
	if !tagged.Won.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, string(data))
	}

	*that = Won(tagged.Won)

	return nil
}
