package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	MarkX Mark = "X"
	MarkO Mark = "O"
)

var ErrInvalidMark = errors.New("invalid player mark")

// Mark identifies one of the two players, X or O.
type Mark string

// Opponent returns the mark of the other player.
func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal mark: %w", err)
	}

	mark := Mark(raw)
	if !mark.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMark, raw)
	}

	*that = mark

	return nil
}
