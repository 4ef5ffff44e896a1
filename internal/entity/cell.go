package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const EmptyCell Cell = ""

var ErrInvalidCellValue = errors.New("invalid cell value")

// Cell is one square of the board: empty, or occupied by a player's mark.
type Cell string

func OccupiedCell(mark Mark) Cell {
	return Cell(mark)
}

func (that Cell) IsEmpty() bool {
	return that == EmptyCell
}

// Mark returns the occupying mark, or false for an empty cell.
func (that Cell) Mark() (Mark, bool) {
	if that.IsEmpty() {
		return "", false
	}
	return Mark(that), true
}

// MarshalJSON serializes a cell as "Empty" or {"Occupied":"X"|"O"}.
func (that Cell) MarshalJSON() ([]byte, error) {
	if that.IsEmpty() {
		return json.Marshal("Empty")
	}
	return json.Marshal(map[string]Mark{"Occupied": Mark(that)})
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		if raw != "Empty" {
			return fmt.Errorf("%w: %q", ErrInvalidCellValue, raw)
		}
		*that = EmptyCell
		return nil
	}

	var tagged struct {
		Occupied Mark `json:"Occupied"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("failed to unmarshal cell: %w", err)
	}
	if !tagged.Occupied.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidCellValue, string(data))
	}

	*that = OccupiedCell(tagged.Occupied)

	return nil
}
