package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrInvalidPosition = errors.New("position is out of bounds")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrNoLegalMove     = errors.New("no legal move available")
	ErrGameNotFound    = errors.New("game not found")
	ErrHistoryNotFound = errors.New("history not found")
)
