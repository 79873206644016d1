package apperror

import "errors"

var (
	ErrIndexOutOfRange       = errors.New("cell index out of range")
	ErrOccupiedCell          = errors.New("cell is already occupied")
	ErrPreconditionViolation = errors.New("precondition violation")

	ErrInvalidMark       = errors.New("invalid mark")
	ErrInvalidBoard      = errors.New("invalid board")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameNotFound      = errors.New("game not found")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)
