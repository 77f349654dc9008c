package model

import "github.com/pkg/errors"

var (
	// ErrOutOfBounds is returned when coordinates fall outside the current dimensions
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	// ErrInvalidArgument is returned for non-positive dimensions or an invalid probability
	ErrInvalidArgument = errors.New("invalid argument")
)

func outOfBounds(op string, row, col, rows, columns int) error {
	return errors.Wrapf(ErrOutOfBounds, "[%s] cell (%d, %d) outside %dx%d grid", op, row, col, rows, columns)
}
