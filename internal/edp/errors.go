package edp

import "errors"

var (
	ErrOutOfRange      = errors.New("index out of range")
	ErrDegenerateRange = errors.New("degenerate color range")
	ErrIOFailure       = errors.New("io failure")
	ErrInvalidState    = errors.New("invalid state")
	ErrNotLoaded       = errors.New("scalar field grid not loaded")
	ErrSingularCell    = errors.New("singular unit cell")
)
