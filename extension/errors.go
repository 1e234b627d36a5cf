package extension

import "errors"

var (
	// ErrConfig indicates an invalid chain configuration.
	ErrConfig = errors.New("extension: invalid chain configuration")

	// ErrState indicates a level method called out of lifecycle order.
	ErrState = errors.New("extension: level method called out of order")

	// ErrBaseIndex indicates a base combination index outside the base matrix.
	ErrBaseIndex = errors.New("extension: base combination index out of range")
)
