package exrate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBlockSize indicates samples or depths outside [1, 50].
	ErrInvalidBlockSize = errors.New("exrate: samples and depths must be within [1, 50]")

	// ErrInvalidInput indicates invalid fuels or options other than the block size.
	ErrInvalidInput = errors.New("exrate: invalid input")

	// ErrAllocation indicates that a combination table or work vector could not
	// be allocated. Everything allocated before the failure has been released.
	ErrAllocation = errors.New("exrate: allocation failed")
)

// Kind classifies the outcome of ComputeSpread.
type Kind uint8

const (
	KindSuccess Kind = iota
	KindInvalidBlockSize
	KindAllocationFailure
	KindInvalidInput
)

// String returns the snake_case name also used as the metrics outcome label.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindInvalidBlockSize:
		return "invalid_block_size"
	case KindAllocationFailure:
		return "allocation_failure"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// KindOf maps an error returned by ComputeSpread to its Kind.
// Errors outside the taxonomy are reported as KindInvalidInput.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindSuccess
	case errors.Is(err, ErrInvalidBlockSize):
		return KindInvalidBlockSize
	case errors.Is(err, ErrAllocation):
		return KindAllocationFailure
	default:
		return KindInvalidInput
	}
}

// SentinelRate returns the scalar rate callers of the scalar API receive on
// failure: 0 for rejected input and −1 for allocation failure.
func SentinelRate(err error) float64 {
	if KindOf(err) == KindAllocationFailure {
		return -1
	}

	return 0
}
