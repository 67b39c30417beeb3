package capacity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrUnknownPartner         = errors.New("unknown partner")
	ErrInsufficientCapacity   = errors.New("insufficient capacity")
	ErrEnvelopeBelowCommitted = errors.New("envelope below committed amount")
)

// InsufficientCapacityError carries the remaining capacity observed at rejection time.
type InsufficientCapacityError struct {
	Remaining Amount
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: remaining %d", e.Remaining)
}

func (e *InsufficientCapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}

type EnvelopeBelowCommittedError struct {
	Reserved Amount
}

func (e *EnvelopeBelowCommittedError) Error() string {
	return fmt.Sprintf("envelope below committed amount: reserved %d", e.Reserved)
}

func (e *EnvelopeBelowCommittedError) Unwrap() error {
	return ErrEnvelopeBelowCommitted
}
