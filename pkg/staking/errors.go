package staking

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidAmount indicates a zero stake amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrUnsupportedLockupDuration indicates a lockup duration the pool
	// does not offer.
	ErrUnsupportedLockupDuration = errors.New("lockup duration must be 30, 90, 180, or 365 days")

	// ErrNoAvailableNonce indicates every nonce in the probe range already
	// has a stake deposit receipt.
	ErrNoAvailableNonce = errors.New("no available stake receipt nonce")
)

// InsufficientBalanceError indicates the owner's token account does not hold
// enough tokens to cover the requested stake.
type InsufficientBalanceError struct {
	Required  uint64
	Available uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %d, available %d", e.Required, e.Available)
}
