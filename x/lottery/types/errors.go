package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrDrawNotFound        = errors.Register("lottery", 1, "draw not found")
	ErrInvalidArrayLength  = errors.Register("lottery", 2, "addresses and weights length mismatch")
	ErrLotteryNotActive    = errors.Register("lottery", 3, "lottery is not active")
	ErrPoolNotEligible     = errors.Register("lottery", 4, "pool does not meet the minimum participant count")
	ErrDrawTooSoon         = errors.Register("lottery", 5, "draw interval has not elapsed for this pool")
	ErrDrawAlreadyResolved = errors.Register("lottery", 6, "draw is already resolved")
	ErrDrawNotResolved     = errors.Register("lottery", 7, "draw has no winner selected yet")
	ErrInvalidDrawInterval = errors.Register("lottery", 8, "draw interval must be non-zero")
	ErrInvalidConfig       = errors.Register("lottery", 9, "invalid lottery configuration")
	ErrUnauthorized        = errors.Register("lottery", 10, "unauthorized")
	ErrNoParticipants      = errors.Register("lottery", 11, "draw snapshot has no participants")
	ErrEmptyTreasury       = errors.Register("lottery", 12, "lottery treasury is empty")
	ErrInvalidFundAmount   = errors.Register("lottery", 13, "fund amount must be positive")
)
