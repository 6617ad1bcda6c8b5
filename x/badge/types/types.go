package types

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "badge"
	StoreKey   = ModuleName
)

// Badge kinds
const (
	BadgeCreator      = "creator"
	BadgeContribution = "contribution"
	BadgeCompletion   = "completion"
	BadgeLotteryWin   = "lottery_win"
)

// Module error codes
var (
	ErrInsufficientValue = errors.Register("badge", 1, "value below badge threshold")
	ErrBadgeAlreadyOwned = errors.Register("badge", 2, "address already owns this badge")
	ErrMaxSupplyReached  = errors.Register("badge", 3, "badge max supply reached")
	ErrBadgeNotFound     = errors.Register("badge", 4, "badge kind not found")
	ErrBadgeNotActive    = errors.Register("badge", 5, "badge kind is not active")
)

// BadgeDefinition describes one mintable badge kind
type BadgeDefinition struct {
	Kind      string         `json:"kind"`
	MinValue  math.LegacyDec `json:"min_value"`  // threshold, zero means none
	MaxSupply int64          `json:"max_supply"` // zero means unlimited
	Minted    int64          `json:"minted"`
	Active    bool           `json:"active"`
}

// DefaultBadgeDefinitions returns the built-in badge kinds
func DefaultBadgeDefinitions() []BadgeDefinition {
	return []BadgeDefinition{
		{Kind: BadgeCreator, MinValue: math.LegacyZeroDec(), Active: true},
		{Kind: BadgeContribution, MinValue: math.LegacyMustNewDecFromStr("0.01"), Active: true},
		{Kind: BadgeCompletion, MinValue: math.LegacyZeroDec(), Active: true},
		{Kind: BadgeLotteryWin, MinValue: math.LegacyZeroDec(), Active: true},
	}
}

// OwnedBadge is a minted badge held by an address
type OwnedBadge struct {
	Kind     string         `json:"kind"`
	Owner    string         `json:"owner"`
	Value    math.LegacyDec `json:"value"`
	MintedAt int64          `json:"minted_at"`
}
