package types

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "yield"
	StoreKey   = ModuleName
)

// SecondsPerYear is the accrual denominator
const SecondsPerYear = int64(365 * 24 * 60 * 60)

// Module error codes
var (
	ErrUnknownStrategy  = errors.Register("yield", 1, "unknown yield strategy")
	ErrAccountExists    = errors.Register("yield", 2, "pool already has a custody account")
	ErrAccountNotFound  = errors.Register("yield", 3, "custody account not found")
	ErrInvalidAmount    = errors.Register("yield", 4, "deposit amount must be positive")
	ErrInvalidRate      = errors.Register("yield", 5, "strategy rate out of range")
	ErrUnauthorized     = errors.Register("yield", 6, "unauthorized")
)

// Strategy is a named accrual profile
type Strategy struct {
	Tag           string `json:"tag"`
	AnnualRateBps int64  `json:"annual_rate_bps"`
}

// DefaultStrategies returns the built-in accrual profiles
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Tag: "stable", AnnualRateBps: 500},
		{Tag: "growth", AnnualRateBps: 1200},
	}
}

// CustodyAccount is a pool's position with the yield source
type CustodyAccount struct {
	PoolID       uint64         `json:"pool_id"`
	StrategyTag  string         `json:"strategy_tag"`
	Principal    math.LegacyDec `json:"principal"`
	AccruedYield math.LegacyDec `json:"accrued_yield"`
	DepositedAt  int64          `json:"deposited_at"`
	LastAccrual  int64          `json:"last_accrual"`
}

// NewCustodyAccount opens a position for a pool
func NewCustodyAccount(poolID uint64, strategyTag string, principal math.LegacyDec, now int64) *CustodyAccount {
	return &CustodyAccount{
		PoolID:       poolID,
		StrategyTag:  strategyTag,
		Principal:    principal,
		AccruedYield: math.LegacyZeroDec(),
		DepositedAt:  now,
		LastAccrual:  now,
	}
}

// Accrue advances the linear accrual bookkeeping to now
func (a *CustodyAccount) Accrue(annualRateBps, now int64) {
	elapsed := now - a.LastAccrual
	if elapsed <= 0 {
		return
	}
	increment := a.Principal.
		MulInt64(annualRateBps).
		QuoInt64(10000).
		MulInt64(elapsed).
		QuoInt64(SecondsPerYear)
	a.AccruedYield = a.AccruedYield.Add(increment)
	a.LastAccrual = now
}

// TotalValue returns principal plus accrued yield
func (a *CustodyAccount) TotalValue() math.LegacyDec {
	return a.Principal.Add(a.AccruedYield)
}
