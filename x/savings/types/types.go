package types

import (
	"errors"
	"time"

	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "savings"
	StoreKey   = ModuleName
)

// Pool status
const (
	PoolStatusOpen      = "open"
	PoolStatusLocked    = "locked" // declared for wire compatibility; lock paths land on active in the same step
	PoolStatusActive    = "active"
	PoolStatusCompleted = "completed"
)

// Yield split and badge gating
var (
	// LotteryFundShareBps is the share of a pool's realized yield routed to
	// the lottery treasury at completion, in basis points.
	LotteryFundShareBps = int64(500)

	// HighYieldBadgeFloor is the minimum yield per member for completion
	// badge mints.
	HighYieldBadgeFloor = math.LegacyMustNewDecFromStr("0.05")
)

// Pool creation bounds
var (
	MinContribution = math.LegacyMustNewDecFromStr("0.01")
	MaxContribution = math.LegacyMustNewDecFromStr("1000000")
	MinMembers      = int64(2)
	MaxMembers      = int64(100)
	MinDuration     = int64(24 * 60 * 60)       // 1 day
	MaxDuration     = int64(365 * 24 * 60 * 60) // 1 year
)

// Errors
var (
	ErrInvalidContribution         = errors.New("contribution must equal the pool's exact contribution amount")
	ErrInvalidContributionRange    = errors.New("contribution amount outside allowed range")
	ErrInvalidMemberCount          = errors.New("invalid member count")
	ErrInvalidDuration             = errors.New("invalid pool duration")
	ErrPoolNameEmpty               = errors.New("pool name must not be empty")
	ErrInvalidYieldManager         = errors.New("invalid yield strategy reference")
	ErrAlreadyMember               = errors.New("address is already a pool member")
	ErrNotMember                   = errors.New("address is not a pool member")
	ErrInvalidState                = errors.New("operation not allowed in current pool state")
	ErrPoolNotFound                = errors.New("pool not found")
	ErrPoolNotMature               = errors.New("pool duration has not elapsed")
	ErrFactoryPaused               = errors.New("pool creation is paused")
	ErrUnauthorized                = errors.New("unauthorized")
	ErrAlreadyWithdrawn            = errors.New("member has already withdrawn")
	ErrWithdrawalFailed            = errors.New("withdrawal transfer failed, requires administrative recovery")
	ErrMaxPoolsReached             = errors.New("global pool limit reached")
	ErrMaxPoolsPerCreatorReached   = errors.New("creator pool limit reached")
	ErrMaxActivePoolsPerCreator    = errors.New("creator active pool limit reached")
	ErrPoolCreationTooFrequent     = errors.New("pool creation too frequent")
	ErrInvalidConstraintValue      = errors.New("invalid constraint value")
	ErrCustodyDepositFailed        = errors.New("custody bridge deposit failed")
)

// PoolMember is a member's record inside a pool
type PoolMember struct {
	Address      string         `json:"address"`
	Contribution math.LegacyDec `json:"contribution"`
	JoinedAt     int64          `json:"joined_at"`
	HasWithdrawn bool           `json:"has_withdrawn"`
	YieldEarned  math.LegacyDec `json:"yield_earned"`
}

// Pool is a single savings cohort: fixed contribution, capped membership,
// time-boxed yield term
type Pool struct {
	PoolID             uint64         `json:"pool_id"`
	Creator            string         `json:"creator"`
	Name               string         `json:"name"`
	ContributionAmount math.LegacyDec `json:"contribution_amount"`
	MaxMembers         int64          `json:"max_members"`
	Duration           int64          `json:"duration"` // seconds
	Status             string         `json:"status"`
	StrategyTag        string         `json:"strategy_tag"`

	// Fund accounting. TotalFunds tracks the pool's own balance while open;
	// after the lock it is a historical record of what was swept to custody.
	TotalFunds           math.LegacyDec `json:"total_funds"`
	ContributionsAtLock  math.LegacyDec `json:"contributions_at_lock"`
	YieldAmount          math.LegacyDec `json:"yield_amount"`

	Members []PoolMember `json:"members"`

	CreatedAt   int64 `json:"created_at"`
	LockedAt    int64 `json:"locked_at"`
	CompletedAt int64 `json:"completed_at"`
}

// PoolParams holds the creation parameters for a new pool
type PoolParams struct {
	Creator            string         `json:"creator"`
	Name               string         `json:"name"`
	ContributionAmount math.LegacyDec `json:"contribution_amount"`
	MaxMembers         int64          `json:"max_members"`
	Duration           int64          `json:"duration"`
	StrategyTag        string         `json:"strategy_tag"`
}

// Validate checks the pool creation parameters
func (p *PoolParams) Validate() error {
	if len(p.Name) == 0 {
		return ErrPoolNameEmpty
	}
	if p.ContributionAmount.IsNil() || p.ContributionAmount.LT(MinContribution) || p.ContributionAmount.GT(MaxContribution) {
		return ErrInvalidContributionRange
	}
	if p.MaxMembers < MinMembers || p.MaxMembers > MaxMembers {
		return ErrInvalidMemberCount
	}
	if p.Duration < MinDuration || p.Duration > MaxDuration {
		return ErrInvalidDuration
	}
	if p.StrategyTag == "" {
		return ErrInvalidYieldManager
	}
	return nil
}

// NewPool creates a new pool in the open state
func NewPool(poolID uint64, params *PoolParams) *Pool {
	return &Pool{
		PoolID:              poolID,
		Creator:             params.Creator,
		Name:                params.Name,
		ContributionAmount:  params.ContributionAmount,
		MaxMembers:          params.MaxMembers,
		Duration:            params.Duration,
		Status:              PoolStatusOpen,
		StrategyTag:         params.StrategyTag,
		TotalFunds:          math.LegacyZeroDec(),
		ContributionsAtLock: math.LegacyZeroDec(),
		YieldAmount:         math.LegacyZeroDec(),
		CreatedAt:           time.Now().Unix(),
	}
}

// MemberCount returns the current number of members
func (p *Pool) MemberCount() int64 {
	return int64(len(p.Members))
}

// IsMember reports whether the address has joined the pool
func (p *Pool) IsMember(address string) bool {
	return p.FindMember(address) != nil
}

// FindMember returns the member record for an address, or nil
func (p *Pool) FindMember(address string) *PoolMember {
	for i := range p.Members {
		if p.Members[i].Address == address {
			return &p.Members[i]
		}
	}
	return nil
}

// AddMember appends a member record
func (p *Pool) AddMember(address string, contribution math.LegacyDec, now int64) {
	p.Members = append(p.Members, PoolMember{
		Address:      address,
		Contribution: contribution,
		JoinedAt:     now,
		YieldEarned:  math.LegacyZeroDec(),
	})
}

// RemoveMember removes a member record, preserving the relative order of
// the remaining members
func (p *Pool) RemoveMember(address string) bool {
	for i := range p.Members {
		if p.Members[i].Address == address {
			p.Members = append(p.Members[:i], p.Members[i+1:]...)
			return true
		}
	}
	return false
}

// CanLock reports whether the pool can be locked manually
func (p *Pool) CanLock() bool {
	return p.Status == PoolStatusOpen && p.MemberCount() >= MinMembers
}

// IsFull reports whether the pool has reached capacity
func (p *Pool) IsFull() bool {
	return p.MemberCount() >= p.MaxMembers
}

// MaturesAt returns the unix time the pool's term ends (0 before lock)
func (p *Pool) MaturesAt() int64 {
	if p.LockedAt == 0 {
		return 0
	}
	return p.LockedAt + p.Duration
}

// CanComplete reports whether the pool's term has elapsed
func (p *Pool) CanComplete(now int64) bool {
	return p.Status == PoolStatusActive && now >= p.MaturesAt()
}

// TimeRemaining returns seconds until maturity, zero once elapsed
func (p *Pool) TimeRemaining(now int64) int64 {
	if p.Status != PoolStatusActive {
		return 0
	}
	remaining := p.MaturesAt() - now
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GlobalConstraints is the admin-mutable admission-control configuration
type GlobalConstraints struct {
	MaxTotalPools            int64 `json:"max_total_pools"`
	MaxPoolsPerCreator       int64 `json:"max_pools_per_creator"`
	MaxActivePoolsPerCreator int64 `json:"max_active_pools_per_creator"`
	MinTimeBetweenPools      int64 `json:"min_time_between_pools"` // seconds
	EnforceConstraints       bool  `json:"enforce_constraints"`
}

// DefaultGlobalConstraints returns the default admission-control settings
func DefaultGlobalConstraints() GlobalConstraints {
	return GlobalConstraints{
		MaxTotalPools:            10000,
		MaxPoolsPerCreator:       20,
		MaxActivePoolsPerCreator: 5,
		MinTimeBetweenPools:      60 * 60, // 1 hour
		EnforceConstraints:       true,
	}
}

// Validate checks constraint invariants
func (c GlobalConstraints) Validate() error {
	if c.MaxTotalPools <= 0 || c.MaxPoolsPerCreator <= 0 || c.MaxActivePoolsPerCreator <= 0 {
		return ErrInvalidConstraintValue
	}
	if c.MaxActivePoolsPerCreator > c.MaxPoolsPerCreator {
		return ErrInvalidConstraintValue
	}
	if c.MinTimeBetweenPools < 0 {
		return ErrInvalidConstraintValue
	}
	return nil
}

// CreatorState tracks per-creator admission-control bookkeeping
type CreatorState struct {
	Address          string   `json:"address"`
	PoolIDs          []uint64 `json:"pool_ids"`
	ActivePools      int64    `json:"active_pools"`
	LastPoolCreation int64    `json:"last_pool_creation"`
}

// RegistryStats aggregates platform-wide pool statistics
type RegistryStats struct {
	TotalPools          int64          `json:"total_pools"`
	ActivePools         int64          `json:"active_pools"`
	CompletedPools      int64          `json:"completed_pools"`
	TotalValueLocked    math.LegacyDec `json:"total_value_locked"`
	TotalYieldGenerated math.LegacyDec `json:"total_yield_generated"`
}

// NewRegistryStats creates a zeroed stats record
func NewRegistryStats() *RegistryStats {
	return &RegistryStats{
		TotalValueLocked:    math.LegacyZeroDec(),
		TotalYieldGenerated: math.LegacyZeroDec(),
	}
}
