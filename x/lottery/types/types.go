package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "lottery"
	StoreKey   = ModuleName
)

// BpsDenominator is the basis-point scale (10000 = 100%)
const BpsDenominator = int64(10000)

// LotteryConfig is the admin-mutable draw configuration
type LotteryConfig struct {
	PrizePercentage int64          `json:"prize_percentage"` // basis points of yield
	MaxPrizeAmount  math.LegacyDec `json:"max_prize_amount"`
	DrawInterval    int64          `json:"draw_interval"` // seconds
	MinPoolSize     int64          `json:"min_pool_size"`
	IsActive        bool           `json:"is_active"`
}

// DefaultLotteryConfig returns the default draw configuration
func DefaultLotteryConfig() LotteryConfig {
	return LotteryConfig{
		PrizePercentage: 1000, // 10% of yield
		MaxPrizeAmount:  math.LegacyMustNewDecFromStr("10"),
		DrawInterval:    7 * 24 * 60 * 60, // weekly
		MinPoolSize:     5,
		IsActive:        true,
	}
}

// Validate checks the configuration invariants
func (c LotteryConfig) Validate() error {
	if c.DrawInterval == 0 {
		return ErrInvalidDrawInterval
	}
	if c.DrawInterval < 0 || c.MinPoolSize < 1 {
		return ErrInvalidConfig
	}
	if c.PrizePercentage < 0 || c.PrizePercentage > BpsDenominator {
		return ErrInvalidConfig
	}
	if c.MaxPrizeAmount.IsNil() || c.MaxPrizeAmount.IsNegative() {
		return ErrInvalidConfig
	}
	return nil
}

// Participant is one weighted entry in a pool's lottery
type Participant struct {
	Address string         `json:"address"`
	Weight  math.LegacyDec `json:"weight"`
}

// PoolLotteryState holds per-pool lottery bookkeeping
type PoolLotteryState struct {
	PoolID            uint64         `json:"pool_id"`
	Participants      []Participant  `json:"participants"`
	LastDrawTimestamp int64          `json:"last_draw_timestamp"`
	TotalDraws        int64          `json:"total_draws"`
	TotalPrizes       math.LegacyDec `json:"total_prizes"`
	TotalFunded       math.LegacyDec `json:"total_funded"`
}

// NewPoolLotteryState creates zeroed per-pool bookkeeping
func NewPoolLotteryState(poolID uint64) *PoolLotteryState {
	return &PoolLotteryState{
		PoolID:      poolID,
		TotalPrizes: math.LegacyZeroDec(),
		TotalFunded: math.LegacyZeroDec(),
	}
}

// IsEligible reports whether the pool meets the draw size threshold
func (s *PoolLotteryState) IsEligible(minPoolSize int64) bool {
	return int64(len(s.Participants)) >= minPoolSize
}

// TotalWeight sums the participants' weights
func (s *PoolLotteryState) TotalWeight() math.LegacyDec {
	total := math.LegacyZeroDec()
	for _, p := range s.Participants {
		total = total.Add(p.Weight)
	}
	return total
}

// HasParticipant reports whether the address is already registered
func (s *PoolLotteryState) HasParticipant(address string) bool {
	for _, p := range s.Participants {
		if p.Address == address {
			return true
		}
	}
	return false
}

// LotteryDraw is a single prize event. Immutable once resolved.
type LotteryDraw struct {
	DrawID       uint64         `json:"draw_id"`
	PoolID       uint64         `json:"pool_id"`
	Participants []Participant  `json:"participants"` // snapshot at request time
	Winner       string         `json:"winner"`
	PrizeAmount  math.LegacyDec `json:"prize_amount"` // snapshot at request time
	PaidAmount   math.LegacyDec `json:"paid_amount"`  // what actually went out
	Timestamp    int64          `json:"timestamp"`
	Resolved     bool           `json:"resolved"`
	PrizePaid    bool           `json:"prize_paid"`
}

// GlobalLotteryStats aggregates draw statistics across all pools
type GlobalLotteryStats struct {
	TotalDraws             int64          `json:"total_draws"`
	TotalPrizesDistributed math.LegacyDec `json:"total_prizes_distributed"`
	TotalParticipants      int64          `json:"total_participants"` // deduplicated
}

// NewGlobalLotteryStats creates a zeroed stats record
func NewGlobalLotteryStats() *GlobalLotteryStats {
	return &GlobalLotteryStats{
		TotalPrizesDistributed: math.LegacyZeroDec(),
	}
}

// ParticipantRecord is a per-address history across all draws
type ParticipantRecord struct {
	Address       string         `json:"address"`
	DrawsEntered  int64          `json:"draws_entered"`
	Wins          int64          `json:"wins"`
	TotalWinnings math.LegacyDec `json:"total_winnings"`
	PoolIDs       []uint64       `json:"pool_ids"`
}

// NewParticipantRecord creates a zeroed history record
func NewParticipantRecord(address string) *ParticipantRecord {
	return &ParticipantRecord{
		Address:       address,
		TotalWinnings: math.LegacyZeroDec(),
	}
}

// HasPool reports whether the record already references a pool
func (r *ParticipantRecord) HasPool(poolID uint64) bool {
	for _, id := range r.PoolIDs {
		if id == poolID {
			return true
		}
	}
	return false
}

// LeaderboardEntry is one row of the cumulative-winnings leaderboard
type LeaderboardEntry struct {
	Address       string         `json:"address"`
	TotalWinnings math.LegacyDec `json:"total_winnings"`
	Wins          int64          `json:"wins"`
}

// PoolLotteryStatus is the queryable eligibility summary for a pool
type PoolLotteryStatus struct {
	PoolID            uint64 `json:"pool_id"`
	IsEligible        bool   `json:"is_eligible"`
	ParticipantCount  int64  `json:"participant_count"`
	LastDrawTimestamp int64  `json:"last_draw_timestamp"`
}
