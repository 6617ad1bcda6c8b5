package types

import (
	"context"
	"time"
)

// Pool represents a savings pool in the API response
type Pool struct {
	PoolID             uint64   `json:"pool_id"`
	Name               string   `json:"name"`
	Creator            string   `json:"creator"`
	Status             string   `json:"status"`
	ContributionAmount string   `json:"contribution_amount"`
	MaxMembers         uint32   `json:"max_members"`
	MemberCount        int      `json:"member_count"`
	Duration           int64    `json:"duration"`
	StrategyTag        string   `json:"strategy_tag"`
	TotalFunds         string   `json:"total_funds"`
	YieldAmount        string   `json:"yield_amount"`
	CreatedAt          int64    `json:"created_at"`
	LockedAt           int64    `json:"locked_at,omitempty"`
	CompletedAt        int64    `json:"completed_at,omitempty"`
	Members            []Member `json:"members,omitempty"`
}

// Member represents a pool member in the API response
type Member struct {
	Address      string `json:"address"`
	Contribution string `json:"contribution"`
	YieldEarned  string `json:"yield_earned"`
	HasWithdrawn bool   `json:"has_withdrawn"`
	JoinedAt     int64  `json:"joined_at"`
}

// Draw represents a lottery draw in the API response
type Draw struct {
	DrawID           uint64 `json:"draw_id"`
	PoolID           uint64 `json:"pool_id"`
	PrizeAmount      string `json:"prize_amount"`
	Winner           string `json:"winner,omitempty"`
	Resolved         bool   `json:"resolved"`
	PrizePaid        bool   `json:"prize_paid"`
	ParticipantCount int    `json:"participant_count"`
	RequestedAt      int64  `json:"requested_at"`
	ResolvedAt       int64  `json:"resolved_at,omitempty"`
}

// LeaderboardEntry represents one row of the lottery leaderboard
type LeaderboardEntry struct {
	Address       string `json:"address"`
	Wins          uint64 `json:"wins"`
	TotalWinnings string `json:"total_winnings"`
	LastWinAt     int64  `json:"last_win_at"`
}

// Treasury represents the lottery treasury state
type Treasury struct {
	Balance        string `json:"balance"`
	TotalFunded    string `json:"total_funded"`
	TotalPaidOut   string `json:"total_paid_out"`
	PendingDraws   int    `json:"pending_draws"`
	ResolvedDraws  int    `json:"resolved_draws"`
}

// RegistryStats represents pool registry counters
type RegistryStats struct {
	TotalPools     uint64 `json:"total_pools"`
	ActivePools    uint64 `json:"active_pools"`
	CompletedPools uint64 `json:"completed_pools"`
	TotalValue     string `json:"total_value"`
	Paused         bool   `json:"paused"`
}

// CreatePoolRequest represents the request to create a pool
type CreatePoolRequest struct {
	Name               string `json:"name"`
	Creator            string `json:"creator"`
	ContributionAmount string `json:"contribution_amount"`
	MaxMembers         uint32 `json:"max_members"`
	Duration           int64  `json:"duration"`
	StrategyTag        string `json:"strategy_tag"`
}

// CreatePoolResponse represents the response after creating a pool
type CreatePoolResponse struct {
	Pool *Pool `json:"pool"`
}

// JoinPoolRequest represents the request to join a pool
type JoinPoolRequest struct {
	PoolID uint64 `json:"pool_id"`
	Member string `json:"member"`
	Amount string `json:"amount"`
}

// JoinPoolResponse represents the response after joining a pool
type JoinPoolResponse struct {
	Pool   *Pool `json:"pool"`
	Locked bool  `json:"locked"`
}

// LeavePoolRequest represents the request to leave an open pool
type LeavePoolRequest struct {
	PoolID uint64 `json:"pool_id"`
	Member string `json:"member"`
}

// WithdrawShareRequest represents the request to withdraw from a completed pool
type WithdrawShareRequest struct {
	PoolID uint64 `json:"pool_id"`
	Member string `json:"member"`
}

// WithdrawShareResponse represents the response after a share withdrawal
type WithdrawShareResponse struct {
	PoolID uint64 `json:"pool_id"`
	Member string `json:"member"`
	Payout string `json:"payout"`
}

// ListPoolsRequest represents the request to list pools
type ListPoolsRequest struct {
	Status  string `json:"status,omitempty"`
	Creator string `json:"creator,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// ListPoolsResponse represents the response for listing pools
type ListPoolsResponse struct {
	Pools []*Pool `json:"pools"`
	Total int     `json:"total"`
}

// RequestDrawRequest represents the request to start a lottery draw
type RequestDrawRequest struct {
	PoolID uint64 `json:"pool_id"`
}

// RequestDrawResponse represents the response after requesting a draw
type RequestDrawResponse struct {
	Draw *Draw `json:"draw"`
}

// ListDrawsRequest represents the request to list draws
type ListDrawsRequest struct {
	PoolID   uint64 `json:"pool_id,omitempty"`
	Resolved *bool  `json:"resolved,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// ListDrawsResponse represents the response for listing draws
type ListDrawsResponse struct {
	Draws []*Draw `json:"draws"`
	Total int     `json:"total"`
}

// PoolService defines the interface for pool operations
type PoolService interface {
	CreatePool(ctx context.Context, req *CreatePoolRequest) (*CreatePoolResponse, error)
	JoinPool(ctx context.Context, req *JoinPoolRequest) (*JoinPoolResponse, error)
	LeavePool(ctx context.Context, req *LeavePoolRequest) (*Pool, error)
	LockPool(ctx context.Context, poolID uint64, creator string) (*Pool, error)
	WithdrawShare(ctx context.Context, req *WithdrawShareRequest) (*WithdrawShareResponse, error)
	GetPool(ctx context.Context, poolID uint64) (*Pool, error)
	ListPools(ctx context.Context, req *ListPoolsRequest) (*ListPoolsResponse, error)
	GetStats(ctx context.Context) (*RegistryStats, error)
}

// LotteryService defines the interface for lottery operations
type LotteryService interface {
	RequestDraw(ctx context.Context, req *RequestDrawRequest) (*RequestDrawResponse, error)
	GetDraw(ctx context.Context, drawID uint64) (*Draw, error)
	ListDraws(ctx context.Context, req *ListDrawsRequest) (*ListDrawsResponse, error)
	GetLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
	GetTreasury(ctx context.Context) (*Treasury, error)
}

// Helper function to get current timestamp in milliseconds
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
