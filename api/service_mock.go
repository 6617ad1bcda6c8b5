package api

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Candra0x6/Roca-sub001/api/types"
)

// MockService implements PoolService and LotteryService with in-memory state.
// Used for frontend development and integration testing without a running chain.
type MockService struct {
	mu sync.RWMutex

	pools    map[uint64]*types.Pool
	draws    map[uint64]*types.Draw
	winners  map[string]*types.LeaderboardEntry
	treasury float64

	nextPoolID uint64
	nextDrawID uint64
}

// NewMockService creates a mock service pre-seeded with a few pools
func NewMockService() *MockService {
	s := &MockService{
		pools:      make(map[uint64]*types.Pool),
		draws:      make(map[uint64]*types.Draw),
		winners:    make(map[string]*types.LeaderboardEntry),
		treasury:   250.0,
		nextPoolID: 1,
		nextDrawID: 1,
	}
	s.seed()
	return s
}

func (s *MockService) seed() {
	now := time.Now().Unix()

	open := &types.Pool{
		PoolID:             s.nextPoolID,
		Name:               "weekend savers",
		Creator:            "cosmos1mockcreator000000000000000000000000aaa",
		Status:             "open",
		ContributionAmount: "100",
		MaxMembers:         10,
		Duration:           30 * 24 * 3600,
		StrategyTag:        "stable",
		TotalFunds:         "300",
		YieldAmount:        "0",
		CreatedAt:          now - 3600,
	}
	for i := 0; i < 3; i++ {
		open.Members = append(open.Members, types.Member{
			Address:      fmt.Sprintf("cosmos1mockmember%030d", i),
			Contribution: "100",
			YieldEarned:  "0",
			JoinedAt:     now - 3600 + int64(i*60),
		})
	}
	open.MemberCount = len(open.Members)
	s.pools[open.PoolID] = open
	s.nextPoolID++

	active := &types.Pool{
		PoolID:             s.nextPoolID,
		Name:               "rent circle",
		Creator:            "cosmos1mockcreator000000000000000000000000bbb",
		Status:             "active",
		ContributionAmount: "500",
		MaxMembers:         5,
		Duration:           90 * 24 * 3600,
		StrategyTag:        "growth",
		TotalFunds:         "2500",
		YieldAmount:        "0",
		CreatedAt:          now - 14*24*3600,
		LockedAt:           now - 13*24*3600,
	}
	for i := 0; i < 5; i++ {
		active.Members = append(active.Members, types.Member{
			Address:      fmt.Sprintf("cosmos1mockactive%030d", i),
			Contribution: "500",
			YieldEarned:  "0",
			JoinedAt:     now - 14*24*3600,
		})
	}
	active.MemberCount = len(active.Members)
	s.pools[active.PoolID] = active
	s.nextPoolID++

	s.draws[s.nextDrawID] = &types.Draw{
		DrawID:           s.nextDrawID,
		PoolID:           active.PoolID,
		PrizeAmount:      "12.5",
		Winner:           active.Members[2].Address,
		Resolved:         true,
		PrizePaid:        true,
		ParticipantCount: 5,
		RequestedAt:      now - 7*24*3600,
		ResolvedAt:       now - 7*24*3600 + 60,
	}
	s.winners[active.Members[2].Address] = &types.LeaderboardEntry{
		Address:       active.Members[2].Address,
		Wins:          1,
		TotalWinnings: "12.5",
		LastWinAt:     now - 7*24*3600 + 60,
	}
	s.nextDrawID++
}

func (s *MockService) CreatePool(ctx context.Context, req *types.CreatePoolRequest) (*types.CreatePoolResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("pool name cannot be empty")
	}
	amt, err := strconv.ParseFloat(req.ContributionAmount, 64)
	if err != nil || amt <= 0 {
		return nil, fmt.Errorf("invalid contribution amount")
	}
	if req.MaxMembers < 2 {
		return nil, fmt.Errorf("pool needs at least 2 members")
	}
	if req.Duration <= 0 {
		return nil, fmt.Errorf("invalid duration")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pool := &types.Pool{
		PoolID:             s.nextPoolID,
		Name:               req.Name,
		Creator:            req.Creator,
		Status:             "open",
		ContributionAmount: req.ContributionAmount,
		MaxMembers:         req.MaxMembers,
		Duration:           req.Duration,
		StrategyTag:        req.StrategyTag,
		TotalFunds:         "0",
		YieldAmount:        "0",
		CreatedAt:          time.Now().Unix(),
	}
	s.pools[pool.PoolID] = pool
	s.nextPoolID++

	return &types.CreatePoolResponse{Pool: pool}, nil
}

func (s *MockService) JoinPool(ctx context.Context, req *types.JoinPoolRequest) (*types.JoinPoolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[req.PoolID]
	if !ok {
		return nil, fmt.Errorf("pool %d not found", req.PoolID)
	}
	if pool.Status != "open" {
		return nil, fmt.Errorf("pool is not open")
	}
	if req.Amount != pool.ContributionAmount {
		return nil, fmt.Errorf("contribution must equal %s exactly", pool.ContributionAmount)
	}
	for _, m := range pool.Members {
		if m.Address == req.Member {
			return nil, fmt.Errorf("already a member")
		}
	}

	pool.Members = append(pool.Members, types.Member{
		Address:      req.Member,
		Contribution: req.Amount,
		YieldEarned:  "0",
		JoinedAt:     time.Now().Unix(),
	})
	pool.MemberCount = len(pool.Members)
	pool.TotalFunds = mulAmount(pool.ContributionAmount, pool.MemberCount)

	locked := false
	if uint32(pool.MemberCount) >= pool.MaxMembers {
		pool.Status = "active"
		pool.LockedAt = time.Now().Unix()
		locked = true
	}

	return &types.JoinPoolResponse{Pool: pool, Locked: locked}, nil
}

func (s *MockService) LeavePool(ctx context.Context, req *types.LeavePoolRequest) (*types.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[req.PoolID]
	if !ok {
		return nil, fmt.Errorf("pool %d not found", req.PoolID)
	}
	if pool.Status != "open" {
		return nil, fmt.Errorf("can only leave an open pool")
	}
	for i, m := range pool.Members {
		if m.Address == req.Member {
			pool.Members = append(pool.Members[:i], pool.Members[i+1:]...)
			pool.MemberCount = len(pool.Members)
			pool.TotalFunds = mulAmount(pool.ContributionAmount, pool.MemberCount)
			return pool, nil
		}
	}
	return nil, fmt.Errorf("not a member")
}

func (s *MockService) LockPool(ctx context.Context, poolID uint64, creator string) (*types.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool %d not found", poolID)
	}
	if pool.Creator != creator {
		return nil, fmt.Errorf("only the creator can lock the pool")
	}
	if pool.Status != "open" {
		return nil, fmt.Errorf("pool is not open")
	}
	if pool.MemberCount < 2 {
		return nil, fmt.Errorf("pool needs at least 2 members to lock")
	}
	pool.Status = "active"
	pool.LockedAt = time.Now().Unix()
	return pool, nil
}

func (s *MockService) WithdrawShare(ctx context.Context, req *types.WithdrawShareRequest) (*types.WithdrawShareResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[req.PoolID]
	if !ok {
		return nil, fmt.Errorf("pool %d not found", req.PoolID)
	}
	if pool.Status != "completed" {
		return nil, fmt.Errorf("pool is not completed")
	}
	for i := range pool.Members {
		m := &pool.Members[i]
		if m.Address != req.Member {
			continue
		}
		if m.HasWithdrawn {
			return nil, fmt.Errorf("share already withdrawn")
		}
		m.HasWithdrawn = true
		contribution, _ := strconv.ParseFloat(m.Contribution, 64)
		yield, _ := strconv.ParseFloat(m.YieldEarned, 64)
		return &types.WithdrawShareResponse{
			PoolID: req.PoolID,
			Member: req.Member,
			Payout: strconv.FormatFloat(contribution+yield, 'f', -1, 64),
		}, nil
	}
	return nil, fmt.Errorf("not a member")
}

func (s *MockService) GetPool(ctx context.Context, poolID uint64) (*types.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool %d not found", poolID)
	}
	return pool, nil
}

func (s *MockService) ListPools(ctx context.Context, req *types.ListPoolsRequest) (*types.ListPoolsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pools []*types.Pool
	for _, p := range s.pools {
		if req.Status != "" && p.Status != req.Status {
			continue
		}
		if req.Creator != "" && p.Creator != req.Creator {
			continue
		}
		pools = append(pools, p)
	}
	sort.Slice(pools, func(i, j int) bool { return pools[i].PoolID < pools[j].PoolID })

	total := len(pools)
	if req.Limit > 0 && len(pools) > req.Limit {
		pools = pools[:req.Limit]
	}
	return &types.ListPoolsResponse{Pools: pools, Total: total}, nil
}

func (s *MockService) GetStats(ctx context.Context) (*types.RegistryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &types.RegistryStats{TotalPools: uint64(len(s.pools))}
	tvl := 0.0
	for _, p := range s.pools {
		switch p.Status {
		case "active":
			stats.ActivePools++
			funds, _ := strconv.ParseFloat(p.TotalFunds, 64)
			tvl += funds
		case "completed":
			stats.CompletedPools++
		}
	}
	stats.TotalValue = strconv.FormatFloat(tvl, 'f', -1, 64)
	return stats, nil
}

func (s *MockService) RequestDraw(ctx context.Context, req *types.RequestDrawRequest) (*types.RequestDrawResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[req.PoolID]
	if !ok {
		return nil, fmt.Errorf("pool %d not found", req.PoolID)
	}
	if pool.Status != "active" {
		return nil, fmt.Errorf("pool is not active")
	}
	if pool.MemberCount < 5 {
		return nil, fmt.Errorf("pool has fewer than 5 members")
	}

	draw := &types.Draw{
		DrawID:           s.nextDrawID,
		PoolID:           req.PoolID,
		PrizeAmount:      "10",
		ParticipantCount: pool.MemberCount,
		RequestedAt:      time.Now().Unix(),
	}
	s.draws[draw.DrawID] = draw
	s.nextDrawID++

	return &types.RequestDrawResponse{Draw: draw}, nil
}

func (s *MockService) GetDraw(ctx context.Context, drawID uint64) (*types.Draw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draw, ok := s.draws[drawID]
	if !ok {
		return nil, fmt.Errorf("draw %d not found", drawID)
	}
	return draw, nil
}

func (s *MockService) ListDraws(ctx context.Context, req *types.ListDrawsRequest) (*types.ListDrawsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var draws []*types.Draw
	for _, d := range s.draws {
		if req.PoolID != 0 && d.PoolID != req.PoolID {
			continue
		}
		if req.Resolved != nil && d.Resolved != *req.Resolved {
			continue
		}
		draws = append(draws, d)
	}
	sort.Slice(draws, func(i, j int) bool { return draws[i].DrawID < draws[j].DrawID })

	total := len(draws)
	if req.Limit > 0 && len(draws) > req.Limit {
		draws = draws[:req.Limit]
	}
	return &types.ListDrawsResponse{Draws: draws, Total: total}, nil
}

func (s *MockService) GetLeaderboard(ctx context.Context, limit int) ([]*types.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*types.LeaderboardEntry, 0, len(s.winners))
	for _, e := range s.winners {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Wins > entries[j].Wins })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *MockService) GetTreasury(ctx context.Context) (*types.Treasury, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending, resolved := 0, 0
	for _, d := range s.draws {
		if d.Resolved {
			resolved++
		} else {
			pending++
		}
	}
	return &types.Treasury{
		Balance:       strconv.FormatFloat(s.treasury, 'f', -1, 64),
		TotalFunded:   strconv.FormatFloat(s.treasury+12.5, 'f', -1, 64),
		TotalPaidOut:  "12.5",
		PendingDraws:  pending,
		ResolvedDraws: resolved,
	}, nil
}

func mulAmount(amount string, n int) string {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return "0"
	}
	return strconv.FormatFloat(v*float64(n), 'f', -1, 64)
}
