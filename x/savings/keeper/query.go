package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// QueryServer defines the savings QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Pool returns a pool by id
func (q *QueryServer) Pool(ctx context.Context, poolID uint64) (*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	return pool, nil
}

// Pools returns all pools
func (q *QueryServer) Pools(ctx context.Context, offset, limit uint64) ([]*types.Pool, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allPools := q.keeper.GetAllPools(sdkCtx)

	total := uint64(len(allPools))

	// Apply pagination
	if offset >= total {
		return []*types.Pool{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allPools[offset:end], total, nil
}

// PoolsByStatus returns pools filtered by status
func (q *QueryServer) PoolsByStatus(ctx context.Context, status string) ([]*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetPoolsByStatus(sdkCtx, status), nil
}

// CreatorPools returns pools created by an address
func (q *QueryServer) CreatorPools(ctx context.Context, creator string) ([]*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetPoolsByCreator(sdkCtx, creator), nil
}

// MemberPools returns pools the address has joined
func (q *QueryServer) MemberPools(ctx context.Context, member string) ([]*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetPoolsByMember(sdkCtx, member), nil
}

// Members returns the member list of a pool
func (q *QueryServer) Members(ctx context.Context, poolID uint64) ([]types.PoolMember, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	return pool.Members, nil
}

// MemberInfo returns a single member record in a pool
func (q *QueryServer) MemberInfo(ctx context.Context, poolID uint64, member string) (*types.PoolMember, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	record := q.keeper.GetMemberInfo(sdkCtx, poolID, member)
	if record == nil {
		return nil, types.ErrNotMember
	}
	return record, nil
}

// IsMember reports pool membership for an address
func (q *QueryServer) IsMember(ctx context.Context, poolID uint64, member string) (bool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, poolID)
	if pool == nil {
		return false, types.ErrPoolNotFound
	}
	return pool.IsMember(member), nil
}

// PoolStatus returns lifecycle details for a pool
func (q *QueryServer) PoolStatus(ctx context.Context, poolID uint64) (status string, timeRemaining int64, canLock, canComplete bool, err error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, poolID)
	if pool == nil {
		return "", 0, false, false, types.ErrPoolNotFound
	}
	return pool.Status,
		q.keeper.GetTimeRemaining(sdkCtx, poolID),
		pool.CanLock(),
		q.keeper.CanCompletePool(sdkCtx, poolID),
		nil
}

// RegistryStats returns platform-wide pool statistics
func (q *QueryServer) RegistryStats(ctx context.Context) (*types.RegistryStats, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetRegistryStats(sdkCtx), nil
}

// Constraints returns the admission-control configuration
func (q *QueryServer) Constraints(ctx context.Context) (types.GlobalConstraints, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetGlobalConstraints(sdkCtx), nil
}

// CanCreate is the read-only creation gate dry run
func (q *QueryServer) CanCreate(ctx context.Context, creator string) (bool, string, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allowed, reason := q.keeper.CanCreatePool(sdkCtx, creator)
	return allowed, reason, nil
}

// CreatorState returns a creator's admission-control bookkeeping
func (q *QueryServer) CreatorState(ctx context.Context, creator string) (*types.CreatorState, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetCreatorState(sdkCtx, creator), nil
}
