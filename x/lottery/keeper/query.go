package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/lottery/types"
)

// QueryServer defines the lottery QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Config returns the lottery configuration
func (q *QueryServer) Config(ctx context.Context) (types.LotteryConfig, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetConfig(sdkCtx), nil
}

// Draw returns a draw by id. Unknown ids return a zeroed record rather
// than an error.
func (q *QueryServer) Draw(ctx context.Context, drawID uint64) (types.LotteryDraw, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	draw := q.keeper.GetDraw(sdkCtx, drawID)
	if draw == nil {
		return types.LotteryDraw{PrizeAmount: math.LegacyZeroDec(), PaidAmount: math.LegacyZeroDec()}, nil
	}
	return *draw, nil
}

// PoolParticipants returns the registered participants for a pool
func (q *QueryServer) PoolParticipants(ctx context.Context, poolID uint64) ([]types.Participant, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetPoolState(sdkCtx, poolID).Participants, nil
}

// PoolStatus returns a pool's lottery eligibility summary
func (q *QueryServer) PoolStatus(ctx context.Context, poolID uint64) (types.PoolLotteryStatus, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	config := q.keeper.GetConfig(sdkCtx)
	state := q.keeper.GetPoolState(sdkCtx, poolID)
	return types.PoolLotteryStatus{
		PoolID:            poolID,
		IsEligible:        state.IsEligible(config.MinPoolSize),
		ParticipantCount:  int64(len(state.Participants)),
		LastDrawTimestamp: state.LastDrawTimestamp,
	}, nil
}

// GlobalStats returns draw statistics across all pools
func (q *QueryServer) GlobalStats(ctx context.Context) (*types.GlobalLotteryStats, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetGlobalStats(sdkCtx), nil
}

// ParticipantHistory returns an address's cross-draw history
func (q *QueryServer) ParticipantHistory(ctx context.Context, address string) (*types.ParticipantRecord, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetParticipantRecord(sdkCtx, address), nil
}

// Leaderboard returns the top n addresses by cumulative winnings
func (q *QueryServer) Leaderboard(ctx context.Context, n int) ([]types.LeaderboardEntry, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetLeaderboard(sdkCtx, n), nil
}

// DrawsByTimeRange returns draws inside [from, to]
func (q *QueryServer) DrawsByTimeRange(ctx context.Context, from, to int64) ([]*types.LotteryDraw, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetDrawsByTimeRange(sdkCtx, from, to), nil
}

// Treasury returns the pooled prize balance
func (q *QueryServer) Treasury(ctx context.Context) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetTreasury(sdkCtx), nil
}
