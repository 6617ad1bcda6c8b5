package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// EndBlocker is called at the end of each block to settle matured pools
// and refresh custody accrual bookkeeping
func (k *Keeper) EndBlocker(ctx sdk.Context) error {
	blockHeight := ctx.BlockHeight()
	start := time.Now()

	// Phase 1: complete pools whose term has elapsed
	completeStart := time.Now()
	completedCount := k.ProcessMaturedPools(ctx)
	completeDuration := time.Since(completeStart)

	// Phase 2: opportunistic yield accrual refresh for active pools
	accrualStart := time.Now()
	accruedCount := k.RefreshYieldAccrual(ctx)
	accrualDuration := time.Since(accrualStart)

	totalDuration := time.Since(start)

	k.logger.Debug("Savings EndBlocker completed",
		"block", blockHeight,
		"total_ms", totalDuration.Milliseconds(),
		"complete_ms", completeDuration.Milliseconds(),
		"accrual_ms", accrualDuration.Milliseconds(),
		"pools_completed", completedCount,
		"pools_accrued", accruedCount,
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"savings_endblock",
			sdk.NewAttribute("block_height", math.NewInt(blockHeight).String()),
			sdk.NewAttribute("duration_ms", math.NewInt(totalDuration.Milliseconds()).String()),
			sdk.NewAttribute("pools_completed", math.NewInt(int64(completedCount)).String()),
		),
	)

	return nil
}

// ProcessMaturedPools completes every active pool whose term has elapsed
func (k *Keeper) ProcessMaturedPools(ctx sdk.Context) int {
	now := time.Now().Unix()
	completedCount := 0

	pools := k.GetPoolsByStatus(ctx, types.PoolStatusActive)
	for _, pool := range pools {
		if !pool.CanComplete(now) {
			continue
		}
		if _, err := k.CompletePool(ctx, pool.PoolID); err != nil {
			k.logger.Error("Auto-completion failed",
				"pool_id", pool.PoolID,
				"error", err.Error(),
			)
			continue
		}
		completedCount++
	}

	return completedCount
}

// RefreshYieldAccrual nudges the custody bridge's accrual bookkeeping for
// every active pool
func (k *Keeper) RefreshYieldAccrual(ctx sdk.Context) int {
	pools := k.GetPoolsByStatus(ctx, types.PoolStatusActive)
	for _, pool := range pools {
		k.custodyKeeper.UpdateYield(ctx, pool.PoolID)
	}
	return len(pools)
}
