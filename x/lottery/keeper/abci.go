package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/lottery/types"
)

// EndBlocker is called at the end of each block to run due draws
func (k *Keeper) EndBlocker(ctx sdk.Context) error {
	blockHeight := ctx.BlockHeight()
	start := time.Now()

	// Phase 1: open draws for pools whose interval has elapsed
	requestStart := time.Now()
	requested := k.RequestDueDraws(ctx)
	requestDuration := time.Since(requestStart)

	// Phase 2: resolve and pay every draw opened this pass
	processStart := time.Now()
	processed := k.BatchProcessDraws(ctx, requested)
	processDuration := time.Since(processStart)

	totalDuration := time.Since(start)

	k.logger.Debug("Lottery EndBlocker completed",
		"block", blockHeight,
		"total_ms", totalDuration.Milliseconds(),
		"request_ms", requestDuration.Milliseconds(),
		"process_ms", processDuration.Milliseconds(),
		"draws_requested", len(requested),
		"draws_processed", processed,
	)

	if len(requested) > 0 {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				"lottery_endblock",
				sdk.NewAttribute("block_height", math.NewInt(blockHeight).String()),
				sdk.NewAttribute("draws_requested", math.NewInt(int64(len(requested))).String()),
				sdk.NewAttribute("draws_processed", math.NewInt(int64(processed)).String()),
			),
		)
	}

	return nil
}

// RequestDueDraws opens a draw for every eligible pool whose interval has
// elapsed and whose custody yield produces a positive prize
func (k *Keeper) RequestDueDraws(ctx sdk.Context) []uint64 {
	config := k.GetConfig(ctx)
	if !config.IsActive {
		return nil
	}

	now := time.Now().Unix()
	var requested []uint64

	for _, state := range k.GetAllPoolStates(ctx) {
		if !state.IsEligible(config.MinPoolSize) {
			continue
		}
		if state.LastDrawTimestamp > 0 && now-state.LastDrawTimestamp < config.DrawInterval {
			continue
		}

		yield := k.custodyKeeper.GetYield(ctx, state.PoolID)
		if !k.CalculatePrizeAmount(ctx, yield).IsPositive() {
			continue
		}

		drawID, err := k.RequestDraw(ctx, state.PoolID, yield)
		if err != nil {
			if err != types.ErrDrawTooSoon {
				k.logger.Error("Scheduled draw request failed",
					"pool_id", state.PoolID,
					"error", err.Error(),
				)
			}
			continue
		}
		requested = append(requested, drawID)
	}

	return requested
}
