package keeper

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// CompletePool settles a matured pool: principal plus yield is pulled back
// from custody, each member's yield share is fixed pro-rata, a slice of the
// yield is routed to the lottery treasury, and the pool becomes terminal.
// Callable by any party.
func (k *Keeper) CompletePool(ctx context.Context, poolID uint64) (*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}

	if pool.Status != types.PoolStatusActive {
		return nil, types.ErrInvalidState
	}

	now := time.Now().Unix()
	if !pool.CanComplete(now) {
		return nil, types.ErrPoolNotMature
	}

	principal, yield, err := k.custodyKeeper.Withdraw(sdkCtx, poolID)
	if err != nil {
		return nil, fmt.Errorf("custody withdraw: %w", err)
	}
	if !principal.Equal(pool.ContributionsAtLock) {
		k.logger.Error("Custody principal mismatch",
			"pool_id", poolID,
			"expected", pool.ContributionsAtLock.String(),
			"returned", principal.String(),
		)
	}

	// The custody bridge only reports realized yield; the bank side still
	// holds nothing but principal. Mint the members' yield plus the
	// lottery's slice into the module account before either becomes
	// payable, or every payout past principal would overdraw it.
	lotteryShare := math.LegacyZeroDec()
	if k.lotteryKeeper != nil && yield.IsPositive() {
		lotteryShare = yield.MulInt64(types.LotteryFundShareBps).QuoInt64(10000)
	}
	if backing := yield.Add(lotteryShare); backing.IsPositive() {
		if err := k.fundsKeeper.MintYield(sdkCtx, backing); err != nil {
			return nil, fmt.Errorf("yield backing: %w", err)
		}
	}

	pool.Status = types.PoolStatusCompleted
	pool.CompletedAt = now
	pool.YieldAmount = yield

	// Pro-rata yield split. The last member absorbs any rounding dust so
	// the shares sum exactly to the pool's yield.
	if len(pool.Members) > 0 && pool.ContributionsAtLock.IsPositive() {
		distributed := math.LegacyZeroDec()
		for i := range pool.Members {
			if i == len(pool.Members)-1 {
				pool.Members[i].YieldEarned = yield.Sub(distributed)
				break
			}
			share := yield.Mul(pool.Members[i].Contribution).Quo(pool.ContributionsAtLock)
			pool.Members[i].YieldEarned = share
			distributed = distributed.Add(share)
		}
	}

	k.SetPool(sdkCtx, pool)

	// Registry synchronization
	stats := k.GetRegistryStats(sdkCtx)
	if stats.ActivePools > 0 {
		stats.ActivePools--
	}
	stats.CompletedPools++
	stats.TotalValueLocked = stats.TotalValueLocked.Sub(pool.ContributionsAtLock)
	if stats.TotalValueLocked.IsNegative() {
		stats.TotalValueLocked = math.LegacyZeroDec()
	}
	stats.TotalYieldGenerated = stats.TotalYieldGenerated.Add(yield)
	k.SetRegistryStats(sdkCtx, stats)

	creatorState := k.GetCreatorState(sdkCtx, pool.Creator)
	if creatorState.ActivePools > 0 {
		creatorState.ActivePools--
	}
	k.SetCreatorState(sdkCtx, creatorState)

	// Route the lottery's slice of the yield to its treasury
	if k.lotteryKeeper != nil && lotteryShare.IsPositive() {
		k.lotteryKeeper.FundPrizePool(sdkCtx, poolID, lotteryShare)
	}

	// Completion badges are gated on yield per member and best effort
	if k.badgeKeeper != nil && len(pool.Members) > 0 {
		yieldPerMember := yield.QuoInt64(int64(len(pool.Members)))
		if yieldPerMember.GTE(types.HighYieldBadgeFloor) {
			for _, m := range pool.Members {
				if err := k.badgeKeeper.MintCompletion(sdkCtx, m.Address, yieldPerMember); err != nil {
					k.logger.Debug("Completion badge skipped",
						"pool_id", poolID,
						"member", m.Address,
						"error", err.Error(),
					)
				}
			}
		}
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"savings_pool_completed",
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute("principal", principal.String()),
			sdk.NewAttribute("yield", yield.String()),
			sdk.NewAttribute("member_count", fmt.Sprintf("%d", pool.MemberCount())),
		),
	)

	k.logger.Info("Pool completed",
		"pool_id", poolID,
		"principal", principal.String(),
		"yield", yield.String(),
	)

	return pool, nil
}

// TriggerCompletion completes the pool when its term has elapsed and is a
// quiet no-op otherwise. Safe to call repeatedly; a second call after
// completion returns false without error.
func (k *Keeper) TriggerCompletion(ctx context.Context, poolID uint64) (bool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return false, types.ErrPoolNotFound
	}

	if !pool.CanComplete(time.Now().Unix()) {
		return false, nil
	}

	if _, err := k.CompletePool(ctx, poolID); err != nil {
		return false, err
	}
	return true, nil
}

// WithdrawShare pays a member their contribution plus earned yield from a
// completed pool. The member is marked withdrawn before any funds move; a
// transfer failure leaves the mark in place and needs the emergency path.
func (k *Keeper) WithdrawShare(ctx context.Context, member string, poolID uint64) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return math.LegacyZeroDec(), types.ErrPoolNotFound
	}

	if pool.Status != types.PoolStatusCompleted {
		return math.LegacyZeroDec(), types.ErrInvalidState
	}

	record := pool.FindMember(member)
	if record == nil {
		return math.LegacyZeroDec(), types.ErrNotMember
	}
	if record.HasWithdrawn {
		return math.LegacyZeroDec(), types.ErrAlreadyWithdrawn
	}

	payout := record.Contribution.Add(record.YieldEarned)

	// Mark before pay
	record.HasWithdrawn = true
	k.SetPool(sdkCtx, pool)

	if err := k.fundsKeeper.PayToAccount(ctx, member, payout); err != nil {
		k.logger.Error("Share payout failed, member stays marked",
			"pool_id", poolID,
			"member", member,
			"amount", payout.String(),
			"error", err.Error(),
		)
		return math.LegacyZeroDec(), types.ErrWithdrawalFailed
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"savings_withdraw_share",
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute("member", member),
			sdk.NewAttribute("amount", payout.String()),
		),
	)

	k.logger.Info("Share withdrawn",
		"pool_id", poolID,
		"member", member,
		"amount", payout.String(),
	)

	return payout, nil
}

// EmergencyWithdraw is the admin recovery path: it pays a member their
// contribution plus earned yield regardless of the withdrawn mark or pool
// state, for incident remediation after a failed transfer.
func (k *Keeper) EmergencyWithdraw(ctx context.Context, authority string, poolID uint64, member string) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if authority != k.authority {
		return math.LegacyZeroDec(), types.ErrUnauthorized
	}

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return math.LegacyZeroDec(), types.ErrPoolNotFound
	}

	record := pool.FindMember(member)
	if record == nil {
		return math.LegacyZeroDec(), types.ErrNotMember
	}

	payout := record.Contribution.Add(record.YieldEarned)

	record.HasWithdrawn = true
	k.SetPool(sdkCtx, pool)

	if err := k.fundsKeeper.PayToAccount(ctx, member, payout); err != nil {
		k.logger.Error("Emergency payout failed",
			"pool_id", poolID,
			"member", member,
			"amount", payout.String(),
			"error", err.Error(),
		)
		return math.LegacyZeroDec(), types.ErrWithdrawalFailed
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"savings_emergency_withdraw",
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute("member", member),
			sdk.NewAttribute("amount", payout.String()),
		),
	)

	k.logger.Warn("Emergency withdrawal executed",
		"pool_id", poolID,
		"member", member,
		"amount", payout.String(),
	)

	return payout, nil
}

// CanLockPool reports whether a pool can be locked manually
func (k *Keeper) CanLockPool(ctx sdk.Context, poolID uint64) bool {
	pool := k.GetPool(ctx, poolID)
	return pool != nil && pool.CanLock()
}

// CanCompletePool reports whether a pool's term has elapsed
func (k *Keeper) CanCompletePool(ctx sdk.Context, poolID uint64) bool {
	pool := k.GetPool(ctx, poolID)
	return pool != nil && pool.CanComplete(time.Now().Unix())
}

// GetTimeRemaining returns seconds until a pool matures
func (k *Keeper) GetTimeRemaining(ctx sdk.Context, poolID uint64) int64 {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return 0
	}
	return pool.TimeRemaining(time.Now().Unix())
}

// GetMemberInfo returns a member's record in a pool, or nil
func (k *Keeper) GetMemberInfo(ctx sdk.Context, poolID uint64, member string) *types.PoolMember {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return nil
	}
	return pool.FindMember(member)
}
