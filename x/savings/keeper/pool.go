package keeper

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// JoinPool handles a member joining an open pool. The contribution must
// match the pool's fixed contribution amount exactly. Filling the last
// seat locks the pool in the same operation.
func (k *Keeper) JoinPool(ctx context.Context, member string, poolID uint64, amount math.LegacyDec) (*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}

	if pool.Status != types.PoolStatusOpen {
		return nil, types.ErrInvalidState
	}

	if k.IsPaused(sdkCtx) {
		return nil, types.ErrFactoryPaused
	}

	if !amount.Equal(pool.ContributionAmount) {
		return nil, types.ErrInvalidContribution
	}

	if pool.IsMember(member) {
		return nil, types.ErrAlreadyMember
	}

	if pool.IsFull() {
		return nil, types.ErrInvalidState
	}

	// Pull the contribution before touching pool state
	if err := k.fundsKeeper.CollectFromAccount(ctx, member, amount); err != nil {
		return nil, fmt.Errorf("collect contribution: %w", err)
	}

	now := time.Now().Unix()
	pool.AddMember(member, amount, now)
	pool.TotalFunds = pool.TotalFunds.Add(amount)

	locked := false
	if pool.IsFull() {
		if err := k.lockTransition(sdkCtx, pool); err != nil {
			return nil, err
		}
		locked = true
	}

	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"savings_join_pool",
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute("member", member),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("member_count", fmt.Sprintf("%d", pool.MemberCount())),
			sdk.NewAttribute("locked", fmt.Sprintf("%v", locked)),
		),
	)

	k.logger.Info("Member joined pool",
		"pool_id", poolID,
		"member", member,
		"amount", amount.String(),
		"member_count", pool.MemberCount(),
		"locked", locked,
	)

	return pool, nil
}

// LeavePool handles a member leaving an open pool with a full refund
func (k *Keeper) LeavePool(ctx context.Context, member string, poolID uint64) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return math.LegacyZeroDec(), types.ErrPoolNotFound
	}

	if pool.Status != types.PoolStatusOpen {
		return math.LegacyZeroDec(), types.ErrInvalidState
	}

	record := pool.FindMember(member)
	if record == nil {
		return math.LegacyZeroDec(), types.ErrNotMember
	}
	refund := record.Contribution

	if err := k.fundsKeeper.PayToAccount(ctx, member, refund); err != nil {
		return math.LegacyZeroDec(), fmt.Errorf("refund contribution: %w", err)
	}

	pool.RemoveMember(member)
	pool.TotalFunds = pool.TotalFunds.Sub(refund)
	k.SetPool(sdkCtx, pool)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"savings_leave_pool",
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute("member", member),
			sdk.NewAttribute("refund", refund.String()),
		),
	)

	k.logger.Info("Member left pool",
		"pool_id", poolID,
		"member", member,
		"refund", refund.String(),
	)

	return refund, nil
}

// LockPool locks a pool manually before capacity. Only the creator may
// do this, and the pool needs enough members to run a meaningful term.
func (k *Keeper) LockPool(ctx context.Context, creator string, poolID uint64) (*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}

	if pool.Creator != creator {
		return nil, types.ErrUnauthorized
	}

	if !pool.CanLock() {
		return nil, types.ErrInvalidState
	}

	if err := k.lockTransition(sdkCtx, pool); err != nil {
		return nil, err
	}
	k.SetPool(sdkCtx, pool)

	return pool, nil
}

// lockTransition moves a pool from open to active: the collected
// contributions are swept to custody, the term clock starts, members are
// enrolled in the lottery, and contribution badges are minted. The custody
// deposit runs first so a bridge failure leaves the pool untouched and
// still open.
func (k *Keeper) lockTransition(sdkCtx sdk.Context, pool *types.Pool) error {
	if err := k.custodyKeeper.Deposit(sdkCtx, pool.PoolID, pool.StrategyTag, pool.TotalFunds); err != nil {
		k.logger.Error("Custody deposit failed, pool stays open",
			"pool_id", pool.PoolID,
			"amount", pool.TotalFunds.String(),
			"error", err.Error(),
		)
		return types.ErrCustodyDepositFailed
	}

	now := time.Now().Unix()
	pool.Status = types.PoolStatusActive
	pool.LockedAt = now
	pool.ContributionsAtLock = pool.TotalFunds

	// Locked value joins the platform TVL tally
	stats := k.GetRegistryStats(sdkCtx)
	stats.TotalValueLocked = stats.TotalValueLocked.Add(pool.ContributionsAtLock)
	k.SetRegistryStats(sdkCtx, stats)

	// Lottery enrollment is weighted by contribution. Pools below the
	// lottery's minimum size are skipped, and an enrollment failure does
	// not undo the lock.
	if k.lotteryKeeper != nil && pool.MemberCount() >= k.lotteryKeeper.GetMinPoolSize(sdkCtx) {
		addresses := make([]string, 0, len(pool.Members))
		weights := make([]math.LegacyDec, 0, len(pool.Members))
		for _, m := range pool.Members {
			addresses = append(addresses, m.Address)
			weights = append(weights, m.Contribution)
		}
		if err := k.lotteryKeeper.AddParticipants(sdkCtx, pool.PoolID, addresses, weights); err != nil {
			k.logger.Error("Lottery enrollment failed",
				"pool_id", pool.PoolID,
				"error", err.Error(),
			)
		}
	}

	// Badge mints are best effort
	if k.badgeKeeper != nil {
		for _, m := range pool.Members {
			if err := k.badgeKeeper.MintContribution(sdkCtx, m.Address, m.Contribution); err != nil {
				k.logger.Debug("Badge mint skipped",
					"pool_id", pool.PoolID,
					"member", m.Address,
					"error", err.Error(),
				)
			}
		}
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"savings_pool_locked",
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", pool.PoolID)),
			sdk.NewAttribute("member_count", fmt.Sprintf("%d", pool.MemberCount())),
			sdk.NewAttribute("contributions", pool.ContributionsAtLock.String()),
			sdk.NewAttribute("matures_at", fmt.Sprintf("%d", pool.MaturesAt())),
		),
	)

	k.logger.Info("Pool locked",
		"pool_id", pool.PoolID,
		"member_count", pool.MemberCount(),
		"contributions", pool.ContributionsAtLock.String(),
		"matures_at", pool.MaturesAt(),
	)

	return nil
}
