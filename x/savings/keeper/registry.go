package keeper

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// CreatePool validates creation parameters against the admission-control
// constraints and instantiates a new open pool with the next id
func (k *Keeper) CreatePool(ctx context.Context, params *types.PoolParams) (*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := params.Validate(); err != nil {
		return nil, err
	}

	if k.IsPaused(sdkCtx) {
		return nil, types.ErrFactoryPaused
	}

	now := time.Now().Unix()
	if err := k.checkCreation(sdkCtx, params.Creator, now); err != nil {
		return nil, err
	}

	poolID := k.NextPoolID(sdkCtx)
	pool := types.NewPool(poolID, params)
	k.SetPool(sdkCtx, pool)

	creatorState := k.GetCreatorState(sdkCtx, params.Creator)
	creatorState.PoolIDs = append(creatorState.PoolIDs, poolID)
	creatorState.ActivePools++
	creatorState.LastPoolCreation = now
	k.SetCreatorState(sdkCtx, creatorState)

	stats := k.GetRegistryStats(sdkCtx)
	stats.TotalPools++
	stats.ActivePools++
	k.SetRegistryStats(sdkCtx, stats)

	// Creator badge is best effort
	if k.badgeKeeper != nil {
		if err := k.badgeKeeper.MintCreator(sdkCtx, params.Creator); err != nil {
			k.logger.Debug("Creator badge skipped",
				"creator", params.Creator,
				"error", err.Error(),
			)
		}
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"savings_create_pool",
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute("creator", params.Creator),
			sdk.NewAttribute("name", params.Name),
			sdk.NewAttribute("contribution_amount", params.ContributionAmount.String()),
			sdk.NewAttribute("max_members", fmt.Sprintf("%d", params.MaxMembers)),
		),
	)

	k.logger.Info("Pool created",
		"pool_id", poolID,
		"creator", params.Creator,
		"name", params.Name,
		"max_members", params.MaxMembers,
	)

	return pool, nil
}

// checkCreation applies the admission-control constraints for a creator.
// CreatePool and CanCreatePool both run through here so the dry run never
// drifts from the real gate.
func (k *Keeper) checkCreation(ctx sdk.Context, creator string, now int64) error {
	constraints := k.GetGlobalConstraints(ctx)
	if !constraints.EnforceConstraints {
		return nil
	}

	stats := k.GetRegistryStats(ctx)
	if stats.TotalPools >= constraints.MaxTotalPools {
		return types.ErrMaxPoolsReached
	}

	state := k.GetCreatorState(ctx, creator)
	if int64(len(state.PoolIDs)) >= constraints.MaxPoolsPerCreator {
		return types.ErrMaxPoolsPerCreatorReached
	}
	if state.ActivePools >= constraints.MaxActivePoolsPerCreator {
		return types.ErrMaxActivePoolsPerCreator
	}
	if state.LastPoolCreation > 0 && now-state.LastPoolCreation < constraints.MinTimeBetweenPools {
		return types.ErrPoolCreationTooFrequent
	}

	return nil
}

// CanCreatePool is a read-only dry run of the creation gate, for UX
func (k *Keeper) CanCreatePool(ctx sdk.Context, creator string) (bool, string) {
	if k.IsPaused(ctx) {
		return false, types.ErrFactoryPaused.Error()
	}
	if err := k.checkCreation(ctx, creator, time.Now().Unix()); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// UpdatePoolStatus resynchronizes the registry counters for a pool that has
// moved to a terminal status out of band. Counters floor at zero.
func (k *Keeper) UpdatePoolStatus(ctx context.Context, authority string, poolID uint64, newStatus string) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if authority != k.authority {
		return types.ErrUnauthorized
	}

	pool := k.GetPool(sdkCtx, poolID)
	if pool == nil {
		return types.ErrPoolNotFound
	}

	if newStatus != types.PoolStatusCompleted || pool.Status == types.PoolStatusCompleted {
		return nil
	}

	pool.Status = types.PoolStatusCompleted
	pool.CompletedAt = time.Now().Unix()
	k.SetPool(sdkCtx, pool)

	stats := k.GetRegistryStats(sdkCtx)
	if stats.ActivePools > 0 {
		stats.ActivePools--
	}
	stats.CompletedPools++
	k.SetRegistryStats(sdkCtx, stats)

	creatorState := k.GetCreatorState(sdkCtx, pool.Creator)
	if creatorState.ActivePools > 0 {
		creatorState.ActivePools--
	}
	k.SetCreatorState(sdkCtx, creatorState)

	k.logger.Info("Pool status synchronized",
		"pool_id", poolID,
		"status", newStatus,
	)

	return nil
}

// UpdateGlobalConstraints replaces the admission-control configuration
func (k *Keeper) UpdateGlobalConstraints(ctx context.Context, authority string, constraints types.GlobalConstraints) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if authority != k.authority {
		return types.ErrUnauthorized
	}

	if err := constraints.Validate(); err != nil {
		return err
	}

	k.SetGlobalConstraints(sdkCtx, constraints)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"savings_constraints_updated",
			sdk.NewAttribute("max_total_pools", fmt.Sprintf("%d", constraints.MaxTotalPools)),
			sdk.NewAttribute("max_pools_per_creator", fmt.Sprintf("%d", constraints.MaxPoolsPerCreator)),
			sdk.NewAttribute("max_active_pools_per_creator", fmt.Sprintf("%d", constraints.MaxActivePoolsPerCreator)),
			sdk.NewAttribute("min_time_between_pools", fmt.Sprintf("%d", constraints.MinTimeBetweenPools)),
			sdk.NewAttribute("enforce", fmt.Sprintf("%v", constraints.EnforceConstraints)),
		),
	)

	k.logger.Info("Global constraints updated",
		"max_total_pools", constraints.MaxTotalPools,
		"max_pools_per_creator", constraints.MaxPoolsPerCreator,
		"enforce", constraints.EnforceConstraints,
	)

	return nil
}

// GetActivePoolsCount returns the creator's non-completed pool count
func (k *Keeper) GetActivePoolsCount(ctx sdk.Context, creator string) int64 {
	return k.GetCreatorState(ctx, creator).ActivePools
}

// GetLastPoolCreation returns the creator's last creation timestamp
func (k *Keeper) GetLastPoolCreation(ctx sdk.Context, creator string) int64 {
	return k.GetCreatorState(ctx, creator).LastPoolCreation
}
