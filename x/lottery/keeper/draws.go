package keeper

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"math/big"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/lottery/types"
)

// AddParticipants registers a pool's members as weighted lottery entries.
// Eligibility is re-checked here regardless of what the caller verified:
// a pool whose merged participant set stays below the minimum size
// registers nothing, and redundant registrations are skipped. Neither
// case is an error.
func (k *Keeper) AddParticipants(ctx sdk.Context, poolID uint64, addresses []string, weights []math.LegacyDec) error {
	if len(addresses) != len(weights) {
		return types.ErrInvalidArrayLength
	}
	if len(addresses) == 0 {
		return nil
	}

	config := k.GetConfig(ctx)
	state := k.GetPoolState(ctx, poolID)

	merged := make([]types.Participant, 0, len(addresses))
	for i, addr := range addresses {
		if state.HasParticipant(addr) || weights[i].IsNil() || !weights[i].IsPositive() {
			continue
		}
		merged = append(merged, types.Participant{Address: addr, Weight: weights[i]})
	}
	if int64(len(state.Participants)+len(merged)) < config.MinPoolSize {
		k.logger.Debug("Pool below lottery threshold, skipping enrollment",
			"pool_id", poolID,
			"participants", len(addresses),
			"min_pool_size", config.MinPoolSize,
		)
		return nil
	}
	if len(merged) == 0 {
		return nil
	}

	state.Participants = append(state.Participants, merged...)
	k.SetPoolState(ctx, state)

	// Dedup-aware global participant count and per-address history
	stats := k.GetGlobalStats(ctx)
	for _, p := range merged {
		record := k.GetParticipantRecord(ctx, p.Address)
		if record.DrawsEntered == 0 && record.Wins == 0 && len(record.PoolIDs) == 0 {
			stats.TotalParticipants++
		}
		if !record.HasPool(poolID) {
			record.PoolIDs = append(record.PoolIDs, poolID)
		}
		k.SetParticipantRecord(ctx, record)
	}
	k.SetGlobalStats(ctx, stats)

	k.logger.Info("Lottery participants registered",
		"pool_id", poolID,
		"added", len(merged),
		"total", len(state.Participants),
	)

	return nil
}

// CalculatePrizeAmount computes the prize for a given yield: a configured
// basis-point share, capped at the configured maximum. Pure.
func (k *Keeper) CalculatePrizeAmount(ctx sdk.Context, yieldAmount math.LegacyDec) math.LegacyDec {
	config := k.GetConfig(ctx)
	prize := yieldAmount.MulInt64(config.PrizePercentage).QuoInt64(types.BpsDenominator)
	if prize.GT(config.MaxPrizeAmount) {
		return config.MaxPrizeAmount
	}
	return prize
}

// RequestDraw opens a new draw for an eligible pool, snapshotting its
// current participants and fixing the prize from the reported yield
func (k *Keeper) RequestDraw(ctx context.Context, poolID uint64, yieldAmount math.LegacyDec) (uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	config := k.GetConfig(sdkCtx)
	if !config.IsActive {
		return 0, types.ErrLotteryNotActive
	}

	state := k.GetPoolState(sdkCtx, poolID)
	if !state.IsEligible(config.MinPoolSize) {
		return 0, types.ErrPoolNotEligible
	}

	now := time.Now().Unix()
	if state.LastDrawTimestamp > 0 && now-state.LastDrawTimestamp < config.DrawInterval {
		return 0, types.ErrDrawTooSoon
	}

	drawID := k.NextDrawID(sdkCtx)
	draw := &types.LotteryDraw{
		DrawID:       drawID,
		PoolID:       poolID,
		Participants: append([]types.Participant(nil), state.Participants...),
		PrizeAmount:  k.CalculatePrizeAmount(sdkCtx, yieldAmount),
		PaidAmount:   math.LegacyZeroDec(),
		Timestamp:    now,
	}
	k.SetDraw(sdkCtx, draw)

	state.LastDrawTimestamp = now
	state.TotalDraws++
	k.SetPoolState(sdkCtx, state)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"lottery_draw_requested",
			sdk.NewAttribute("draw_id", fmt.Sprintf("%d", drawID)),
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute("prize", draw.PrizeAmount.String()),
			sdk.NewAttribute("participants", fmt.Sprintf("%d", len(draw.Participants))),
		),
	)

	k.logger.Info("Draw requested",
		"draw_id", drawID,
		"pool_id", poolID,
		"prize", draw.PrizeAmount.String(),
		"participants", len(draw.Participants),
	)

	return drawID, nil
}

// SelectWinner resolves a draw by weighted random selection over the
// participant snapshot, using a CSPRNG for the pick
func (k *Keeper) SelectWinner(ctx context.Context, drawID uint64) (string, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	draw := k.GetDraw(sdkCtx, drawID)
	if draw == nil {
		return "", types.ErrDrawNotFound
	}
	if draw.Resolved {
		return "", types.ErrDrawAlreadyResolved
	}
	if len(draw.Participants) == 0 {
		return "", types.ErrNoParticipants
	}

	winner, err := pickWeighted(draw.Participants)
	if err != nil {
		return "", err
	}

	draw.Winner = winner
	draw.Resolved = true
	k.SetDraw(sdkCtx, draw)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"lottery_winner_selected",
			sdk.NewAttribute("draw_id", fmt.Sprintf("%d", drawID)),
			sdk.NewAttribute("winner", winner),
		),
	)

	k.logger.Info("Winner selected",
		"draw_id", drawID,
		"winner", winner,
	)

	return winner, nil
}

// pickWeighted draws a uniform value in [0, totalWeight) and returns the
// participant whose cumulative-weight range contains it
func pickWeighted(participants []types.Participant) (string, error) {
	total := new(big.Int)
	for _, p := range participants {
		total.Add(total, p.Weight.BigInt())
	}
	if total.Sign() <= 0 {
		return "", types.ErrNoParticipants
	}

	point, err := crand.Int(crand.Reader, total)
	if err != nil {
		return "", fmt.Errorf("draw entropy: %w", err)
	}

	cumulative := new(big.Int)
	for _, p := range participants {
		cumulative.Add(cumulative, p.Weight.BigInt())
		if point.Cmp(cumulative) < 0 {
			return p.Address, nil
		}
	}
	// Unreachable with a positive total, but keep the last entry as floor
	return participants[len(participants)-1].Address, nil
}

// DistributePrize pays a resolved draw's prize to its winner, bounded by
// the treasury's actual balance. All bookkeeping is committed before the
// transfer runs.
func (k *Keeper) DistributePrize(ctx context.Context, drawID uint64) (math.LegacyDec, error) {
	return k.distributePrize(ctx, drawID, math.LegacyDec{})
}

// distributePrize runs the payout with an optional extra bound. The
// snapshot PrizeAmount is never rewritten; what actually went out is
// recorded on PaidAmount.
func (k *Keeper) distributePrize(ctx context.Context, drawID uint64, bound math.LegacyDec) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	draw := k.GetDraw(sdkCtx, drawID)
	if draw == nil {
		return math.LegacyZeroDec(), types.ErrDrawNotFound
	}
	if !draw.Resolved || draw.Winner == "" {
		return math.LegacyZeroDec(), types.ErrDrawNotResolved
	}
	if draw.PrizePaid {
		return math.LegacyZeroDec(), types.ErrDrawAlreadyResolved
	}

	payout := draw.PrizeAmount
	if !bound.IsNil() && bound.LT(payout) {
		payout = bound
	}

	// Never promise more than the treasury holds
	treasury := k.GetTreasury(sdkCtx)
	if payout.GT(treasury) {
		payout = treasury
	}

	draw.PrizePaid = true
	draw.PaidAmount = payout
	k.SetDraw(sdkCtx, draw)
	k.SetTreasury(sdkCtx, treasury.Sub(payout))

	stats := k.GetGlobalStats(sdkCtx)
	stats.TotalDraws++
	stats.TotalPrizesDistributed = stats.TotalPrizesDistributed.Add(payout)
	k.SetGlobalStats(sdkCtx, stats)

	state := k.GetPoolState(sdkCtx, draw.PoolID)
	state.TotalPrizes = state.TotalPrizes.Add(payout)
	k.SetPoolState(sdkCtx, state)

	for _, p := range draw.Participants {
		record := k.GetParticipantRecord(sdkCtx, p.Address)
		record.DrawsEntered++
		if p.Address == draw.Winner {
			record.Wins++
			record.TotalWinnings = record.TotalWinnings.Add(payout)
		}
		k.SetParticipantRecord(sdkCtx, record)
	}

	if payout.IsPositive() {
		if err := k.fundsKeeper.PayToAccount(ctx, draw.Winner, payout); err != nil {
			k.logger.Error("Prize payout failed, draw stays marked paid",
				"draw_id", drawID,
				"winner", draw.Winner,
				"amount", payout.String(),
				"error", err.Error(),
			)
			return math.LegacyZeroDec(), err
		}
	}

	// Winner badge is best effort
	if k.badgeKeeper != nil {
		if err := k.badgeKeeper.MintLotteryWin(sdkCtx, draw.Winner, payout); err != nil {
			k.logger.Debug("Winner badge skipped",
				"draw_id", drawID,
				"winner", draw.Winner,
				"error", err.Error(),
			)
		}
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"lottery_prize_distributed",
			sdk.NewAttribute("draw_id", fmt.Sprintf("%d", drawID)),
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", draw.PoolID)),
			sdk.NewAttribute("winner", draw.Winner),
			sdk.NewAttribute("amount", payout.String()),
		),
	)

	k.logger.Info("Prize distributed",
		"draw_id", drawID,
		"winner", draw.Winner,
		"amount", payout.String(),
	)

	return payout, nil
}

// DistributePrizeWithYieldCheck re-reads the pool's current yield before
// paying and clamps the prize down if the snapshot has gone stale
func (k *Keeper) DistributePrizeWithYieldCheck(ctx context.Context, drawID uint64) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	draw := k.GetDraw(sdkCtx, drawID)
	if draw == nil {
		return math.LegacyZeroDec(), types.ErrDrawNotFound
	}

	current := k.CalculatePrizeAmount(sdkCtx, k.custodyKeeper.GetYield(sdkCtx, draw.PoolID))
	if current.LT(draw.PrizeAmount) {
		k.logger.Warn("Draw prize clamped to current yield",
			"draw_id", drawID,
			"snapshot", draw.PrizeAmount.String(),
			"current", current.String(),
		)
	}

	return k.distributePrize(ctx, drawID, current)
}

// FundPrizePool credits the pooled treasury with a transfer tagged to a
// pool for accounting. Custody is a single shared balance.
func (k *Keeper) FundPrizePool(ctx sdk.Context, poolID uint64, amount math.LegacyDec) {
	if amount.IsNil() || !amount.IsPositive() {
		return
	}

	k.SetTreasury(ctx, k.GetTreasury(ctx).Add(amount))

	state := k.GetPoolState(ctx, poolID)
	state.TotalFunded = state.TotalFunded.Add(amount)
	k.SetPoolState(ctx, state)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"lottery_prize_pool_funded",
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute("amount", amount.String()),
		),
	)

	k.logger.Info("Prize pool funded",
		"pool_id", poolID,
		"amount", amount.String(),
	)
}

// BatchProcessDraws runs selection and distribution over a list of draw
// ids. An empty list succeeds trivially; per-draw failures are logged and
// skipped so one bad id cannot wedge the batch.
func (k *Keeper) BatchProcessDraws(ctx context.Context, drawIDs []uint64) int {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	processed := 0

	for _, drawID := range drawIDs {
		draw := k.GetDraw(sdkCtx, drawID)
		if draw == nil {
			k.logger.Debug("Batch draw skipped, unknown id", "draw_id", drawID)
			continue
		}

		if !draw.Resolved {
			if _, err := k.SelectWinner(ctx, drawID); err != nil {
				k.logger.Error("Batch winner selection failed",
					"draw_id", drawID,
					"error", err.Error(),
				)
				continue
			}
		}

		if _, err := k.DistributePrize(ctx, drawID); err != nil {
			k.logger.Error("Batch prize distribution failed",
				"draw_id", drawID,
				"error", err.Error(),
			)
			continue
		}
		processed++
	}

	return processed
}

// EmergencyWithdraw drains up to the requested amount from the treasury
// to the authority. Admin circuit breaker.
func (k *Keeper) EmergencyWithdraw(ctx context.Context, authority string, amount math.LegacyDec) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if authority != k.authority {
		return math.LegacyZeroDec(), types.ErrUnauthorized
	}

	treasury := k.GetTreasury(sdkCtx)
	if treasury.IsZero() {
		return math.LegacyZeroDec(), types.ErrEmptyTreasury
	}
	if amount.GT(treasury) {
		amount = treasury
	}

	k.SetTreasury(sdkCtx, treasury.Sub(amount))

	if err := k.fundsKeeper.PayToAccount(ctx, authority, amount); err != nil {
		return math.LegacyZeroDec(), err
	}

	k.logger.Warn("Lottery emergency withdrawal executed",
		"authority", authority,
		"amount", amount.String(),
	)

	return amount, nil
}

// UpdateConfig replaces the lottery configuration
func (k *Keeper) UpdateConfig(ctx context.Context, authority string, config types.LotteryConfig) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if authority != k.authority {
		return types.ErrUnauthorized
	}
	if err := config.Validate(); err != nil {
		return err
	}

	k.SetConfig(sdkCtx, config)

	k.logger.Info("Lottery config updated",
		"prize_percentage", config.PrizePercentage,
		"max_prize", config.MaxPrizeAmount.String(),
		"draw_interval", config.DrawInterval,
		"min_pool_size", config.MinPoolSize,
		"active", config.IsActive,
	)

	return nil
}

// SetActive flips the lottery's active switch
func (k *Keeper) SetActive(ctx context.Context, authority string, active bool) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if authority != k.authority {
		return types.ErrUnauthorized
	}

	config := k.GetConfig(sdkCtx)
	config.IsActive = active
	k.SetConfig(sdkCtx, config)

	k.logger.Info("Lottery active flag updated", "active", active)
	return nil
}
