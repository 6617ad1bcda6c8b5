package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// MsgServer defines the savings MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// CreatePool handles MsgCreatePool
func (m *MsgServer) CreatePool(ctx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	contribution, err := math.LegacyNewDecFromStr(msg.ContributionAmount)
	if err != nil {
		return nil, err
	}

	pool, err := m.keeper.CreatePool(ctx, &types.PoolParams{
		Creator:            msg.Creator,
		Name:               msg.Name,
		ContributionAmount: contribution,
		MaxMembers:         msg.MaxMembers,
		Duration:           msg.Duration,
		StrategyTag:        msg.StrategyTag,
	})
	if err != nil {
		return nil, err
	}

	return &types.MsgCreatePoolResponse{PoolID: pool.PoolID}, nil
}

// JoinPool handles MsgJoinPool
func (m *MsgServer) JoinPool(ctx context.Context, msg *types.MsgJoinPool) (*types.MsgJoinPoolResponse, error) {
	amount, err := math.LegacyNewDecFromStr(msg.Amount)
	if err != nil {
		return nil, err
	}

	pool, err := m.keeper.JoinPool(ctx, msg.Member, msg.PoolID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgJoinPoolResponse{
		PoolID:      pool.PoolID,
		MemberCount: pool.MemberCount(),
		Locked:      pool.Status == types.PoolStatusActive,
	}, nil
}

// LeavePool handles MsgLeavePool
func (m *MsgServer) LeavePool(ctx context.Context, msg *types.MsgLeavePool) (*types.MsgLeavePoolResponse, error) {
	refund, err := m.keeper.LeavePool(ctx, msg.Member, msg.PoolID)
	if err != nil {
		return nil, err
	}

	return &types.MsgLeavePoolResponse{Refunded: refund.String()}, nil
}

// LockPool handles MsgLockPool
func (m *MsgServer) LockPool(ctx context.Context, msg *types.MsgLockPool) (*types.MsgLockPoolResponse, error) {
	pool, err := m.keeper.LockPool(ctx, msg.Creator, msg.PoolID)
	if err != nil {
		return nil, err
	}

	return &types.MsgLockPoolResponse{LockedAt: pool.LockedAt}, nil
}

// TriggerCompletion handles MsgTriggerCompletion
func (m *MsgServer) TriggerCompletion(ctx context.Context, msg *types.MsgTriggerCompletion) (*types.MsgTriggerCompletionResponse, error) {
	completed, err := m.keeper.TriggerCompletion(ctx, msg.PoolID)
	if err != nil {
		return nil, err
	}

	return &types.MsgTriggerCompletionResponse{Completed: completed}, nil
}

// WithdrawShare handles MsgWithdrawShare
func (m *MsgServer) WithdrawShare(ctx context.Context, msg *types.MsgWithdrawShare) (*types.MsgWithdrawShareResponse, error) {
	amount, err := m.keeper.WithdrawShare(ctx, msg.Member, msg.PoolID)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawShareResponse{Amount: amount.String()}, nil
}

// UpdateConstraints handles MsgUpdateConstraints
func (m *MsgServer) UpdateConstraints(ctx context.Context, msg *types.MsgUpdateConstraints) (*types.MsgUpdateConstraints, error) {
	if err := m.keeper.UpdateGlobalConstraints(ctx, msg.Authority, msg.Constraints); err != nil {
		return nil, err
	}
	return msg, nil
}

// SetPaused handles MsgSetPaused
func (m *MsgServer) SetPaused(ctx context.Context, msg *types.MsgSetPaused) (*types.MsgSetPaused, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.SetPaused(sdkCtx, msg.Authority, msg.Paused); err != nil {
		return nil, err
	}
	return msg, nil
}

// EmergencyWithdraw handles MsgEmergencyWithdraw
func (m *MsgServer) EmergencyWithdraw(ctx context.Context, msg *types.MsgEmergencyWithdraw) (*types.MsgWithdrawShareResponse, error) {
	amount, err := m.keeper.EmergencyWithdraw(ctx, msg.Authority, msg.PoolID, msg.Member)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawShareResponse{Amount: amount.String()}, nil
}
