package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/lottery/types"
)

// MsgServer defines the lottery MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// RequestDraw handles MsgRequestDraw. The prize derives from the pool's
// current custody yield.
func (m *MsgServer) RequestDraw(ctx context.Context, msg *types.MsgRequestDraw) (*types.MsgRequestDrawResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	yield := m.keeper.custodyKeeper.GetYield(sdkCtx, msg.PoolID)

	drawID, err := m.keeper.RequestDraw(ctx, msg.PoolID, yield)
	if err != nil {
		return nil, err
	}

	return &types.MsgRequestDrawResponse{DrawID: drawID}, nil
}

// BatchProcessDraws handles MsgBatchProcessDraws
func (m *MsgServer) BatchProcessDraws(ctx context.Context, msg *types.MsgBatchProcessDraws) (*types.MsgBatchProcessDrawsResponse, error) {
	processed := m.keeper.BatchProcessDraws(ctx, msg.DrawIDs)
	return &types.MsgBatchProcessDrawsResponse{Processed: int64(processed)}, nil
}

// FundPrizePool handles MsgFundPrizePool. The amount is pulled from the
// funder's account before the treasury is credited; an unfunded message
// cannot inflate the prize pool.
func (m *MsgServer) FundPrizePool(ctx context.Context, msg *types.MsgFundPrizePool) (*types.MsgFundPrizePool, error) {
	amount, err := math.LegacyNewDecFromStr(msg.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, types.ErrInvalidFundAmount
	}

	if err := m.keeper.fundsKeeper.CollectFromAccount(ctx, msg.Funder, amount); err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	m.keeper.FundPrizePool(sdkCtx, msg.PoolID, amount)
	return msg, nil
}

// UpdateConfig handles MsgUpdateConfig
func (m *MsgServer) UpdateConfig(ctx context.Context, msg *types.MsgUpdateConfig) (*types.MsgUpdateConfig, error) {
	if err := m.keeper.UpdateConfig(ctx, msg.Authority, msg.Config); err != nil {
		return nil, err
	}
	return msg, nil
}

// SetActive handles MsgSetActive
func (m *MsgServer) SetActive(ctx context.Context, msg *types.MsgSetActive) (*types.MsgSetActive, error) {
	if err := m.keeper.SetActive(ctx, msg.Authority, msg.Active); err != nil {
		return nil, err
	}
	return msg, nil
}

// EmergencyWithdraw handles MsgEmergencyWithdraw
func (m *MsgServer) EmergencyWithdraw(ctx context.Context, msg *types.MsgEmergencyWithdraw) (*types.MsgEmergencyWithdraw, error) {
	amount, err := math.LegacyNewDecFromStr(msg.Amount)
	if err != nil {
		return nil, err
	}

	if _, err := m.keeper.EmergencyWithdraw(ctx, msg.Authority, amount); err != nil {
		return nil, err
	}
	return msg, nil
}
