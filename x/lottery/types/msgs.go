package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgRequestDraw       = "request_draw"
	TypeMsgBatchProcessDraws = "batch_process_draws"
	TypeMsgFundPrizePool     = "fund_prize_pool"
	TypeMsgUpdateConfig      = "update_lottery_config"
	TypeMsgSetActive         = "set_lottery_active"
	TypeMsgEmergencyWithdraw = "lottery_emergency_withdraw"
)

// MsgRequestDraw defines the RequestDraw message
type MsgRequestDraw struct {
	Caller string `json:"caller"`
	PoolID uint64 `json:"pool_id"`
}

// Route implements sdk.Msg
func (msg MsgRequestDraw) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRequestDraw) Type() string { return TypeMsgRequestDraw }

// ValidateBasic implements sdk.Msg
func (msg MsgRequestDraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRequestDraw) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRequestDraw) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRequestDraw) Reset() { *msg = MsgRequestDraw{} }

// String implements proto.Message
func (msg MsgRequestDraw) String() string {
	return fmt.Sprintf("MsgRequestDraw{Caller: %s, PoolID: %d}", msg.Caller, msg.PoolID)
}

// MsgRequestDrawResponse defines the RequestDraw response
type MsgRequestDrawResponse struct {
	DrawID uint64 `json:"draw_id"`
}

// MsgBatchProcessDraws defines the BatchProcessDraws message
type MsgBatchProcessDraws struct {
	Caller  string   `json:"caller"`
	DrawIDs []uint64 `json:"draw_ids"`
}

// Route implements sdk.Msg
func (msg MsgBatchProcessDraws) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgBatchProcessDraws) Type() string { return TypeMsgBatchProcessDraws }

// ValidateBasic implements sdk.Msg
func (msg MsgBatchProcessDraws) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgBatchProcessDraws) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgBatchProcessDraws) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgBatchProcessDraws) Reset() { *msg = MsgBatchProcessDraws{} }

// String implements proto.Message
func (msg MsgBatchProcessDraws) String() string {
	return fmt.Sprintf("MsgBatchProcessDraws{Caller: %s, Draws: %d}", msg.Caller, len(msg.DrawIDs))
}

// MsgBatchProcessDrawsResponse defines the BatchProcessDraws response
type MsgBatchProcessDrawsResponse struct {
	Processed int64 `json:"processed"`
}

// MsgFundPrizePool defines the FundPrizePool message
type MsgFundPrizePool struct {
	Funder string `json:"funder"`
	PoolID uint64 `json:"pool_id"`
	Amount string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgFundPrizePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgFundPrizePool) Type() string { return TypeMsgFundPrizePool }

// ValidateBasic implements sdk.Msg
func (msg MsgFundPrizePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Funder); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgFundPrizePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Funder)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgFundPrizePool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgFundPrizePool) Reset() { *msg = MsgFundPrizePool{} }

// String implements proto.Message
func (msg MsgFundPrizePool) String() string {
	return fmt.Sprintf("MsgFundPrizePool{Funder: %s, PoolID: %d, Amount: %s}", msg.Funder, msg.PoolID, msg.Amount)
}

// MsgUpdateConfig defines the UpdateConfig message
type MsgUpdateConfig struct {
	Authority string        `json:"authority"`
	Config    LotteryConfig `json:"config"`
}

// Route implements sdk.Msg
func (msg MsgUpdateConfig) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUpdateConfig) Type() string { return TypeMsgUpdateConfig }

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateConfig) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	return msg.Config.Validate()
}

// GetSigners implements sdk.Msg
func (msg MsgUpdateConfig) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUpdateConfig) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUpdateConfig) Reset() { *msg = MsgUpdateConfig{} }

// String implements proto.Message
func (msg MsgUpdateConfig) String() string {
	return fmt.Sprintf("MsgUpdateConfig{Authority: %s}", msg.Authority)
}

// MsgSetActive defines the SetActive message
type MsgSetActive struct {
	Authority string `json:"authority"`
	Active    bool   `json:"active"`
}

// Route implements sdk.Msg
func (msg MsgSetActive) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetActive) Type() string { return TypeMsgSetActive }

// ValidateBasic implements sdk.Msg
func (msg MsgSetActive) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetActive) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetActive) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetActive) Reset() { *msg = MsgSetActive{} }

// String implements proto.Message
func (msg MsgSetActive) String() string {
	return fmt.Sprintf("MsgSetActive{Authority: %s, Active: %v}", msg.Authority, msg.Active)
}

// MsgEmergencyWithdraw defines the EmergencyWithdraw message
type MsgEmergencyWithdraw struct {
	Authority string `json:"authority"`
	Amount    string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgEmergencyWithdraw) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgEmergencyWithdraw) Type() string { return TypeMsgEmergencyWithdraw }

// ValidateBasic implements sdk.Msg
func (msg MsgEmergencyWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgEmergencyWithdraw) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgEmergencyWithdraw) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgEmergencyWithdraw) Reset() { *msg = MsgEmergencyWithdraw{} }

// String implements proto.Message
func (msg MsgEmergencyWithdraw) String() string {
	return fmt.Sprintf("MsgEmergencyWithdraw{Authority: %s, Amount: %s}", msg.Authority, msg.Amount)
}
