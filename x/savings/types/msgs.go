package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreatePool        = "create_pool"
	TypeMsgJoinPool          = "join_pool"
	TypeMsgLeavePool         = "leave_pool"
	TypeMsgLockPool          = "lock_pool"
	TypeMsgTriggerCompletion = "trigger_completion"
	TypeMsgWithdrawShare     = "withdraw_share"
	TypeMsgUpdateConstraints = "update_constraints"
	TypeMsgSetPaused         = "set_paused"
	TypeMsgEmergencyWithdraw = "emergency_withdraw"
)

// MsgCreatePool defines the CreatePool message
type MsgCreatePool struct {
	Creator            string `json:"creator"`
	Name               string `json:"name"`
	ContributionAmount string `json:"contribution_amount"`
	MaxMembers         int64  `json:"max_members"`
	Duration           int64  `json:"duration"`
	StrategyTag        string `json:"strategy_tag"`
}

// Route implements sdk.Msg
func (msg MsgCreatePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreatePool) Type() string { return TypeMsgCreatePool }

// ValidateBasic implements sdk.Msg
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	if msg.Name == "" {
		return ErrPoolNameEmpty
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreatePool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreatePool) Reset() { *msg = MsgCreatePool{} }

// String implements proto.Message
func (msg MsgCreatePool) String() string {
	return fmt.Sprintf("MsgCreatePool{Creator: %s, Name: %s}", msg.Creator, msg.Name)
}

// MsgCreatePoolResponse defines the CreatePool response
type MsgCreatePoolResponse struct {
	PoolID uint64 `json:"pool_id"`
}

// MsgJoinPool defines the JoinPool message
type MsgJoinPool struct {
	Member string `json:"member"`
	PoolID uint64 `json:"pool_id"`
	Amount string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgJoinPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgJoinPool) Type() string { return TypeMsgJoinPool }

// ValidateBasic implements sdk.Msg
func (msg MsgJoinPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Member); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgJoinPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Member)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgJoinPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgJoinPool) Reset() { *msg = MsgJoinPool{} }

// String implements proto.Message
func (msg MsgJoinPool) String() string {
	return fmt.Sprintf("MsgJoinPool{Member: %s, PoolID: %d, Amount: %s}", msg.Member, msg.PoolID, msg.Amount)
}

// MsgJoinPoolResponse defines the JoinPool response
type MsgJoinPoolResponse struct {
	PoolID      uint64 `json:"pool_id"`
	MemberCount int64  `json:"member_count"`
	Locked      bool   `json:"locked"`
}

// MsgLeavePool defines the LeavePool message
type MsgLeavePool struct {
	Member string `json:"member"`
	PoolID uint64 `json:"pool_id"`
}

// Route implements sdk.Msg
func (msg MsgLeavePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgLeavePool) Type() string { return TypeMsgLeavePool }

// ValidateBasic implements sdk.Msg
func (msg MsgLeavePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Member); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgLeavePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Member)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgLeavePool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgLeavePool) Reset() { *msg = MsgLeavePool{} }

// String implements proto.Message
func (msg MsgLeavePool) String() string {
	return fmt.Sprintf("MsgLeavePool{Member: %s, PoolID: %d}", msg.Member, msg.PoolID)
}

// MsgLeavePoolResponse defines the LeavePool response
type MsgLeavePoolResponse struct {
	Refunded string `json:"refunded"`
}

// MsgLockPool defines the LockPool message
type MsgLockPool struct {
	Creator string `json:"creator"`
	PoolID  uint64 `json:"pool_id"`
}

// Route implements sdk.Msg
func (msg MsgLockPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgLockPool) Type() string { return TypeMsgLockPool }

// ValidateBasic implements sdk.Msg
func (msg MsgLockPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgLockPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgLockPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgLockPool) Reset() { *msg = MsgLockPool{} }

// String implements proto.Message
func (msg MsgLockPool) String() string {
	return fmt.Sprintf("MsgLockPool{Creator: %s, PoolID: %d}", msg.Creator, msg.PoolID)
}

// MsgLockPoolResponse defines the LockPool response
type MsgLockPoolResponse struct {
	LockedAt int64 `json:"locked_at"`
}

// MsgTriggerCompletion defines the TriggerCompletion message. Anyone may
// submit it; it is a no-op when the pool is not yet complete-able.
type MsgTriggerCompletion struct {
	Caller string `json:"caller"`
	PoolID uint64 `json:"pool_id"`
}

// Route implements sdk.Msg
func (msg MsgTriggerCompletion) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTriggerCompletion) Type() string { return TypeMsgTriggerCompletion }

// ValidateBasic implements sdk.Msg
func (msg MsgTriggerCompletion) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTriggerCompletion) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTriggerCompletion) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTriggerCompletion) Reset() { *msg = MsgTriggerCompletion{} }

// String implements proto.Message
func (msg MsgTriggerCompletion) String() string {
	return fmt.Sprintf("MsgTriggerCompletion{Caller: %s, PoolID: %d}", msg.Caller, msg.PoolID)
}

// MsgTriggerCompletionResponse defines the TriggerCompletion response
type MsgTriggerCompletionResponse struct {
	Completed bool `json:"completed"`
}

// MsgWithdrawShare defines the WithdrawShare message
type MsgWithdrawShare struct {
	Member string `json:"member"`
	PoolID uint64 `json:"pool_id"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawShare) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawShare) Type() string { return TypeMsgWithdrawShare }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawShare) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Member); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawShare) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Member)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdrawShare) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdrawShare) Reset() { *msg = MsgWithdrawShare{} }

// String implements proto.Message
func (msg MsgWithdrawShare) String() string {
	return fmt.Sprintf("MsgWithdrawShare{Member: %s, PoolID: %d}", msg.Member, msg.PoolID)
}

// MsgWithdrawShareResponse defines the WithdrawShare response
type MsgWithdrawShareResponse struct {
	Amount string `json:"amount"`
}

// MsgUpdateConstraints defines the UpdateConstraints message
type MsgUpdateConstraints struct {
	Authority   string            `json:"authority"`
	Constraints GlobalConstraints `json:"constraints"`
}

// Route implements sdk.Msg
func (msg MsgUpdateConstraints) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUpdateConstraints) Type() string { return TypeMsgUpdateConstraints }

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateConstraints) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	return msg.Constraints.Validate()
}

// GetSigners implements sdk.Msg
func (msg MsgUpdateConstraints) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUpdateConstraints) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUpdateConstraints) Reset() { *msg = MsgUpdateConstraints{} }

// String implements proto.Message
func (msg MsgUpdateConstraints) String() string {
	return fmt.Sprintf("MsgUpdateConstraints{Authority: %s}", msg.Authority)
}

// MsgSetPaused defines the SetPaused message
type MsgSetPaused struct {
	Authority string `json:"authority"`
	Paused    bool   `json:"paused"`
}

// Route implements sdk.Msg
func (msg MsgSetPaused) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetPaused) Type() string { return TypeMsgSetPaused }

// ValidateBasic implements sdk.Msg
func (msg MsgSetPaused) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetPaused) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetPaused) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetPaused) Reset() { *msg = MsgSetPaused{} }

// String implements proto.Message
func (msg MsgSetPaused) String() string {
	return fmt.Sprintf("MsgSetPaused{Authority: %s, Paused: %v}", msg.Authority, msg.Paused)
}

// MsgEmergencyWithdraw defines the EmergencyWithdraw message
type MsgEmergencyWithdraw struct {
	Authority string `json:"authority"`
	PoolID    uint64 `json:"pool_id"`
	Member    string `json:"member"`
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
	return fmt.Sprintf("MsgEmergencyWithdraw{Authority: %s, PoolID: %d, Member: %s}", msg.Authority, msg.PoolID, msg.Member)
}
