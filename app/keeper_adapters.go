package app

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	savingstypes "github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// PoolDenom is the on-chain denom backing pool balances. Amounts held in
// keeper state are whole units; the bank side carries micro units.
const (
	PoolDenom     = "uroca"
	microPerUnit  = 1_000_000
)

// bankFundsAdapter moves contributions and payouts between member
// accounts and the savings module account through x/bank
type bankFundsAdapter struct {
	keeper bankkeeper.Keeper
}

func newBankFundsAdapter(keeper bankkeeper.Keeper) *bankFundsAdapter {
	return &bankFundsAdapter{keeper: keeper}
}

func toCoins(amount math.LegacyDec) (sdk.Coins, error) {
	if amount.IsNil() || amount.IsNegative() {
		return nil, fmt.Errorf("invalid transfer amount: %v", amount)
	}
	micro := amount.MulInt64(microPerUnit).TruncateInt()
	return sdk.NewCoins(sdk.NewCoin(PoolDenom, micro)), nil
}

// CollectFromAccount pulls a contribution into the module account
func (a *bankFundsAdapter) CollectFromAccount(ctx context.Context, addr string, amount math.LegacyDec) error {
	account, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return fmt.Errorf("invalid account %q: %w", addr, err)
	}
	coins, err := toCoins(amount)
	if err != nil {
		return err
	}
	return a.keeper.SendCoinsFromAccountToModule(ctx, account, savingstypes.ModuleName, coins)
}

// PayToAccount pays out of the module account
func (a *bankFundsAdapter) PayToAccount(ctx context.Context, addr string, amount math.LegacyDec) error {
	account, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return fmt.Errorf("invalid account %q: %w", addr, err)
	}
	coins, err := toCoins(amount)
	if err != nil {
		return err
	}
	return a.keeper.SendCoinsFromModuleToAccount(ctx, savingstypes.ModuleName, account, coins)
}

// MintYield mints realized yield into the module account so withdrawals
// and prize payouts stay fully backed on the bank side
func (a *bankFundsAdapter) MintYield(ctx context.Context, amount math.LegacyDec) error {
	coins, err := toCoins(amount)
	if err != nil {
		return err
	}
	if coins.IsZero() {
		return nil
	}
	return a.keeper.MintCoins(ctx, savingstypes.ModuleName, coins)
}

// ModuleAccountAddress returns the savings module account address
func ModuleAccountAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(savingstypes.ModuleName)
}
