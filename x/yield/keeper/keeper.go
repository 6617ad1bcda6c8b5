package keeper

import (
	"encoding/json"
	"fmt"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/yield/types"
)

// Store key prefixes
var (
	AccountKeyPrefix  = []byte{0x01}
	StrategyKeyPrefix = []byte{0x02}
)

// Keeper manages the yield custody bridge state. It is a bookkeeping
// reference implementation: pools hand their funds over at lock, yield
// accrues linearly per the chosen strategy, and principal plus accrued
// yield is handed back at completion.
type Keeper struct {
	cdc       codec.BinaryCodec
	storeKey  storetypes.StoreKey
	logger    log.Logger
	authority string
}

// NewKeeper creates a new yield keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:       cdc,
		storeKey:  storeKey,
		authority: authority,
		logger:    logger.With("module", "x/yield"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Strategy Operations ============

// strategyKey generates the store key for a strategy
func strategyKey(tag string) []byte {
	return append(StrategyKeyPrefix, []byte(tag)...)
}

// InitDefaultStrategies seeds the built-in accrual profiles
func (k *Keeper) InitDefaultStrategies(ctx sdk.Context) {
	for _, s := range types.DefaultStrategies() {
		if k.GetStrategy(ctx, s.Tag) == nil {
			k.SetStrategy(ctx, s)
			k.logger.Info("Initialized yield strategy", "tag", s.Tag, "annual_rate_bps", s.AnnualRateBps)
		}
	}
}

// SetStrategy saves an accrual profile
func (k *Keeper) SetStrategy(ctx sdk.Context, strategy types.Strategy) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(strategy)
	store.Set(strategyKey(strategy.Tag), bz)
}

// GetStrategy retrieves an accrual profile, nil when unknown
func (k *Keeper) GetStrategy(ctx sdk.Context, tag string) *types.Strategy {
	store := k.GetStore(ctx)
	bz := store.Get(strategyKey(tag))
	if bz == nil {
		return nil
	}
	var strategy types.Strategy
	if err := json.Unmarshal(bz, &strategy); err != nil {
		return nil
	}
	return &strategy
}

// UpdateStrategyRate sets a strategy's annual rate. Admin only.
func (k *Keeper) UpdateStrategyRate(ctx sdk.Context, authority, tag string, annualRateBps int64) error {
	if authority != k.authority {
		return types.ErrUnauthorized
	}
	if annualRateBps < 0 || annualRateBps > 10000 {
		return types.ErrInvalidRate
	}
	strategy := k.GetStrategy(ctx, tag)
	if strategy == nil {
		return types.ErrUnknownStrategy
	}
	strategy.AnnualRateBps = annualRateBps
	k.SetStrategy(ctx, *strategy)
	k.logger.Info("Strategy rate updated", "tag", tag, "annual_rate_bps", annualRateBps)
	return nil
}

// ============ Account Operations ============

// accountKey generates the store key for a custody account
func accountKey(poolID uint64) []byte {
	return append(AccountKeyPrefix, sdk.Uint64ToBigEndian(poolID)...)
}

// SetAccount saves a custody account
func (k *Keeper) SetAccount(ctx sdk.Context, account *types.CustodyAccount) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(account)
	store.Set(accountKey(account.PoolID), bz)
}

// GetAccount retrieves a custody account, nil when absent
func (k *Keeper) GetAccount(ctx sdk.Context, poolID uint64) *types.CustodyAccount {
	store := k.GetStore(ctx)
	bz := store.Get(accountKey(poolID))
	if bz == nil {
		return nil
	}
	var account types.CustodyAccount
	if err := json.Unmarshal(bz, &account); err != nil {
		return nil
	}
	return &account
}

// ============ Bridge Operations ============

// Deposit opens a custody position for a pool. The whole amount is
// accepted atomically; an unknown strategy or duplicate account rejects
// the call with no state change.
func (k *Keeper) Deposit(ctx sdk.Context, poolID uint64, strategyTag string, amount math.LegacyDec) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount
	}
	if k.GetStrategy(ctx, strategyTag) == nil {
		return types.ErrUnknownStrategy
	}
	if k.GetAccount(ctx, poolID) != nil {
		return types.ErrAccountExists
	}

	account := types.NewCustodyAccount(poolID, strategyTag, amount, time.Now().Unix())
	k.SetAccount(ctx, account)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"yield_deposit",
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute("strategy", strategyTag),
			sdk.NewAttribute("amount", amount.String()),
		),
	)

	k.logger.Info("Custody deposit accepted",
		"pool_id", poolID,
		"strategy", strategyTag,
		"amount", amount.String(),
	)

	return nil
}

// Withdraw closes a pool's position and reports what it was worth
func (k *Keeper) Withdraw(ctx sdk.Context, poolID uint64) (principal, yield math.LegacyDec, err error) {
	account := k.GetAccount(ctx, poolID)
	if account == nil {
		return math.LegacyZeroDec(), math.LegacyZeroDec(), types.ErrAccountNotFound
	}

	k.accrue(ctx, account)

	principal = account.Principal
	yield = account.AccruedYield

	k.GetStore(ctx).Delete(accountKey(poolID))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"yield_withdraw",
			sdk.NewAttribute("pool_id", fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute("principal", principal.String()),
			sdk.NewAttribute("yield", yield.String()),
		),
	)

	k.logger.Info("Custody position closed",
		"pool_id", poolID,
		"principal", principal.String(),
		"yield", yield.String(),
	)

	return principal, yield, nil
}

// UpdateYield refreshes a pool's accrual bookkeeping. Safe to call for
// pools without a position.
func (k *Keeper) UpdateYield(ctx sdk.Context, poolID uint64) {
	account := k.GetAccount(ctx, poolID)
	if account == nil {
		return
	}
	k.accrue(ctx, account)
	k.SetAccount(ctx, account)
}

// accrue advances an account to the current time at its strategy's rate
func (k *Keeper) accrue(ctx sdk.Context, account *types.CustodyAccount) {
	strategy := k.GetStrategy(ctx, account.StrategyTag)
	if strategy == nil {
		return
	}
	account.Accrue(strategy.AnnualRateBps, time.Now().Unix())
}

// GetYield returns a pool's accrued yield to date, zero without a position
func (k *Keeper) GetYield(ctx sdk.Context, poolID uint64) math.LegacyDec {
	account := k.GetAccount(ctx, poolID)
	if account == nil {
		return math.LegacyZeroDec()
	}
	strategy := k.GetStrategy(ctx, account.StrategyTag)
	if strategy == nil {
		return account.AccruedYield
	}
	// Read-only view: project the accrual without persisting it
	projected := *account
	projected.Accrue(strategy.AnnualRateBps, time.Now().Unix())
	return projected.AccruedYield
}

// GetTotalValue returns principal plus accrued yield for a pool
func (k *Keeper) GetTotalValue(ctx sdk.Context, poolID uint64) math.LegacyDec {
	account := k.GetAccount(ctx, poolID)
	if account == nil {
		return math.LegacyZeroDec()
	}
	strategy := k.GetStrategy(ctx, account.StrategyTag)
	if strategy == nil {
		return account.TotalValue()
	}
	projected := *account
	projected.Accrue(strategy.AnnualRateBps, time.Now().Unix())
	return projected.TotalValue()
}
