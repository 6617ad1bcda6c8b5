package keeper

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"

	badgekeeper "github.com/Candra0x6/Roca-sub001/x/badge/keeper"
	lotterykeeper "github.com/Candra0x6/Roca-sub001/x/lottery/keeper"
	"github.com/Candra0x6/Roca-sub001/x/savings/types"
	yieldkeeper "github.com/Candra0x6/Roca-sub001/x/yield/keeper"
)

const testAuthority = "authority"

// mockFundsKeeper mirrors the bank side of the module account: collects
// and mints add balance, payouts subtract it, and any payout that would
// overdraw the account is refused like a real bank transfer would be.
type mockFundsKeeper struct {
	collected map[string]math.LegacyDec
	paid      map[string]math.LegacyDec
	balance   math.LegacyDec
	minted    math.LegacyDec
	failPay   bool
	failMint  bool
}

func newMockFundsKeeper() *mockFundsKeeper {
	return &mockFundsKeeper{
		collected: make(map[string]math.LegacyDec),
		paid:      make(map[string]math.LegacyDec),
		balance:   math.LegacyZeroDec(),
		minted:    math.LegacyZeroDec(),
	}
}

func (m *mockFundsKeeper) CollectFromAccount(ctx context.Context, addr string, amount math.LegacyDec) error {
	prev, ok := m.collected[addr]
	if !ok {
		prev = math.LegacyZeroDec()
	}
	m.collected[addr] = prev.Add(amount)
	m.balance = m.balance.Add(amount)
	return nil
}

func (m *mockFundsKeeper) PayToAccount(ctx context.Context, addr string, amount math.LegacyDec) error {
	if m.failPay {
		return errors.New("transfer rejected")
	}
	if amount.GT(m.balance) {
		return errors.New("insufficient module account balance")
	}
	prev, ok := m.paid[addr]
	if !ok {
		prev = math.LegacyZeroDec()
	}
	m.paid[addr] = prev.Add(amount)
	m.balance = m.balance.Sub(amount)
	return nil
}

func (m *mockFundsKeeper) MintYield(ctx context.Context, amount math.LegacyDec) error {
	if m.failMint {
		return errors.New("mint rejected")
	}
	m.minted = m.minted.Add(amount)
	m.balance = m.balance.Add(amount)
	return nil
}

// setupTestKeeper wires a savings keeper against real yield, badge and
// lottery keepers over an in-memory store
func setupTestKeeper(t testing.TB) (*Keeper, *yieldkeeper.Keeper, *lotterykeeper.Keeper, *mockFundsKeeper, sdk.Context) {
	t.Helper()

	savingsKey := storetypes.NewKVStoreKey(types.StoreKey)
	lotteryKey := storetypes.NewKVStoreKey("lottery")
	yieldKey := storetypes.NewKVStoreKey("yield")
	badgeKey := storetypes.NewKVStoreKey("badge")

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(savingsKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(lotteryKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(yieldKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(badgeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)
	logger := log.NewNopLogger()

	yieldK := yieldkeeper.NewKeeper(cdc, yieldKey, testAuthority, logger)
	yieldK.InitDefaultStrategies(ctx)

	badgeK := badgekeeper.NewKeeper(cdc, badgeKey, logger)
	badgeK.InitDefaultBadges(ctx)

	funds := newMockFundsKeeper()
	lotteryK := lotterykeeper.NewKeeper(cdc, lotteryKey, yieldK, badgeK, funds, testAuthority, logger)

	savingsK := NewKeeper(cdc, savingsKey, yieldK, badgeK, lotteryK, funds, testAuthority, logger)

	return savingsK, yieldK, lotteryK, funds, ctx
}

// defaultParams returns valid creation parameters for tests
func defaultParams(creator string) *types.PoolParams {
	return &types.PoolParams{
		Creator:            creator,
		Name:               "test pool",
		ContributionAmount: math.LegacyOneDec(),
		MaxMembers:         3,
		Duration:           types.MinDuration,
		StrategyTag:        "stable",
	}
}

// fillPool joins enough members to reach capacity
func fillPool(t *testing.T, k *Keeper, ctx sdk.Context, poolID uint64, count int) {
	t.Helper()
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		t.Fatalf("pool %d not found", poolID)
	}
	for i := 0; i < count; i++ {
		member := "member" + string(rune('a'+i))
		if _, err := k.JoinPool(ctx, member, poolID, pool.ContributionAmount); err != nil {
			t.Fatalf("join %s: %v", member, err)
		}
	}
}
