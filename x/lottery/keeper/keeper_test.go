package keeper

import (
	"context"
	"errors"
	"fmt"
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

	"github.com/Candra0x6/Roca-sub001/x/lottery/types"
)

const testAuthority = "authority"

// mockCustodyKeeper serves fixed yield figures per pool
type mockCustodyKeeper struct {
	yields map[uint64]math.LegacyDec
}

func (m *mockCustodyKeeper) GetYield(ctx sdk.Context, poolID uint64) math.LegacyDec {
	if y, ok := m.yields[poolID]; ok {
		return y
	}
	return math.LegacyZeroDec()
}

// mockBadgeKeeper records winner badge mints
type mockBadgeKeeper struct {
	wins []string
}

func (m *mockBadgeKeeper) MintLotteryWin(ctx sdk.Context, recipient string, prize math.LegacyDec) error {
	m.wins = append(m.wins, recipient)
	return nil
}

// mockFundsKeeper records collections and payouts and can be told to fail
type mockFundsKeeper struct {
	collected   map[string]math.LegacyDec
	paid        map[string]math.LegacyDec
	failCollect bool
	failPay     bool
}

func newMockFundsKeeper() *mockFundsKeeper {
	return &mockFundsKeeper{
		collected: make(map[string]math.LegacyDec),
		paid:      make(map[string]math.LegacyDec),
	}
}

func (m *mockFundsKeeper) CollectFromAccount(ctx context.Context, addr string, amount math.LegacyDec) error {
	if m.failCollect {
		return errors.New("collection rejected")
	}
	prev, ok := m.collected[addr]
	if !ok {
		prev = math.LegacyZeroDec()
	}
	m.collected[addr] = prev.Add(amount)
	return nil
}

func (m *mockFundsKeeper) PayToAccount(ctx context.Context, addr string, amount math.LegacyDec) error {
	if m.failPay {
		return errors.New("transfer rejected")
	}
	prev, ok := m.paid[addr]
	if !ok {
		prev = math.LegacyZeroDec()
	}
	m.paid[addr] = prev.Add(amount)
	return nil
}

// setupTestKeeper wires a lottery keeper over an in-memory store with
// mocked custody, badge and funds collaborators
func setupTestKeeper(t testing.TB) (*Keeper, *mockCustodyKeeper, *mockBadgeKeeper, *mockFundsKeeper, sdk.Context) {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)
	logger := log.NewNopLogger()

	custody := &mockCustodyKeeper{yields: make(map[uint64]math.LegacyDec)}
	badges := &mockBadgeKeeper{}
	funds := newMockFundsKeeper()

	k := NewKeeper(cdc, storeKey, custody, badges, funds, testAuthority, logger)

	return k, custody, badges, funds, ctx
}

// enrollPool registers n unit-weight participants for a pool
func enrollPool(t *testing.T, k *Keeper, ctx sdk.Context, poolID uint64, n int) []string {
	t.Helper()
	addresses := make([]string, n)
	weights := make([]math.LegacyDec, n)
	for i := 0; i < n; i++ {
		addresses[i] = fmt.Sprintf("player%d", i)
		weights[i] = math.LegacyOneDec()
	}
	if err := k.AddParticipants(ctx, poolID, addresses, weights); err != nil {
		t.Fatalf("add participants: %v", err)
	}
	return addresses
}
