package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// Store key prefixes
var (
	PoolKeyPrefix         = []byte{0x01}
	PoolSequenceKey       = []byte{0x02}
	CreatorStateKeyPrefix = []byte{0x03}
	ConstraintsKey        = []byte{0x04}
	RegistryStatsKey      = []byte{0x05}
	PausedKey             = []byte{0x06}
)

// CustodyKeeper defines the expected interface for the fund custody bridge
type CustodyKeeper interface {
	Deposit(ctx sdk.Context, poolID uint64, strategyTag string, amount math.LegacyDec) error
	Withdraw(ctx sdk.Context, poolID uint64) (principal, yield math.LegacyDec, err error)
	UpdateYield(ctx sdk.Context, poolID uint64)
	GetYield(ctx sdk.Context, poolID uint64) math.LegacyDec
	GetTotalValue(ctx sdk.Context, poolID uint64) math.LegacyDec
}

// BadgeKeeper defines the expected interface for the achievement badge ledger
type BadgeKeeper interface {
	MintContribution(ctx sdk.Context, recipient string, value math.LegacyDec) error
	MintCompletion(ctx sdk.Context, recipient string, yieldPerMember math.LegacyDec) error
	MintCreator(ctx sdk.Context, recipient string) error
}

// LotteryKeeper defines the expected interface for the lottery module
type LotteryKeeper interface {
	AddParticipants(ctx sdk.Context, poolID uint64, addresses []string, weights []math.LegacyDec) error
	GetMinPoolSize(ctx sdk.Context) int64
	FundPrizePool(ctx sdk.Context, poolID uint64, amount math.LegacyDec)
}

// FundsKeeper defines the expected interface for fund transfers.
// MintYield backs realized yield with real balance in the module account
// so later payouts cannot overdraw it.
type FundsKeeper interface {
	CollectFromAccount(ctx context.Context, addr string, amount math.LegacyDec) error
	PayToAccount(ctx context.Context, addr string, amount math.LegacyDec) error
	MintYield(ctx context.Context, amount math.LegacyDec) error
}

// Keeper manages the savings module state
type Keeper struct {
	cdc           codec.BinaryCodec
	storeKey      storetypes.StoreKey
	custodyKeeper CustodyKeeper
	badgeKeeper   BadgeKeeper
	lotteryKeeper LotteryKeeper
	fundsKeeper   FundsKeeper
	logger        log.Logger
	authority     string
}

// NewKeeper creates a new savings keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	custodyKeeper CustodyKeeper,
	badgeKeeper BadgeKeeper,
	lotteryKeeper LotteryKeeper,
	fundsKeeper FundsKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	k := &Keeper{
		cdc:           cdc,
		storeKey:      storeKey,
		custodyKeeper: custodyKeeper,
		badgeKeeper:   badgeKeeper,
		lotteryKeeper: lotteryKeeper,
		fundsKeeper:   fundsKeeper,
		authority:     authority,
		logger:        logger.With("module", "x/savings"),
	}
	return k
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Pool Operations ============

// poolKey generates the store key for a pool
func poolKey(poolID uint64) []byte {
	return append(PoolKeyPrefix, sdk.Uint64ToBigEndian(poolID)...)
}

// NextPoolID returns the next pool id and advances the sequence
func (k *Keeper) NextPoolID(ctx sdk.Context) uint64 {
	store := k.GetStore(ctx)
	next := uint64(1)
	if bz := store.Get(PoolSequenceKey); bz != nil {
		next = sdk.BigEndianToUint64(bz) + 1
	}
	store.Set(PoolSequenceKey, sdk.Uint64ToBigEndian(next))
	return next
}

// SetPool saves a pool to the store
func (k *Keeper) SetPool(ctx sdk.Context, pool *types.Pool) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(pool)
	store.Set(poolKey(pool.PoolID), bz)
}

// GetPool retrieves a pool from the store
func (k *Keeper) GetPool(ctx sdk.Context, poolID uint64) *types.Pool {
	store := k.GetStore(ctx)
	bz := store.Get(poolKey(poolID))
	if bz == nil {
		return nil
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil
	}
	return &pool
}

// GetAllPools returns all pools in id order
func (k *Keeper) GetAllPools(ctx sdk.Context) []*types.Pool {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolKeyPrefix)
	defer iterator.Close()

	var pools []*types.Pool
	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			continue
		}
		pools = append(pools, &pool)
	}
	return pools
}

// GetPoolsByStatus returns pools filtered by status
func (k *Keeper) GetPoolsByStatus(ctx sdk.Context, status string) []*types.Pool {
	allPools := k.GetAllPools(ctx)
	var filtered []*types.Pool
	for _, pool := range allPools {
		if pool.Status == status {
			filtered = append(filtered, pool)
		}
	}
	return filtered
}

// GetPoolsByMember returns pools the address has joined
func (k *Keeper) GetPoolsByMember(ctx sdk.Context, member string) []*types.Pool {
	allPools := k.GetAllPools(ctx)
	var filtered []*types.Pool
	for _, pool := range allPools {
		if pool.IsMember(member) {
			filtered = append(filtered, pool)
		}
	}
	return filtered
}

// ============ Creator State Operations ============

// creatorStateKey generates the store key for a creator's bookkeeping
func creatorStateKey(creator string) []byte {
	return append(CreatorStateKeyPrefix, []byte(creator)...)
}

// SetCreatorState saves creator bookkeeping to the store
func (k *Keeper) SetCreatorState(ctx sdk.Context, state *types.CreatorState) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(state)
	store.Set(creatorStateKey(state.Address), bz)
}

// GetCreatorState retrieves creator bookkeeping, zeroed when absent
func (k *Keeper) GetCreatorState(ctx sdk.Context, creator string) *types.CreatorState {
	store := k.GetStore(ctx)
	bz := store.Get(creatorStateKey(creator))
	if bz == nil {
		return &types.CreatorState{Address: creator}
	}
	var state types.CreatorState
	if err := json.Unmarshal(bz, &state); err != nil {
		return &types.CreatorState{Address: creator}
	}
	return &state
}

// GetPoolsByCreator returns pools created by the address
func (k *Keeper) GetPoolsByCreator(ctx sdk.Context, creator string) []*types.Pool {
	state := k.GetCreatorState(ctx, creator)
	var pools []*types.Pool
	for _, id := range state.PoolIDs {
		if pool := k.GetPool(ctx, id); pool != nil {
			pools = append(pools, pool)
		}
	}
	return pools
}

// ============ Constraints Operations ============

// SetGlobalConstraints saves the admission-control configuration
func (k *Keeper) SetGlobalConstraints(ctx sdk.Context, constraints types.GlobalConstraints) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(constraints)
	store.Set(ConstraintsKey, bz)
}

// GetGlobalConstraints retrieves the admission-control configuration
func (k *Keeper) GetGlobalConstraints(ctx sdk.Context) types.GlobalConstraints {
	store := k.GetStore(ctx)
	bz := store.Get(ConstraintsKey)
	if bz == nil {
		return types.DefaultGlobalConstraints()
	}
	var constraints types.GlobalConstraints
	if err := json.Unmarshal(bz, &constraints); err != nil {
		return types.DefaultGlobalConstraints()
	}
	return constraints
}

// ============ Registry Stats Operations ============

// SetRegistryStats saves platform-wide stats
func (k *Keeper) SetRegistryStats(ctx sdk.Context, stats *types.RegistryStats) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(stats)
	store.Set(RegistryStatsKey, bz)
}

// GetRegistryStats retrieves platform-wide stats
func (k *Keeper) GetRegistryStats(ctx sdk.Context) *types.RegistryStats {
	store := k.GetStore(ctx)
	bz := store.Get(RegistryStatsKey)
	if bz == nil {
		return types.NewRegistryStats()
	}
	var stats types.RegistryStats
	if err := json.Unmarshal(bz, &stats); err != nil {
		return types.NewRegistryStats()
	}
	return &stats
}

// ============ Pause Flag ============

// SetPaused toggles the creation pause flag
func (k *Keeper) SetPaused(ctx sdk.Context, authority string, paused bool) error {
	if authority != k.authority {
		return types.ErrUnauthorized
	}
	store := k.GetStore(ctx)
	if paused {
		store.Set(PausedKey, []byte{1})
	} else {
		store.Delete(PausedKey)
	}
	k.logger.Info("Pool creation pause updated", "paused", paused)
	return nil
}

// IsPaused reports whether pool creation is paused
func (k *Keeper) IsPaused(ctx sdk.Context) bool {
	return k.GetStore(ctx).Has(PausedKey)
}
