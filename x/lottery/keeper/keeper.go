package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/lottery/types"
)

// Store key prefixes
var (
	ConfigKey              = []byte{0x01}
	DrawKeyPrefix          = []byte{0x02}
	DrawSequenceKey        = []byte{0x03}
	PoolStateKeyPrefix     = []byte{0x04}
	GlobalStatsKey         = []byte{0x05}
	TreasuryKey            = []byte{0x06}
	ParticipantKeyPrefix   = []byte{0x07}
)

// CustodyKeeper defines the expected interface for yield lookups
type CustodyKeeper interface {
	GetYield(ctx sdk.Context, poolID uint64) math.LegacyDec
}

// BadgeKeeper defines the expected interface for winner badge mints
type BadgeKeeper interface {
	MintLotteryWin(ctx sdk.Context, recipient string, prize math.LegacyDec) error
}

// FundsKeeper defines the expected interface for prize payouts and for
// pulling treasury contributions in from funder accounts
type FundsKeeper interface {
	CollectFromAccount(ctx context.Context, addr string, amount math.LegacyDec) error
	PayToAccount(ctx context.Context, addr string, amount math.LegacyDec) error
}

// Keeper manages the lottery module state
type Keeper struct {
	cdc           codec.BinaryCodec
	storeKey      storetypes.StoreKey
	custodyKeeper CustodyKeeper
	badgeKeeper   BadgeKeeper
	fundsKeeper   FundsKeeper
	logger        log.Logger
	authority     string
}

// NewKeeper creates a new lottery keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	custodyKeeper CustodyKeeper,
	badgeKeeper BadgeKeeper,
	fundsKeeper FundsKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	k := &Keeper{
		cdc:           cdc,
		storeKey:      storeKey,
		custodyKeeper: custodyKeeper,
		badgeKeeper:   badgeKeeper,
		fundsKeeper:   fundsKeeper,
		authority:     authority,
		logger:        logger.With("module", "x/lottery"),
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

// ============ Config Operations ============

// SetConfig saves the lottery configuration
func (k *Keeper) SetConfig(ctx sdk.Context, config types.LotteryConfig) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(config)
	store.Set(ConfigKey, bz)
}

// GetConfig retrieves the lottery configuration
func (k *Keeper) GetConfig(ctx sdk.Context) types.LotteryConfig {
	store := k.GetStore(ctx)
	bz := store.Get(ConfigKey)
	if bz == nil {
		return types.DefaultLotteryConfig()
	}
	var config types.LotteryConfig
	if err := json.Unmarshal(bz, &config); err != nil {
		return types.DefaultLotteryConfig()
	}
	return config
}

// GetMinPoolSize returns the configured minimum pool size for eligibility
func (k *Keeper) GetMinPoolSize(ctx sdk.Context) int64 {
	return k.GetConfig(ctx).MinPoolSize
}

// ============ Draw Operations ============

// drawKey generates the store key for a draw
func drawKey(drawID uint64) []byte {
	return append(DrawKeyPrefix, sdk.Uint64ToBigEndian(drawID)...)
}

// NextDrawID returns the next draw id and advances the sequence
func (k *Keeper) NextDrawID(ctx sdk.Context) uint64 {
	store := k.GetStore(ctx)
	next := uint64(1)
	if bz := store.Get(DrawSequenceKey); bz != nil {
		next = sdk.BigEndianToUint64(bz) + 1
	}
	store.Set(DrawSequenceKey, sdk.Uint64ToBigEndian(next))
	return next
}

// SetDraw saves a draw to the store
func (k *Keeper) SetDraw(ctx sdk.Context, draw *types.LotteryDraw) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(draw)
	store.Set(drawKey(draw.DrawID), bz)
}

// GetDraw retrieves a draw from the store
func (k *Keeper) GetDraw(ctx sdk.Context, drawID uint64) *types.LotteryDraw {
	store := k.GetStore(ctx)
	bz := store.Get(drawKey(drawID))
	if bz == nil {
		return nil
	}
	var draw types.LotteryDraw
	if err := json.Unmarshal(bz, &draw); err != nil {
		return nil
	}
	return &draw
}

// GetAllDraws returns all draws in id order
func (k *Keeper) GetAllDraws(ctx sdk.Context) []*types.LotteryDraw {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, DrawKeyPrefix)
	defer iterator.Close()

	var draws []*types.LotteryDraw
	for ; iterator.Valid(); iterator.Next() {
		var draw types.LotteryDraw
		if err := json.Unmarshal(iterator.Value(), &draw); err != nil {
			continue
		}
		draws = append(draws, &draw)
	}
	return draws
}

// ============ Pool State Operations ============

// poolStateKey generates the store key for per-pool bookkeeping
func poolStateKey(poolID uint64) []byte {
	return append(PoolStateKeyPrefix, sdk.Uint64ToBigEndian(poolID)...)
}

// SetPoolState saves per-pool lottery bookkeeping
func (k *Keeper) SetPoolState(ctx sdk.Context, state *types.PoolLotteryState) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(state)
	store.Set(poolStateKey(state.PoolID), bz)
}

// GetPoolState retrieves per-pool lottery bookkeeping, zeroed when absent
func (k *Keeper) GetPoolState(ctx sdk.Context, poolID uint64) *types.PoolLotteryState {
	store := k.GetStore(ctx)
	bz := store.Get(poolStateKey(poolID))
	if bz == nil {
		return types.NewPoolLotteryState(poolID)
	}
	var state types.PoolLotteryState
	if err := json.Unmarshal(bz, &state); err != nil {
		return types.NewPoolLotteryState(poolID)
	}
	return &state
}

// GetAllPoolStates returns bookkeeping for every enrolled pool
func (k *Keeper) GetAllPoolStates(ctx sdk.Context) []*types.PoolLotteryState {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolStateKeyPrefix)
	defer iterator.Close()

	var states []*types.PoolLotteryState
	for ; iterator.Valid(); iterator.Next() {
		var state types.PoolLotteryState
		if err := json.Unmarshal(iterator.Value(), &state); err != nil {
			continue
		}
		states = append(states, &state)
	}
	return states
}

// ============ Global Stats Operations ============

// SetGlobalStats saves the global draw statistics
func (k *Keeper) SetGlobalStats(ctx sdk.Context, stats *types.GlobalLotteryStats) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(stats)
	store.Set(GlobalStatsKey, bz)
}

// GetGlobalStats retrieves the global draw statistics
func (k *Keeper) GetGlobalStats(ctx sdk.Context) *types.GlobalLotteryStats {
	store := k.GetStore(ctx)
	bz := store.Get(GlobalStatsKey)
	if bz == nil {
		return types.NewGlobalLotteryStats()
	}
	var stats types.GlobalLotteryStats
	if err := json.Unmarshal(bz, &stats); err != nil {
		return types.NewGlobalLotteryStats()
	}
	return &stats
}

// ============ Treasury Operations ============

// SetTreasury saves the pooled prize balance
func (k *Keeper) SetTreasury(ctx sdk.Context, balance math.LegacyDec) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(balance)
	store.Set(TreasuryKey, bz)
}

// GetTreasury retrieves the pooled prize balance
func (k *Keeper) GetTreasury(ctx sdk.Context) math.LegacyDec {
	store := k.GetStore(ctx)
	bz := store.Get(TreasuryKey)
	if bz == nil {
		return math.LegacyZeroDec()
	}
	var balance math.LegacyDec
	if err := json.Unmarshal(bz, &balance); err != nil {
		return math.LegacyZeroDec()
	}
	return balance
}

// ============ Participant Record Operations ============

// participantKey generates the store key for a participant history record
func participantKey(address string) []byte {
	return append(ParticipantKeyPrefix, []byte(address)...)
}

// SetParticipantRecord saves a participant history record
func (k *Keeper) SetParticipantRecord(ctx sdk.Context, record *types.ParticipantRecord) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(record)
	store.Set(participantKey(record.Address), bz)
}

// GetParticipantRecord retrieves a participant history record, zeroed
// when absent
func (k *Keeper) GetParticipantRecord(ctx sdk.Context, address string) *types.ParticipantRecord {
	store := k.GetStore(ctx)
	bz := store.Get(participantKey(address))
	if bz == nil {
		return types.NewParticipantRecord(address)
	}
	var record types.ParticipantRecord
	if err := json.Unmarshal(bz, &record); err != nil {
		return types.NewParticipantRecord(address)
	}
	return &record
}

// GetAllParticipantRecords returns every participant history record
func (k *Keeper) GetAllParticipantRecords(ctx sdk.Context) []*types.ParticipantRecord {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, ParticipantKeyPrefix)
	defer iterator.Close()

	var records []*types.ParticipantRecord
	for ; iterator.Valid(); iterator.Next() {
		var record types.ParticipantRecord
		if err := json.Unmarshal(iterator.Value(), &record); err != nil {
			continue
		}
		records = append(records, &record)
	}
	return records
}
