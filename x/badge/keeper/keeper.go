package keeper

import (
	"encoding/json"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/badge/types"
)

// Store key prefixes
var (
	DefinitionKeyPrefix = []byte{0x01}
	OwnedKeyPrefix      = []byte{0x02}
)

// Keeper manages the badge ledger state. Callers treat every mint as
// best effort; the errors here exist to be logged, not propagated.
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger
}

// NewKeeper creates a new badge keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:      cdc,
		storeKey: storeKey,
		logger:   logger.With("module", "x/badge"),
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

// ============ Definition Operations ============

// definitionKey generates the store key for a badge kind
func definitionKey(kind string) []byte {
	return append(DefinitionKeyPrefix, []byte(kind)...)
}

// InitDefaultBadges seeds the built-in badge kinds
func (k *Keeper) InitDefaultBadges(ctx sdk.Context) {
	for _, def := range types.DefaultBadgeDefinitions() {
		if k.GetDefinition(ctx, def.Kind) == nil {
			k.SetDefinition(ctx, &def)
			k.logger.Info("Initialized badge kind", "kind", def.Kind)
		}
	}
}

// SetDefinition saves a badge kind
func (k *Keeper) SetDefinition(ctx sdk.Context, def *types.BadgeDefinition) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(def)
	store.Set(definitionKey(def.Kind), bz)
}

// GetDefinition retrieves a badge kind, nil when unknown
func (k *Keeper) GetDefinition(ctx sdk.Context, kind string) *types.BadgeDefinition {
	store := k.GetStore(ctx)
	bz := store.Get(definitionKey(kind))
	if bz == nil {
		return nil
	}
	var def types.BadgeDefinition
	if err := json.Unmarshal(bz, &def); err != nil {
		return nil
	}
	return &def
}

// ============ Ownership Operations ============

// ownedKey generates the store key for a held badge
func ownedKey(owner, kind string) []byte {
	return append(OwnedKeyPrefix, []byte(owner+":"+kind)...)
}

// HasBadge reports whether an address holds a badge kind
func (k *Keeper) HasBadge(ctx sdk.Context, owner, kind string) bool {
	return k.GetStore(ctx).Has(ownedKey(owner, kind))
}

// GetBadges returns all badges held by an address
func (k *Keeper) GetBadges(ctx sdk.Context, owner string) []types.OwnedBadge {
	store := k.GetStore(ctx)
	prefix := append(OwnedKeyPrefix, []byte(owner+":")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var badges []types.OwnedBadge
	for ; iterator.Valid(); iterator.Next() {
		var badge types.OwnedBadge
		if err := json.Unmarshal(iterator.Value(), &badge); err != nil {
			continue
		}
		badges = append(badges, badge)
	}
	return badges
}

// ============ Mint Operations ============

// eligibility applies the shared gating for every badge kind
func (k *Keeper) eligibility(ctx sdk.Context, kind, owner string, value math.LegacyDec) (*types.BadgeDefinition, error) {
	def := k.GetDefinition(ctx, kind)
	if def == nil {
		return nil, types.ErrBadgeNotFound
	}
	if !def.Active {
		return nil, types.ErrBadgeNotActive
	}
	if def.MinValue.IsPositive() && value.LT(def.MinValue) {
		return nil, types.ErrInsufficientValue
	}
	if k.HasBadge(ctx, owner, kind) {
		return nil, types.ErrBadgeAlreadyOwned
	}
	if def.MaxSupply > 0 && def.Minted >= def.MaxSupply {
		return nil, types.ErrMaxSupplyReached
	}
	return def, nil
}

// IsEligible reports whether a mint of kind for owner at value would
// succeed, without writing anything. The error carries the reason.
func (k *Keeper) IsEligible(ctx sdk.Context, kind, owner string, value math.LegacyDec) (bool, error) {
	if _, err := k.eligibility(ctx, kind, owner, value); err != nil {
		return false, err
	}
	return true, nil
}

// mint writes the badge after passing the shared gate
func (k *Keeper) mint(ctx sdk.Context, kind, owner string, value math.LegacyDec) error {
	def, err := k.eligibility(ctx, kind, owner, value)
	if err != nil {
		return err
	}

	badge := types.OwnedBadge{
		Kind:     kind,
		Owner:    owner,
		Value:    value,
		MintedAt: time.Now().Unix(),
	}
	bz, _ := json.Marshal(badge)
	k.GetStore(ctx).Set(ownedKey(owner, kind), bz)

	def.Minted++
	k.SetDefinition(ctx, def)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"badge_minted",
			sdk.NewAttribute("kind", kind),
			sdk.NewAttribute("owner", owner),
			sdk.NewAttribute("value", value.String()),
		),
	)

	k.logger.Info("Badge minted", "kind", kind, "owner", owner)
	return nil
}

// MintCreator mints the pool-creator badge
func (k *Keeper) MintCreator(ctx sdk.Context, recipient string) error {
	return k.mint(ctx, types.BadgeCreator, recipient, math.LegacyZeroDec())
}

// MintContribution mints the contribution badge for a locked-in member
func (k *Keeper) MintContribution(ctx sdk.Context, recipient string, value math.LegacyDec) error {
	return k.mint(ctx, types.BadgeContribution, recipient, value)
}

// MintCompletion mints the completed-term badge
func (k *Keeper) MintCompletion(ctx sdk.Context, recipient string, yieldPerMember math.LegacyDec) error {
	return k.mint(ctx, types.BadgeCompletion, recipient, yieldPerMember)
}

// MintLotteryWin mints the lottery-winner badge
func (k *Keeper) MintLotteryWin(ctx sdk.Context, recipient string, prize math.LegacyDec) error {
	return k.mint(ctx, types.BadgeLotteryWin, recipient, prize)
}
