package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"

	"github.com/Candra0x6/Roca-sub001/x/savings/types"
)

func TestCreatePoolParamValidation(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	testCases := []struct {
		name     string
		mutate   func(p *types.PoolParams)
		expected error
	}{
		{
			name:     "empty name",
			mutate:   func(p *types.PoolParams) { p.Name = "" },
			expected: types.ErrPoolNameEmpty,
		},
		{
			name:     "contribution below floor",
			mutate:   func(p *types.PoolParams) { p.ContributionAmount = math.LegacyMustNewDecFromStr("0.001") },
			expected: types.ErrInvalidContributionRange,
		},
		{
			name:     "contribution above cap",
			mutate:   func(p *types.PoolParams) { p.ContributionAmount = math.LegacyMustNewDecFromStr("2000000") },
			expected: types.ErrInvalidContributionRange,
		},
		{
			name:     "too few members",
			mutate:   func(p *types.PoolParams) { p.MaxMembers = 1 },
			expected: types.ErrInvalidMemberCount,
		},
		{
			name:     "too many members",
			mutate:   func(p *types.PoolParams) { p.MaxMembers = 101 },
			expected: types.ErrInvalidMemberCount,
		},
		{
			name:     "duration below floor",
			mutate:   func(p *types.PoolParams) { p.Duration = 60 },
			expected: types.ErrInvalidDuration,
		},
		{
			name:     "duration above cap",
			mutate:   func(p *types.PoolParams) { p.Duration = types.MaxDuration + 1 },
			expected: types.ErrInvalidDuration,
		},
		{
			name:     "missing strategy",
			mutate:   func(p *types.PoolParams) { p.StrategyTag = "" },
			expected: types.ErrInvalidYieldManager,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := defaultParams("creator1")
			tc.mutate(params)
			if _, err := k.CreatePool(ctx, params); err != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestPerCreatorPoolLimit(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	constraints := types.DefaultGlobalConstraints()
	constraints.MaxPoolsPerCreator = 2
	constraints.MaxActivePoolsPerCreator = 2
	constraints.MinTimeBetweenPools = 0
	if err := k.UpdateGlobalConstraints(ctx, testAuthority, constraints); err != nil {
		t.Fatalf("update constraints: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != nil {
			t.Fatalf("create pool %d: %v", i, err)
		}
	}

	if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != types.ErrMaxPoolsPerCreatorReached {
		t.Errorf("expected ErrMaxPoolsPerCreatorReached, got %v", err)
	}

	// Another creator is unaffected
	if _, err := k.CreatePool(ctx, defaultParams("creator2")); err != nil {
		t.Errorf("expected creator2 to pass, got %v", err)
	}
}

func TestActivePoolLimit(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	constraints := types.DefaultGlobalConstraints()
	constraints.MaxActivePoolsPerCreator = 1
	constraints.MinTimeBetweenPools = 0
	if err := k.UpdateGlobalConstraints(ctx, testAuthority, constraints); err != nil {
		t.Fatalf("update constraints: %v", err)
	}

	pool, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}

	if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != types.ErrMaxActivePoolsPerCreator {
		t.Errorf("expected ErrMaxActivePoolsPerCreator, got %v", err)
	}

	// Completing the pool frees the slot
	fillPool(t, k, ctx, pool.PoolID, 3)
	locked := k.GetPool(ctx, pool.PoolID)
	locked.LockedAt = time.Now().Unix() - locked.Duration - 1
	k.SetPool(ctx, locked)
	if _, err := k.CompletePool(ctx, pool.PoolID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != nil {
		t.Errorf("expected creation to pass after completion, got %v", err)
	}
}

func TestCreationRateLimit(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != nil {
		t.Fatalf("create pool: %v", err)
	}

	// Default constraints demand an hour between creations
	if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != types.ErrPoolCreationTooFrequent {
		t.Errorf("expected ErrPoolCreationTooFrequent, got %v", err)
	}

	// Backdating the last creation lifts the limit
	state := k.GetCreatorState(ctx, "creator1")
	state.LastPoolCreation = time.Now().Unix() - 2*60*60
	k.SetCreatorState(ctx, state)

	if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != nil {
		t.Errorf("expected creation to pass after the cooldown, got %v", err)
	}
}

func TestGlobalPoolCap(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	constraints := types.DefaultGlobalConstraints()
	constraints.MaxTotalPools = 1
	constraints.MinTimeBetweenPools = 0
	if err := k.UpdateGlobalConstraints(ctx, testAuthority, constraints); err != nil {
		t.Fatalf("update constraints: %v", err)
	}

	if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != nil {
		t.Fatalf("create pool: %v", err)
	}
	if _, err := k.CreatePool(ctx, defaultParams("creator2")); err != types.ErrMaxPoolsReached {
		t.Errorf("expected ErrMaxPoolsReached, got %v", err)
	}
}

func TestConstraintEnforcementToggle(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	constraints := types.DefaultGlobalConstraints()
	constraints.MaxTotalPools = 1
	constraints.EnforceConstraints = false
	if err := k.UpdateGlobalConstraints(ctx, testAuthority, constraints); err != nil {
		t.Fatalf("update constraints: %v", err)
	}

	// With enforcement off every gate is skipped
	for i := 0; i < 3; i++ {
		if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != nil {
			t.Fatalf("create pool %d with enforcement off: %v", i, err)
		}
	}
}

func TestPauseGate(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	if err := k.SetPaused(ctx, "nobody", true); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	if err := k.SetPaused(ctx, testAuthority, true); err != nil {
		t.Fatalf("set paused: %v", err)
	}
	if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != types.ErrFactoryPaused {
		t.Errorf("expected ErrFactoryPaused, got %v", err)
	}
	if ok, reason := k.CanCreatePool(ctx, "creator1"); ok || reason != types.ErrFactoryPaused.Error() {
		t.Errorf("expected paused dry run, got ok=%v reason=%q", ok, reason)
	}

	if err := k.SetPaused(ctx, testAuthority, false); err != nil {
		t.Fatalf("unpause: %v", err)
	}
	if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != nil {
		t.Errorf("expected creation to pass after unpause, got %v", err)
	}
}

// TestCanCreateMatchesCreate checks the dry run against the real gate
func TestCanCreateMatchesCreate(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	ok, reason := k.CanCreatePool(ctx, "creator1")
	if !ok || reason != "" {
		t.Errorf("expected clean dry run, got ok=%v reason=%q", ok, reason)
	}

	if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != nil {
		t.Fatalf("create pool: %v", err)
	}

	// The cooldown now applies, and the dry run reports the same reason
	ok, reason = k.CanCreatePool(ctx, "creator1")
	if ok {
		t.Error("expected dry run to refuse during cooldown")
	}
	if reason != types.ErrPoolCreationTooFrequent.Error() {
		t.Errorf("expected cooldown reason, got %q", reason)
	}
	if _, err := k.CreatePool(ctx, defaultParams("creator1")); err != types.ErrPoolCreationTooFrequent {
		t.Errorf("expected ErrPoolCreationTooFrequent, got %v", err)
	}
}

func TestUpdateConstraintsValidation(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	bad := types.DefaultGlobalConstraints()
	bad.MaxTotalPools = 0
	if err := k.UpdateGlobalConstraints(ctx, testAuthority, bad); err != types.ErrInvalidConstraintValue {
		t.Errorf("expected ErrInvalidConstraintValue, got %v", err)
	}

	bad = types.DefaultGlobalConstraints()
	bad.MaxActivePoolsPerCreator = bad.MaxPoolsPerCreator + 1
	if err := k.UpdateGlobalConstraints(ctx, testAuthority, bad); err != types.ErrInvalidConstraintValue {
		t.Errorf("expected ErrInvalidConstraintValue for active > total, got %v", err)
	}

	if err := k.UpdateGlobalConstraints(ctx, "nobody", types.DefaultGlobalConstraints()); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRegistryStats(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	constraints := types.DefaultGlobalConstraints()
	constraints.MinTimeBetweenPools = 0
	if err := k.UpdateGlobalConstraints(ctx, testAuthority, constraints); err != nil {
		t.Fatalf("update constraints: %v", err)
	}

	first, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	if _, err := k.CreatePool(ctx, defaultParams("creator2")); err != nil {
		t.Fatalf("create pool: %v", err)
	}

	stats := k.GetRegistryStats(ctx)
	if stats.TotalPools != 2 || stats.ActivePools != 2 || stats.CompletedPools != 0 {
		t.Errorf("unexpected stats after creation: %+v", stats)
	}

	fillPool(t, k, ctx, first.PoolID, 3)
	stats = k.GetRegistryStats(ctx)
	if !stats.TotalValueLocked.Equal(math.LegacyMustNewDecFromStr("3")) {
		t.Errorf("expected TVL 3 after lock, got %s", stats.TotalValueLocked.String())
	}

	locked := k.GetPool(ctx, first.PoolID)
	locked.LockedAt = time.Now().Unix() - locked.Duration - 1
	k.SetPool(ctx, locked)
	if _, err := k.CompletePool(ctx, first.PoolID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	stats = k.GetRegistryStats(ctx)
	if stats.TotalPools != 2 || stats.ActivePools != 1 || stats.CompletedPools != 1 {
		t.Errorf("unexpected stats after completion: %+v", stats)
	}
	if !stats.TotalValueLocked.IsZero() {
		t.Errorf("expected TVL back to zero, got %s", stats.TotalValueLocked.String())
	}
}
