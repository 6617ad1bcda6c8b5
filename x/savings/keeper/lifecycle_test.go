package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"

	"github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// TestJoinPoolAutoLock verifies that filling the last seat locks the pool
// and sweeps the exact contributions to custody in the same call
func TestJoinPoolAutoLock(t *testing.T) {
	k, yieldK, _, funds, ctx := setupTestKeeper(t)

	pool, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}

	fillPool(t, k, ctx, pool.PoolID, 3)

	got := k.GetPool(ctx, pool.PoolID)
	if got.Status != types.PoolStatusActive {
		t.Errorf("expected status active after filling, got %s", got.Status)
	}
	if got.LockedAt == 0 {
		t.Error("expected lockedAt to be set")
	}

	expected := math.LegacyMustNewDecFromStr("3")
	if !got.ContributionsAtLock.Equal(expected) {
		t.Errorf("expected contributions at lock 3, got %s", got.ContributionsAtLock.String())
	}

	// Custody holds exactly what was swept
	account := yieldK.GetAccount(ctx, pool.PoolID)
	if account == nil {
		t.Fatal("expected a custody account after lock")
	}
	if !account.Principal.Equal(expected) {
		t.Errorf("expected custody principal 3, got %s", account.Principal.String())
	}

	// Every member was charged once
	for _, m := range got.Members {
		if !funds.collected[m.Address].Equal(math.LegacyOneDec()) {
			t.Errorf("expected 1 collected from %s, got %s", m.Address, funds.collected[m.Address].String())
		}
	}
}

// TestJoinPoolAfterLock verifies a late join fails with InvalidState
func TestJoinPoolAfterLock(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	pool, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	fillPool(t, k, ctx, pool.PoolID, 3)

	if _, err := k.JoinPool(ctx, "latecomer", pool.PoolID, math.LegacyOneDec()); err != types.ErrInvalidState {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

// TestJoinPoolValidation covers the join preconditions
func TestJoinPoolValidation(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	pool, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}

	testCases := []struct {
		name     string
		member   string
		poolID   uint64
		amount   math.LegacyDec
		expected error
	}{
		{
			name:     "unknown pool",
			member:   "membera",
			poolID:   999,
			amount:   math.LegacyOneDec(),
			expected: types.ErrPoolNotFound,
		},
		{
			name:     "underpayment",
			member:   "membera",
			poolID:   pool.PoolID,
			amount:   math.LegacyMustNewDecFromStr("0.5"),
			expected: types.ErrInvalidContribution,
		},
		{
			name:     "overpayment",
			member:   "membera",
			poolID:   pool.PoolID,
			amount:   math.LegacyMustNewDecFromStr("1.5"),
			expected: types.ErrInvalidContribution,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := k.JoinPool(ctx, tc.member, tc.poolID, tc.amount); err != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
		})
	}

	// Duplicate join
	if _, err := k.JoinPool(ctx, "membera", pool.PoolID, math.LegacyOneDec()); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := k.JoinPool(ctx, "membera", pool.PoolID, math.LegacyOneDec()); err != types.ErrAlreadyMember {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}
}

// TestLeavePool verifies refunds and the open-funds invariant
func TestLeavePool(t *testing.T) {
	k, _, _, funds, ctx := setupTestKeeper(t)

	pool, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}

	fillPool(t, k, ctx, pool.PoolID, 2)

	refund, err := k.LeavePool(ctx, "membera", pool.PoolID)
	if err != nil {
		t.Fatalf("leave pool: %v", err)
	}
	if !refund.Equal(math.LegacyOneDec()) {
		t.Errorf("expected refund 1, got %s", refund.String())
	}
	if !funds.paid["membera"].Equal(math.LegacyOneDec()) {
		t.Errorf("expected 1 paid back to membera, got %s", funds.paid["membera"].String())
	}

	got := k.GetPool(ctx, pool.PoolID)
	if got.IsMember("membera") {
		t.Error("expected membera to be removed")
	}

	// totalFunds matches the remaining contributions
	sum := math.LegacyZeroDec()
	for _, m := range got.Members {
		sum = sum.Add(m.Contribution)
	}
	if !got.TotalFunds.Equal(sum) {
		t.Errorf("expected totalFunds %s, got %s", sum.String(), got.TotalFunds.String())
	}

	if _, err := k.LeavePool(ctx, "stranger", pool.PoolID); err != types.ErrNotMember {
		t.Errorf("expected ErrNotMember, got %v", err)
	}
}

// TestManualLock verifies the creator-only early lock
func TestManualLock(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	pool, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}

	// Below the member floor the lock must refuse
	if _, err := k.JoinPool(ctx, "membera", pool.PoolID, math.LegacyOneDec()); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := k.LockPool(ctx, "creator1", pool.PoolID); err != types.ErrInvalidState {
		t.Errorf("expected ErrInvalidState below member floor, got %v", err)
	}

	if _, err := k.JoinPool(ctx, "memberb", pool.PoolID, math.LegacyOneDec()); err != nil {
		t.Fatalf("join: %v", err)
	}

	// Only the creator may lock early
	if _, err := k.LockPool(ctx, "membera", pool.PoolID); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	locked, err := k.LockPool(ctx, "creator1", pool.PoolID)
	if err != nil {
		t.Fatalf("lock pool: %v", err)
	}
	if locked.Status != types.PoolStatusActive {
		t.Errorf("expected status active, got %s", locked.Status)
	}
	if !locked.ContributionsAtLock.Equal(math.LegacyMustNewDecFromStr("2")) {
		t.Errorf("expected contributions at lock 2, got %s", locked.ContributionsAtLock.String())
	}

	// Locking twice is an invalid transition
	if _, err := k.LockPool(ctx, "creator1", pool.PoolID); err != types.ErrInvalidState {
		t.Errorf("expected ErrInvalidState on second lock, got %v", err)
	}
}

// TestCustodyFailureAbortsLock verifies that a failing custody deposit
// leaves the pool open and untouched
func TestCustodyFailureAbortsLock(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	params := defaultParams("creator1")
	params.StrategyTag = "bogus"
	pool, err := k.CreatePool(ctx, params)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}

	if _, err := k.JoinPool(ctx, "membera", pool.PoolID, math.LegacyOneDec()); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := k.JoinPool(ctx, "memberb", pool.PoolID, math.LegacyOneDec()); err != nil {
		t.Fatalf("join: %v", err)
	}

	// Third join would fill the pool, but the bridge rejects the strategy
	if _, err := k.JoinPool(ctx, "memberc", pool.PoolID, math.LegacyOneDec()); err != types.ErrCustodyDepositFailed {
		t.Errorf("expected ErrCustodyDepositFailed, got %v", err)
	}

	got := k.GetPool(ctx, pool.PoolID)
	if got.Status != types.PoolStatusOpen {
		t.Errorf("expected pool to stay open, got %s", got.Status)
	}
	if got.LockedAt != 0 {
		t.Error("expected lockedAt to stay zero")
	}
	if got.IsMember("memberc") {
		t.Error("expected the failed join to leave no member record")
	}
}

// TestCompletionLifecycle walks lock, maturity, completion and the
// idempotent trigger
func TestCompletionLifecycle(t *testing.T) {
	k, yieldK, _, _, ctx := setupTestKeeper(t)

	pool, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	fillPool(t, k, ctx, pool.PoolID, 3)

	// Not mature yet
	if _, err := k.CompletePool(ctx, pool.PoolID); err != types.ErrPoolNotMature {
		t.Errorf("expected ErrPoolNotMature, got %v", err)
	}
	if done, err := k.TriggerCompletion(ctx, pool.PoolID); err != nil || done {
		t.Errorf("expected quiet no-op before maturity, got done=%v err=%v", done, err)
	}

	// Roll the term clock into the past, and backdate the custody account
	// so the term actually accrued yield
	locked := k.GetPool(ctx, pool.PoolID)
	locked.LockedAt = time.Now().Unix() - locked.Duration - 1
	k.SetPool(ctx, locked)

	account := yieldK.GetAccount(ctx, pool.PoolID)
	account.LastAccrual = locked.LockedAt
	yieldK.SetAccount(ctx, account)

	done, err := k.TriggerCompletion(ctx, pool.PoolID)
	if err != nil {
		t.Fatalf("trigger completion: %v", err)
	}
	if !done {
		t.Fatal("expected completion to run")
	}

	got := k.GetPool(ctx, pool.PoolID)
	if got.Status != types.PoolStatusCompleted {
		t.Errorf("expected status completed, got %s", got.Status)
	}
	if got.CompletedAt == 0 {
		t.Error("expected completedAt to be set")
	}

	// Yield shares sum exactly to the pool's yield
	if !got.YieldAmount.IsPositive() {
		t.Error("expected a positive yield after a full term")
	}
	sum := math.LegacyZeroDec()
	for _, m := range got.Members {
		sum = sum.Add(m.YieldEarned)
	}
	if !sum.Equal(got.YieldAmount) {
		t.Errorf("expected yield shares to sum to %s, got %s", got.YieldAmount.String(), sum.String())
	}

	// Second trigger is a quiet no-op
	done, err = k.TriggerCompletion(ctx, pool.PoolID)
	if err != nil {
		t.Errorf("second trigger errored: %v", err)
	}
	if done {
		t.Error("expected second trigger to be a no-op")
	}
}

// TestWithdrawShare covers the single-payout guarantee and the failed
// transfer path
func TestWithdrawShare(t *testing.T) {
	k, _, _, funds, ctx := setupTestKeeper(t)

	pool, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	fillPool(t, k, ctx, pool.PoolID, 3)

	// Withdraw before completion is rejected
	if _, err := k.WithdrawShare(ctx, "membera", pool.PoolID); err != types.ErrInvalidState {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}

	locked := k.GetPool(ctx, pool.PoolID)
	locked.LockedAt = time.Now().Unix() - locked.Duration - 1
	k.SetPool(ctx, locked)
	if _, err := k.CompletePool(ctx, pool.PoolID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	completed := k.GetPool(ctx, pool.PoolID)
	record := completed.FindMember("membera")
	expected := record.Contribution.Add(record.YieldEarned)

	amount, err := k.WithdrawShare(ctx, "membera", pool.PoolID)
	if err != nil {
		t.Fatalf("withdraw share: %v", err)
	}
	if !amount.Equal(expected) {
		t.Errorf("expected payout %s, got %s", expected.String(), amount.String())
	}
	if !funds.paid["membera"].Equal(expected) {
		t.Errorf("expected %s paid to membera, got %s", expected.String(), funds.paid["membera"].String())
	}

	// No double payout
	if _, err := k.WithdrawShare(ctx, "membera", pool.PoolID); err != types.ErrAlreadyWithdrawn {
		t.Errorf("expected ErrAlreadyWithdrawn, got %v", err)
	}

	// A failed transfer surfaces WithdrawalFailed and the mark stands
	funds.failPay = true
	if _, err := k.WithdrawShare(ctx, "memberb", pool.PoolID); err != types.ErrWithdrawalFailed {
		t.Errorf("expected ErrWithdrawalFailed, got %v", err)
	}
	marked := k.GetPool(ctx, pool.PoolID).FindMember("memberb")
	if !marked.HasWithdrawn {
		t.Error("expected memberb to stay marked after the failed transfer")
	}
	funds.failPay = false
	if _, err := k.WithdrawShare(ctx, "memberb", pool.PoolID); err != types.ErrAlreadyWithdrawn {
		t.Errorf("expected ErrAlreadyWithdrawn after failed transfer, got %v", err)
	}

	// Emergency path recovers the stuck member
	if _, err := k.EmergencyWithdraw(ctx, testAuthority, pool.PoolID, "memberb"); err != nil {
		t.Errorf("emergency withdraw: %v", err)
	}
	if _, err := k.EmergencyWithdraw(ctx, "nobody", pool.PoolID, "memberb"); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

// TestExactFundsAccounting verifies that total payouts equal principal
// plus yield once every member has withdrawn
func TestExactFundsAccounting(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	pool, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	fillPool(t, k, ctx, pool.PoolID, 3)

	locked := k.GetPool(ctx, pool.PoolID)
	locked.LockedAt = time.Now().Unix() - locked.Duration - 1
	k.SetPool(ctx, locked)
	if _, err := k.CompletePool(ctx, pool.PoolID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	completed := k.GetPool(ctx, pool.PoolID)
	totalPaid := math.LegacyZeroDec()
	for _, m := range completed.Members {
		amount, err := k.WithdrawShare(ctx, m.Address, pool.PoolID)
		if err != nil {
			t.Fatalf("withdraw %s: %v", m.Address, err)
		}
		totalPaid = totalPaid.Add(amount)
	}

	expected := completed.ContributionsAtLock.Add(completed.YieldAmount)
	if !totalPaid.Equal(expected) {
		t.Errorf("expected total payouts %s, got %s", expected.String(), totalPaid.String())
	}
}

// TestYieldBackedWithdrawals walks every member through withdrawal after
// a term that actually accrued yield, against a funds backend that
// refuses overdrafts. Payouts past principal only clear because the
// realized yield was minted into the module account at completion.
func TestYieldBackedWithdrawals(t *testing.T) {
	k, yieldK, lotteryK, funds, ctx := setupTestKeeper(t)

	pool, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	fillPool(t, k, ctx, pool.PoolID, 3)

	locked := k.GetPool(ctx, pool.PoolID)
	locked.LockedAt = time.Now().Unix() - locked.Duration - 1
	k.SetPool(ctx, locked)

	account := yieldK.GetAccount(ctx, pool.PoolID)
	account.LastAccrual = locked.LockedAt
	yieldK.SetAccount(ctx, account)

	if _, err := k.CompletePool(ctx, pool.PoolID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	completed := k.GetPool(ctx, pool.PoolID)
	if !completed.YieldAmount.IsPositive() {
		t.Fatal("expected a positive yield after a full term")
	}

	for _, m := range completed.Members {
		if _, err := k.WithdrawShare(ctx, m.Address, pool.PoolID); err != nil {
			t.Fatalf("withdraw %s: %v", m.Address, err)
		}
	}

	// The mint covered the members' yield plus the lottery's slice, and
	// what remains in the account is exactly the prize treasury
	lotteryShare := completed.YieldAmount.MulInt64(types.LotteryFundShareBps).QuoInt64(10000)
	if !funds.minted.Equal(completed.YieldAmount.Add(lotteryShare)) {
		t.Errorf("expected minted %s, got %s",
			completed.YieldAmount.Add(lotteryShare).String(), funds.minted.String())
	}
	if !funds.balance.Equal(lotteryK.GetTreasury(ctx)) {
		t.Errorf("expected remaining balance %s to match treasury %s",
			funds.balance.String(), lotteryK.GetTreasury(ctx).String())
	}
}

// TestCompletionMintFailure keeps completion atomic with its backing: a
// rejected mint aborts the completion before the pool turns terminal
func TestCompletionMintFailure(t *testing.T) {
	k, yieldK, _, funds, ctx := setupTestKeeper(t)

	pool, err := k.CreatePool(ctx, defaultParams("creator1"))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	fillPool(t, k, ctx, pool.PoolID, 3)

	locked := k.GetPool(ctx, pool.PoolID)
	locked.LockedAt = time.Now().Unix() - locked.Duration - 1
	k.SetPool(ctx, locked)

	account := yieldK.GetAccount(ctx, pool.PoolID)
	account.LastAccrual = locked.LockedAt
	yieldK.SetAccount(ctx, account)

	funds.failMint = true
	if _, err := k.CompletePool(ctx, pool.PoolID); err == nil {
		t.Fatal("expected completion to fail when the yield mint is rejected")
	}

	got := k.GetPool(ctx, pool.PoolID)
	if got.Status == types.PoolStatusCompleted {
		t.Error("expected the pool to stay non-terminal after the failed mint")
	}
}
