package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"

	"github.com/Candra0x6/Roca-sub001/x/lottery/types"
)

func TestAddParticipants(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	// Mismatched arrays are rejected
	err := k.AddParticipants(ctx, 1, []string{"a", "b"}, []math.LegacyDec{math.LegacyOneDec()})
	if err != types.ErrInvalidArrayLength {
		t.Errorf("expected ErrInvalidArrayLength, got %v", err)
	}

	// Empty registration is a quiet no-op
	if err := k.AddParticipants(ctx, 1, nil, nil); err != nil {
		t.Errorf("expected nil for empty registration, got %v", err)
	}

	// A pool below the minimum size registers nothing
	err = k.AddParticipants(ctx, 1,
		[]string{"a", "b"},
		[]math.LegacyDec{math.LegacyOneDec(), math.LegacyOneDec()},
	)
	if err != nil {
		t.Fatalf("below-minimum registration errored: %v", err)
	}
	state := k.GetPoolState(ctx, 1)
	if len(state.Participants) != 0 {
		t.Errorf("expected no participants below minimum size, got %d", len(state.Participants))
	}
	if state.IsEligible(k.GetMinPoolSize(ctx)) {
		t.Error("expected pool to stay ineligible")
	}

	// A full enrollment sticks
	enrollPool(t, k, ctx, 2, 5)
	state = k.GetPoolState(ctx, 2)
	if len(state.Participants) != 5 {
		t.Fatalf("expected 5 participants, got %d", len(state.Participants))
	}
	if !state.IsEligible(k.GetMinPoolSize(ctx)) {
		t.Error("expected pool to be eligible")
	}

	// Redundant registration is skipped, not an error
	if err := k.AddParticipants(ctx, 2, []string{"player0"}, []math.LegacyDec{math.LegacyOneDec()}); err != nil {
		t.Errorf("redundant registration errored: %v", err)
	}
	state = k.GetPoolState(ctx, 2)
	if len(state.Participants) != 5 {
		t.Errorf("expected participant count to stay 5, got %d", len(state.Participants))
	}
}

func TestGlobalParticipantDedup(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	enrollPool(t, k, ctx, 1, 5)
	enrollPool(t, k, ctx, 2, 5)

	// The same five addresses joined two pools; the global count dedups
	stats := k.GetGlobalStats(ctx)
	if stats.TotalParticipants != 5 {
		t.Errorf("expected 5 unique participants, got %d", stats.TotalParticipants)
	}

	record := k.GetParticipantRecord(ctx, "player0")
	if len(record.PoolIDs) != 2 {
		t.Errorf("expected player0 in 2 pools, got %d", len(record.PoolIDs))
	}
}

func TestCalculatePrizeAmount(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	// 10% of a 2.0 yield is exactly 0.2
	prize := k.CalculatePrizeAmount(ctx, math.LegacyMustNewDecFromStr("2"))
	if !prize.Equal(math.LegacyMustNewDecFromStr("0.2")) {
		t.Errorf("expected prize 0.2, got %s", prize.String())
	}

	// The cap binds on large yields
	prize = k.CalculatePrizeAmount(ctx, math.LegacyMustNewDecFromStr("1000"))
	if !prize.Equal(math.LegacyMustNewDecFromStr("10")) {
		t.Errorf("expected capped prize 10, got %s", prize.String())
	}

	if !k.CalculatePrizeAmount(ctx, math.LegacyZeroDec()).IsZero() {
		t.Error("expected zero prize for zero yield")
	}
}

func TestRequestDraw(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	yield := math.LegacyMustNewDecFromStr("2")

	// An ineligible pool cannot draw
	if _, err := k.RequestDraw(ctx, 1, yield); err != types.ErrPoolNotEligible {
		t.Errorf("expected ErrPoolNotEligible, got %v", err)
	}

	enrollPool(t, k, ctx, 1, 5)

	drawID, err := k.RequestDraw(ctx, 1, yield)
	if err != nil {
		t.Fatalf("request draw: %v", err)
	}

	draw := k.GetDraw(ctx, drawID)
	if draw == nil {
		t.Fatal("expected draw to be stored")
	}
	if len(draw.Participants) != 5 {
		t.Errorf("expected snapshot of 5 participants, got %d", len(draw.Participants))
	}
	if !draw.PrizeAmount.Equal(math.LegacyMustNewDecFromStr("0.2")) {
		t.Errorf("expected prize 0.2, got %s", draw.PrizeAmount.String())
	}
	if draw.Resolved {
		t.Error("expected a fresh draw to be unresolved")
	}

	// A second draw inside the interval is refused
	if _, err := k.RequestDraw(ctx, 1, yield); err != types.ErrDrawTooSoon {
		t.Errorf("expected ErrDrawTooSoon, got %v", err)
	}

	// Backdating the pool clock lifts the interval
	state := k.GetPoolState(ctx, 1)
	state.LastDrawTimestamp = time.Now().Unix() - k.GetConfig(ctx).DrawInterval - 1
	k.SetPoolState(ctx, state)
	if _, err := k.RequestDraw(ctx, 1, yield); err != nil {
		t.Errorf("expected draw after interval, got %v", err)
	}

	// An inactive lottery refuses all draws
	if err := k.SetActive(ctx, testAuthority, false); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if _, err := k.RequestDraw(ctx, 1, yield); err != types.ErrLotteryNotActive {
		t.Errorf("expected ErrLotteryNotActive, got %v", err)
	}
}

func TestSelectWinner(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	if _, err := k.SelectWinner(ctx, 999); err != types.ErrDrawNotFound {
		t.Errorf("expected ErrDrawNotFound, got %v", err)
	}

	addresses := enrollPool(t, k, ctx, 1, 5)
	drawID, err := k.RequestDraw(ctx, 1, math.LegacyMustNewDecFromStr("2"))
	if err != nil {
		t.Fatalf("request draw: %v", err)
	}

	winner, err := k.SelectWinner(ctx, drawID)
	if err != nil {
		t.Fatalf("select winner: %v", err)
	}
	found := false
	for _, addr := range addresses {
		if addr == winner {
			found = true
		}
	}
	if !found {
		t.Errorf("winner %q is not a participant", winner)
	}

	draw := k.GetDraw(ctx, drawID)
	if !draw.Resolved || draw.Winner != winner {
		t.Errorf("expected draw resolved with winner %q, got %+v", winner, draw)
	}

	// Resolution is final
	if _, err := k.SelectWinner(ctx, drawID); err != types.ErrDrawAlreadyResolved {
		t.Errorf("expected ErrDrawAlreadyResolved, got %v", err)
	}
}

// TestWeightedSelectionSingleDominant keeps the weighted pick honest: a
// participant holding the entire weight always wins
func TestWeightedSelectionSingleDominant(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	addresses := []string{"whale", "a", "b", "c", "d"}
	weights := []math.LegacyDec{
		math.LegacyMustNewDecFromStr("1000000"),
		math.LegacyMustNewDecFromStr("0.000000000000000001"),
		math.LegacyMustNewDecFromStr("0.000000000000000001"),
		math.LegacyMustNewDecFromStr("0.000000000000000001"),
		math.LegacyMustNewDecFromStr("0.000000000000000001"),
	}
	if err := k.AddParticipants(ctx, 1, addresses, weights); err != nil {
		t.Fatalf("add participants: %v", err)
	}

	wins := 0
	for i := 0; i < 10; i++ {
		drawID, err := k.RequestDraw(ctx, 1, math.LegacyOneDec())
		if err != nil {
			t.Fatalf("request draw: %v", err)
		}
		winner, err := k.SelectWinner(ctx, drawID)
		if err != nil {
			t.Fatalf("select winner: %v", err)
		}
		if winner == "whale" {
			wins++
		}

		state := k.GetPoolState(ctx, 1)
		state.LastDrawTimestamp = 0
		k.SetPoolState(ctx, state)
	}
	if wins < 10 {
		t.Errorf("expected the dominant weight to win every draw, won %d of 10", wins)
	}
}

func TestDistributePrize(t *testing.T) {
	k, _, badges, funds, ctx := setupTestKeeper(t)

	if _, err := k.DistributePrize(ctx, 999); err != types.ErrDrawNotFound {
		t.Errorf("expected ErrDrawNotFound, got %v", err)
	}

	enrollPool(t, k, ctx, 1, 5)
	drawID, err := k.RequestDraw(ctx, 1, math.LegacyMustNewDecFromStr("2"))
	if err != nil {
		t.Fatalf("request draw: %v", err)
	}

	// Unresolved draws cannot pay
	if _, err := k.DistributePrize(ctx, drawID); err != types.ErrDrawNotResolved {
		t.Errorf("expected ErrDrawNotResolved, got %v", err)
	}

	winner, err := k.SelectWinner(ctx, drawID)
	if err != nil {
		t.Fatalf("select winner: %v", err)
	}

	k.FundPrizePool(ctx, 1, math.LegacyMustNewDecFromStr("5"))

	payout, err := k.DistributePrize(ctx, drawID)
	if err != nil {
		t.Fatalf("distribute prize: %v", err)
	}
	if !payout.Equal(math.LegacyMustNewDecFromStr("0.2")) {
		t.Errorf("expected payout 0.2, got %s", payout.String())
	}
	if !funds.paid[winner].Equal(payout) {
		t.Errorf("expected %s paid to winner, got %s", payout.String(), funds.paid[winner].String())
	}
	if !k.GetTreasury(ctx).Equal(math.LegacyMustNewDecFromStr("4.8")) {
		t.Errorf("expected treasury 4.8, got %s", k.GetTreasury(ctx).String())
	}
	if len(badges.wins) != 1 || badges.wins[0] != winner {
		t.Errorf("expected one winner badge for %q, got %v", winner, badges.wins)
	}

	// Exactly once
	if _, err := k.DistributePrize(ctx, drawID); err != types.ErrDrawAlreadyResolved {
		t.Errorf("expected ErrDrawAlreadyResolved on second payout, got %v", err)
	}

	// Winner bookkeeping
	record := k.GetParticipantRecord(ctx, winner)
	if record.Wins != 1 || !record.TotalWinnings.Equal(payout) {
		t.Errorf("unexpected winner record: %+v", record)
	}
	stats := k.GetGlobalStats(ctx)
	if stats.TotalDraws != 1 || !stats.TotalPrizesDistributed.Equal(payout) {
		t.Errorf("unexpected global stats: %+v", stats)
	}
}

func TestDistributePrizeTreasuryBound(t *testing.T) {
	k, _, _, funds, ctx := setupTestKeeper(t)

	enrollPool(t, k, ctx, 1, 5)
	drawID, err := k.RequestDraw(ctx, 1, math.LegacyMustNewDecFromStr("2"))
	if err != nil {
		t.Fatalf("request draw: %v", err)
	}
	winner, err := k.SelectWinner(ctx, drawID)
	if err != nil {
		t.Fatalf("select winner: %v", err)
	}

	// The treasury holds less than the promised prize
	k.FundPrizePool(ctx, 1, math.LegacyMustNewDecFromStr("0.05"))

	payout, err := k.DistributePrize(ctx, drawID)
	if err != nil {
		t.Fatalf("distribute prize: %v", err)
	}
	if !payout.Equal(math.LegacyMustNewDecFromStr("0.05")) {
		t.Errorf("expected payout clamped to 0.05, got %s", payout.String())
	}
	if !k.GetTreasury(ctx).IsZero() {
		t.Errorf("expected empty treasury, got %s", k.GetTreasury(ctx).String())
	}
	if !funds.paid[winner].Equal(payout) {
		t.Errorf("expected clamped payout %s paid, got %s", payout.String(), funds.paid[winner].String())
	}

	// The clamp lands on PaidAmount; the resolved snapshot keeps its prize
	draw := k.GetDraw(ctx, drawID)
	if !draw.PrizeAmount.Equal(math.LegacyMustNewDecFromStr("0.2")) {
		t.Errorf("expected snapshot prize 0.2 to survive, got %s", draw.PrizeAmount.String())
	}
	if !draw.PaidAmount.Equal(payout) {
		t.Errorf("expected paid amount %s, got %s", payout.String(), draw.PaidAmount.String())
	}
}

func TestDistributePrizeWithYieldCheck(t *testing.T) {
	k, custody, _, _, ctx := setupTestKeeper(t)

	enrollPool(t, k, ctx, 1, 5)

	// Snapshot a 0.2 prize against a 2.0 yield
	custody.yields[1] = math.LegacyMustNewDecFromStr("2")
	drawID, err := k.RequestDraw(ctx, 1, custody.yields[1])
	if err != nil {
		t.Fatalf("request draw: %v", err)
	}
	if _, err := k.SelectWinner(ctx, drawID); err != nil {
		t.Fatalf("select winner: %v", err)
	}

	// The yield collapsed between snapshot and payout
	custody.yields[1] = math.LegacyMustNewDecFromStr("0.5")
	k.FundPrizePool(ctx, 1, math.LegacyMustNewDecFromStr("5"))

	payout, err := k.DistributePrizeWithYieldCheck(ctx, drawID)
	if err != nil {
		t.Fatalf("distribute with yield check: %v", err)
	}
	if !payout.Equal(math.LegacyMustNewDecFromStr("0.05")) {
		t.Errorf("expected payout clamped to 0.05, got %s", payout.String())
	}

	// The resolved draw's snapshot is not rewritten by the clamp
	draw := k.GetDraw(ctx, drawID)
	if !draw.PrizeAmount.Equal(math.LegacyMustNewDecFromStr("0.2")) {
		t.Errorf("expected snapshot prize 0.2 to survive, got %s", draw.PrizeAmount.String())
	}
	if !draw.PaidAmount.Equal(payout) {
		t.Errorf("expected paid amount %s, got %s", payout.String(), draw.PaidAmount.String())
	}
}

func TestBatchProcessDraws(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	// Empty batch succeeds trivially
	if processed := k.BatchProcessDraws(ctx, nil); processed != 0 {
		t.Errorf("expected 0 processed for empty batch, got %d", processed)
	}

	enrollPool(t, k, ctx, 1, 5)
	drawID, err := k.RequestDraw(ctx, 1, math.LegacyMustNewDecFromStr("2"))
	if err != nil {
		t.Fatalf("request draw: %v", err)
	}
	k.FundPrizePool(ctx, 1, math.LegacyMustNewDecFromStr("5"))

	// Unknown ids are skipped, the real draw runs to payout
	processed := k.BatchProcessDraws(ctx, []uint64{999, drawID, 1000})
	if processed != 1 {
		t.Errorf("expected 1 processed, got %d", processed)
	}

	draw := k.GetDraw(ctx, drawID)
	if !draw.Resolved || !draw.PrizePaid {
		t.Errorf("expected draw resolved and paid, got %+v", draw)
	}
}

func TestFundPrizePool(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	// Non-positive amounts are ignored
	k.FundPrizePool(ctx, 1, math.LegacyZeroDec())
	k.FundPrizePool(ctx, 1, math.LegacyMustNewDecFromStr("-1"))
	if !k.GetTreasury(ctx).IsZero() {
		t.Errorf("expected empty treasury, got %s", k.GetTreasury(ctx).String())
	}

	k.FundPrizePool(ctx, 1, math.LegacyMustNewDecFromStr("0.3"))
	k.FundPrizePool(ctx, 2, math.LegacyMustNewDecFromStr("0.2"))
	if !k.GetTreasury(ctx).Equal(math.LegacyMustNewDecFromStr("0.5")) {
		t.Errorf("expected treasury 0.5, got %s", k.GetTreasury(ctx).String())
	}
	if !k.GetPoolState(ctx, 1).TotalFunded.Equal(math.LegacyMustNewDecFromStr("0.3")) {
		t.Errorf("expected pool 1 funded 0.3, got %s", k.GetPoolState(ctx, 1).TotalFunded.String())
	}
}

func TestEmergencyWithdraw(t *testing.T) {
	k, _, _, funds, ctx := setupTestKeeper(t)

	if _, err := k.EmergencyWithdraw(ctx, testAuthority, math.LegacyOneDec()); err != types.ErrEmptyTreasury {
		t.Errorf("expected ErrEmptyTreasury, got %v", err)
	}

	k.FundPrizePool(ctx, 1, math.LegacyMustNewDecFromStr("3"))

	if _, err := k.EmergencyWithdraw(ctx, "nobody", math.LegacyOneDec()); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	// Requests above the balance are clamped
	withdrawn, err := k.EmergencyWithdraw(ctx, testAuthority, math.LegacyMustNewDecFromStr("10"))
	if err != nil {
		t.Fatalf("emergency withdraw: %v", err)
	}
	if !withdrawn.Equal(math.LegacyMustNewDecFromStr("3")) {
		t.Errorf("expected withdrawal clamped to 3, got %s", withdrawn.String())
	}
	if !k.GetTreasury(ctx).IsZero() {
		t.Errorf("expected empty treasury, got %s", k.GetTreasury(ctx).String())
	}
	if !funds.paid[testAuthority].Equal(withdrawn) {
		t.Errorf("expected %s paid to authority, got %s", withdrawn.String(), funds.paid[testAuthority].String())
	}
}

func TestUpdateConfig(t *testing.T) {
	k, _, _, _, ctx := setupTestKeeper(t)

	bad := types.DefaultLotteryConfig()
	bad.DrawInterval = 0
	if err := k.UpdateConfig(ctx, testAuthority, bad); err != types.ErrInvalidDrawInterval {
		t.Errorf("expected ErrInvalidDrawInterval, got %v", err)
	}

	bad = types.DefaultLotteryConfig()
	bad.PrizePercentage = types.BpsDenominator + 1
	if err := k.UpdateConfig(ctx, testAuthority, bad); err != types.ErrInvalidConfig {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	if err := k.UpdateConfig(ctx, "nobody", types.DefaultLotteryConfig()); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	updated := types.DefaultLotteryConfig()
	updated.PrizePercentage = 2000
	updated.MinPoolSize = 3
	if err := k.UpdateConfig(ctx, testAuthority, updated); err != nil {
		t.Fatalf("update config: %v", err)
	}
	if k.GetMinPoolSize(ctx) != 3 {
		t.Errorf("expected min pool size 3, got %d", k.GetMinPoolSize(ctx))
	}
}

// TestFundPrizePoolMsgCollectsFromFunder ensures treasury credits through
// the message path are always backed by a real collection from the
// funder's account
func TestFundPrizePoolMsgCollectsFromFunder(t *testing.T) {
	k, _, _, funds, ctx := setupTestKeeper(t)
	srv := NewMsgServerImpl(k)

	msg := &types.MsgFundPrizePool{Funder: "funder1", PoolID: 1, Amount: "3"}
	if _, err := srv.FundPrizePool(ctx, msg); err != nil {
		t.Fatalf("fund prize pool: %v", err)
	}
	if !funds.collected["funder1"].Equal(math.LegacyMustNewDecFromStr("3")) {
		t.Errorf("expected 3 collected from funder1, got %s", funds.collected["funder1"].String())
	}
	if !k.GetTreasury(ctx).Equal(math.LegacyMustNewDecFromStr("3")) {
		t.Errorf("expected treasury 3, got %s", k.GetTreasury(ctx).String())
	}

	// A rejected collection leaves the treasury untouched
	funds.failCollect = true
	if _, err := srv.FundPrizePool(ctx, &types.MsgFundPrizePool{Funder: "funder1", PoolID: 1, Amount: "2"}); err == nil {
		t.Fatal("expected an error when the collection fails")
	}
	if !k.GetTreasury(ctx).Equal(math.LegacyMustNewDecFromStr("3")) {
		t.Errorf("expected treasury unchanged at 3, got %s", k.GetTreasury(ctx).String())
	}

	// Non-positive amounts are refused before any transfer
	funds.failCollect = false
	if _, err := srv.FundPrizePool(ctx, &types.MsgFundPrizePool{Funder: "funder1", PoolID: 1, Amount: "0"}); err != types.ErrInvalidFundAmount {
		t.Errorf("expected ErrInvalidFundAmount, got %v", err)
	}
}
