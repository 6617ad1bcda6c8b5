package keeper

import (
	"cosmossdk.io/math"
	"github.com/google/btree"
	"github.com/huandu/skiplist"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/Candra0x6/Roca-sub001/x/lottery/types"
)

// winningsKeyDesc is a comparator ordering leaderboard keys by cumulative
// winnings, highest first
type winningsKeyDesc struct{}

func (k winningsKeyDesc) Compare(lhs, rhs interface{}) int {
	l := lhs.(math.LegacyDec)
	r := rhs.(math.LegacyDec)
	if l.GT(r) {
		return -1
	}
	if l.LT(r) {
		return 1
	}
	return 0
}

func (k winningsKeyDesc) CalcScore(key interface{}) float64 {
	dec := key.(math.LegacyDec)
	f, _ := dec.Float64()
	return -f // negative for descending
}

// GetLeaderboard returns the top n addresses by cumulative winnings.
// Records with equal winnings collapse onto one skip-list key and are
// returned in store order.
func (k *Keeper) GetLeaderboard(ctx sdk.Context, n int) []types.LeaderboardEntry {
	list := skiplist.New(winningsKeyDesc{})

	for _, record := range k.GetAllParticipantRecords(ctx) {
		if record.Wins == 0 {
			continue
		}
		entry := types.LeaderboardEntry{
			Address:       record.Address,
			TotalWinnings: record.TotalWinnings,
			Wins:          record.Wins,
		}
		if elem := list.Get(record.TotalWinnings); elem != nil {
			list.Set(record.TotalWinnings, append(elem.Value.([]types.LeaderboardEntry), entry))
		} else {
			list.Set(record.TotalWinnings, []types.LeaderboardEntry{entry})
		}
	}

	var board []types.LeaderboardEntry
	for elem := list.Front(); elem != nil && (n <= 0 || len(board) < n); elem = elem.Next() {
		board = append(board, elem.Value.([]types.LeaderboardEntry)...)
	}
	if n > 0 && len(board) > n {
		board = board[:n]
	}
	return board
}

const drawIndexDegree = 32

// drawTimeItem orders draws in a btree by timestamp, then id
type drawTimeItem struct {
	timestamp int64
	draw      *types.LotteryDraw
}

// Less implements btree.Item
func (a *drawTimeItem) Less(b btree.Item) bool {
	o := b.(*drawTimeItem)
	if a.timestamp != o.timestamp {
		return a.timestamp < o.timestamp
	}
	return a.draw.DrawID < o.draw.DrawID
}

// GetDrawsByTimeRange returns draws whose timestamps fall inside
// [from, to]. Zero bounds are open.
func (k *Keeper) GetDrawsByTimeRange(ctx sdk.Context, from, to int64) []*types.LotteryDraw {
	tree := btree.New(drawIndexDegree)
	for _, draw := range k.GetAllDraws(ctx) {
		tree.ReplaceOrInsert(&drawTimeItem{timestamp: draw.Timestamp, draw: draw})
	}

	var draws []*types.LotteryDraw
	tree.AscendGreaterOrEqual(&drawTimeItem{timestamp: from, draw: &types.LotteryDraw{}}, func(item btree.Item) bool {
		it := item.(*drawTimeItem)
		if to > 0 && it.timestamp > to {
			return false
		}
		draws = append(draws, it.draw)
		return true
	})
	return draws
}
