package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Candra0x6/Roca-sub001/api/types"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	config := DefaultConfig()
	config.DisableRateLimit = true

	server := NewServer(config)
	ts := httptest.NewServer(server.router())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body interface{}, member string) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if member != "" {
		req.Header.Set("X-Member-Address", member)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, out.Bytes()
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestAPI(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/health", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d, want 200", resp.StatusCode)
	}

	var health map[string]interface{}
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", health["status"])
	}
	if health["mode"] != "mock" {
		t.Errorf("mode = %v, want mock", health["mode"])
	}
}

func TestPoolLifecycleHTTP(t *testing.T) {
	ts := newTestAPI(t)

	// Create a small pool
	createReq := &types.CreatePoolRequest{
		Name:               "test circle",
		Creator:            "cosmos1testcreator00000000000000000000000000",
		ContributionAmount: "50",
		MaxMembers:         2,
		Duration:           3600,
		StrategyTag:        "stable",
	}
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/pools", createReq, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", resp.StatusCode, body)
	}

	var created types.CreatePoolResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Pool.Status != "open" {
		t.Errorf("new pool status = %s, want open", created.Pool.Status)
	}
	poolID := created.Pool.PoolID

	// Two joins should fill and lock the pool
	for i := 0; i < 2; i++ {
		joinReq := &types.JoinPoolRequest{
			Member: fmt.Sprintf("cosmos1testmember%030d", i),
			Amount: "50",
		}
		resp, body = doJSON(t, http.MethodPost, fmt.Sprintf("%s/v1/pools/%d/join", ts.URL, poolID), joinReq, joinReq.Member)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("join %d status = %d: %s", i, resp.StatusCode, body)
		}
	}

	var joined types.JoinPoolResponse
	if err := json.Unmarshal(body, &joined); err != nil {
		t.Fatalf("decode join response: %v", err)
	}
	if !joined.Locked {
		t.Error("pool should auto-lock when full")
	}
	if joined.Pool.Status != "active" {
		t.Errorf("pool status after lock = %s, want active", joined.Pool.Status)
	}

	// Joining a locked pool fails
	lateReq := &types.JoinPoolRequest{
		Member: "cosmos1testlate0000000000000000000000000000",
		Amount: "50",
	}
	resp, _ = doJSON(t, http.MethodPost, fmt.Sprintf("%s/v1/pools/%d/join", ts.URL, poolID), lateReq, lateReq.Member)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("join after lock status = %d, want 400", resp.StatusCode)
	}

	// Pool detail reflects the lock
	resp, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/v1/pools/%d", ts.URL, poolID), nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get pool status = %d", resp.StatusCode)
	}
	var pool types.Pool
	if err := json.Unmarshal(body, &pool); err != nil {
		t.Fatalf("decode pool: %v", err)
	}
	if pool.LockedAt == 0 {
		t.Error("locked pool should carry a lock timestamp")
	}
	if pool.TotalFunds != "100" {
		t.Errorf("total funds = %s, want 100", pool.TotalFunds)
	}
}

func TestPoolValidation(t *testing.T) {
	ts := newTestAPI(t)

	testCases := []struct {
		name       string
		req        *types.CreatePoolRequest
		wantStatus int
	}{
		{
			name: "missing name",
			req: &types.CreatePoolRequest{
				Creator:            "cosmos1v00000000000000000000000000000000000",
				ContributionAmount: "10",
				MaxMembers:         5,
				Duration:           3600,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing contribution",
			req: &types.CreatePoolRequest{
				Name:       "x",
				Creator:    "cosmos1v00000000000000000000000000000000000",
				MaxMembers: 5,
				Duration:   3600,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "single member pool",
			req: &types.CreatePoolRequest{
				Name:               "x",
				Creator:            "cosmos1v00000000000000000000000000000000000",
				ContributionAmount: "10",
				MaxMembers:         1,
				Duration:           3600,
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := doJSON(t, http.MethodPost, ts.URL+"/v1/pools", tc.req, "")
			if resp.StatusCode != tc.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}
		})
	}
}

func TestListPoolsFilter(t *testing.T) {
	ts := newTestAPI(t)

	// Seeded data has one open and one active pool
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/v1/pools?status=active", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}

	var list types.ListPoolsResponse
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("active pools = %d, want 1", list.Total)
	}
	if list.Pools[0].Status != "active" {
		t.Errorf("filtered pool status = %s", list.Pools[0].Status)
	}
}

func TestLotteryEndpoints(t *testing.T) {
	ts := newTestAPI(t)

	// Seeded resolved draw
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/v1/lottery/draws/1", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get draw status = %d", resp.StatusCode)
	}
	var draw types.Draw
	if err := json.Unmarshal(body, &draw); err != nil {
		t.Fatalf("decode draw: %v", err)
	}
	if !draw.Resolved || draw.Winner == "" {
		t.Errorf("seeded draw should be resolved with a winner, got %+v", draw)
	}

	// Unknown draw
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/v1/lottery/draws/999", nil, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown draw status = %d, want 404", resp.StatusCode)
	}

	// Request a draw on the seeded active pool (ID 2, five members)
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/v1/lottery/draws", &types.RequestDrawRequest{PoolID: 2}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("request draw status = %d: %s", resp.StatusCode, body)
	}

	// A draw on the open pool is rejected
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/v1/lottery/draws", &types.RequestDrawRequest{PoolID: 1}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("draw on open pool status = %d, want 400", resp.StatusCode)
	}

	// Leaderboard contains the seeded winner
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/v1/lottery/leaderboard", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("leaderboard status = %d", resp.StatusCode)
	}
	var board struct {
		Leaderboard []*types.LeaderboardEntry `json:"leaderboard"`
	}
	if err := json.Unmarshal(body, &board); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if len(board.Leaderboard) != 1 {
		t.Fatalf("leaderboard entries = %d, want 1", len(board.Leaderboard))
	}
	if board.Leaderboard[0].Wins != 1 {
		t.Errorf("seeded winner wins = %d, want 1", board.Leaderboard[0].Wins)
	}

	// Treasury reports a positive balance
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/v1/lottery/treasury", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("treasury status = %d", resp.StatusCode)
	}
	var treasury types.Treasury
	if err := json.Unmarshal(body, &treasury); err != nil {
		t.Fatalf("decode treasury: %v", err)
	}
	if treasury.Balance == "0" || treasury.Balance == "" {
		t.Errorf("treasury balance = %q, want positive", treasury.Balance)
	}
}

func TestWithdrawValidation(t *testing.T) {
	ts := newTestAPI(t)

	// Withdrawing from a pool that is not completed fails
	req := &types.WithdrawShareRequest{Member: "cosmos1mockactive000000000000000000000000002"}
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/v1/pools/2/withdraw", req, req.Member)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("withdraw from active pool status = %d, want 400", resp.StatusCode)
	}

	// Unknown pool
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/v1/pools/999/withdraw", req, req.Member)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("withdraw unknown pool status = %d, want 400", resp.StatusCode)
	}
}
