package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Candra0x6/Roca-sub001/api/types"
)

// PoolHandler handles pool-related HTTP requests
type PoolHandler struct {
	service types.PoolService
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(service types.PoolService) *PoolHandler {
	return &PoolHandler{service: service}
}

// HandlePools handles /v1/pools endpoint (GET for list, POST for create)
func (h *PoolHandler) HandlePools(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listPools(w, r)
	case http.MethodPost:
		h.createPool(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	}
}

// HandlePool handles /v1/pools/{id} and /v1/pools/{id}/{action} endpoints
func (h *PoolHandler) HandlePool(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/pools/")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing_pool_id", "Pool ID is required")
		return
	}

	parts := strings.SplitN(path, "/", 2)
	poolID, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_pool_id", "Pool ID must be a number")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getPool(w, r, poolID)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		}
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	switch parts[1] {
	case "join":
		h.joinPool(w, r, poolID)
	case "leave":
		h.leavePool(w, r, poolID)
	case "lock":
		h.lockPool(w, r, poolID)
	case "withdraw":
		h.withdrawShare(w, r, poolID)
	default:
		writeError(w, http.StatusNotFound, "unknown_action", "Unknown pool action")
	}
}

// HandleStats handles GET /v1/pools/stats
func (h *PoolHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// createPool handles POST /v1/pools
func (h *PoolHandler) createPool(w http.ResponseWriter, r *http.Request) {
	var req types.CreatePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing_name", "name is required")
		return
	}
	if req.ContributionAmount == "" {
		writeError(w, http.StatusBadRequest, "missing_contribution", "contribution_amount is required")
		return
	}
	if req.MaxMembers == 0 {
		writeError(w, http.StatusBadRequest, "missing_max_members", "max_members is required")
		return
	}
	if req.Duration == 0 {
		writeError(w, http.StatusBadRequest, "missing_duration", "duration is required")
		return
	}
	if req.Creator == "" {
		req.Creator = r.Header.Get("X-Member-Address")
	}
	if req.Creator == "" {
		writeError(w, http.StatusBadRequest, "missing_creator", "creator address is required")
		return
	}

	resp, err := h.service.CreatePool(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "create_pool_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// listPools handles GET /v1/pools
func (h *PoolHandler) listPools(w http.ResponseWriter, r *http.Request) {
	req := &types.ListPoolsRequest{
		Status:  r.URL.Query().Get("status"),
		Creator: r.URL.Query().Get("creator"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative number")
			return
		}
		req.Limit = n
	}

	resp, err := h.service.ListPools(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_pools_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// getPool handles GET /v1/pools/{id}
func (h *PoolHandler) getPool(w http.ResponseWriter, r *http.Request, poolID uint64) {
	pool, err := h.service.GetPool(r.Context(), poolID)
	if err != nil {
		writeError(w, http.StatusNotFound, "pool_not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pool)
}

// joinPool handles POST /v1/pools/{id}/join
func (h *PoolHandler) joinPool(w http.ResponseWriter, r *http.Request, poolID uint64) {
	var req types.JoinPoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}
	req.PoolID = poolID
	if req.Member == "" {
		req.Member = r.Header.Get("X-Member-Address")
	}
	if req.Member == "" {
		writeError(w, http.StatusBadRequest, "missing_member", "member address is required")
		return
	}
	if req.Amount == "" {
		writeError(w, http.StatusBadRequest, "missing_amount", "amount is required")
		return
	}

	resp, err := h.service.JoinPool(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "join_pool_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// leavePool handles POST /v1/pools/{id}/leave
func (h *PoolHandler) leavePool(w http.ResponseWriter, r *http.Request, poolID uint64) {
	var req types.LeavePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}
	req.PoolID = poolID
	if req.Member == "" {
		req.Member = r.Header.Get("X-Member-Address")
	}
	if req.Member == "" {
		writeError(w, http.StatusBadRequest, "missing_member", "member address is required")
		return
	}

	pool, err := h.service.LeavePool(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "leave_pool_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pool)
}

// lockPool handles POST /v1/pools/{id}/lock
func (h *PoolHandler) lockPool(w http.ResponseWriter, r *http.Request, poolID uint64) {
	creator := r.Header.Get("X-Member-Address")
	if creator == "" {
		var body struct {
			Creator string `json:"creator"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			creator = body.Creator
		}
	}
	if creator == "" {
		writeError(w, http.StatusBadRequest, "missing_creator", "creator address is required")
		return
	}

	pool, err := h.service.LockPool(r.Context(), poolID, creator)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lock_pool_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pool)
}

// withdrawShare handles POST /v1/pools/{id}/withdraw
func (h *PoolHandler) withdrawShare(w http.ResponseWriter, r *http.Request, poolID uint64) {
	var req types.WithdrawShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}
	req.PoolID = poolID
	if req.Member == "" {
		req.Member = r.Header.Get("X-Member-Address")
	}
	if req.Member == "" {
		writeError(w, http.StatusBadRequest, "missing_member", "member address is required")
		return
	}

	resp, err := h.service.WithdrawShare(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "withdraw_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Helper functions shared by handlers in this package

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}
