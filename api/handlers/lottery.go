package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Candra0x6/Roca-sub001/api/types"
)

// LotteryHandler handles lottery-related HTTP requests
type LotteryHandler struct {
	service types.LotteryService
}

// NewLotteryHandler creates a new lottery handler
func NewLotteryHandler(service types.LotteryService) *LotteryHandler {
	return &LotteryHandler{service: service}
}

// HandleDraws handles /v1/lottery/draws endpoint (GET for list, POST for request)
func (h *LotteryHandler) HandleDraws(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listDraws(w, r)
	case http.MethodPost:
		h.requestDraw(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	}
}

// HandleDraw handles GET /v1/lottery/draws/{id}
func (h *LotteryHandler) HandleDraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/v1/lottery/draws/")
	drawID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_draw_id", "Draw ID must be a number")
		return
	}

	draw, err := h.service.GetDraw(r.Context(), drawID)
	if err != nil {
		writeError(w, http.StatusNotFound, "draw_not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, draw)
}

// HandleLeaderboard handles GET /v1/lottery/leaderboard
func (h *LotteryHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive number")
			return
		}
		limit = n
	}

	entries, err := h.service.GetLeaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "leaderboard_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": entries,
	})
}

// HandleTreasury handles GET /v1/lottery/treasury
func (h *LotteryHandler) HandleTreasury(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	treasury, err := h.service.GetTreasury(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "treasury_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, treasury)
}

// requestDraw handles POST /v1/lottery/draws
func (h *LotteryHandler) requestDraw(w http.ResponseWriter, r *http.Request) {
	var req types.RequestDrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}
	if req.PoolID == 0 {
		writeError(w, http.StatusBadRequest, "missing_pool_id", "pool_id is required")
		return
	}

	resp, err := h.service.RequestDraw(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "request_draw_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// listDraws handles GET /v1/lottery/draws
func (h *LotteryHandler) listDraws(w http.ResponseWriter, r *http.Request) {
	req := &types.ListDrawsRequest{}
	if s := r.URL.Query().Get("pool_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_pool_id", "pool_id must be a number")
			return
		}
		req.PoolID = id
	}
	if s := r.URL.Query().Get("resolved"); s != "" {
		resolved, err := strconv.ParseBool(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_resolved", "resolved must be true or false")
			return
		}
		req.Resolved = &resolved
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative number")
			return
		}
		req.Limit = n
	}

	resp, err := h.service.ListDraws(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_draws_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
