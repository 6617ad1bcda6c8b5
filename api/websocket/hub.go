package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Hub maintains the set of active clients and broadcasts pool and draw events
type Hub struct {
	// Registered clients by channel
	clients  map[*Client]bool
	channels map[string]map[*Client]bool // channel -> clients

	// Inbound messages from clients
	broadcast chan []byte

	// Register/unregister requests
	register   chan *Client
	unregister chan *Client

	// Channel subscription requests
	subscribe   chan *SubscriptionRequest
	unsubscribe chan *SubscriptionRequest

	// Latest leaderboard snapshot, rebroadcast on a timer
	leaderboardBuffer *LeaderboardMessage

	// Mutex for thread-safe operations
	mu sync.RWMutex

	// Configuration
	config *HubConfig
}

// HubConfig contains hub configuration
type HubConfig struct {
	// How often the buffered leaderboard snapshot is pushed to subscribers
	LeaderboardInterval time.Duration

	// Connection limits
	MaxClientsPerIP  int
	MaxSubscriptions int

	// Rate limiting
	MessageRateLimit int // Messages per second per client
}

// DefaultHubConfig returns default hub configuration
func DefaultHubConfig() *HubConfig {
	return &HubConfig{
		LeaderboardInterval: 5 * time.Second,
		MaxClientsPerIP:     10,
		MaxSubscriptions:    50,
		MessageRateLimit:    20,
	}
}

// SubscriptionRequest represents a subscription request
type SubscriptionRequest struct {
	Client  *Client
	Channel string
	Action  string // "subscribe" or "unsubscribe"
}

// NewHub creates a new Hub
func NewHub(config *HubConfig) *Hub {
	if config == nil {
		config = DefaultHubConfig()
	}

	return &Hub{
		clients:     make(map[*Client]bool),
		channels:    make(map[string]map[*Client]bool),
		broadcast:   make(chan []byte, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *SubscriptionRequest, 256),
		unsubscribe: make(chan *SubscriptionRequest, 256),
		config:      config,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	leaderboardTicker := time.NewTicker(h.config.LeaderboardInterval)
	defer leaderboardTicker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case req := <-h.subscribe:
			h.handleSubscription(req)

		case req := <-h.unsubscribe:
			h.handleUnsubscription(req)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-leaderboardTicker.C:
			h.broadcastLeaderboard()
		}
	}
}

// registerClient adds a new client
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
}

// unregisterClient removes a client
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)

		// Remove from all channels
		for channel, clients := range h.channels {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.channels, channel)
			}
		}

		close(client.send)
	}
}

// handleSubscription handles a subscription request
func (h *Hub) handleSubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][client] = true

	// Send subscription confirmation
	confirmation := &WSMessage{
		Type:    "subscribed",
		Channel: channel,
		Data:    nil,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

// handleUnsubscription handles an unsubscription request
func (h *Hub) handleUnsubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if clients, ok := h.channels[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}

	// Send unsubscription confirmation
	confirmation := &WSMessage{
		Type:    "unsubscribed",
		Channel: channel,
		Data:    nil,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

// broadcastMessage sends a message to all clients in a channel
func (h *Hub) broadcastMessage(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Client buffer is full, skip
		}
	}
}

// BroadcastToChannel sends a message to all clients subscribed to a channel
func (h *Hub) BroadcastToChannel(channel string, message interface{}) {
	h.mu.RLock()
	clients, ok := h.channels[channel]
	if !ok {
		h.mu.RUnlock()
		return
	}

	// Make a copy of clients to avoid holding lock during send
	clientList := make([]*Client, 0, len(clients))
	for client := range clients {
		clientList = append(clientList, client)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	for _, client := range clientList {
		select {
		case client.send <- data:
		default:
			// Client buffer is full, skip
		}
	}
}

// ============ Channel-specific broadcasts ============

// UpdateLeaderboard updates the buffered leaderboard snapshot
func (h *Hub) UpdateLeaderboard(board *LeaderboardMessage) {
	h.mu.Lock()
	h.leaderboardBuffer = board
	h.mu.Unlock()
}

// broadcastLeaderboard pushes the buffered leaderboard to subscribers
func (h *Hub) broadcastLeaderboard() {
	h.mu.RLock()
	board := h.leaderboardBuffer
	h.mu.RUnlock()

	if board == nil {
		return
	}

	msg := &WSMessage{
		Type:    "leaderboard",
		Channel: "leaderboard",
		Data:    board,
	}
	h.BroadcastToChannel("leaderboard", msg)
}

// BroadcastPoolEvent broadcasts a pool lifecycle event to the global pools
// channel and the per-pool channel
func (h *Hub) BroadcastPoolEvent(event *PoolEventMessage) {
	msg := &WSMessage{
		Type:    "pool",
		Channel: "pools",
		Data:    event,
	}
	h.BroadcastToChannel("pools", msg)

	poolChannel := "pool:" + strconv.FormatUint(event.PoolID, 10)
	poolMsg := &WSMessage{
		Type:    "pool",
		Channel: poolChannel,
		Data:    event,
	}
	h.BroadcastToChannel(poolChannel, poolMsg)
}

// BroadcastDraw broadcasts a draw event to draw subscribers
func (h *Hub) BroadcastDraw(event *DrawEventMessage) {
	msg := &WSMessage{
		Type:    "draw",
		Channel: "draws",
		Data:    event,
	}
	h.BroadcastToChannel("draws", msg)
}

// BroadcastMemberEvent broadcasts a payout or win notification to a member
func (h *Hub) BroadcastMemberEvent(member string, event *MemberEventMessage) {
	channel := "member:" + member
	msg := &WSMessage{
		Type:    "member",
		Channel: channel,
		Data:    event,
	}
	h.BroadcastToChannel(channel, msg)
}

// GetChannelCount returns the number of active channels
func (h *Hub) GetChannelCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels)
}

// GetChannelClientCount returns the number of clients in a channel
func (h *Hub) GetChannelClientCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.channels[channel]; ok {
		return len(clients)
	}
	return 0
}

// ServeWS handles WebSocket upgrade requests
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = generateID()
	}

	member := r.URL.Query().Get("member")
	ip := getClientIPFromRequest(r)

	client := NewClient(h, conn, clientID, member, ip)

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// Helper function to get client IP
func getClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}

// Generate a simple ID
func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// ============ Message Types ============

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel"`
	Data    interface{} `json:"data,omitempty"`
}

// PoolEventMessage represents a pool lifecycle event
type PoolEventMessage struct {
	PoolID      uint64 `json:"pool_id"`
	Event       string `json:"event"` // "created", "member_joined", "member_left", "locked", "completed"
	Name        string `json:"name"`
	Status      string `json:"status"`
	MemberCount int    `json:"member_count"`
	MaxMembers  uint32 `json:"max_members"`
	TotalFunds  string `json:"total_funds"`
	Timestamp   int64  `json:"timestamp"`
}

// DrawEventMessage represents a lottery draw event
type DrawEventMessage struct {
	DrawID      uint64 `json:"draw_id"`
	PoolID      uint64 `json:"pool_id"`
	Event       string `json:"event"` // "requested", "resolved", "paid"
	Winner      string `json:"winner,omitempty"`
	PrizeAmount string `json:"prize_amount"`
	Timestamp   int64  `json:"timestamp"`
}

// MemberEventMessage represents a member-scoped notification
type MemberEventMessage struct {
	Member    string `json:"member"`
	Event     string `json:"event"` // "payout", "lottery_win", "badge_minted"
	PoolID    uint64 `json:"pool_id,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// LeaderboardMessage represents a leaderboard snapshot
type LeaderboardMessage struct {
	Entries   []LeaderboardRow `json:"entries"`
	Timestamp int64            `json:"timestamp"`
}

// LeaderboardRow represents one leaderboard row
type LeaderboardRow struct {
	Address       string `json:"address"`
	Wins          uint64 `json:"wins"`
	TotalWinnings string `json:"total_winnings"`
}
