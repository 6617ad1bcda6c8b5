package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Roca Metrics Collector
// Provides metrics for monitoring pools, draws, yield and the API gateway

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all Roca metrics
type Collector struct {
	// Pool metrics
	PoolsTotal      *prometheus.CounterVec
	PoolsActive     prometheus.Gauge
	PoolsCompleted  prometheus.Gauge
	PoolMembers     *prometheus.HistogramVec
	PoolLockLatency *prometheus.HistogramVec
	TotalValueLocked prometheus.Gauge

	// Contribution metrics
	ContributionsTotal *prometheus.CounterVec
	ContributionValue  *prometheus.CounterVec
	RefundsTotal       *prometheus.CounterVec

	// Withdrawal metrics
	WithdrawalsTotal  *prometheus.CounterVec
	WithdrawalValue   *prometheus.CounterVec
	WithdrawalFailures *prometheus.CounterVec

	// Yield metrics
	YieldAccrued      *prometheus.CounterVec
	StrategyRate      *prometheus.GaugeVec
	StrategyDeposits  *prometheus.GaugeVec

	// Lottery metrics
	DrawsTotal       *prometheus.CounterVec
	DrawLatency      *prometheus.HistogramVec
	PrizesPaid       *prometheus.CounterVec
	PrizeValue       *prometheus.CounterVec
	TreasuryBalance  prometheus.Gauge
	ParticipantCount prometheus.Gauge

	// Badge metrics
	BadgesMinted *prometheus.CounterVec

	// WebSocket metrics
	WSConnectionsActive *prometheus.GaugeVec
	WSMessagesTotal     *prometheus.CounterVec
	WSSubscriptions     *prometheus.GaugeVec

	// API metrics
	APIRequestsTotal  *prometheus.CounterVec
	APIRequestLatency *prometheus.HistogramVec
	APIErrorsTotal    *prometheus.CounterVec
	RateLimitHits     *prometheus.CounterVec

	// System metrics
	ActiveMembers prometheus.Gauge
	BlockHeight   prometheus.Gauge
	BlockTime     *prometheus.HistogramVec
	EndBlockerMs  *prometheus.HistogramVec
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Pool metrics
	c.PoolsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "pools",
			Name:      "total",
			Help:      "Total number of pool lifecycle events",
		},
		[]string{"event", "strategy"},
	)

	c.PoolsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "roca",
			Subsystem: "pools",
			Name:      "active",
			Help:      "Number of active (locked) pools",
		},
	)

	c.PoolsCompleted = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "roca",
			Subsystem: "pools",
			Name:      "completed",
			Help:      "Number of completed pools",
		},
	)

	c.PoolMembers = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roca",
			Subsystem: "pools",
			Name:      "members",
			Help:      "Member count at pool lock",
			Buckets:   []float64{2, 3, 5, 10, 20, 50, 100},
		},
		[]string{"strategy"},
	)

	c.PoolLockLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roca",
			Subsystem: "pools",
			Name:      "lock_latency_ms",
			Help:      "Time to process a pool lock in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"trigger"},
	)

	c.TotalValueLocked = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "roca",
			Subsystem: "pools",
			Name:      "total_value_locked",
			Help:      "Sum of contributions held by active pools",
		},
	)

	// Contribution metrics
	c.ContributionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "contributions",
			Name:      "total",
			Help:      "Total number of contributions",
		},
		[]string{"strategy"},
	)

	c.ContributionValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "contributions",
			Name:      "value",
			Help:      "Total contributed value",
		},
		[]string{"strategy"},
	)

	c.RefundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "contributions",
			Name:      "refunds_total",
			Help:      "Total number of pre-lock refunds",
		},
		[]string{"strategy"},
	)

	// Withdrawal metrics
	c.WithdrawalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "withdrawals",
			Name:      "total",
			Help:      "Total number of share withdrawals",
		},
		[]string{"strategy"},
	)

	c.WithdrawalValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "withdrawals",
			Name:      "value",
			Help:      "Total value paid out to members",
		},
		[]string{"strategy"},
	)

	c.WithdrawalFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "withdrawals",
			Name:      "failures_total",
			Help:      "Total number of failed payout attempts",
		},
		[]string{"strategy"},
	)

	// Yield metrics
	c.YieldAccrued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "yield",
			Name:      "accrued",
			Help:      "Total yield accrued per strategy",
		},
		[]string{"strategy"},
	)

	c.StrategyRate = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "roca",
			Subsystem: "yield",
			Name:      "strategy_rate_bps",
			Help:      "Annual rate per strategy in basis points",
		},
		[]string{"strategy"},
	)

	c.StrategyDeposits = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "roca",
			Subsystem: "yield",
			Name:      "strategy_deposits",
			Help:      "Principal held per strategy",
		},
		[]string{"strategy"},
	)

	// Lottery metrics
	c.DrawsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "lottery",
			Name:      "draws_total",
			Help:      "Total number of draw events",
		},
		[]string{"event"},
	)

	c.DrawLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roca",
			Subsystem: "lottery",
			Name:      "draw_latency_ms",
			Help:      "Time to resolve a draw in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
		},
		[]string{"stage"},
	)

	c.PrizesPaid = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "lottery",
			Name:      "prizes_paid_total",
			Help:      "Total number of prizes paid",
		},
		[]string{"capped"},
	)

	c.PrizeValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "lottery",
			Name:      "prize_value",
			Help:      "Total prize value paid out",
		},
		[]string{"capped"},
	)

	c.TreasuryBalance = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "roca",
			Subsystem: "lottery",
			Name:      "treasury_balance",
			Help:      "Current prize treasury balance",
		},
	)

	c.ParticipantCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "roca",
			Subsystem: "lottery",
			Name:      "participants",
			Help:      "Number of unique lottery participants",
		},
	)

	// Badge metrics
	c.BadgesMinted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "badges",
			Name:      "minted_total",
			Help:      "Total badges minted per kind",
		},
		[]string{"kind"},
	)

	// WebSocket metrics
	c.WSConnectionsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "roca",
			Subsystem: "ws",
			Name:      "connections_active",
			Help:      "Number of active WebSocket connections",
		},
		[]string{"endpoint"},
	)

	c.WSMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "ws",
			Name:      "messages_total",
			Help:      "Total WebSocket messages sent per channel",
		},
		[]string{"channel"},
	)

	c.WSSubscriptions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "roca",
			Subsystem: "ws",
			Name:      "subscriptions",
			Help:      "Number of active subscriptions per channel",
		},
		[]string{"channel"},
	)

	// API metrics
	c.APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total API requests",
		},
		[]string{"method", "path", "status"},
	)

	c.APIRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roca",
			Subsystem: "api",
			Name:      "request_latency_ms",
			Help:      "API request latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"method", "path"},
	)

	c.APIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Total API errors",
		},
		[]string{"path", "status"},
	)

	c.RateLimitHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roca",
			Subsystem: "api",
			Name:      "rate_limit_hits_total",
			Help:      "Total rate limit rejections",
		},
		[]string{"limit_type"},
	)

	// System metrics
	c.ActiveMembers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "roca",
			Subsystem: "system",
			Name:      "active_members",
			Help:      "Number of members in active pools",
		},
	)

	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "roca",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	c.BlockTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roca",
			Subsystem: "system",
			Name:      "block_time_seconds",
			Help:      "Block time in seconds",
			Buckets:   []float64{0.5, 1, 2, 3, 5, 10},
		},
		[]string{"chain_id"},
	)

	c.EndBlockerMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roca",
			Subsystem: "system",
			Name:      "end_blocker_ms",
			Help:      "End blocker phase latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
		},
		[]string{"phase"},
	)

	c.registerAll()

	return c
}

// registerAll registers every metric with the default registry
func (c *Collector) registerAll() {
	// Pool metrics
	prometheus.MustRegister(c.PoolsTotal)
	prometheus.MustRegister(c.PoolsActive)
	prometheus.MustRegister(c.PoolsCompleted)
	prometheus.MustRegister(c.PoolMembers)
	prometheus.MustRegister(c.PoolLockLatency)
	prometheus.MustRegister(c.TotalValueLocked)

	// Contribution metrics
	prometheus.MustRegister(c.ContributionsTotal)
	prometheus.MustRegister(c.ContributionValue)
	prometheus.MustRegister(c.RefundsTotal)

	// Withdrawal metrics
	prometheus.MustRegister(c.WithdrawalsTotal)
	prometheus.MustRegister(c.WithdrawalValue)
	prometheus.MustRegister(c.WithdrawalFailures)

	// Yield metrics
	prometheus.MustRegister(c.YieldAccrued)
	prometheus.MustRegister(c.StrategyRate)
	prometheus.MustRegister(c.StrategyDeposits)

	// Lottery metrics
	prometheus.MustRegister(c.DrawsTotal)
	prometheus.MustRegister(c.DrawLatency)
	prometheus.MustRegister(c.PrizesPaid)
	prometheus.MustRegister(c.PrizeValue)
	prometheus.MustRegister(c.TreasuryBalance)
	prometheus.MustRegister(c.ParticipantCount)

	// Badge metrics
	prometheus.MustRegister(c.BadgesMinted)

	// WebSocket metrics
	prometheus.MustRegister(c.WSConnectionsActive)
	prometheus.MustRegister(c.WSMessagesTotal)
	prometheus.MustRegister(c.WSSubscriptions)

	// API metrics
	prometheus.MustRegister(c.APIRequestsTotal)
	prometheus.MustRegister(c.APIRequestLatency)
	prometheus.MustRegister(c.APIErrorsTotal)
	prometheus.MustRegister(c.RateLimitHits)

	// System metrics
	prometheus.MustRegister(c.ActiveMembers)
	prometheus.MustRegister(c.BlockHeight)
	prometheus.MustRegister(c.BlockTime)
	prometheus.MustRegister(c.EndBlockerMs)
}

// ============ Recording Helpers ============

// RecordPoolEvent records a pool lifecycle event
func (c *Collector) RecordPoolEvent(event, strategy string) {
	c.PoolsTotal.WithLabelValues(event, strategy).Inc()
}

// RecordPoolLock records a pool lock with its member count
func (c *Collector) RecordPoolLock(strategy, trigger string, members int, latencyMs float64) {
	c.PoolsTotal.WithLabelValues("locked", strategy).Inc()
	c.PoolMembers.WithLabelValues(strategy).Observe(float64(members))
	c.PoolLockLatency.WithLabelValues(trigger).Observe(latencyMs)
}

// RecordContribution records a member contribution
func (c *Collector) RecordContribution(strategy string, value float64) {
	c.ContributionsTotal.WithLabelValues(strategy).Inc()
	c.ContributionValue.WithLabelValues(strategy).Add(value)
}

// RecordWithdrawal records a share withdrawal
func (c *Collector) RecordWithdrawal(strategy string, value float64, failed bool) {
	if failed {
		c.WithdrawalFailures.WithLabelValues(strategy).Inc()
		return
	}
	c.WithdrawalsTotal.WithLabelValues(strategy).Inc()
	c.WithdrawalValue.WithLabelValues(strategy).Add(value)
}

// RecordDraw records a lottery draw event
func (c *Collector) RecordDraw(event string, latencyMs float64) {
	c.DrawsTotal.WithLabelValues(event).Inc()
	c.DrawLatency.WithLabelValues(event).Observe(latencyMs)
}

// RecordPrize records a prize payout
func (c *Collector) RecordPrize(value float64, capped bool) {
	label := "false"
	if capped {
		label = "true"
	}
	c.PrizesPaid.WithLabelValues(label).Inc()
	c.PrizeValue.WithLabelValues(label).Add(value)
}

// RecordBadge records a badge mint
func (c *Collector) RecordBadge(kind string) {
	c.BadgesMinted.WithLabelValues(kind).Inc()
}

// RecordAPIRequest records an API request
func (c *Collector) RecordAPIRequest(method, path, status string, latencyMs float64) {
	c.APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.APIRequestLatency.WithLabelValues(method, path).Observe(latencyMs)
}

// RecordRateLimitHit records a rate limit rejection
func (c *Collector) RecordRateLimitHit(limitType string) {
	c.RateLimitHits.WithLabelValues(limitType).Inc()
}

// RecordWSConnection records a WebSocket connection change
func (c *Collector) RecordWSConnection(delta int) {
	c.WSConnectionsActive.WithLabelValues("/ws").Add(float64(delta))
}

// RecordWSMessage records an outbound WebSocket message
func (c *Collector) RecordWSMessage(channel string) {
	c.WSMessagesTotal.WithLabelValues(channel).Inc()
}

// UpdateRegistrySnapshot updates pool registry gauges
func (c *Collector) UpdateRegistrySnapshot(active, completed uint64, tvl float64) {
	c.PoolsActive.Set(float64(active))
	c.PoolsCompleted.Set(float64(completed))
	c.TotalValueLocked.Set(tvl)
}

// UpdateSystemMetrics updates system-level metrics
func (c *Collector) UpdateSystemMetrics(blockHeight int64, activeMembers int) {
	c.BlockHeight.Set(float64(blockHeight))
	c.ActiveMembers.Set(float64(activeMembers))
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
