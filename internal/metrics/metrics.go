package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "venue_next"

var (
	// HTTP 指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// 报价指标
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_quotes_total",
			Help:      "Total number of price quotes by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	QuoteAppliedRules = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pricing_quote_applied_rules",
			Help:      "Number of rules applied per quote",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)

	QuoteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pricing_quote_duration_seconds",
			Help:      "Price quote duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// 规则快照缓存指标
	RuleCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_rule_cache_hit_total",
			Help:      "Total number of rule snapshot cache hits",
		},
	)

	RuleCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_rule_cache_miss_total",
			Help:      "Total number of rule snapshot cache misses",
		},
	)

	// 规则状态流转指标
	RuleStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_rule_status_transitions_total",
			Help:      "Total number of venues touched by automatic rule status transitions",
		},
		[]string{"to"},
	)

	// 规则管理写操作
	RuleWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_rule_writes_total",
			Help:      "Total number of pricing rule admin writes",
		},
		[]string{"operation"},
	)
)

// 报价来源
const (
	QuoteSourcePublic  = "public"
	QuoteSourcePreview = "preview"
)

// 报价结果
const (
	QuoteOutcomeOK    = "ok"
	QuoteOutcomeError = "error"
)

// RecordHTTPRequest 记录 HTTP 请求
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordQuote 记录一次报价
func RecordQuote(source string, err error, appliedRules int, duration time.Duration) {
	outcome := QuoteOutcomeOK
	if err != nil {
		outcome = QuoteOutcomeError
	}
	QuotesTotal.WithLabelValues(source, outcome).Inc()
	if err == nil {
		QuoteAppliedRules.Observe(float64(appliedRules))
	}
	QuoteDuration.Observe(duration.Seconds())
}

// RecordRuleCache 记录规则快照缓存命中情况
func RecordRuleCache(hit bool) {
	if hit {
		RuleCacheHits.Inc()
		return
	}
	RuleCacheMisses.Inc()
}

// RecordRuleStatusTransition 记录自动状态流转涉及的场馆数
func RecordRuleStatusTransition(to string, venues int) {
	if venues <= 0 {
		return
	}
	RuleStatusTransitions.WithLabelValues(to).Add(float64(venues))
}

// RecordRuleWrite 记录规则写操作
func RecordRuleWrite(operation string) {
	RuleWrites.WithLabelValues(operation).Inc()
}
