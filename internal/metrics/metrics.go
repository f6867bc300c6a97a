package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Shop Metrics
var (
	ItemsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsPurchased,
			Help: HelpTextItemsPurchased,
		},
		[]string{LabelCategory},
	)

	ItemsEquipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsEquipped,
			Help: HelpTextItemsEquipped,
		},
		[]string{LabelCategory},
	)

	PurchasesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchasesRejected,
			Help: HelpTextPurchasesRejected,
		},
		[]string{LabelReason},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
	)

	RotationsComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRotationsComputed,
			Help: HelpTextRotationsComputed,
		},
	)

	RotationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRotationCacheHits,
			Help: HelpTextRotationCacheHits,
		},
	)
)

// Challenge & Game Metrics
var (
	RewardsClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRewardsClaimed,
			Help: HelpTextRewardsClaimed,
		},
	)

	CoinsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsAwarded,
			Help: HelpTextCoinsAwarded,
		},
	)

	GameSessionsEnded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGameSessionsEnded,
			Help: HelpTextGameSessionsEnded,
		},
	)

	RolloversCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRolloversCompleted,
			Help: HelpTextRolloversCompleted,
		},
	)
)
