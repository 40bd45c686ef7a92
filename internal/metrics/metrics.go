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

// Game Metrics
var (
	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsCompleted,
			Help: HelpTextQuestsCompleted,
		},
		[]string{LabelCategory},
	)

	QuestsUncompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsUncompleted,
			Help: HelpTextQuestsUncompleted,
		},
		[]string{LabelCategory},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	RewardsRevealed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsRevealed,
			Help: HelpTextRewardsRevealed,
		},
		[]string{LabelSource, LabelRarity},
	)

	QuestsReset = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameQuestsReset,
			Help: HelpTextQuestsReset,
		},
	)

	PeriodResetRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePeriodResetRuns,
			Help: HelpTextPeriodResetRuns,
		},
		[]string{LabelResult},
	)
)

// Persistence Metrics
var (
	DocumentSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDocumentSaves,
			Help: HelpTextDocumentSaves,
		},
		[]string{LabelResult},
	)

	SavesCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSavesCoalesced,
			Help: HelpTextSavesCoalesced,
		},
	)

	EchoesSuppressed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEchoesSuppressed,
			Help: HelpTextEchoesSuppressed,
		},
	)

	RemoteChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRemoteChanges,
			Help: HelpTextRemoteChanges,
		},
	)

	DocumentSaveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameDocumentSaveTiming,
			Help:    HelpTextDocumentSaveTiming,
			Buckets: HTTPLatencyBuckets,
		},
	)
)
