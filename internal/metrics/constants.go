package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameQuestsCompleted   = "habitquest_quests_completed_total"
	MetricNameQuestsUncompleted = "habitquest_quests_uncompleted_total"
	MetricNameLevelUps          = "habitquest_level_ups_total"
	MetricNameRewardsRevealed   = "habitquest_rewards_revealed_total"
	MetricNameQuestsReset       = "habitquest_quests_reset_total"
	MetricNamePeriodResetRuns   = "habitquest_period_reset_runs_total"
)

// Persistence metric names
const (
	MetricNameDocumentSaves      = "habitquest_document_saves_total"
	MetricNameSavesCoalesced     = "habitquest_saves_coalesced_total"
	MetricNameEchoesSuppressed   = "habitquest_echoes_suppressed_total"
	MetricNameRemoteChanges      = "habitquest_remote_changes_total"
	MetricNameDocumentSaveTiming = "habitquest_document_save_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextQuestsCompleted   = "Quests completed, by category"
	HelpTextQuestsUncompleted = "Quests reverted to open, by category"
	HelpTextLevelUps          = "Level-up reveals"
	HelpTextRewardsRevealed   = "Rewards revealed, by source and rarity"
	HelpTextQuestsReset       = "Quests reopened by the period reset"
	HelpTextPeriodResetRuns   = "Scheduled period reset sweeps, by result"

	HelpTextDocumentSaves      = "Document writes, by result"
	HelpTextSavesCoalesced     = "Save requests merged into a later write by the debounce"
	HelpTextEchoesSuppressed   = "Writes skipped because they echoed a remote snapshot"
	HelpTextRemoteChanges      = "Foreign document changes applied from the store"
	HelpTextDocumentSaveTiming = "Document write latency in seconds"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelCategory = "category"
	LabelSource   = "source"
	LabelRarity   = "rarity"
	LabelResult   = "result"
)

// Label values
const (
	ResultSuccess = "success"
	ResultError   = "error"
	UnknownRoute  = "unmatched"
)

// Log messages
const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
	LogMsgPayloadDecode   = "Failed to decode event payload for metrics"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
