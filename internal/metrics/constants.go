package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every collector
const Namespace = "freelunch"

// HTTP metric names (ops server)
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Upstream catalog metric names
const (
	MetricNameUpstreamRequests        = "upstream_requests_total"
	MetricNameUpstreamRequestDuration = "upstream_request_duration_seconds"
	MetricNameTokenRefreshes          = "upstream_token_refreshes_total"
)

// Loader metric names
const (
	MetricNameRecordsFlushed = "records_flushed_total"
	MetricNameRecordsSkipped = "records_skipped_total"
	MetricNameFlushDuration  = "flush_duration_seconds"
)

// Pipeline metric names
const (
	MetricNameStepDuration = "step_duration_seconds"
	MetricNameStepFailures = "step_failures_total"
	MetricNameLastSuccess  = "last_success_timestamp_seconds"
)

// Worker metric names
const MetricNameJobsTotal = "jobs_total"

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextUpstreamRequests        = "Upstream catalog requests by endpoint and status"
	HelpTextUpstreamRequestDuration = "Upstream catalog request latency in seconds, retries included"
	HelpTextTokenRefreshes          = "Client-credentials token exchanges"

	HelpTextRecordsFlushed = "Records written by bulk flushes"
	HelpTextRecordsSkipped = "Records not written, by reason"
	HelpTextFlushDuration  = "Bulk flush latency in seconds"

	HelpTextStepDuration = "Ingestion step duration in seconds"
	HelpTextStepFailures = "Ingestion steps that returned an error"
	HelpTextLastSuccess  = "Unix time of the last successful pipeline run"

	HelpTextJobsTotal = "Background jobs by outcome"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelEndpoint = "endpoint"
	LabelKind     = "kind"
	LabelReason   = "reason"
	LabelStep     = "step"
	LabelPipeline = "pipeline"
	LabelJob      = "job"
)

// Job outcomes
const (
	JobStatusOK      = "ok"
	JobStatusFailed  = "failed"
	JobStatusDropped = "dropped"
)

// Skip reasons
const (
	ReasonExists     = "exists"
	ReasonPending    = "pending"
	ReasonUnresolved = "unresolved"
	ReasonMissingRef = "missing_reference"
	ReasonMalformed  = "malformed"
)

// StatusTransportError labels upstream calls that produced no response
const StatusTransportError = "error"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets covers 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// StepDurationBuckets covers 1s to about 2h
var StepDurationBuckets = []float64{1, 5, 15, 30, 60, 300, 900, 1800, 3600, 7200}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgPushFailed = "Failed to push metrics"
	LogMsgPushed     = "Pushed metrics"
)
