package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Upstream Metrics
var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameUpstreamRequests,
			Help:      HelpTextUpstreamRequests,
		},
		[]string{LabelEndpoint, LabelStatus},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameUpstreamRequestDuration,
			Help:      HelpTextUpstreamRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelEndpoint},
	)

	TokenRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameTokenRefreshes,
			Help:      HelpTextTokenRefreshes,
		},
	)
)

// Loader Metrics
var (
	RecordsFlushed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRecordsFlushed,
			Help:      HelpTextRecordsFlushed,
		},
		[]string{LabelKind},
	)

	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRecordsSkipped,
			Help:      HelpTextRecordsSkipped,
		},
		[]string{LabelKind, LabelReason},
	)

	FlushDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameFlushDuration,
			Help:      HelpTextFlushDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelKind},
	)
)

// Pipeline Metrics
var (
	StepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameStepDuration,
			Help:      HelpTextStepDuration,
			Buckets:   StepDurationBuckets,
		},
		[]string{LabelPipeline, LabelStep},
	)

	StepFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameStepFailures,
			Help:      HelpTextStepFailures,
		},
		[]string{LabelPipeline, LabelStep},
	)

	LastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameLastSuccess,
			Help:      HelpTextLastSuccess,
		},
		[]string{LabelPipeline},
	)
)

// Worker Metrics
var JobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      MetricNameJobsTotal,
		Help:      HelpTextJobsTotal,
	},
	[]string{LabelJob, LabelStatus},
)
