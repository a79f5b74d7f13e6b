package server

import "time"

// Route paths served by the ops server
const (
	PathHealthz = "/healthz"
	PathReadyz  = "/readyz"
	PathVersion = "/version"
	PathMetrics = "/metrics"
)

// Health statuses
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Timeouts
const (
	ReadHeaderTimeout = 5 * time.Second
	ReadinessTimeout  = 2 * time.Second
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Ops server starting"
	LogMsgServerStopped    = "Ops server stopped"
	LogMsgRequestCompleted = "Request completed"
	LogMsgReadinessFailed  = "Readiness check failed"
)

// ErrMsgDatabaseUnavailable is reported by the readiness check
const ErrMsgDatabaseUnavailable = "database connection failed"
