package worker

// Error messages
const (
	ErrMsgPoolStopped = "worker pool stopped"
	ErrMsgQueueFull   = "worker queue full"
)

// Log messages
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerJobDone     = "Worker job done"
	LogMsgWorkerStopTimeout = "Timed out waiting for workers to stop"
)
