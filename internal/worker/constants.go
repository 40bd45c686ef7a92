package worker

import "time"

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for period reset worker operations
const (
	LogMsgPeriodResetScheduled = "Period reset scheduled"
	LogMsgPeriodResetStarting  = "Period reset starting"
	LogMsgPeriodResetCompleted = "Period reset completed"
	LogMsgPeriodResetFailed    = "Period reset failed"
	LogMsgPeriodResetSkipped   = "Period reset already queued, skipping tick"
	LogMsgPeriodResetStopping  = "Shutting down period reset worker"
	LogMsgPeriodResetStopped   = "Period reset worker shutdown complete"
	LogMsgPeriodResetTimeout   = "Period reset worker shutdown timeout"
)

// DefaultResetTimeout bounds a single sweep over every profile
const DefaultResetTimeout = 2 * time.Minute

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
