package persistence

import "time"

// Adapter defaults
const (
	DefaultDebounce     = 500 * time.Millisecond
	DefaultCacheSize    = 64
	DefaultCacheTTL     = 30 * time.Minute
	DefaultPollInterval = 2 * time.Second
)

// Log messages
const (
	LogMsgDocumentSeeded   = "Seeded progress document"
	LogMsgSaveFailed       = "Failed to save progress document"
	LogMsgPollFailed       = "Failed to poll document changes"
	LogMsgRemoteLoadFailed = "Failed to load remotely changed document"
	LogMsgRemoteApplied    = "Applied remote document change"
	LogMsgEchoSkipped      = "Skipped save of remote snapshot"
	LogMsgSaveAfterDelete  = "Dropped save of deleted document"
)
