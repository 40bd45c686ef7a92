package directory

// Log messages
const (
	LogMsgProfileCreated     = "Profile created"
	LogMsgProfileDeleted     = "Profile deleted"
	LogMsgRollbackFailed     = "Failed to restore profile directory"
	LogMsgMalformedDirectory = "Profile directory is malformed, treating as empty"
	LogMsgPublishFailed      = "Failed to publish profile event"
)
