package game

// Log messages
const (
	LogMsgPublishFailed   = "Failed to publish game event"
	LogMsgSaveFailed      = "Failed to schedule progress save"
	LogMsgPeriodReset     = "Reopened periodic quests"
	LogMsgResetAllProfile = "Periodic reset failed for profile"
)
