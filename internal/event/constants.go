package event

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Metadata keys
const (
	MetaProfileID = "profile_id"
	MetaSource    = "source"
)

// Reward sources carried by RewardRevealed
const (
	SourceDailyGift = "daily_gift"
	SourceBox       = "box"
	SourceShop      = "shop"
)

// LogMsgHandlerErrorFormat wraps handler failures returned by Publish
const LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
