package reward

// Log messages
const (
	LogMsgEmptyPool    = "Reward pool is empty, check catalog configuration"
	LogMsgRewardPicked = "Reward picked"
)
