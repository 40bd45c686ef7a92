package sse

// Event is one message on a profile stream
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	ProfileID string      `json:"profileId,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is one open stream. It only receives events of its profile.
type Client struct {
	ID           string
	ProfileID    string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means every type
}

func (c *Client) wants(eventType string) bool {
	return c.EventFilter == nil || c.EventFilter[eventType]
}

// ConnectedPayload is the first message of every stream
type ConnectedPayload struct {
	ClientID  string   `json:"clientId"`
	ProfileID string   `json:"profileId"`
	Filters   []string `json:"filters,omitempty"`
}
