package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"`
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// ProfileID returns the profile the event belongs to, if any
func (e Event) ProfileID() string {
	id, _ := e.GetMetadataValue(MetaProfileID).(string)
	return id
}

// Event types
const (
	QuestCompleted     Type = "quest.completed"
	QuestUncompleted   Type = "quest.uncompleted"
	QuestsReset        Type = "quest.period_reset"
	LevelUp            Type = "progression.level_up"
	RewardRevealed     Type = "reward.revealed"
	StateChanged       Type = "state.changed"
	RemoteStateChanged Type = "state.remote_changed"
	ProfileCreated     Type = "profile.created"
	ProfileDeleted     Type = "profile.deleted"
)

// QuestPayloadV1 is the typed payload for quest completion events
type QuestPayloadV1 struct {
	ProfileID string         `json:"profile_id"`
	QuestID   int64          `json:"quest_id"`
	Text      string         `json:"text"`
	Category  domain.StatKey `json:"category"`
	XP        int            `json:"xp"`
	Tokens    int            `json:"tokens"`
	Timestamp int64          `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for level-up reveals
type LevelUpPayloadV1 struct {
	ProfileID string `json:"profile_id"`
	From      int    `json:"from"`
	To        int    `json:"to"`
}

// RewardRevealedPayloadV1 is the typed payload for reward reveals
type RewardRevealedPayloadV1 struct {
	ProfileID string            `json:"profile_id"`
	Source    string            `json:"source"`
	RewardID  string            `json:"reward_id"`
	Text      string            `json:"text"`
	Rarity    domain.Rarity     `json:"rarity"`
	Color     string            `json:"color"`
	Kind      domain.RewardKind `json:"kind"`
	Value     int               `json:"value"`
}

// StatePayloadV1 carries a full state snapshot to subscribers
type StatePayloadV1 struct {
	ProfileID string          `json:"profile_id"`
	Document  domain.Document `json:"document"`
}

// QuestsResetPayloadV1 is the typed payload for period resets
type QuestsResetPayloadV1 struct {
	ProfileID string    `json:"profile_id"`
	Count     int       `json:"count"`
	ResetTime time.Time `json:"reset_time"`
}

// ProfilePayloadV1 is the typed payload for directory changes
type ProfilePayloadV1 struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
}

func profileMeta(profileID string) Metadata {
	return Metadata{MetaProfileID: profileID}
}

// NewQuestEvent creates a quest.completed or quest.uncompleted event
func NewQuestEvent(t Type, profileID string, q domain.Quest) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: QuestPayloadV1{
			ProfileID: profileID,
			QuestID:   q.ID,
			Text:      q.Txt,
			Category:  q.Cat,
			XP:        q.XP,
			Tokens:    q.Tokens,
			Timestamp: time.Now().Unix(),
		},
		Metadata: profileMeta(profileID),
	}
}

// NewLevelUpEvent creates a level-up event
func NewLevelUpEvent(profileID string, from, to int) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     LevelUp,
		Payload:  LevelUpPayloadV1{ProfileID: profileID, From: from, To: to},
		Metadata: profileMeta(profileID),
	}
}

// NewRewardRevealedEvent creates a reward reveal event
func NewRewardRevealedEvent(profileID, source string, r domain.RewardDef) Event {
	meta := profileMeta(profileID)
	meta[MetaSource] = source
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardRevealed,
		Payload: RewardRevealedPayloadV1{
			ProfileID: profileID,
			Source:    source,
			RewardID:  r.ID,
			Text:      r.Text,
			Rarity:    r.Rarity,
			Color:     r.DisplayColor(),
			Kind:      r.Kind,
			Value:     r.Value,
		},
		Metadata: meta,
	}
}

// NewStateEvent creates a state.changed or state.remote_changed event
func NewStateEvent(t Type, profileID string, doc domain.Document) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  StatePayloadV1{ProfileID: profileID, Document: doc},
		Metadata: profileMeta(profileID),
	}
}

// NewQuestsResetEvent creates a period reset event
func NewQuestsResetEvent(profileID string, count int, at time.Time) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     QuestsReset,
		Payload:  QuestsResetPayloadV1{ProfileID: profileID, Count: count, ResetTime: at},
		Metadata: profileMeta(profileID),
	}
}

// NewProfileEvent creates a profile.created or profile.deleted event
func NewProfileEvent(t Type, profileID, name string) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  ProfilePayloadV1{ProfileID: profileID, Name: name},
		Metadata: profileMeta(profileID),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every handler subscribed to the event type, synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
