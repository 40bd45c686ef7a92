package sse

import (
	"context"

	"github.com/osse101/HabitQuest_Go/internal/event"
	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// StreamedTypes are the bus events forwarded to profile streams
var StreamedTypes = []event.Type{
	event.QuestCompleted,
	event.QuestUncompleted,
	event.QuestsReset,
	event.LevelUp,
	event.RewardRevealed,
	event.StateChanged,
	event.RemoteStateChanged,
	event.ProfileDeleted,
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers the forwarding handler for every streamed type
func (s *Subscriber) Subscribe() {
	names := make([]string, 0, len(StreamedTypes))
	for _, t := range StreamedTypes {
		s.bus.Subscribe(t, s.forward)
		names = append(names, string(t))
	}
	logger.Info(LogMsgSubscribed, "types", names)
}

// forward rebroadcasts evt to the streams of its profile. Events without a
// profile are dropped, streams are always per profile.
func (s *Subscriber) forward(ctx context.Context, evt event.Event) error {
	id := evt.ProfileID()
	if id == "" {
		return nil
	}
	s.hub.Broadcast(string(evt.Type), id, evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type, logger.AttrKeyProfileID, id)
	return nil
}
