package metrics

import (
	"context"

	"github.com/osse101/HabitQuest_Go/internal/event"
	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.QuestCompleted,
		event.QuestUncompleted,
		event.QuestsReset,
		event.LevelUp,
		event.RewardRevealed,
		event.StateChanged,
		event.RemoteStateChanged,
		event.ProfileCreated,
		event.ProfileDeleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.QuestCompleted, event.QuestUncompleted:
		payload, err := event.DecodePayload[event.QuestPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecode, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		if evt.Type == event.QuestCompleted {
			QuestsCompleted.WithLabelValues(string(payload.Category)).Inc()
		} else {
			QuestsUncompleted.WithLabelValues(string(payload.Category)).Inc()
		}

	case event.LevelUp:
		LevelUps.Inc()

	case event.RewardRevealed:
		payload, err := event.DecodePayload[event.RewardRevealedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecode, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		RewardsRevealed.WithLabelValues(payload.Source, payload.Rarity.String()).Inc()

	case event.QuestsReset:
		payload, err := event.DecodePayload[event.QuestsResetPayloadV1](evt.Payload)
		if err == nil {
			QuestsReset.Add(float64(payload.Count))
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
