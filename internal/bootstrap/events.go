package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/HabitQuest_Go/internal/event"
	"github.com/osse101/HabitQuest_Go/internal/metrics"
	"github.com/osse101/HabitQuest_Go/internal/sse"
)

// InitializeEventSystem creates the in-process event bus
func InitializeEventSystem() *event.MemoryBus {
	bus := event.NewMemoryBus()
	slog.Info(LogMsgEventSystemInitialized)
	return bus
}

// RegisterEventHandlers attaches the metrics collector and forwards
// game events to the SSE hub
func RegisterEventHandlers(bus event.Bus, hub *sse.Hub) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if hub != nil {
		sse.NewSubscriber(hub, bus).Subscribe()
		slog.Info(LogMsgStreamSubscriberRegistered)
	}
	return nil
}
