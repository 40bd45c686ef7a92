package sse

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// Source provides the initial snapshot of a profile and relays changes made
// on other devices to the bus while a stream is open
type Source interface {
	Snapshot(ctx context.Context, profileID string) (interface{}, error)
	Watch(ctx context.Context, profileID string) func()
}

// Handler streams the events of one profile. profileID extracts the id from
// the request; reject writes the error response when the snapshot fails.
func Handler(hub *Hub, src Source, profileID func(*http.Request) string, reject func(http.ResponseWriter, *http.Request, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := profileID(r)

		// fail before any stream header is written
		snapshot, err := src.Snapshot(ctx, id)
		if err != nil {
			reject(w, r, err)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		var eventTypes []string
		if filter := r.URL.Query().Get(QueryTypes); filter != "" {
			eventTypes = strings.Split(filter, ",")
		}

		client := hub.Register(id, eventTypes)
		log := logger.FromContext(ctx).With(logger.AttrKeyProfileID, id, "client_id", client.ID)
		log.Info(LogMsgClientConnected, "filters", eventTypes, "profile_clients", hub.ProfileClientCount(id), "total_clients", hub.ClientCount())

		stopWatch := src.Watch(ctx, id)
		defer func() {
			stopWatch()
			hub.Unregister(client)
			log.Info(LogMsgClientDisconnected, "total_clients", hub.ClientCount())
		}()

		write := func(e Event) bool {
			msg, err := FormatSSEMessage(e)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		now := time.Now().Unix()
		if !write(Event{ID: client.ID, Type: EventTypeConnected, ProfileID: id, Timestamp: now,
			Payload: ConnectedPayload{ClientID: client.ID, ProfileID: id, Filters: eventTypes}}) {
			return
		}
		if !write(Event{Type: EventTypeSnapshot, ProfileID: id, Timestamp: now, Payload: snapshot}) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// hub shutting down
					return
				}
				if !write(event) {
					return
				}

			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}
