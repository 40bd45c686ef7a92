package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Hub fans events out to the open streams of each profile. A single loop
// owns the stream index; readers take the read lock.
type Hub struct {
	mu      sync.RWMutex
	streams map[string]map[string]*Client // profile id -> client id -> client
	total   int

	events chan Event
	joins  chan *Client
	leaves chan *Client

	joinMu  sync.Mutex // serializes Register against the drain in Stop
	stopped bool

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewHub creates a hub. Call Start before registering clients.
func NewHub() *Hub {
	return &Hub{
		streams: make(map[string]map[string]*Client),
		events:  make(chan Event, BroadcastBufferSize),
		joins:   make(chan *Client, ClientChannelBuffer),
		leaves:  make(chan *Client, ClientChannelBuffer),
		done:    make(chan struct{}),
	}
}

// Start runs the fan-out loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.loop()
}

// Stop ends the loop and closes every client channel, which ends their streams
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.joinMu.Lock()
		h.stopped = true
	drain:
		for {
			select {
			case c := <-h.joins:
				close(c.EventChannel)
			default:
				break drain
			}
		}
		h.joinMu.Unlock()

		h.mu.Lock()
		defer h.mu.Unlock()
		for _, clients := range h.streams {
			for _, c := range clients {
				close(c.EventChannel)
			}
		}
		h.streams = make(map[string]map[string]*Client)
		h.total = 0
	})
}

func (h *Hub) loop() {
	defer h.wg.Done()
	for {
		select {
		case c := <-h.joins:
			h.add(c)
		case c := <-h.leaves:
			h.remove(c)
		case e := <-h.events:
			h.deliver(e)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.streams[c.ProfileID]
	if !ok {
		clients = make(map[string]*Client)
		h.streams[c.ProfileID] = clients
	}
	clients[c.ID] = c
	h.total++
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.streams[c.ProfileID]
	if _, ok := clients[c.ID]; !ok {
		return
	}
	close(c.EventChannel)
	delete(clients, c.ID)
	if len(clients) == 0 {
		delete(h.streams, c.ProfileID)
	}
	h.total--
}

func (h *Hub) deliver(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	send := func(c *Client) {
		if !c.wants(e.Type) {
			return
		}
		// slow clients miss events rather than stall the hub
		select {
		case c.EventChannel <- e:
		default:
		}
	}

	if e.ProfileID != "" {
		for _, c := range h.streams[e.ProfileID] {
			send(c)
		}
		return
	}
	for _, clients := range h.streams {
		for _, c := range clients {
			send(c)
		}
	}
}

// Register opens a stream for profileID. An empty eventTypes receives every
// type. After Stop the returned client's channel is already closed.
func (h *Hub) Register(profileID string, eventTypes []string) *Client {
	c := &Client{
		ID:           uuid.NewString(),
		ProfileID:    profileID,
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		c.EventFilter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			c.EventFilter[t] = true
		}
	}

	h.joinMu.Lock()
	defer h.joinMu.Unlock()
	if h.stopped {
		close(c.EventChannel)
		return c
	}
	select {
	case h.joins <- c:
	case <-h.done:
		close(c.EventChannel)
	}
	return c
}

// Unregister closes the client's stream
func (h *Hub) Unregister(c *Client) {
	select {
	case h.leaves <- c:
	case <-h.done:
	}
}

// Broadcast queues an event for the streams of profileID. An empty
// profileID reaches every stream. Events are dropped while the queue is full.
func (h *Hub) Broadcast(eventType, profileID string, payload interface{}) {
	e := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ProfileID: profileID,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
	select {
	case h.events <- e:
	default:
	}
}

// ClientCount returns the number of open streams
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// ProfileClientCount returns the number of open streams of one profile
func (h *Hub) ProfileClientCount(profileID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams[profileID])
}

// FormatSSEMessage formats an event as "id/event/data" lines
func FormatSSEMessage(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	msg := make([]byte, 0, len(data)+len(e.ID)+len(e.Type)+24)
	if e.ID != "" {
		msg = append(msg, "id: "+e.ID+"\n"...)
	}
	msg = append(msg, "event: "+e.Type+"\n"...)
	msg = append(msg, "data: "...)
	msg = append(msg, data...)
	msg = append(msg, "\n\n"...)
	return msg, nil
}
