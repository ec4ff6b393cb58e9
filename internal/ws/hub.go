package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is a WebSocket message pushed to terminals.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// terminalEvent routes an event to one terminal's room.
type terminalEvent struct {
	TerminalID uuid.UUID
	Event      Event
}

// Hub maintains the set of active clients grouped by terminal. Every cart
// mutation on a terminal is pushed to all screens watching that terminal
// (cashier display, customer-facing display, kitchen monitor).
type Hub struct {
	rooms map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	broadcast chan *terminalEvent

	logger *zap.Logger
	mu     sync.RWMutex
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *terminalEvent, 256),
		logger:     logger,
	}
}

// Run starts the hub's main loop. Call as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.terminalID] == nil {
				h.rooms[client.terminalID] = make(map[*Client]bool)
			}
			h.rooms[client.terminalID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.terminalID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.terminalID)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			clients := h.rooms[event.TerminalID]

			message, err := json.Marshal(event.Event)
			if err != nil {
				h.logger.Error("marshal ws event", zap.Error(err))
				h.mu.Unlock()
				continue
			}

			for client := range clients {
				select {
				case client.send <- message:
				default:
					// Send buffer full, drop the client.
					close(client.send)
					delete(h.rooms[event.TerminalID], client)
					if len(h.rooms[event.TerminalID]) == 0 {
						delete(h.rooms, event.TerminalID)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToTerminal sends an event to all clients watching a terminal.
func (h *Hub) BroadcastToTerminal(terminalID uuid.UUID, event Event) {
	h.broadcast <- &terminalEvent{
		TerminalID: terminalID,
		Event:      event,
	}
}
