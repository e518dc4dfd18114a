package ws

import (
	"encoding/json"
	"log"
	"sync"

	"go-pos-ws/internal/notify"

	"github.com/gofiber/contrib/websocket"
)

// Hub fans notification events out to every connected POS terminal.
// It implements notify.Emitter.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

// envelope is the wire frame for one event.
type envelope struct {
	Type    notify.Kind  `json:"type"`
	Payload notify.Event `json:"payload"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 16),
	}
}

// Emit marshals the event and queues it for broadcast without blocking
// the caller. Delivery is best effort.
func (h *Hub) Emit(event notify.Event) {
	msg, err := json.Marshal(envelope{Type: event.Kind(), Payload: event})
	if err != nil {
		log.Printf("ws: failed to marshal %s event: %v", event.Kind(), err)
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		log.Printf("ws: broadcast queue full, dropping %s event", event.Kind())
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
