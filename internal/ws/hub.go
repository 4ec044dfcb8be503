// Package ws implements the realtime layer: a hub of websocket
// clients keyed by user id, so chat messages can be pushed to a
// specific user's open connections.
package ws

// directMessage targets every connection a single user holds.
type directMessage struct {
	userID  string
	payload []byte
}

// Hub tracks connected clients and routes payloads to them. All maps
// are owned by the Run goroutine; other goroutines talk to it through
// channels only.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	direct     chan directMessage
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan directMessage, 64),
		broadcast:  make(chan []byte, 64),
	}
}

// Run loops forever; start it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			conns := h.clients[client.userID]
			if conns == nil {
				conns = make(map[*Client]bool)
				h.clients[client.userID] = conns
			}
			conns[client] = true

		case client := <-h.unregister:
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}

		case msg := <-h.direct:
			conns := h.clients[msg.userID]
			for client := range conns {
				select {
				case client.send <- msg.payload:
				default:
					// Slow consumer: drop the connection, not the hub.
					close(client.send)
					delete(conns, client)
				}
			}
			if len(conns) == 0 {
				delete(h.clients, msg.userID)
			}

		case payload := <-h.broadcast:
			for userID, conns := range h.clients {
				for client := range conns {
					select {
					case client.send <- payload:
					default:
						close(client.send)
						delete(conns, client)
					}
				}
				if len(conns) == 0 {
					delete(h.clients, userID)
				}
			}
		}
	}
}

// SendToUser queues payload for every open connection userID holds.
// Returns false if the queue is full (payload dropped).
func (h *Hub) SendToUser(userID string, payload []byte) bool {
	select {
	case h.direct <- directMessage{userID: userID, payload: payload}:
		return true
	default:
		return false
	}
}

// Broadcast queues payload for every connected client.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	default:
	}
}
