package ws

import (
	"log"
	"sync"

	"job-listing/internal/viewer"

	"github.com/google/uuid"
)

type topic struct {
	clients     map[*Client]bool
	unsubscribe func()
}

type publication struct {
	topic   uuid.UUID
	message []byte
}

type directMessage struct {
	client  *Client
	message []byte
}

// Hub fans session changes out to the sockets watching that session. A
// session is subscribed while at least one socket watches it.
type Hub struct {
	topics     map[uuid.UUID]*topic
	broadcast  chan publication
	register   chan *Client
	unregister chan *Client
	closeTopic chan uuid.UUID
	direct     chan directMessage
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		topics:     make(map[uuid.UUID]*topic),
		broadcast:  make(chan publication, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		closeTopic: make(chan uuid.UUID, 128),
		direct:     make(chan directMessage, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.add(client)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case id := <-h.closeTopic:
			h.mutex.RLock()
			t := h.topics[id]
			clients := make([]*Client, 0)
			if t != nil {
				for c := range t.clients {
					clients = append(clients, c)
				}
			}
			h.mutex.RUnlock()
			for _, c := range clients {
				h.remove(c)
			}

		case d := <-h.direct:
			h.mutex.RLock()
			t := h.topics[d.client.topic]
			live := t != nil && t.clients[d.client]
			h.mutex.RUnlock()
			if !live {
				continue
			}
			select {
			case d.client.send <- d.message:
			default:
				h.remove(d.client)
			}

		case p := <-h.broadcast:
			h.mutex.RLock()
			t := h.topics[p.topic]
			clientsSnapshot := make([]*Client, 0)
			if t != nil {
				for c := range t.clients {
					clientsSnapshot = append(clientsSnapshot, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range clientsSnapshot {
				select {
				case client.send <- p.message:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) add(client *Client) {
	h.mutex.Lock()
	t, ok := h.topics[client.topic]
	if !ok {
		t = &topic{clients: make(map[*Client]bool)}
		h.topics[client.topic] = t
	}
	t.clients[client] = true
	total := h.countLocked()
	h.mutex.Unlock()

	// Topics are only mutated from Run, so t is still live here.
	if !ok && client.session != nil {
		id := client.topic
		unsubscribe := client.session.Subscribe(func(s viewer.State) {
			b, err := EncodeView(s)
			if err != nil {
				return
			}
			h.Publish(id, b)
		})
		h.mutex.Lock()
		t.unsubscribe = unsubscribe
		h.mutex.Unlock()
	}

	if client.session != nil {
		if b, err := EncodeView(client.session.State()); err == nil {
			select {
			case client.send <- b:
			default:
			}
		}
	}

	if h.logger != nil {
		h.logger.Printf("[WS] connected session=%s total_clients=%d", client.topic, total)
	}
}

func (h *Hub) remove(client *Client) {
	var unsubscribe func()

	h.mutex.Lock()
	t, ok := h.topics[client.topic]
	if !ok || !t.clients[client] {
		h.mutex.Unlock()
		return
	}
	delete(t.clients, client)
	close(client.send)
	if len(t.clients) == 0 {
		unsubscribe = t.unsubscribe
		delete(h.topics, client.topic)
	}
	total := h.countLocked()
	h.mutex.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if h.logger != nil {
		h.logger.Printf("[WS] disconnected session=%s total_clients=%d", client.topic, total)
	}
}

func (h *Hub) closeAll() {
	h.mutex.RLock()
	all := make([]*Client, 0)
	for _, t := range h.topics {
		for c := range t.clients {
			all = append(all, c)
		}
	}
	h.mutex.RUnlock()
	for _, c := range all {
		h.remove(c)
	}
}

func (h *Hub) countLocked() int {
	n := 0
	for _, t := range h.topics {
		n += len(t.clients)
	}
	return n
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

func (h *Hub) Publish(id uuid.UUID, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- publication{topic: id, message: message}:
	default:
		if h.logger != nil {
			h.logger.Printf("[WS] publish dropped session=%s reason=buffer_full", id)
		}
	}
}

// SendTo queues a frame for a single client.
func (h *Hub) SendTo(client *Client, message []byte) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.direct <- directMessage{client: client, message: message}:
	default:
	}
}

// CloseSession disconnects every socket watching the session.
func (h *Hub) CloseSession(id uuid.UUID) {
	if h == nil {
		return
	}
	h.closeTopic <- id
}

func (h *Hub) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}

func (h *Hub) sessionClientCount(id uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if t, ok := h.topics[id]; ok {
		return len(t.clients)
	}
	return 0
}
