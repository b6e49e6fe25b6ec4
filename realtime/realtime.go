package realtime

import (
	"sync"
	"time"

	"github.com/wangyukai585/BioAlgoDB/metrics"
	"github.com/wangyukai585/BioAlgoDB/services"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	sendBuffer   = 32
	writeTimeout = 10 * time.Second
)

// Hub fans catalog changes out to websocket subscribers
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     logrus.FieldLogger
}

type client struct {
	conn *websocket.Conn
	send chan services.Change
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

// Publish never blocks; a subscriber whose buffer is full is disconnected
func (h *Hub) Publish(change services.Change) {
	metrics.CatalogChanges.WithLabelValues(change.Entity, change.Action).Inc()

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- change:
		default:
			h.log.Warn("change feed client too slow, disconnecting")
			h.removeLocked(c)
		}
	}
}

// Serve registers conn and blocks until the peer goes away
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan services.Change, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	metrics.WebsocketClients.Set(float64(len(h.clients)))
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(c)
	}()

	// subscribers only listen; reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
	<-done
	conn.Close()
}

func (h *Hub) writeLoop(c *client) {
	for change := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(change); err != nil {
			h.log.WithError(err).Debug("change feed write failed")
			c.conn.Close()
			// drain so Publish never blocks on this client
			for range c.send {
			}
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.SetReadDeadline(time.Now().Add(writeTimeout))
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	c.close()
	metrics.WebsocketClients.Set(float64(len(h.clients)))
}

// Clients returns the number of connected subscribers
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}
