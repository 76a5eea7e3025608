package services

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"portfolio-simulator/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// QuoteHub fans instrument quotes out to connected WebSocket clients.
// One quote per message, in catalog order.
type QuoteHub struct {
	clients    map[*QuoteClient]bool
	broadcast  chan models.Instrument
	register   chan *QuoteClient
	unregister chan *QuoteClient
	log        *zap.Logger
}

// QuoteClient is one WebSocket subscriber.
type QuoteClient struct {
	hub  *QuoteHub
	conn *websocket.Conn
	send chan []byte
}

func NewQuoteHub(log *zap.Logger) *QuoteHub {
	return &QuoteHub{
		clients:    make(map[*QuoteClient]bool),
		broadcast:  make(chan models.Instrument),
		register:   make(chan *QuoteClient),
		unregister: make(chan *QuoteClient),
		log:        log,
	}
}

func (h *QuoteHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("quote client connected", zap.Int("clients", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Info("quote client disconnected", zap.Int("clients", len(h.clients)))
			}

		case quote := <-h.broadcast:
			message, err := json.Marshal(quote)
			if err != nil {
				h.log.Error("failed to marshal quote", zap.Error(err))
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastQuotes sends each quote to every connected client. Run must
// be started before the first call.
func (h *QuoteHub) BroadcastQuotes(quotes []models.Instrument) {
	for _, quote := range quotes {
		h.broadcast <- quote
	}
}

// RegisterClient attaches a new connection to the hub. The caller starts
// the client's pumps.
func (h *QuoteHub) RegisterClient(conn *websocket.Conn) *QuoteClient {
	client := &QuoteClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client
	return client
}

func (c *QuoteClient) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("quote client read error", zap.Error(err))
			}
			break
		}
	}
}

func (c *QuoteClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
