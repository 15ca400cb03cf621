package handlers

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"casino-gateway/internal/models"
	"casino-gateway/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler runs the live round feed. Settled rounds are pushed to
// every connected client; balance pushes go only to the player they
// belong to.
type WebSocketHandler struct {
	rounds *services.RoundService
	log    *slog.Logger
	hub    *WebSocketHub
}

// WebSocketHub tracks each connection individually, so a player with two
// tabs open holds two subscriptions and closing one never evicts the other.
type WebSocketHub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
}

type Client struct {
	Principal string
	Conn      *websocket.Conn

	writeMu sync.Mutex
}

// send serializes frames onto the connection; the reader goroutine and the
// hub goroutine both write to it.
func (c *Client) send(msg *Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(msg)
}

type Message struct {
	Type      string `json:"type"`
	Principal string `json:"principal,omitempty"`
	Data      any    `json:"data"`
}

func NewWebSocketHandler(rounds *services.RoundService, log *slog.Logger) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
	}

	go hub.run()

	return &WebSocketHandler{
		rounds: rounds,
		log:    log,
		hub:    hub,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		Principal: principal,
		Conn:      conn,
	}

	h.hub.register <- client

	defer func() {
		h.hub.unregister <- client
		conn.Close()
	}()

	h.sendBalance(c, client)

	for {
		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read error", "error", err)
			}
			break
		}

		h.handleMessage(c, client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(c *gin.Context, client *Client, msg *Message) {
	switch msg.Type {
	case "PING":
		h.sendPong(client)
	case "REFRESH_BALANCE":
		h.sendBalance(c, client)
	}
}

func (h *WebSocketHandler) sendBalance(c *gin.Context, client *Client) {
	profile, err := h.rounds.Profile(c.Request.Context(), client.Principal)
	if err != nil || profile == nil {
		return
	}

	msg := Message{
		Type: "BALANCE_UPDATE",
		Data: gin.H{
			"balance":       profile.Balance,
			"total_wagered": profile.TotalWagered,
			"total_won":     profile.TotalWon,
		},
	}

	client.send(&msg)
}

func (h *WebSocketHandler) sendPong(client *Client) {
	msg := Message{
		Type: "PONG",
		Data: gin.H{
			"timestamp": time.Now().Unix(),
		},
	}

	client.send(&msg)
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.add(client)

		case client := <-hub.unregister:
			hub.remove(client)

		case message := <-hub.broadcast:
			hub.broadcastMessage(message)
		}
	}
}

func (hub *WebSocketHub) add(client *Client)    { hub.clients[client] = true }
func (hub *WebSocketHub) remove(client *Client) { delete(hub.clients, client) }

func (hub *WebSocketHub) broadcastMessage(message *Message) {
	for client := range hub.clients {
		if message.Principal != "" && client.Principal != message.Principal {
			continue
		}
		client.send(message)
	}
}

// BroadcastRoundSettled pushes a settled round to the whole lobby. The
// enqueue is non-blocking so a slow feed never stalls settlement.
func (h *WebSocketHandler) BroadcastRoundSettled(principal string, gameType models.GameType, multiplier float64, winAmount int64, isWin bool) {
	msg := &Message{
		Type: "ROUND_SETTLED",
		Data: gin.H{
			"principal":  principal,
			"game_type":  gameType,
			"multiplier": multiplier,
			"win_amount": winAmount,
			"is_win":     isWin,
			"timestamp":  time.Now().Unix(),
		},
	}

	select {
	case h.hub.broadcast <- msg:
	default:
	}
}
