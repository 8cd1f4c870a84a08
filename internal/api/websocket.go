package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/SharpAssistant/core/assistant"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
	"github.com/FocuswithJustin/SharpAssistant/internal/server"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxFrameSize   = 1 << 20
	maxHistoryLen  = 40
	answerDeadline = 30 * time.Second
)

// ChatRequest is one inbound WebSocket message.
type ChatRequest struct {
	Message     string `json:"message"`
	Translation string `json:"translation,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

// ChatMessage is one outbound WebSocket message.
type ChatMessage struct {
	Type      string              `json:"type"` // "answer", "error", "notice"
	Answer    *assistant.Response `json:"answer,omitempty"`
	Message   string              `json:"message,omitempty"`
	Timestamp string              `json:"timestamp"`
}

// Client is one WebSocket connection. Each client keeps its own
// conversation history so follow-up questions resolve against the
// turns of this connection only.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	history []assistant.Turn
	userID  string
}

// Hub maintains active WebSocket connections and broadcasts messages.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop to handle client registration and broadcasting.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			logging.WebSocketEvent("client_connected", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			logging.WebSocketEvent("client_disconnected", count)

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client channel full, disconnect
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Notice broadcasts a service notice to all connected clients.
func (h *Hub) Notice(message string) {
	data, err := json.Marshal(ChatMessage{
		Type:      "notice",
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logging.Error("failed to marshal notice", "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logging.Warn("broadcast channel full, dropping notice")
	}
}

// readPump reads chat requests from the connection and answers them.
// One answer is produced per inbound message, in order.
func (c *Client) readPump(a *assistant.Assistant) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error("websocket unexpected close", "error", err)
			}
			break
		}

		var req ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			c.reply(ChatMessage{Type: "error", Message: "Invalid JSON message"})
			continue
		}

		message := server.SanitizeUserInput(req.Message)
		message = server.LimitStringLength(message, maxMessageLength)
		if message == "" {
			c.reply(ChatMessage{Type: "error", Message: "message is required"})
			continue
		}

		c.answer(a, message, req)
	}
}

// answer runs one question through the assistant and appends both
// turns to the connection history.
func (c *Client) answer(a *assistant.Assistant, message string, req ChatRequest) {
	if req.UserID != "" {
		c.userID = req.UserID
	}

	qctx := assistant.Context{
		UserID:  c.userID,
		History: c.history,
	}
	if req.Translation != "" {
		qctx.SelectedTranslation = text.ParseTranslation(req.Translation)
	}

	ctx, cancel := context.WithTimeout(context.Background(), answerDeadline)
	defer cancel()

	resp, err := a.Answer(ctx, message, qctx)
	if err != nil {
		logging.Error("chat answer failed", "error", err)
		c.reply(ChatMessage{Type: "error", Message: "Failed to answer question"})
		return
	}

	c.history = append(c.history,
		assistant.Turn{Role: assistant.RoleUser, Content: message},
		assistant.Turn{
			Role:      assistant.RoleAssistant,
			Content:   resp.Answer,
			Citations: resp.Citations,
			Metadata:  &resp.Metadata,
		})
	if len(c.history) > maxHistoryLen {
		c.history = c.history[len(c.history)-maxHistoryLen:]
	}

	c.reply(ChatMessage{Type: "answer", Answer: resp})
}

// reply queues one message for this client only.
func (c *Client) reply(msg ChatMessage) {
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error("failed to marshal chat message", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		logging.Warn("client send channel full, dropping message")
	}
}

// writePump writes queued messages to the connection and keeps it
// alive with periodic pings.
func (c *Client) writePump() {
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

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush any additional queued messages
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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

// handleChat upgrades the connection and starts the client pumps.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// Non-browser clients send no Origin header.
				return true
			}
			return server.OriginAllowed(s.corsConfig, origin)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump(s.assistant)
}
