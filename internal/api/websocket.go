package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is already open on the HTTP side
	},
}

// WSConnection maintains the WebSocket connection with one client
type WSConnection struct {
	conn   *websocket.Conn
	send   chan []byte
	mu     sync.Mutex
	server *Server
}

// wsRequest is one advisory request sent over the socket
type wsRequest struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Question string `json:"question"`
	Goal     string `json:"goal"`
	Capacity string `json:"capacity"`
}

// wsResponse wraps an advisory result with its correlation id
type wsResponse struct {
	ID     string      `json:"id"`
	Kind   string      `json:"kind"`
	Result interface{} `json:"result"`
}

// handleWebSocket upgrades the connection and starts the pumps
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	wsConn := &WSConnection{
		conn:   conn,
		send:   make(chan []byte, 256),
		server: s,
	}

	go wsConn.writePump()
	go wsConn.readPump()
}

// readPump pumps messages from the WebSocket connection to the handler
func (c *WSConnection) readPump() {
	defer func() {
		c.conn.Close()
	}()

	c.conn.SetReadLimit(64 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the server to the WebSocket connection
func (c *WSConnection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// The channel was closed
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage runs one advisory request and pushes the result back
func (c *WSConnection) handleMessage(message []byte) {
	var req wsRequest
	if err := json.Unmarshal(message, &req); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		c.sendError(req.ID, "invalid request")
		return
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	go func() {
		ctx := context.Background()

		switch req.Kind {
		case "advice":
			c.sendResult(req, c.server.advisor.GeneralAdvice(ctx, req.Question))
		case "plan":
			c.sendResult(req, c.server.advisor.WeeklyPlan(ctx, req.Goal, req.Capacity))
		default:
			c.sendError(req.ID, "unknown request kind: "+req.Kind)
		}
	}()
}

// sendResult sends an advisory result to the client
func (c *WSConnection) sendResult(req wsRequest, result interface{}) {
	data, err := json.Marshal(wsResponse{ID: req.ID, Kind: req.Kind, Result: result})
	if err != nil {
		log.Printf("Error marshaling result: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping message")
	}
}

// sendError sends an error message to the client
func (c *WSConnection) sendError(id, message string) {
	data, _ := json.Marshal(map[string]string{"id": id, "error": message})

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping error message")
	}
}
