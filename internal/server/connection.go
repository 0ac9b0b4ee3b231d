package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/bubblejar/internal/session"
	"github.com/lox/bubblejar/jar"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024
)

var ErrConnectionClosed = errors.New("connection closed")

// Connection is one client and the session it plays. The session is only
// touched from the read pump.
type Connection struct {
	conn      *websocket.Conn
	session   *session.Session
	send      chan *Message
	logger    *log.Logger
	clock     quartz.Clock
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, s *session.Session, logger *log.Logger, clock quartz.Clock) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		session: s,
		send:    make(chan *Message, 16),
		logger:  logger.WithPrefix("conn").With("session", s.ID()),
		clock:   clock,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins handling the connection and sends the initial state
func (c *Connection) Start() {
	c.sendState(session.Result{})
	go c.writePump()
	go c.readPump()
}

// Done is closed when the connection ends
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// SessionID returns the ID of the connection's session
func (c *Connection) SessionID() string {
	return c.session.ID()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			c.sendError(ErrCodeInvalidMessage, "Failed to parse message")
			continue
		}
		c.handleRequest(&req)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// handleRequest applies one client request to the session
func (c *Connection) handleRequest(req *Request) {
	c.logger.Debug("Received message", "type", req.Type)

	switch req.Type {
	case MessageTypeNewGame:
		c.session.NewGame()
		c.sendState(session.Result{})

	case MessageTypeSelect:
		if req.Jar == nil {
			c.sendError(ErrCodeInvalidMessage, "select requires a jar index")
			return
		}
		res, err := c.session.Select(*req.Jar)
		if errors.Is(err, session.ErrInvalidJar) {
			c.sendError(ErrCodeInvalidJar, err.Error())
			return
		}
		c.sendState(res)

	case MessageTypeGetState:
		c.sendState(session.Result{})

	default:
		c.sendError(ErrCodeUnknownType, fmt.Sprintf("Unknown message type: %s", req.Type))
	}
}

func (c *Connection) sendState(res session.Result) {
	data := StateData{Snapshot: c.session.Snapshot()}
	if res != (session.Result{}) {
		data.Outcome = res.Outcome.String()
		if res.Reject != jar.RejectNone {
			data.Reason = res.Reject.String()
		}
	}
	c.sendMessage(MessageTypeState, data)
}

func (c *Connection) sendError(code, message string) {
	c.sendMessage(MessageTypeError, ErrorData{Code: code, Message: message})
}

func (c *Connection) sendMessage(t MessageType, data any) {
	msg, err := NewMessage(t, data, c.clock.Now())
	if err != nil {
		c.logger.Error("Failed to create message", "type", t, "error", err)
		return
	}
	if err := c.SendMessage(msg); err != nil {
		c.logger.Debug("Dropped message", "type", t, "error", err)
	}
}
