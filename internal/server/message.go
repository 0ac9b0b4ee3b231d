package server

import (
	"encoding/json"
	"time"

	"github.com/lox/bubblejar/internal/session"
)

// MessageType identifies a websocket message
type MessageType string

// Client → Server
const (
	MessageTypeNewGame  MessageType = "new_game"
	MessageTypeSelect   MessageType = "select"
	MessageTypeGetState MessageType = "get_state"
)

// Server → Client
const (
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// Error codes
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeUnknownType    = "unknown_type"
	ErrCodeInvalidJar     = "invalid_jar"
)

// Request is a message sent by the client
type Request struct {
	Type MessageType `json:"type"`
	Jar  *int        `json:"jar,omitempty"`
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// StateData is the payload of a state message. Outcome and Reason describe
// the selection that produced it, if any.
type StateData struct {
	session.Snapshot
	Outcome string `json:"outcome,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// ErrorData is the payload of an error message
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
