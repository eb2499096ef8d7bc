package websocket

import "time"

// Client frames
const (
	MessageTypePing       = "ping"
	MessageTypeFocus      = "focus"
	MessageTypeBlur       = "blur"
	MessageTypeForeground = "foreground"
)

// Server frames
const (
	MessageTypePong          = "pong"
	MessageTypeConversations = "conversations"
	MessageTypeConversation  = "conversation"
	MessageTypeNotification  = "notification"
	MessageTypeError         = "error"
)

// WSMessage is every frame the server writes.
type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func NewMessage(messageType string, data interface{}) WSMessage {
	return WSMessage{
		Type:      messageType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// InboundMessage is every frame a client may send.
type InboundMessage struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id,omitempty"`
	Value          *bool  `json:"value,omitempty"`
}

type ErrorData struct {
	Message string `json:"message"`
}
