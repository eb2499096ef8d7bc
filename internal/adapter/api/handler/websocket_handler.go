package handler

import (
	"context"
	"net/http"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/infrastructure/poller"
	ws "nexusmarket/internal/infrastructure/websocket"
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/errors"
	"nexusmarket/pkg/logger"
	"nexusmarket/pkg/response"
)

// WebSocketHandler runs one poller per connected session and streams what it
// observes to the client.
type WebSocketHandler struct {
	wsManager    *ws.Manager
	chatUseCase  *usecase.ChatUseCase
	pollInterval time.Duration
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, chatUseCase *usecase.ChatUseCase, pollInterval time.Duration) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:    wsManager,
		chatUseCase:  chatUseCase,
		pollInterval: pollInterval,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("HandleWebSocket: upgrade for %s failed: %v", userID, err)
		return nil
	}

	client := ws.NewClient(userID, conn)
	if !h.wsManager.Add(client) {
		logger.Warn("HandleWebSocket: server shutting down, rejecting session for %s", userID)
		conn.WriteMessage(gorillaws.CloseMessage, gorillaws.FormatCloseMessage(gorillaws.CloseGoingAway, "server shutting down"))
		conn.Close()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := h.newPoller(userID, client)

	go client.WritePump()
	go p.Run(ctx)
	go func() {
		defer cancel()
		client.ReadPump(h.wsManager, func(msg *ws.InboundMessage) {
			h.handleFrame(ctx, client, p, msg)
		})
	}()

	return nil
}

func (h *WebSocketHandler) newPoller(userID string, client *ws.Client) *poller.Poller {
	return poller.New(userID, h.chatUseCase, client,
		poller.WithInterval(h.pollInterval),
		poller.OnConversations(func(list []*entity.Conversation) {
			send(client, ws.MessageTypeConversations, usecase.NewConversationViews(list, userID))
		}),
		poller.OnActive(func(conversation *entity.Conversation) {
			send(client, ws.MessageTypeConversation, usecase.NewConversationView(conversation, userID))
		}),
	)
}

func (h *WebSocketHandler) handleFrame(ctx context.Context, client *ws.Client, p *poller.Poller, msg *ws.InboundMessage) {
	switch msg.Type {
	case ws.MessageTypePing:
		send(client, ws.MessageTypePong, nil)

	case ws.MessageTypeFocus:
		if msg.ConversationID == "" {
			send(client, ws.MessageTypeError, ws.ErrorData{Message: "conversation_id is required"})
			return
		}
		p.Focus(msg.ConversationID)
		// refresh right away instead of waiting for the next tick
		go p.Tick(ctx)

	case ws.MessageTypeBlur:
		p.Blur()

	case ws.MessageTypeForeground:
		if msg.Value == nil {
			send(client, ws.MessageTypeError, ws.ErrorData{Message: "value is required"})
			return
		}
		p.SetForeground(*msg.Value)

	default:
		send(client, ws.MessageTypeError, ws.ErrorData{Message: "unknown frame type " + msg.Type})
	}
}

func send(client *ws.Client, messageType string, data interface{}) {
	if err := client.SendMessage(messageType, data); err != nil {
		logger.Debug("WebSocketHandler: dropping %s frame for %s: %v", messageType, client.UserID, err)
	}
}
