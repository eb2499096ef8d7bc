// Package poller keeps a client's view of its conversations current by
// re-reading the conversation store on a fixed interval. It stands in for
// push delivery: every tick re-fetches the list, raises notifications for new
// messages and refreshes the conversation the client has open.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/pkg/logger"
)

const DefaultInterval = time.Second

// ErrPermissionDenied is returned by notifiers that are not allowed to raise
// notifications. The poller treats it like any other notifier failure.
var ErrPermissionDenied = errors.New("notification permission denied")

// Source is the read side of the conversation store as one user sees it.
type Source interface {
	ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error)
	GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error)
	MarkAsRead(ctx context.Context, userID, conversationID string) (*entity.Conversation, error)
}

type Notification struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	SenderID       string `json:"sender_id"`
	SenderName     string `json:"sender_name"`
	ProductName    string `json:"product_name,omitempty"`
	Text           string `json:"text"`
	Timestamp      int64  `json:"timestamp"`
}

// Title is the heading a desktop or terminal notification shows.
func (n Notification) Title() string {
	if n.ProductName != "" {
		return n.SenderName + " (" + n.ProductName + ")"
	}
	return n.SenderName
}

// Notifier delivers notifications on a best-effort basis.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type NotifierFunc func(ctx context.Context, n Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

type Option func(*Poller)

func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// OnConversations is called from the tick goroutine whenever the list
// changed since the previous delivery.
func OnConversations(fn func([]*entity.Conversation)) Option {
	return func(p *Poller) { p.onConversations = fn }
}

// OnActive is called from the tick goroutine whenever the displayed copy of
// the focused conversation is replaced.
func OnActive(fn func(*entity.Conversation)) Option {
	return func(p *Poller) { p.onActive = fn }
}

type Poller struct {
	userID   string
	source   Source
	notifier Notifier
	interval time.Duration

	onConversations func([]*entity.Conversation)
	onActive        func(*entity.Conversation)

	// tickMu serializes ticks and guards the fields below it.
	tickMu        sync.Mutex
	seeded        bool
	lastSeen      map[string]string
	snapshot      Snapshot
	conversations []*entity.Conversation
	active        *entity.Conversation

	// stateMu guards client state changed from outside the tick goroutine.
	stateMu    sync.Mutex
	focusedID  string
	foreground bool
}

func New(userID string, source Source, notifier Notifier, opts ...Option) *Poller {
	p := &Poller{
		userID:     userID,
		source:     source,
		notifier:   notifier,
		interval:   DefaultInterval,
		lastSeen:   make(map[string]string),
		foreground: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Focus marks conversationID as the one the client has open.
func (p *Poller) Focus(conversationID string) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	p.focusedID = conversationID
}

func (p *Poller) Blur() {
	p.Focus("")
}

// SetForeground records whether the client is currently visible to the user.
func (p *Poller) SetForeground(foreground bool) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	p.foreground = foreground
}

func (p *Poller) state() (string, bool) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.focusedID, p.foreground
}

// Conversations returns the list as of the last tick that changed it.
func (p *Poller) Conversations() []*entity.Conversation {
	p.tickMu.Lock()
	defer p.tickMu.Unlock()
	return p.conversations
}

// Active returns the displayed copy of the focused conversation, if any.
func (p *Poller) Active() *entity.Conversation {
	p.tickMu.Lock()
	defer p.tickMu.Unlock()
	return p.active
}

// Run ticks immediately and then on every interval until ctx is done. A
// failed tick is simply retried on the next one.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick performs one reconciliation pass.
func (p *Poller) Tick(ctx context.Context) error {
	p.tickMu.Lock()
	defer p.tickMu.Unlock()

	focusedID, foreground := p.state()

	conversations, err := p.source.ListConversations(ctx, p.userID)
	if err != nil {
		logger.Warn("Poller.Tick: listing conversations for %s failed: %v", p.userID, err)
		return err
	}

	for _, c := range conversations {
		lastID := c.LastMessageID()
		prevID, seen := p.lastSeen[c.ID]
		p.lastSeen[c.ID] = lastID

		// the first pass only learns what is already there
		if !p.seeded || lastID == "" || (seen && prevID == lastID) {
			continue
		}
		if c.LastMessage.SenderID == p.userID || c.LastMessage.IsSystem() {
			continue
		}
		if c.ID == focusedID && foreground {
			continue
		}
		p.notify(ctx, c)
	}
	p.seeded = true

	if changed, next := Reconcile(p.snapshot, conversations); changed {
		p.snapshot = next
		p.conversations = conversations
		if p.onConversations != nil {
			p.onConversations(conversations)
		}
	}

	if focusedID == "" {
		p.active = nil
		return nil
	}
	p.refreshActive(ctx, focusedID, foreground)
	return nil
}

func (p *Poller) notify(ctx context.Context, c *entity.Conversation) {
	if p.notifier == nil {
		return
	}

	msg := c.LastMessage
	sender := c.OtherParticipant(p.userID)
	for _, participant := range c.Participants {
		if participant.ID == msg.SenderID {
			sender = participant
		}
	}

	err := p.notifier.Notify(ctx, Notification{
		ConversationID: c.ID,
		MessageID:      msg.ID,
		SenderID:       msg.SenderID,
		SenderName:     sender.Name,
		ProductName:    c.ProductName,
		Text:           msg.Text,
		Timestamp:      msg.Timestamp,
	})
	if errors.Is(err, ErrPermissionDenied) {
		logger.Debug("Poller.notify: notifications disabled for %s", p.userID)
	} else if err != nil {
		logger.Warn("Poller.notify: dropping notification for %s: %v", c.ID, err)
	}
}

func (p *Poller) refreshActive(ctx context.Context, conversationID string, foreground bool) {
	conversation, err := p.source.GetConversation(ctx, p.userID, conversationID)
	if err != nil {
		logger.Warn("Poller.refreshActive: fetching %s failed: %v", conversationID, err)
		// a copy of some other conversation must not stand in for this one
		if p.active != nil && p.active.ID != conversationID {
			p.active = nil
		}
		return
	}

	replaced := false
	if p.active == nil || p.active.ID != conversation.ID || len(conversation.Messages) > len(p.active.Messages) {
		p.active = conversation
		replaced = true
	}

	if foreground && (replaced || conversation.UnreadCount(p.userID) > 0) {
		read, err := p.source.MarkAsRead(ctx, p.userID, conversationID)
		if err != nil {
			logger.Warn("Poller.refreshActive: marking %s as read failed: %v", conversationID, err)
		} else {
			p.active = read
			replaced = true
		}
	}

	if replaced && p.onActive != nil {
		p.onActive(p.active)
	}
}
