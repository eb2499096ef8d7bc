package entity

import (
	"strings"
	"time"
)

// SystemSenderID marks synthetic context messages that no participant wrote.
const SystemSenderID = "system"

// Participant is a snapshot of a user taken when a conversation starts.
// Later profile edits do not reach existing conversations.
type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// DisplayAvatar returns the avatar glyph, falling back to the first letter of
// the name and finally to "?".
func (p Participant) DisplayAvatar() string {
	if p.Avatar != "" {
		return p.Avatar
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(name)[:1]))
}

// UnknownParticipant stands in for a counterpart that cannot be resolved.
var UnknownParticipant = Participant{Name: "Unknown User", Avatar: "?"}

type Message struct {
	ID        string `json:"id"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // ms since epoch
	IsRead    bool   `json:"isRead"`
}

func (m *Message) IsSystem() bool {
	return m.SenderID == SystemSenderID
}

func (m *Message) CreatedAt() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// ProductRef is the product a conversation is about. Both fields are empty
// for a contextless chat.
type ProductRef struct {
	ProductID   string `json:"productId,omitempty"`
	ProductName string `json:"productName,omitempty"`
}

func (p ProductRef) IsZero() bool {
	return p.ProductID == ""
}

type Conversation struct {
	ID           string        `json:"id"`
	Participants []Participant `json:"participants"`
	ProductRef
	Messages    []Message `json:"messages"`
	LastMessage *Message  `json:"lastMessage,omitempty"`
	UpdatedAt   int64     `json:"updatedAt"` // ms since epoch
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// IsBetween reports whether the conversation's pair is {a, b} in either order.
func (c *Conversation) IsBetween(a, b string) bool {
	if len(c.Participants) != 2 {
		return false
	}
	first, second := c.Participants[0].ID, c.Participants[1].ID
	return (first == a && second == b) || (first == b && second == a)
}

// OtherParticipant returns the counterpart of userID, or UnknownParticipant.
func (c *Conversation) OtherParticipant(userID string) Participant {
	for _, p := range c.Participants {
		if p.ID != userID {
			return p
		}
	}
	return UnknownParticipant
}

func (c *Conversation) UnreadCount(userID string) int {
	count := 0
	for i := range c.Messages {
		if c.Messages[i].SenderID != userID && !c.Messages[i].IsRead {
			count++
		}
	}
	return count
}

func (c *Conversation) LastMessageID() string {
	if c.LastMessage == nil {
		return ""
	}
	return c.LastMessage.ID
}

// Clone returns a deep copy so callers can hold snapshots that later store
// mutations cannot reach.
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	out := *c
	out.Participants = make([]Participant, len(c.Participants))
	copy(out.Participants, c.Participants)
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	if c.LastMessage != nil {
		last := *c.LastMessage
		out.LastMessage = &last
	}
	return &out
}
