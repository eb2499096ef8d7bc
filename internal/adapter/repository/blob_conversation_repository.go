package repository

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
	"nexusmarket/pkg/logger"
)

const inquiryPrefix = "Inquiry regarding: "

type blobConversationRepository struct {
	store repository.BlobStore
	now   func() time.Time
	newID func() string
}

func NewBlobConversationRepository(store repository.BlobStore) repository.ConversationRepository {
	return &blobConversationRepository{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

func validConversation(c *entity.Conversation) bool {
	if c.ID == "" || len(c.Participants) != 2 {
		return false
	}
	if c.Messages == nil {
		c.Messages = []entity.Message{}
	}
	return true
}

func decodeConversations(raw []byte) []*entity.Conversation {
	return decodeList(repository.ConversationsKey, raw, validConversation)
}

func (r *blobConversationRepository) load(ctx context.Context) ([]*entity.Conversation, error) {
	raw, err := r.store.Get(ctx, repository.ConversationsKey)
	if err != nil {
		return nil, err
	}
	return decodeConversations(raw), nil
}

// mutate runs fn over the decoded collection inside one atomic update. fn
// reports whether it changed anything; unchanged collections are not written.
func (r *blobConversationRepository) mutate(ctx context.Context, fn func([]*entity.Conversation) ([]*entity.Conversation, bool, error)) error {
	return r.store.Update(ctx, repository.ConversationsKey, func(current []byte) ([]byte, error) {
		conversations, changed, err := fn(decodeConversations(current))
		if err != nil || !changed {
			return nil, err
		}
		return encode(repository.ConversationsKey, conversations)
	})
}

func find(conversations []*entity.Conversation, id string) *entity.Conversation {
	for _, c := range conversations {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (r *blobConversationRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	conversations, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*entity.Conversation, 0)
	for _, c := range conversations {
		if c.HasParticipant(userID) {
			result = append(result, c)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UpdatedAt > result[j].UpdatedAt
	})
	return result, nil
}

func (r *blobConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	conversations, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	conversation := find(conversations, id)
	if conversation == nil {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conversation, nil
}

func (r *blobConversationRepository) Start(ctx context.Context, current, other entity.Participant, product *entity.ProductRef) (string, error) {
	var id string

	err := r.mutate(ctx, func(conversations []*entity.Conversation) ([]*entity.Conversation, bool, error) {
		for _, c := range conversations {
			if !c.IsBetween(current.ID, other.ID) {
				continue
			}
			if product != nil && !product.IsZero() && c.ProductID != product.ProductID {
				continue
			}
			id = c.ID
			return conversations, false, nil
		}

		now := r.now().UnixMilli()
		conversation := &entity.Conversation{
			ID:           r.newID(),
			Participants: []entity.Participant{current, other},
			Messages:     []entity.Message{},
			UpdatedAt:    now,
		}

		if product != nil && !product.IsZero() {
			conversation.ProductRef = *product
			appendMessage(conversation, entity.SystemSenderID, inquiryPrefix+product.ProductName, now)
		}

		id = conversation.ID
		return append(conversations, conversation), true, nil
	})
	if err != nil {
		return "", err
	}

	logger.Debug("ConversationRepository.Start: %s <-> %s resolved to %s", current.ID, other.ID, id)
	return id, nil
}

func (r *blobConversationRepository) AppendMessage(ctx context.Context, conversationID, senderID, text string) (*entity.Conversation, error) {
	var updated *entity.Conversation

	err := r.mutate(ctx, func(conversations []*entity.Conversation) ([]*entity.Conversation, bool, error) {
		conversation := find(conversations, conversationID)
		if conversation == nil {
			return nil, false, errors.NotFound("Conversation", nil)
		}

		appendMessage(conversation, senderID, text, r.now().UnixMilli())
		updated = conversation.Clone()
		return conversations, true, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *blobConversationRepository) MarkAsRead(ctx context.Context, conversationID, readerID string) (*entity.Conversation, error) {
	var result *entity.Conversation

	err := r.mutate(ctx, func(conversations []*entity.Conversation) ([]*entity.Conversation, bool, error) {
		conversation := find(conversations, conversationID)
		if conversation == nil {
			return nil, false, errors.NotFound("Conversation", nil)
		}

		changed := false
		for i := range conversation.Messages {
			msg := &conversation.Messages[i]
			if msg.SenderID != readerID && !msg.IsRead {
				msg.IsRead = true
				changed = true
			}
		}

		if last := conversation.LastMessage; last != nil && last.SenderID != readerID && !last.IsRead {
			last.IsRead = true
			changed = true
		}

		result = conversation.Clone()
		return conversations, changed, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// appendMessage adds an unread message and refreshes the cached last message.
// Timestamps never run backwards within a conversation and ids stay strictly
// increasing even when two messages land in the same millisecond.
func appendMessage(c *entity.Conversation, senderID, text string, nowMs int64) {
	timestamp := nowMs
	next := nowMs
	if n := len(c.Messages); n > 0 {
		last := c.Messages[n-1]
		if last.Timestamp > timestamp {
			timestamp = last.Timestamp
		}
		next = timestamp
		if lastID, err := strconv.ParseInt(last.ID, 10, 64); err == nil && lastID >= next {
			next = lastID + 1
		}
	}

	msg := entity.Message{
		ID:        strconv.FormatInt(next, 10),
		SenderID:  senderID,
		Text:      text,
		Timestamp: timestamp,
	}
	c.Messages = append(c.Messages, msg)

	last := msg
	c.LastMessage = &last
	c.UpdatedAt = timestamp
}
