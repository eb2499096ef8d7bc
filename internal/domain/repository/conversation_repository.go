package repository

import (
	"context"

	"nexusmarket/internal/domain/entity"
)

// ConversationRepository owns every conversation record on the device. Unknown
// ids yield a NOT_FOUND AppError.
type ConversationRepository interface {
	// ListByUserID returns the user's conversations, most recently updated first.
	ListByUserID(ctx context.Context, userID string) ([]*entity.Conversation, error)
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)

	// Start returns the id of the conversation between current and other
	// (scoped to product when given), creating it on first contact.
	Start(ctx context.Context, current, other entity.Participant, product *entity.ProductRef) (string, error)
	AppendMessage(ctx context.Context, conversationID, senderID, text string) (*entity.Conversation, error)
	MarkAsRead(ctx context.Context, conversationID, readerID string) (*entity.Conversation, error)
}
