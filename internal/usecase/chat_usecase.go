package usecase

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/internal/infrastructure/ratelimit"
	"nexusmarket/pkg/errors"
)

const maxMessageLength = 2000

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
	productRepo      repository.ProductRepository
	rateLimiter      *ratelimit.RateLimiter
}

// NewChatUseCase wires the conversation store. A nil rateLimiter disables
// rate limiting.
func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	rateLimiter *ratelimit.RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		productRepo:      productRepo,
		rateLimiter:      rateLimiter,
	}
}

type StartConversationInput struct {
	RecipientID    string
	ProductID      string
	InitialMessage string
}

// ConversationView is a conversation as one participant sees it.
type ConversationView struct {
	*entity.Conversation
	OtherUser   entity.Participant `json:"otherUser"`
	UnreadCount int                `json:"unreadCount"`
}

func NewConversationView(c *entity.Conversation, userID string) *ConversationView {
	other := c.OtherParticipant(userID)
	other.Avatar = other.DisplayAvatar()
	return &ConversationView{
		Conversation: c,
		OtherUser:    other,
		UnreadCount:  c.UnreadCount(userID),
	}
}

func NewConversationViews(conversations []*entity.Conversation, userID string) []*ConversationView {
	views := make([]*ConversationView, 0, len(conversations))
	for _, c := range conversations {
		views = append(views, NewConversationView(c, userID))
	}
	return views
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	conversations, err := uc.conversationRepo.ListByUserID(ctx, userID)
	if err != nil {
		log.Printf("ListConversations Error: Failed to load conversations for %s: %v", userID, err)
		return nil, err
	}
	return conversations, nil
}

// GetConversation returns the conversation if userID takes part in it.
func (uc *ChatUseCase) GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}
	return conversation, nil
}

func (uc *ChatUseCase) StartConversation(ctx context.Context, userID string, input StartConversationInput) (*entity.Conversation, error) {
	if userID == input.RecipientID {
		log.Printf("StartConversation Error: User %s attempted to chat with themselves", userID)
		return nil, errors.BadRequest("You cannot start a conversation with yourself", nil)
	}

	current, err := uc.participant(ctx, userID)
	if err != nil {
		return nil, err
	}

	var product *entity.Product
	if input.ProductID != "" {
		product, err = uc.productRepo.GetByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
	}

	other, err := uc.participant(ctx, input.RecipientID)
	if err != nil {
		if !errors.IsNotFound(err) || product == nil || product.SellerID() != input.RecipientID {
			return nil, errors.NotFound("Recipient", err)
		}
		other = sellerParticipant(product.Seller)
	}

	return uc.start(ctx, current, other, product, input.InitialMessage)
}

// StartConversationForProduct opens (or reopens) the buyer's conversation
// with the product's seller.
func (uc *ChatUseCase) StartConversationForProduct(ctx context.Context, userID, productID, initialMessage string) (*entity.Conversation, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Seller == nil {
		return nil, errors.BadRequest("This product has no seller to contact", nil)
	}

	return uc.StartConversation(ctx, userID, StartConversationInput{
		RecipientID:    product.Seller.ID,
		ProductID:      productID,
		InitialMessage: initialMessage,
	})
}

func (uc *ChatUseCase) start(ctx context.Context, current, other entity.Participant, product *entity.Product, initialMessage string) (*entity.Conversation, error) {
	allowed, wait := uc.rateLimiter.Allow(current.ID, ratelimit.ActionStartConversation)
	if !allowed {
		log.Printf("StartConversation Rate Limited: User %s must wait %v", current.ID, wait)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before starting another conversation", wait)
	}

	var ref *entity.ProductRef
	if product != nil {
		r := product.Ref()
		ref = &r
	}

	id, err := uc.conversationRepo.Start(ctx, current, other, ref)
	if err != nil {
		log.Printf("StartConversation Error: Failed to start conversation %s <-> %s: %v", current.ID, other.ID, err)
		return nil, err
	}

	if strings.TrimSpace(initialMessage) != "" {
		return uc.SendMessage(ctx, current.ID, id, initialMessage)
	}
	return uc.conversationRepo.GetByID(ctx, id)
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, conversationID, text string) (*entity.Conversation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.BadRequest("Message text is required", nil)
	}
	if utf8.RuneCountInString(text) > maxMessageLength {
		return nil, errors.BadRequest("Message is too long", nil)
	}

	allowed, wait := uc.rateLimiter.Allow(userID, ratelimit.ActionSendMessage)
	if !allowed {
		log.Printf("SendMessage Rate Limited: User %s must wait %v", userID, wait)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please slow down", wait)
	}

	if _, err := uc.GetConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	conversation, err := uc.conversationRepo.AppendMessage(ctx, conversationID, userID, text)
	if err != nil {
		log.Printf("SendMessage Error: Failed to append to %s: %v", conversationID, err)
		return nil, err
	}
	return conversation, nil
}

func (uc *ChatUseCase) MarkAsRead(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	if _, err := uc.GetConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return uc.conversationRepo.MarkAsRead(ctx, conversationID, userID)
}

func (uc *ChatUseCase) participant(ctx context.Context, userID string) (entity.Participant, error) {
	account, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return entity.Participant{}, err
	}
	return account.Snapshot(), nil
}

func sellerParticipant(seller *entity.Seller) entity.Participant {
	p := entity.Participant{
		ID:       seller.ID,
		Name:     seller.Name,
		Email:    seller.Email,
		Phone:    seller.Phone,
		Location: seller.Location,
	}
	p.Avatar = entity.AvatarFromName(seller.Name)
	return p
}
