package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

var (
	ErrValidation  = errors.New("message input invalid")
	ErrNotFound    = errors.New("conversation not found")
	ErrNotMember   = errors.New("not a conversation member")
	ErrSelfEnquiry = errors.New("cannot message own ad")
)

const maxMessageLength = 4000

type ConversationStore interface {
	GetOrCreate(ctx context.Context, adID, buyerID, sellerID uuid.UUID) (model.Conversation, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Conversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) error
}

type MessageStore interface {
	Create(ctx context.Context, msg model.Message) (int64, error)
	ListByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]model.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type AdStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Ad, error)
}

// UnreadBadge is the cheap per-user counter backing the navbar badge. It is
// advisory: Postgres owns the truth and the badge is resynced after reads.
type UnreadBadge interface {
	Increment(ctx context.Context, userID uuid.UUID) error
	Get(ctx context.Context, userID uuid.UUID) (int64, bool, error)
	Set(ctx context.Context, userID uuid.UUID, count int64) error
}

type Service struct {
	conversations ConversationStore
	messages      MessageStore
	ads           AdStore
	badge         UnreadBadge
	pageSize      int
}

func NewService(conversations ConversationStore, messages MessageStore, ads AdStore, badge UnreadBadge, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Service{
		conversations: conversations,
		messages:      messages,
		ads:           ads,
		badge:         badge,
		pageSize:      pageSize,
	}
}

// Start opens (or reuses) the conversation between a buyer and the ad's
// seller and posts the first message.
func (s *Service) Start(ctx context.Context, adID, buyerID uuid.UUID, body string) (model.Conversation, model.Message, error) {
	ad, err := s.ads.GetByID(ctx, adID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAdNotFound) {
			return model.Conversation{}, model.Message{}, ErrNotFound
		}
		return model.Conversation{}, model.Message{}, fmt.Errorf("load ad: %w", err)
	}
	if ad.UserID == buyerID {
		return model.Conversation{}, model.Message{}, ErrSelfEnquiry
	}
	if ad.Status != enums.AdStatusApproved {
		return model.Conversation{}, model.Message{}, ErrValidation
	}

	conv, err := s.conversations.GetOrCreate(ctx, adID, buyerID, ad.UserID)
	if err != nil {
		return model.Conversation{}, model.Message{}, fmt.Errorf("open conversation: %w", err)
	}

	msg, err := s.post(ctx, conv, buyerID, body)
	if err != nil {
		return model.Conversation{}, model.Message{}, err
	}
	return conv, msg, nil
}

func (s *Service) Send(ctx context.Context, conversationID, senderID uuid.UUID, body string) (model.Message, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrConversationNotFound) {
			return model.Message{}, ErrNotFound
		}
		return model.Message{}, fmt.Errorf("load conversation: %w", err)
	}
	if senderID != conv.BuyerID && senderID != conv.SellerID {
		return model.Message{}, ErrNotMember
	}

	return s.post(ctx, conv, senderID, body)
}

func (s *Service) post(ctx context.Context, conv model.Conversation, senderID uuid.UUID, body string) (model.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" || len(body) > maxMessageLength {
		return model.Message{}, ErrValidation
	}

	msg := model.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Body:           body,
	}
	id, err := s.messages.Create(ctx, msg)
	if err != nil {
		return model.Message{}, fmt.Errorf("create message: %w", err)
	}
	msg.ID = id

	if err := s.conversations.Touch(ctx, conv.ID); err != nil {
		return model.Message{}, fmt.Errorf("touch conversation: %w", err)
	}

	if s.badge != nil {
		recipient := conv.BuyerID
		if senderID == conv.BuyerID {
			recipient = conv.SellerID
		}
		_ = s.badge.Increment(ctx, recipient)
	}

	return msg, nil
}

func (s *Service) ListConversations(ctx context.Context, userID uuid.UUID, page int) ([]model.Conversation, error) {
	if page < 1 {
		page = 1
	}
	convs, err := s.conversations.ListByUser(ctx, userID, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convs, nil
}

// Read returns a page of messages and marks the addressed ones read,
// resyncing the unread badge from Postgres.
func (s *Service) Read(ctx context.Context, conversationID, readerID uuid.UUID, page int) ([]model.Message, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrConversationNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if readerID != conv.BuyerID && readerID != conv.SellerID {
		return nil, ErrNotMember
	}

	if page < 1 {
		page = 1
	}
	msgs, err := s.messages.ListByConversation(ctx, conversationID, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	if _, err := s.messages.MarkRead(ctx, conversationID, readerID); err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}

	if s.badge != nil {
		if count, countErr := s.messages.UnreadCount(ctx, readerID); countErr == nil {
			_ = s.badge.Set(ctx, readerID, int64(count))
		}
	}

	return msgs, nil
}

// UnreadCount serves the badge from Redis, falling back to Postgres on a
// miss or error.
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.badge != nil {
		if count, found, err := s.badge.Get(ctx, userID); err == nil && found {
			return count, nil
		}
	}

	count, err := s.messages.UnreadCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	if s.badge != nil {
		_ = s.badge.Set(ctx, userID, int64(count))
	}
	return int64(count), nil
}
