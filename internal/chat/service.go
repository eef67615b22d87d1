package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"messaging-app-server/internal/models"
)

// Service implements the messaging core: the message creation and edit
// pipeline, unread queries, thread retrieval and access-control checks.
// Every operation runs inside a single request-scoped unit of work; writes
// with more than one effect are wrapped in a transaction.
type Service struct {
	DB *gorm.DB
}

// NewService creates a new chat Service.
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// IsParticipant reports whether the user appears in the conversation's
// participant set.
func (s *Service) IsParticipant(ctx context.Context, userID, conversationID string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Table("conversation_participants").
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// requireParticipant returns ErrPermission when the user is not a participant
// of the conversation, ErrNotFound when the conversation does not exist.
func (s *Service) requireParticipant(ctx context.Context, userID, conversationID string) error {
	var conversation models.Conversation
	if err := s.DB.WithContext(ctx).First(&conversation, "id = ?", conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	ok, err := s.IsParticipant(ctx, userID, conversationID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermission
	}
	return nil
}

// GetMessage loads a message by id.
func (s *Service) GetMessage(ctx context.Context, messageID string) (*models.Message, error) {
	var message models.Message
	if err := s.DB.WithContext(ctx).First(&message, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}
