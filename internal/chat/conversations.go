package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"messaging-app-server/internal/models"
)

// CreateConversation creates a conversation with the given participants.
// The creator is always added to the participant set, mirroring how the
// boundary layer adds the requesting user.
func (s *Service) CreateConversation(ctx context.Context, creatorID string, participantIDs []string) (*models.Conversation, error) {
	ids := map[string]bool{creatorID: true}
	for _, id := range participantIDs {
		ids[id] = true
	}

	var participants []models.User
	idList := make([]string, 0, len(ids))
	for id := range ids {
		idList = append(idList, id)
	}
	if err := s.DB.WithContext(ctx).Where("id IN ?", idList).Find(&participants).Error; err != nil {
		return nil, err
	}
	if len(participants) != len(idList) {
		return nil, ErrNotFound
	}

	conversation := models.Conversation{Participants: participants}
	if err := s.DB.WithContext(ctx).Create(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// GetConversation loads a conversation with its participants. The caller
// must be a participant.
func (s *Service) GetConversation(ctx context.Context, conversationID, callerID string) (*models.Conversation, error) {
	if err := s.requireParticipant(ctx, callerID, conversationID); err != nil {
		return nil, err
	}

	var conversation models.Conversation
	err := s.DB.WithContext(ctx).
		Preload("Participants").
		First(&conversation, "id = ?", conversationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// ListConversations returns the conversations the user participates in,
// most recently updated first, together with the total count for pagination.
func (s *Service) ListConversations(ctx context.Context, userID string, offset, limit int) ([]models.Conversation, int64, error) {
	var total int64
	err := s.DB.WithContext(ctx).
		Model(&models.Conversation{}).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var conversations []models.Conversation
	err = s.DB.WithContext(ctx).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Preload("Participants").
		Order("conversations.updated_at desc").
		Offset(offset).Limit(limit).
		Find(&conversations).Error
	if err != nil {
		return nil, 0, err
	}
	return conversations, total, nil
}

// AddParticipant adds a user to the conversation's participant set. The
// caller must already be a participant. Adding an existing participant is a
// no-op.
func (s *Service) AddParticipant(ctx context.Context, conversationID, callerID, userID string) error {
	if err := s.requireParticipant(ctx, callerID, conversationID); err != nil {
		return err
	}

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	conversation := models.Conversation{BaseModel: models.BaseModel{ID: conversationID}}
	return s.DB.WithContext(ctx).Model(&conversation).Association("Participants").Append(&user)
}

// DeleteConversation removes a conversation and everything it owns: its
// messages, their history rows and notifications, and the participant links.
// The caller must be a participant.
func (s *Service) DeleteConversation(ctx context.Context, conversationID, callerID string) error {
	if err := s.requireParticipant(ctx, callerID, conversationID); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var messageIDs []string
		if err := tx.Model(&models.Message{}).
			Where("conversation_id = ?", conversationID).
			Pluck("id", &messageIDs).Error; err != nil {
			return err
		}
		if len(messageIDs) > 0 {
			if err := tx.Where("message_id IN ?", messageIDs).Delete(&models.MessageHistory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("message_id IN ?", messageIDs).Delete(&models.Notification{}).Error; err != nil {
				return err
			}
			if err := tx.Where("conversation_id = ?", conversationID).Delete(&models.Message{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM conversation_participants WHERE conversation_id = ?", conversationID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Conversation{}, "id = ?", conversationID).Error
	})
}

// ListMessages returns a page of the conversation's messages, newest first,
// together with the total count. The caller must be a participant.
func (s *Service) ListMessages(ctx context.Context, conversationID, callerID string, offset, limit int) ([]models.Message, int64, error) {
	if err := s.requireParticipant(ctx, callerID, conversationID); err != nil {
		return nil, 0, err
	}

	var total int64
	err := s.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err = s.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Preload("Sender").
		Order("created_at desc, id desc").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
