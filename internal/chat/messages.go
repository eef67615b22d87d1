package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"messaging-app-server/internal/models"
)

// CreateMessageInput carries the fields accepted by CreateMessage.
type CreateMessageInput struct {
	SenderID       string
	ConversationID string
	Content        string
	ReceiverID     *string // set only for direct messages
	ParentID       *string // set only for replies
}

// CreateMessage validates and persists a new message. When the message is
// direct (receiver set), exactly one notification for the receiver is created
// in the same transaction: both rows commit or neither does.
func (s *Service) CreateMessage(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", ErrValidation)
	}
	if in.ReceiverID != nil && *in.ReceiverID == in.SenderID {
		return nil, fmt.Errorf("%w: cannot address a message to yourself", ErrValidation)
	}

	message := models.Message{
		SenderID:       in.SenderID,
		ReceiverID:     in.ReceiverID,
		ConversationID: in.ConversationID,
		ParentID:       in.ParentID,
		Content:        in.Content,
		Read:           false,
		Edited:         false,
	}

	// Existence and membership checks share the insert's transaction, so a
	// conversation, parent or receiver removed mid-request fails the whole
	// create instead of orphaning the new row
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txSvc := &Service{DB: tx}

		var sender models.User
		if err := tx.First(&sender, "id = ?", in.SenderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := txSvc.requireParticipant(ctx, in.SenderID, in.ConversationID); err != nil {
			return err
		}

		if in.ReceiverID != nil {
			var receiver models.User
			if err := tx.First(&receiver, "id = ?", *in.ReceiverID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
		}

		if in.ParentID != nil {
			var parent models.Message
			if err := tx.First(&parent, "id = ?", *in.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			// A reply must stay inside its parent's conversation
			if parent.ConversationID != in.ConversationID {
				return fmt.Errorf("%w: parent message belongs to another conversation", ErrValidation)
			}
		}

		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		if message.ReceiverID == nil {
			return nil
		}
		notification := models.Notification{
			UserID:    *message.ReceiverID,
			MessageID: message.ID,
			Type:      models.NotificationTypeMessage,
			Title:     fmt.Sprintf("New Message from %s", sender.Username),
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// EditMessage updates a message's content. Only the sender may edit. The
// previous content is appended to the history log in the same transaction as
// the update. The message is read under a row lock inside that transaction,
// so racing editors serialize and every superseded version gets its own
// history row. SQLite ignores the lock clause; its writers serialize anyway.
func (s *Service) EditMessage(ctx context.Context, messageID, editorID, newContent string) (*models.Message, error) {
	if strings.TrimSpace(newContent) == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", ErrValidation)
	}

	var message models.Message
	now := time.Now()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&message, "id = ?", messageID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if message.SenderID != editorID {
			return ErrPermission
		}

		history := models.MessageHistory{
			MessageID:  message.ID,
			OldContent: message.Content,
			EditedByID: editorID,
			EditedAt:   now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		return tx.Model(&models.Message{}).
			Where("id = ?", message.ID).
			Updates(map[string]interface{}{
				"content":   newContent,
				"edited":    true,
				"edited_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	message.Content = newContent
	message.Edited = true
	message.EditedAt = &now
	return &message, nil
}

// DeleteMessage removes a message together with its history rows and any
// notification it produced. Only the sender may delete.
func (s *Service) DeleteMessage(ctx context.Context, messageID, callerID string) error {
	message, err := s.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if message.SenderID != callerID {
		return ErrPermission
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", message.ID).Delete(&models.MessageHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("message_id = ?", message.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, "id = ?", message.ID).Error
	})
}

// MessageHistoryFor returns the edit history of a message, newest first.
// The caller must be a participant of the message's conversation.
func (s *Service) MessageHistoryFor(ctx context.Context, messageID, callerID string) ([]models.MessageHistory, error) {
	message, err := s.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if err := s.requireParticipant(ctx, callerID, message.ConversationID); err != nil {
		return nil, err
	}

	var history []models.MessageHistory
	err = s.DB.WithContext(ctx).
		Preload("EditedBy").
		Where("message_id = ?", message.ID).
		Order("edited_at desc").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}
