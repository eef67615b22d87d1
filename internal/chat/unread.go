package chat

import (
	"context"
	"time"

	"gorm.io/gorm"

	"messaging-app-server/internal/models"
)

// UnreadMessagePreview is the narrow projection returned for unread direct
// messages. Only the columns needed for the API response are fetched.
type UnreadMessagePreview struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"senderId"`
	ConversationID string    `json:"conversationId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// unreadScope filters to unread messages addressed to the user. A user is
// never shown their own message as unread, even if addressed to themselves.
func (s *Service) unreadScope(ctx context.Context, userID string) *gorm.DB {
	return s.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND `read` = ? AND sender_id <> ?", userID, false, userID)
}

// UnreadForUser returns all unread messages addressed to the user, ordered by
// creation time then id so pagination over the result is stable.
func (s *Service) UnreadForUser(ctx context.Context, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.unreadScope(ctx, userID).
		Order("created_at asc, id asc").
		Find(&messages).Error
	return messages, err
}

// UnreadDirectMessages returns unread direct messages for the user as a
// minimal-column projection.
func (s *Service) UnreadDirectMessages(ctx context.Context, userID string) ([]UnreadMessagePreview, error) {
	var previews []UnreadMessagePreview
	err := s.unreadScope(ctx, userID).
		Select("id", "sender_id", "conversation_id", "content", "created_at").
		Order("created_at asc, id asc").
		Scan(&previews).Error
	return previews, err
}

// UnreadInConversation returns the user's unread messages within one
// conversation.
func (s *Service) UnreadInConversation(ctx context.Context, userID, conversationID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.unreadScope(ctx, userID).
		Where("conversation_id = ?", conversationID).
		Order("created_at asc, id asc").
		Find(&messages).Error
	return messages, err
}

// MarkAsRead marks unread messages addressed to the user as read and returns
// the number of rows this call transitioned. A nil messageIDs slice marks all
// of the user's unread messages; an empty non-nil slice is a no-op. Ids
// addressed to other users are never mutated. The update is a single
// conditional bulk write, so the operation is idempotent and racing callers
// never double-count.
func (s *Service) MarkAsRead(ctx context.Context, userID string, messageIDs []string) (int64, error) {
	if messageIDs != nil && len(messageIDs) == 0 {
		return 0, nil
	}

	query := s.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND `read` = ?", userID, false)
	if messageIDs != nil {
		query = query.Where("id IN ?", messageIDs)
	}

	result := query.Update("read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UnreadCount returns how many unread messages are addressed to the user.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.unreadScope(ctx, userID).Count(&count).Error
	return count, err
}
