package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"messaging-app-server/internal/models"
)

// DeleteUserAccount removes a user together with everything they own: sent
// messages (with their history rows and notifications), received
// notifications, refresh tokens and participant links. Messages other users
// addressed to them stay with their conversations; their receiver reference
// is cleared so no row points at the deleted account.
func (s *Service) DeleteUserAccount(ctx context.Context, userID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var messageIDs []string
		if err := tx.Model(&models.Message{}).
			Where("sender_id = ?", userID).
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
			if err := tx.Where("sender_id = ?", userID).Delete(&models.Message{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Message{}).
			Where("receiver_id = ?", userID).
			Update("receiver_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM conversation_participants WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
}
