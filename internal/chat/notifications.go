package chat

import (
	"context"

	"messaging-app-server/internal/models"
)

// ListNotifications returns the user's notifications, newest first.
func (s *Service) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	query := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at desc").Find(&notifications).Error
	return notifications, err
}

// MarkNotificationsRead flips the user's unread notifications to read and
// returns the number of rows updated. A nil slice marks all of them.
func (s *Service) MarkNotificationsRead(ctx context.Context, userID string, notificationIDs []string) (int64, error) {
	if notificationIDs != nil && len(notificationIDs) == 0 {
		return 0, nil
	}

	query := s.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false)
	if notificationIDs != nil {
		query = query.Where("id IN ?", notificationIDs)
	}

	result := query.Update("is_read", true)
	return result.RowsAffected, result.Error
}
