package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"messaging-app-server/internal/models"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	return db, NewService(db)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestConversation(t *testing.T, db *gorm.DB, participants ...*models.User) *models.Conversation {
	t.Helper()

	conversation := models.Conversation{}
	for _, p := range participants {
		conversation.Participants = append(conversation.Participants, *p)
	}
	require.NoError(t, db.Create(&conversation).Error)
	return &conversation
}

// setCreatedAt pins a message's creation time so ordering assertions are
// deterministic.
func setCreatedAt(t *testing.T, db *gorm.DB, messageID string, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Message{}).Where("id = ?", messageID).Update("created_at", at).Error)
}
