package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-app-server/internal/models"
)

func TestDeleteUserAccountCascades(t *testing.T) {
	db, svc := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	conversation := createTestConversation(t, db, alice, bob)

	sent, err := svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       alice.ID,
		ConversationID: conversation.ID,
		Content:        "from alice",
		ReceiverID:     &bob.ID,
	})
	require.NoError(t, err)
	_, err = svc.EditMessage(ctx, sent.ID, alice.ID, "from alice, edited")
	require.NoError(t, err)

	received, err := svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       bob.ID,
		ConversationID: conversation.ID,
		Content:        "for alice",
		ReceiverID:     &alice.ID,
	})
	require.NoError(t, err)

	token := models.RefreshToken{UserID: alice.ID, Token: "token", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&token).Error)

	require.NoError(t, svc.DeleteUserAccount(ctx, alice.ID))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", alice.ID).Count(&userCount).Error)
	assert.Equal(t, int64(0), userCount)

	// Everything alice sent is gone, history and notifications included
	_, err = svc.GetMessage(ctx, sent.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	var historyCount, notificationCount, tokenCount, linkCount int64
	require.NoError(t, db.Model(&models.MessageHistory{}).Where("message_id = ?", sent.ID).Count(&historyCount).Error)
	assert.Equal(t, int64(0), historyCount)
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", alice.ID).Count(&notificationCount).Error)
	assert.Equal(t, int64(0), notificationCount)
	require.NoError(t, db.Model(&models.RefreshToken{}).Where("user_id = ?", alice.ID).Count(&tokenCount).Error)
	assert.Equal(t, int64(0), tokenCount)
	require.NoError(t, db.Table("conversation_participants").Where("user_id = ?", alice.ID).Count(&linkCount).Error)
	assert.Equal(t, int64(0), linkCount)

	// Bob's message to alice survives with its receiver reference cleared
	kept, err := svc.GetMessage(ctx, received.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.ReceiverID)
	assert.Equal(t, "for alice", kept.Content)

	// Bob keeps his membership and the conversation itself
	ok, err := svc.IsParticipant(ctx, bob.ID, conversation.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteUserAccountUnknownUser(t *testing.T) {
	_, svc := setupTestDB(t)

	err := svc.DeleteUserAccount(context.Background(), "missing-user")
	assert.ErrorIs(t, err, ErrNotFound)
}
