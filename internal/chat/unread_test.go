package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-app-server/internal/models"
)

func TestUnreadForUser(t *testing.T) {
	db, svc := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	conversation := createTestConversation(t, db, alice, bob)

	unreadMsg, err := svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       alice.ID,
		ConversationID: conversation.ID,
		Content:        "Unread message",
		ReceiverID:     &bob.ID,
	})
	require.NoError(t, err)

	readMsg, err := svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       alice.ID,
		ConversationID: conversation.ID,
		Content:        "Read message",
		ReceiverID:     &bob.ID,
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Message{}).Where("id = ?", readMsg.ID).Update("read", true).Error)

	unread, err := svc.UnreadForUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, unreadMsg.ID, unread[0].ID)
}

func TestUnreadForUserExcludesSelfAddressed(t *testing.T) {
	db, svc := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	conversation := createTestConversation(t, db, alice)

	// The creation pipeline rejects self-addressed messages, so insert one
	// directly; the unread filter must still exclude it
	selfMsg := models.Message{
		SenderID:       alice.ID,
		ReceiverID:     &alice.ID,
		ConversationID: conversation.ID,
		Content:        "Message to self",
	}
	require.NoError(t, db.Create(&selfMsg).Error)

	unread, err := svc.UnreadForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestUnreadDirectMessagesProjection(t *testing.T) {
	db, svc := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	conversation := createTestConversation(t, db, alice, bob)

	direct, err := svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       alice.ID,
		ConversationID: conversation.ID,
		Content:        "Direct message",
		ReceiverID:     &bob.ID,
	})
	require.NoError(t, err)

	previews, err := svc.UnreadDirectMessages(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, direct.ID, previews[0].ID)
	assert.Equal(t, alice.ID, previews[0].SenderID)
	assert.Equal(t, conversation.ID, previews[0].ConversationID)
	assert.Equal(t, "Direct message", previews[0].Content)
}

func TestUnreadInConversation(t *testing.T) {
	db, svc := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	convOne := createTestConversation(t, db, alice, bob)
	convTwo := createTestConversation(t, db, alice, bob)

	inOne, err := svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       alice.ID,
		ConversationID: convOne.ID,
		Content:        "In conversation one",
		ReceiverID:     &bob.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       alice.ID,
		ConversationID: convTwo.ID,
		Content:        "In conversation two",
		ReceiverID:     &bob.ID,
	})
	require.NoError(t, err)

	unread, err := svc.UnreadInConversation(ctx, bob.ID, convOne.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, inOne.ID, unread[0].ID)
}

func TestMarkAsReadSpecificThenAll(t *testing.T) {
	db, svc := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	conversation := createTestConversation(t, db, alice, bob)

	first, err := svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       alice.ID,
		ConversationID: conversation.ID,
		Content:        "First",
		ReceiverID:     &bob.ID,
	})
	require.NoError(t, err)

	second, err := svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       alice.ID,
		ConversationID: conversation.ID,
		Content:        "Second",
		ReceiverID:     &bob.ID,
	})
	require.NoError(t, err)

	// Mark one of the two explicitly
	updated, err := svc.MarkAsRead(ctx, bob.ID, []string{first.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	unread, err := svc.UnreadForUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, second.ID, unread[0].ID)

	// Marking everything picks up only the remaining one
	updated, err = svc.MarkAsRead(ctx, bob.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	unread, err = svc.UnreadForUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestMarkAsReadIdempotent(t *testing.T) {
	db, svc := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	conversation := createTestConversation(t, db, alice, bob)

	message, err := svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       alice.ID,
		ConversationID: conversation.ID,
		Content:        "Hello",
		ReceiverID:     &bob.ID,
	})
	require.NoError(t, err)

	updated, err := svc.MarkAsRead(ctx, bob.ID, []string{message.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	// Second call with the same arguments updates nothing
	updated, err = svc.MarkAsRead(ctx, bob.ID, []string{message.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestMarkAsReadEmptyListIsNoOp(t *testing.T) {
	db, svc := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	conversation := createTestConversation(t, db, alice, bob)

	_, err := svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       alice.ID,
		ConversationID: conversation.ID,
		Content:        "Still unread",
		ReceiverID:     &bob.ID,
	})
	require.NoError(t, err)

	updated, err := svc.MarkAsRead(ctx, bob.ID, []string{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)

	unread, err := svc.UnreadForUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}

func TestMarkAsReadNeverTouchesOtherUsersMessages(t *testing.T) {
	db, svc := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	conversation := createTestConversation(t, db, alice, bob, carol)

	toCarol, err := svc.CreateMessage(ctx, CreateMessageInput{
		SenderID:       alice.ID,
		ConversationID: conversation.ID,
		Content:        "For carol",
		ReceiverID:     &carol.ID,
	})
	require.NoError(t, err)

	// Bob supplies carol's message id; nothing may change
	updated, err := svc.MarkAsRead(ctx, bob.ID, []string{toCarol.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)

	var reloaded models.Message
	require.NoError(t, db.First(&reloaded, "id = ?", toCarol.ID).Error)
	assert.False(t, reloaded.Read)
}

func TestUnreadCount(t *testing.T) {
	db, svc := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	conversation := createTestConversation(t, db, alice, bob)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateMessage(ctx, CreateMessageInput{
			SenderID:       alice.ID,
			ConversationID: conversation.ID,
			Content:        "Hello",
			ReceiverID:     &bob.ID,
		})
		require.NoError(t, err)
	}

	count, err := svc.UnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
