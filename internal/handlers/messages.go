package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"messaging-app-server/internal/chat"
	"messaging-app-server/internal/middleware"
	"messaging-app-server/internal/utils"
)

// MessageHandler handles messaging related requests.
type MessageHandler struct {
	DB      *gorm.DB
	Service *chat.Service
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{DB: db, Service: chat.NewService(db)}
}

// SendMessageRequest represents the request body for sending a message.
type SendMessageRequest struct {
	Content    string  `json:"content" binding:"required"`
	ReceiverID *string `json:"receiverId"` // set for direct messages
	ParentID   *string `json:"parentId"`   // set for replies
}

// SendMessage handles posting a new message into a conversation. When the
// message is direct, the receiver's notification is created in the same
// transaction.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req SendMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	message, err := h.Service.CreateMessage(c.Request.Context(), chat.CreateMessageInput{
		SenderID:       userID,
		ConversationID: c.Param("id"),
		Content:        req.Content,
		ReceiverID:     req.ReceiverID,
		ParentID:       req.ParentID,
	})
	if err != nil {
		handleChatError(c, err)
		return
	}

	utils.Created(c, "Message sent successfully", message)
}

// GetMessages handles listing a conversation's messages, newest first.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	params := utils.ParsePageParams(c, utils.MessagePagination)
	messages, total, err := h.Service.ListMessages(c.Request.Context(), c.Param("id"), userID, params.Offset(), params.PageSize)
	if err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Messages fetched successfully", utils.Paginate(c, params, total, messages))
}

// EditMessageRequest represents the request body for editing a message.
type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// EditMessage handles editing a message. Only the sender may edit; the prior
// content is preserved in the history log.
func (h *MessageHandler) EditMessage(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req EditMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	message, err := h.Service.EditMessage(c.Request.Context(), c.Param("messageId"), userID, req.Content)
	if err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Message updated successfully", message)
}

// DeleteMessage handles deleting a message. Only the sender may delete.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.Service.DeleteMessage(c.Request.Context(), c.Param("messageId"), userID); err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Message deleted successfully", nil)
}

// GetMessageHistory handles fetching a message's edit history, newest first.
func (h *MessageHandler) GetMessageHistory(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	history, err := h.Service.MessageHistoryFor(c.Request.Context(), c.Param("messageId"), userID)
	if err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Message history fetched successfully", history)
}

// ThreadResponse carries a full reply tree and its message count.
type ThreadResponse struct {
	Root  *chat.ThreadNode `json:"root"`
	Count int              `json:"count"`
}

// GetThread resolves the thread root for a message and returns the full
// reply tree below it.
func (h *MessageHandler) GetThread(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	message, err := h.Service.GetMessage(c.Request.Context(), c.Param("messageId"))
	if err != nil {
		handleChatError(c, err)
		return
	}
	ok, err := h.Service.IsParticipant(c.Request.Context(), userID, message.ConversationID)
	if err != nil {
		handleChatError(c, err)
		return
	}
	if !ok {
		utils.Forbidden(c, "You are not a participant in this conversation.")
		return
	}

	root, err := h.Service.ThreadRoot(c.Request.Context(), message.ID)
	if err != nil {
		handleChatError(c, err)
		return
	}
	tree, err := h.Service.BuildReplyTree(c.Request.Context(), root.ID)
	if err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Thread fetched successfully", ThreadResponse{
		Root:  tree,
		Count: chat.CountThreadMessages(tree),
	})
}

// GetUnreadMessages handles listing the user's unread messages. The optional
// conversation query parameter narrows the result to one conversation; the
// direct parameter switches to the minimal direct-message projection.
func (h *MessageHandler) GetUnreadMessages(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if conversationID := c.Query("conversation"); conversationID != "" {
		messages, err := h.Service.UnreadInConversation(c.Request.Context(), userID, conversationID)
		if err != nil {
			handleChatError(c, err)
			return
		}
		utils.Success(c, "Unread messages fetched successfully", messages)
		return
	}

	if c.Query("direct") == "true" {
		previews, err := h.Service.UnreadDirectMessages(c.Request.Context(), userID)
		if err != nil {
			handleChatError(c, err)
			return
		}
		utils.Success(c, "Unread direct messages fetched successfully", previews)
		return
	}

	messages, err := h.Service.UnreadForUser(c.Request.Context(), userID)
	if err != nil {
		handleChatError(c, err)
		return
	}
	utils.Success(c, "Unread messages fetched successfully", messages)
}

// MarkAsReadRequest represents the request body for marking messages read.
// Omitting messageIds marks all of the user's unread messages; an empty list
// marks none.
type MarkAsReadRequest struct {
	MessageIDs []string `json:"messageIds"`
}

// MarkAsReadResponse reports how many messages this call transitioned.
type MarkAsReadResponse struct {
	Updated int64 `json:"updated"`
}

// MarkMessagesAsRead handles marking messages addressed to the user as read.
func (h *MessageHandler) MarkMessagesAsRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	// An absent body means "mark everything", same as an omitted id list
	var req MarkAsReadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	updated, err := h.Service.MarkAsRead(c.Request.Context(), userID, req.MessageIDs)
	if err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Messages marked as read", MarkAsReadResponse{Updated: updated})
}

// GetNotifications handles listing the user's notifications, newest first.
func (h *MessageHandler) GetNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	notifications, err := h.Service.ListNotifications(c.Request.Context(), userID, c.Query("unread") == "true")
	if err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Notifications fetched successfully", notifications)
}

// MarkNotificationsReadRequest represents the request body for marking
// notifications read.
type MarkNotificationsReadRequest struct {
	NotificationIDs []string `json:"notificationIds"`
}

// MarkNotificationsRead handles marking the user's notifications as read.
func (h *MessageHandler) MarkNotificationsRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req MarkNotificationsReadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	updated, err := h.Service.MarkNotificationsRead(c.Request.Context(), userID, req.NotificationIDs)
	if err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Notifications marked as read", MarkAsReadResponse{Updated: updated})
}
