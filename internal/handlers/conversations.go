package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"messaging-app-server/internal/chat"
	"messaging-app-server/internal/middleware"
	"messaging-app-server/internal/utils"
)

// ConversationHandler handles conversation related requests.
type ConversationHandler struct {
	DB      *gorm.DB
	Service *chat.Service
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(db *gorm.DB) *ConversationHandler {
	return &ConversationHandler{DB: db, Service: chat.NewService(db)}
}

// CreateConversationRequest represents the request body for creating a conversation.
type CreateConversationRequest struct {
	ParticipantIDs []string `json:"participantIds" binding:"required"`
}

// CreateConversation handles creating a new conversation. The requesting user
// is always added to the participant set.
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateConversationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	conversation, err := h.Service.CreateConversation(c.Request.Context(), userID, req.ParticipantIDs)
	if err != nil {
		handleChatError(c, err)
		return
	}

	utils.Created(c, "Conversation created successfully", conversation)
}

// GetConversations handles listing the conversations the user participates
// in, most recently updated first.
func (h *ConversationHandler) GetConversations(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	params := utils.ParsePageParams(c, utils.ConversationPagination)
	conversations, total, err := h.Service.ListConversations(c.Request.Context(), userID, params.Offset(), params.PageSize)
	if err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Conversations fetched successfully", utils.Paginate(c, params, total, conversations))
}

// GetConversationByID handles fetching a single conversation with its
// participants. Only participants may read it.
func (h *ConversationHandler) GetConversationByID(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	conversation, err := h.Service.GetConversation(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Conversation fetched successfully", conversation)
}

// AddParticipantRequest represents the request body for adding a participant.
type AddParticipantRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

// AddParticipant handles adding a user to a conversation's participant set.
func (h *ConversationHandler) AddParticipant(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req AddParticipantRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Service.AddParticipant(c.Request.Context(), c.Param("id"), userID, req.UserID); err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Participant added successfully", nil)
}

// DeleteConversation handles deleting a conversation and all of its messages.
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.Service.DeleteConversation(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Conversation deleted successfully", nil)
}
