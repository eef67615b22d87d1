package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"messaging-app-server/internal/chat"
	"messaging-app-server/internal/middleware"
	"messaging-app-server/internal/models"
	"messaging-app-server/internal/utils"
)

// UserHandler handles user directory requests.
type UserHandler struct {
	DB      *gorm.DB
	Service *chat.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db, Service: chat.NewService(db)}
}

// GetUsers handles fetching the user directory, paginated.
func (h *UserHandler) GetUsers(c *gin.Context) {
	params := utils.ParsePageParams(c, utils.ConversationPagination)

	var total int64
	if err := h.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	var users []models.User
	if err := h.DB.Order("username asc").
		Offset(params.Offset()).Limit(params.PageSize).
		Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitize())
	}

	utils.Success(c, "Users fetched successfully", utils.Paginate(c, params, total, sanitized))
}

// GetUserByID handles fetching a single user by id.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// DeleteAccount handles deleting the authenticated user's own account
// together with everything it owns: refresh tokens, notifications, sent
// messages (with their history rows and notifications) and participant
// links. Messages addressed to the user stay with their conversations; the
// receiver reference on them is cleared.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.Service.DeleteUserAccount(c.Request.Context(), userID); err != nil {
		handleChatError(c, err)
		return
	}

	utils.Success(c, "Account deleted successfully", nil)
}
