package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"messaging-app-server/internal/chat"
	"messaging-app-server/internal/utils"
)

// handleChatError maps chat service sentinel errors to HTTP responses.
func handleChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, chat.ErrPermission):
		utils.Forbidden(c, "You do not have permission to perform this action.")
	case errors.Is(err, chat.ErrValidation):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, chat.ErrCyclicThread):
		utils.InternalServerError(c, "Thread structure is corrupted: "+err.Error())
	default:
		utils.InternalServerError(c, "Database error: "+err.Error())
	}
}
