package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/session"
	chat "github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/domain"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/usecase"
)

// StartConversationController opens (or reuses) a conversation with another user
type StartConversationController struct {
	UC *usecase.StartConversationUseCase
}

func NewStartConversationController(uc *usecase.StartConversationUseCase) *StartConversationController {
	return &StartConversationController{UC: uc}
}

// startConversationRequest carries either the selected user or an existing
// conversation id to navigate to.
type startConversationRequest struct {
	UserID         string `json:"user_id" form:"userId"`
	ConversationID string `json:"conversation_id" form:"conversationId"`
}

func (h *StartConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req startConversationRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		self := session.UserID(c)

		if req.ConversationID != "" {
			if _, _, err := chat.VerifyConversationID(req.ConversationID); err != nil {
				abortWithError(c, err)
				return
			}
			parts, err := chat.ResolveParticipants(req.ConversationID, self)
			if err != nil {
				abortWithError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"conversation_id": parts.ConversationID,
				"location":        usecase.Location(parts.ConversationID),
			})
			return
		}
		if req.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or conversation_id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		out, err := h.UC.Execute(ctx, usecase.StartConversationInput{CurrentUserID: self, OtherUserID: req.UserID})
		if err != nil {
			abortWithError(c, err)
			return
		}

		status := http.StatusOK
		if out.Created {
			status = http.StatusCreated
		}
		c.Header("Location", out.Location)
		c.JSON(status, gin.H{
			"conversation_id": out.ConversationID,
			"location":        out.Location,
		})
	}
}
