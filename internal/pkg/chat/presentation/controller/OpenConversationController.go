package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/session"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/usecase"
)

// OpenConversationController resolves /chat/:slug for the logged-in user
type OpenConversationController struct {
	UC *usecase.OpenConversationUseCase
}

func NewOpenConversationController(uc *usecase.OpenConversationUseCase) *OpenConversationController {
	return &OpenConversationController{UC: uc}
}

func (h *OpenConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if slug == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found", "redirect_to": conversationListPath})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		out, err := h.UC.Execute(ctx, usecase.OpenConversationInput{
			ConversationID: slug,
			SessionUserID:  session.UserID(c),
		})
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"conversation_id": out.ConversationID,
			"app_id":          out.AppID,
			"me":              out.Me,
			"signature":       out.Signature,
			"other":           out.Other,
		})
	}
}
