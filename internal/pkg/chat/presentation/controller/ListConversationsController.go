package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/session"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/usecase"
)

// ListConversationsController returns the caller's conversation list
type ListConversationsController struct {
	UC *usecase.ListConversationsUseCase
}

func NewListConversationsController(uc *usecase.ListConversationsUseCase) *ListConversationsController {
	return &ListConversationsController{UC: uc}
}

func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		conversations, err := h.UC.Execute(ctx, session.UserID(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"conversations": conversations,
			"count":         len(conversations),
		})
	}
}
