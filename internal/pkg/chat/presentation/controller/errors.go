package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/session"
	chat "github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/domain"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/usecase"
)

const conversationListPath = "/chat"

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
	case errors.Is(err, usecase.ErrProvider):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "chat provider unavailable"})
	case errors.Is(err, usecase.ErrSessionUserNotFound):
		_ = session.Destroy(c)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired", "redirect_to": "/login"})
	case errors.Is(err, usecase.ErrInvalidInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrMalformedToken), errors.Is(err, chat.ErrSelfConversation), errors.Is(err, usecase.ErrPeerNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "conversation not found", "redirect_to": conversationListPath})
	case errors.Is(err, chat.ErrNotParticipant):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user is not a participant in this conversation", "redirect_to": conversationListPath})
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
