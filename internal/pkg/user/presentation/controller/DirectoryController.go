package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/session"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/usecase"
)

// DirectoryController lists the users the caller can start a conversation with
type DirectoryController struct {
	UC *usecase.ListDirectoryUseCase
}

func NewDirectoryController(uc *usecase.ListDirectoryUseCase) *DirectoryController {
	return &DirectoryController{UC: uc}
}

func (h *DirectoryController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		users, err := h.UC.Execute(ctx, usecase.ListDirectoryInput{
			CurrentUserID: session.UserID(c),
			Query:         c.Query("q"),
		})
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
	}
}
