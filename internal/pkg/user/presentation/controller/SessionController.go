package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/session"
	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/usecase"
)

// SessionController returns the logged-in user. A session whose account is
// gone is destroyed.
type SessionController struct {
	UC *usecase.GetUserUseCase
}

func NewSessionController(uc *usecase.GetUserUseCase) *SessionController {
	return &SessionController{UC: uc}
}

func (h *SessionController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		u, err := h.UC.Execute(ctx, session.UserID(c))
		if errors.Is(err, user.ErrUserNotFound) {
			_ = session.Destroy(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired", "redirect_to": "/login"})
			return
		}
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u.Profile()})
	}
}
