package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/session"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/usecase"
)

// LoginController handles credential checks and session issuance
type LoginController struct {
	UC *usecase.LoginUseCase
}

func NewLoginController(uc *usecase.LoginUseCase) *LoginController {
	return &LoginController{UC: uc}
}

type loginRequest struct {
	Email      string `json:"email" form:"email" binding:"required"`
	Password   string `json:"pwd" form:"pwd" binding:"required"`
	RedirectTo string `json:"redirectTo" form:"redirectTo"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		u, err := h.UC.Execute(ctx, usecase.LoginInput{Email: req.Email, Password: req.Password})
		if err != nil {
			abortWithError(c, err)
			return
		}

		if err := session.Create(c, u.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":        u.Profile(),
			"redirect_to": safeRedirect(req.RedirectTo),
		})
	}
}

// safeRedirect only allows local paths.
func safeRedirect(to string) string {
	if len(to) < 1 || to[0] != '/' || (len(to) > 1 && (to[1] == '/' || to[1] == '\\')) {
		return "/chat"
	}
	return to
}
