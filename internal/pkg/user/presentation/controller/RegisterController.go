package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/session"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/usecase"
)

// RegisterController handles account creation (one controller per endpoint)
type RegisterController struct {
	UC *usecase.RegisterUseCase
}

func NewRegisterController(uc *usecase.RegisterUseCase) *RegisterController {
	return &RegisterController{UC: uc}
}

type registerRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"pwd" form:"pwd" binding:"required"`
}

// Handle registers the user and logs them in.
func (h *RegisterController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		u, err := h.UC.Execute(ctx, usecase.RegisterInput{Name: req.Username, Email: req.Email, Password: req.Password})
		if err != nil {
			abortWithError(c, err)
			return
		}

		if err := session.Create(c, u.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"user":        u.Profile(),
			"redirect_to": "/chat",
		})
	}
}
