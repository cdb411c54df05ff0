package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/usecase"
)

// statusFor maps use case errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	case errors.Is(err, user.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, user.ErrUserNotFound), errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "unexpected persistence error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
