package v1

import (
	"github.com/gin-gonic/gin"

	chathttp "github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/presentation/http"
	userhttp "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/presentation/http"
)

// Deps groups the collaborators of every v1 bounded context.
type Deps struct {
	User userhttp.Deps
	Chat chathttp.Deps
}

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, d Deps) {
	v1 := r.Group("/api/v1")
	userhttp.RegisterRoutes(v1, d.User)
	chathttp.RegisterRoutes(v1, d.Chat)
}
