package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	cacheport "github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/cache/port"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/session"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/port"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/usecase"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/presentation/controller"
)

// Deps are the collaborators of the conversation endpoints.
type Deps struct {
	Directory port.Directory
	Provider  port.Provider
	Cache     cacheport.Cache
	CacheTTL  time.Duration
	Logger    *slog.Logger
}

// RegisterRoutes registers conversation endpoints under the given router group.
// Every route requires a session.
func RegisterRoutes(g *gin.RouterGroup, d Deps) {
	listCtl := controller.NewListConversationsController(usecase.NewListConversationsUseCase(d.Directory, d.Provider, d.Cache, d.CacheTTL, d.Logger))
	startCtl := controller.NewStartConversationController(usecase.NewStartConversationUseCase(d.Directory, d.Provider, d.Cache, d.Logger))
	openCtl := controller.NewOpenConversationController(usecase.NewOpenConversationUseCase(d.Directory, d.Provider))

	authed := g.Group("/chat", session.RequireUser())

	// GET /api/v1/chat -> conversation list
	authed.GET("", listCtl.Handle())

	// POST /api/v1/chat -> start a conversation with user_id, or jump to conversation_id
	authed.POST("", startCtl.Handle())

	// GET /api/v1/chat/:slug -> resolve a conversation for the chatbox
	authed.GET("/:slug", openCtl.Handle())
}
