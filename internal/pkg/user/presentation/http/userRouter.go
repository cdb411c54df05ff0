package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/queue/port"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/session"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/usecase"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/persistence/repository/adapter"
	repository "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/persistence/repository/port"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/presentation/controller"
)

// Deps are the collaborators of the user endpoints.
type Deps struct {
	Repo   repository.UserRepository
	Avatar usecase.AvatarLookup
	Queue  qport.Client
	Logger *slog.Logger
}

// DepsFromPool builds Deps on top of the Postgres user repository.
func DepsFromPool(pool *pgxpool.Pool, avatars usecase.AvatarLookup, queue qport.Client, logger *slog.Logger) Deps {
	return Deps{Repo: adapter.NewPgUserRepository(pool), Avatar: avatars, Queue: queue, Logger: logger}
}

// RegisterRoutes registers account and directory endpoints under the given router group
func RegisterRoutes(g *gin.RouterGroup, d Deps) {
	registerCtl := controller.NewRegisterController(usecase.NewRegisterUseCase(d.Repo, d.Avatar, d.Queue, d.Logger))
	loginCtl := controller.NewLoginController(usecase.NewLoginUseCase(d.Repo))
	logoutCtl := controller.NewLogoutController()
	sessionCtl := controller.NewSessionController(usecase.NewGetUserUseCase(d.Repo))
	directoryCtl := controller.NewDirectoryController(usecase.NewListDirectoryUseCase(d.Repo))

	// POST /api/v1/join -> create an account and log in
	g.POST("/join", registerCtl.Handle())

	// POST /api/v1/login -> log in
	g.POST("/login", loginCtl.Handle())

	// POST /api/v1/logout -> drop the session
	g.POST("/logout", logoutCtl.Handle())

	authed := g.Group("", session.RequireUser())

	// GET /api/v1/session -> current user
	authed.GET("/session", sessionCtl.Handle())

	// GET /api/v1/users?q= -> everyone but the caller
	authed.GET("/users", directoryCtl.Handle())
}
