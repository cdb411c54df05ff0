package session

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	CookieName = "__chat_session"
	MaxAge     = 60 * 60 * 24 * 30

	userIDKey  = "userId"
	contextKey = "session.userId"
)

// Options configures the signed cookie store.
type Options struct {
	Secret string
	Secure bool
}

// Middleware installs the cookie-backed session store on the engine.
func Middleware(opts Options) (gin.HandlerFunc, error) {
	if opts.Secret == "" {
		return nil, errors.New("session: secret must be set")
	}
	store := cookie.NewStore([]byte(opts.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   MaxAge,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(CookieName, store), nil
}

// UserID returns the authenticated user id, or "" when there is none.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	id, ok := sessions.Default(c).Get(userIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

// Create stores userID in a fresh session.
func Create(c *gin.Context, userID string) error {
	s := sessions.Default(c)
	s.Clear()
	s.Set(userIDKey, userID)
	return s.Save()
}

// Destroy clears the session and expires the cookie.
func Destroy(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

// LoginRedirect is the login location carrying the page to come back to.
func LoginRedirect(redirectTo string) string {
	if redirectTo == "" {
		redirectTo = "/chat"
	}
	return "/login?" + url.Values{"redirectTo": {redirectTo}}.Encode()
}

// RequireUser aborts with 401 when no user is logged in. The user id is
// stored on the gin context for downstream handlers.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := UserID(c)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":       "authentication required",
				"redirect_to": LoginRedirect(c.Request.URL.Path),
			})
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}
