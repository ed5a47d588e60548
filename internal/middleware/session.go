package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang-storefront-sync/internal/models"
	"golang-storefront-sync/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionContextKey is the gin context key under which the resolved
// SessionContext is stored for the request.
const SessionContextKey = "session_context"

// GuestIdentityProvider is the slice of the session service the middleware
// needs to bootstrap anonymous identity.
type GuestIdentityProvider interface {
	GetOrCreateGuestID(ctx context.Context, sessionKey string) (string, error)
}

// SessionMiddleware builds a SessionContext for every request: a session
// cookie keys the browser context, a valid bearer token yields the user
// identity, and anonymous requests get a persisted guest id. Exactly one of
// the two identities is populated.
type SessionMiddleware struct {
	jwtManager   *auth.JWTManager
	guests       GuestIdentityProvider
	cookieName   string
	cookieAge    int
	cookieSecure bool
}

func NewSessionMiddleware(jwtManager *auth.JWTManager, guests GuestIdentityProvider, cookieName string, cookieAge int, cookieSecure bool) *SessionMiddleware {
	return &SessionMiddleware{
		jwtManager:   jwtManager,
		guests:       guests,
		cookieName:   cookieName,
		cookieAge:    cookieAge,
		cookieSecure: cookieSecure,
	}
}

func (m *SessionMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionKey, err := c.Cookie(m.cookieName)
		if err != nil || sessionKey == "" {
			sessionKey = uuid.New().String()
			c.SetCookie(m.cookieName, sessionKey, m.cookieAge, "/", "", m.cookieSecure, true)
		}

		sess := &models.SessionContext{SessionKey: sessionKey}

		if userID := m.authenticatedUserID(c); userID != "" {
			sess.Identity = models.UserIdentity(userID)
		} else {
			guestID, err := m.guests.GetOrCreateGuestID(c.Request.Context(), sessionKey)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session identity"})
				return
			}
			sess.Identity = models.GuestIdentity(guestID)
		}

		c.Set(SessionContextKey, sess)
		c.Next()
	}
}

// authenticatedUserID returns the user id from a valid bearer token, or ""
// for anonymous requests. Invalid tokens are treated as anonymous here; the
// auth middleware enforces validity on protected routes.
func (m *SessionMiddleware) authenticatedUserID(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return ""
	}

	claims, err := m.jwtManager.ValidateToken(tokenParts[1])
	if err != nil {
		return ""
	}

	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
	return claims.UserID
}

// GetSessionContext extracts the SessionContext resolved for this request.
func GetSessionContext(c *gin.Context) *models.SessionContext {
	if sess, exists := c.Get(SessionContextKey); exists {
		return sess.(*models.SessionContext)
	}
	return nil
}
