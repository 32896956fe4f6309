package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/pateljenish9878/Task-Management/internal/auth"
	"github.com/pateljenish9878/Task-Management/internal/models"
	"github.com/pateljenish9878/Task-Management/internal/store"
	"github.com/pateljenish9878/Task-Management/internal/util"

	"github.com/gin-gonic/gin"
)

// TokenCookie is the cookie carrying the session token.
const TokenCookie = "jwt"

const currentUserKey = "currentUser"

// SetTokenCookie stores the session token for maxAge seconds. HttpOnly
// keeps it away from page scripts; secure must be on behind TLS.
func SetTokenCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetCookie(TokenCookie, token, maxAge, "/", "", secure, true)
}

// ClearTokenCookie drops the session cookie so a stale token stops
// failing verification on every subsequent request.
func ClearTokenCookie(c *gin.Context) {
	c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
}

// CurrentUser returns the identity attached by RequireSession or
// AttachIfPresent, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.CurrentUser {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.CurrentUser)
	return user
}

// RequireSession verifies the session cookie, re-fetches the user by the
// claimed id (a valid signature is not enough if the account was deleted
// since issue) and attaches the identity context. Anything short of that
// clears the cookie and redirects to the login page.
func RequireSession(tokens *auth.TokenService, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(TokenCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			ClearTokenCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Printf("load user %d: %v", claims.UserID, err)
			}
			ClearTokenCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(currentUserKey, user.Context())
		c.Next()
	}
}

// AttachIfPresent runs the same verification path but degrades to an
// anonymous request instead of redirecting. Pages that render for both
// guests and signed-in users sit behind this.
func AttachIfPresent(tokens *auth.TokenService, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(TokenCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Printf("load user %d: %v", claims.UserID, err)
			}
			c.Next()
			return
		}

		c.Set(currentUserKey, user.Context())
		c.Next()
	}
}

// RequireRole gates a route on the role of the freshly loaded identity.
// It must run after RequireSession. The token claim also carries a role,
// but that one can be stale until expiry and is never consulted here.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			util.RedirectError(c, "/", "Access denied. Admin privileges required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated bounces signed-in users away from guest-only
// pages (login, register, the reset flow). A cookie whose token no
// longer verifies is cleared and the request continues as a guest.
func RedirectIfAuthenticated(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(TokenCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		if _, err := tokens.Verify(token); err != nil {
			ClearTokenCookie(c)
			c.Next()
			return
		}

		c.Redirect(http.StatusFound, "/tasks")
		c.Abort()
	}
}
