package auth

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"membership-app/internal/app/http/middleware"
	"membership-app/internal/domain/users"
	"membership-app/internal/identity"
	"membership-app/internal/store"

	"github.com/gin-gonic/gin"
)

// Provider is the slice of the identity client the auth endpoints use.
type Provider interface {
	SignUp(ctx context.Context, email, password, name string) (users.User, error)
	SignIn(ctx context.Context, email, password string) (*identity.Session, error)
	GetSession(ctx context.Context, rawToken string) (*identity.Session, error)
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isEmailValid(email string) bool {
	return emailPattern.MatchString(email)
}

// safeReturnPath keeps the post-signin redirect on this site. Anything that
// is not a plain local path collapses to "/".
func safeReturnPath(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

// SignUp relays registration to the hosted provider. Password policy and
// duplicate detection are the provider's; its rejection message is surfaced
// verbatim so the visitor sees why the explicit action failed.
func SignUp(idp Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
			Name     string `json:"name"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !isEmailValid(input.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}

		profile, err := idp.SignUp(c.Request.Context(), input.Email, input.Password, input.Name)
		if err != nil {
			status, msg := authErrorResponse(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Account created. You can sign in now.",
			"user":    profile,
		})
	}
}

// SignIn exchanges credentials with the provider, caches the normalized
// profile, and hands back the return path the visitor was originally
// heading for. The path is consumed here: it is echoed once and never
// persisted.
func SignIn(idp Provider, profiles store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
			Next     string `json:"next"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sess, err := idp.SignIn(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			status, msg := authErrorResponse(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		if err := store.SaveUser(c.Request.Context(), profiles, store.Key(sess.User.ID), sess.User); err != nil {
			// The cache is advisory; a failed write must not block sign-in.
			c.Error(err)
		}

		c.JSON(http.StatusOK, gin.H{
			"token":      sess.Token,
			"expires_at": sess.ExpiresAt,
			"user":       sess.User,
			"next":       safeReturnPath(input.Next),
		})
	}
}

// SignOut clears the cached profile for the caller. Always succeeds; there
// is nothing to fail for an already-anonymous visitor.
func SignOut(profiles store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middleware.CurrentUser(c)
		if u.LoggedIn() {
			if err := profiles.Clear(c.Request.Context(), store.Key(u.ID)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear profile"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
	}
}

// GetSession validates the bearer token against the provider. Any provider
// failure, transport included, reads as "not authenticated", never as a
// silent success.
func GetSession(idp Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || token == authHeader {
			c.JSON(http.StatusOK, gin.H{"session": nil})
			return
		}

		sess, err := idp.GetSession(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if sess == nil {
			c.JSON(http.StatusOK, gin.H{"session": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": sess})
	}
}

// authErrorResponse maps an identity failure onto an HTTP response for an
// explicit user action.
func authErrorResponse(err error) (int, string) {
	var ae *identity.AuthError
	if errors.As(err, &ae) {
		switch {
		case ae.Code == "network":
			return http.StatusBadGateway, "Identity provider unavailable. Please try again."
		case ae.Status >= 400 && ae.Status < 500:
			return ae.Status, ae.Message
		default:
			return http.StatusUnauthorized, ae.Message
		}
	}
	return http.StatusInternalServerError, "Authentication failed"
}
