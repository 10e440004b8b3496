package users

import (
	"net/http"

	"membership-app/internal/app/http/middleware"
	"membership-app/internal/domain/entitlements"
	domain "membership-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GetCurrentUser returns the caller's profile and resolved access.
func GetCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middleware.CurrentUser(c)
		if !u.LoggedIn() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, BuildMeResponse(u))
	}
}

func BuildMeResponse(u domain.User) MeResponse {
	return MeResponse{
		User: UserDTO{
			ID:    u.ID,
			Email: u.Email,
			Name:  u.Name,
		},
		Access: AccessDTO{
			Tier:         domain.TierOf(u),
			Entitlements: entitlements.EntitlementsOf(u),
			Overridden:   len(u.Entitlements) > 0,
		},
	}
}
