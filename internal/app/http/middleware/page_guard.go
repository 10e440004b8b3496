package middleware

import (
	"net/http"
	"net/url"

	"membership-app/config"
	"membership-app/internal/domain/access"
	"membership-app/internal/domain/routes"
	"membership-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GuardState is the page-guard state machine: every request starts
// unchecked and ends allowed or redirecting. Redirecting is terminal; no
// retry once the redirect is written.
type GuardState string

const (
	GuardUnchecked   GuardState = "unchecked"
	GuardAllowed     GuardState = "allowed"
	GuardRedirecting GuardState = "redirecting"
)

// GuardDecision is the resolved outcome for one page load.
type GuardDecision struct {
	State    GuardState
	Location string // redirect target when State is GuardRedirecting
}

// DecidePage resolves the guard decision for a path. Denied visitors go to
// sign-in when anonymous and to the upgrade page otherwise, with the
// original path carried as the `next` query parameter.
func DecidePage(u users.User, path string) GuardDecision {
	policy := routes.PolicyFor(path)
	if policy == nil || access.MeetsTier(u, policy.MinTier) {
		return GuardDecision{State: GuardAllowed}
	}

	next := url.QueryEscape(path)
	if !u.LoggedIn() {
		return GuardDecision{
			State:    GuardRedirecting,
			Location: config.SIGNIN_PATH + "?next=" + next,
		}
	}
	return GuardDecision{
		State:    GuardRedirecting,
		Location: config.UPGRADE_PATH + "?next=" + next + "&tier=" + policy.MinTier,
	}
}

// PageGuard enforces the route policy table on whole pages.
func PageGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := DecidePage(CurrentUser(c), c.Request.URL.Path)
		if decision.State == GuardAllowed {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, decision.Location)
		c.Abort()
	}
}
