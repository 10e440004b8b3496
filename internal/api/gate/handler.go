package gate

import (
	"net/http"

	"membership-app/config"
	"membership-app/internal/app/http/middleware"
	"membership-app/internal/domain/access"
	"membership-app/internal/domain/tiers"
	"membership-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// CheckRegion resolves the lock state for one UI region and renders the
// fragment for the requested mode. Unknown feature or tier identifiers are
// not errors; they resolve to the most restrictive lock the model produces.
func CheckRegion() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegionRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Feature == "" && input.MinTier == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "feature or min_tier required"})
			return
		}

		mode := input.Mode
		switch mode {
		case ModeHide, ModeDisable, ModeOverlay:
		case "":
			mode = ModeOverlay
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be hide, disable, or overlay"})
			return
		}

		minTier := input.MinTier
		if minTier != "" && !tiers.Valid(minTier) {
			minTier = tiers.Normalize(minTier)
		}

		u := middleware.CurrentUser(c)
		ls := access.LockStateFor(u, input.Feature, minTier)

		c.JSON(http.StatusOK, BuildRegionResponse(ls, mode, c.Query("from")))
	}
}

// BuildRegionResponse assembles the wire response for a lock state.
func BuildRegionResponse(ls access.LockState, mode, fromPath string) RegionResponse {
	resp := RegionResponse{
		Locked:       ls.Locked,
		Reason:       string(ls.Reason),
		RequiredTier: ls.RequiredTier,
		CurrentTier:  ls.CurrentTier,
		Mode:         mode,
	}
	if !ls.Locked {
		return resp
	}

	resp.Action = actionFor(ls, fromPath)
	switch mode {
	case ModeDisable:
		resp.Fragment = renderBadge(ls)
	case ModeOverlay:
		resp.Fragment = renderOverlay(ls, resp.Action)
	}
	// hide mode ships no fragment; the region is removed from layout
	return resp
}

// Chip renders the small tier indicator for the site header.
func Chip() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, BuildChipResponse(u))
	}
}

// BuildChipResponse assembles the tier chip for a user. Guests get a
// sign-in link; members get their profile.
func BuildChipResponse(u users.User) ChipResponse {
	if !u.LoggedIn() {
		return ChipResponse{
			Tier:     tiers.TierFree,
			Guest:    true,
			Label:    "Guest",
			Link:     config.SIGNIN_PATH,
			Fragment: renderChip(tiers.TierFree, "Guest"),
		}
	}

	tier := users.TierOf(u)
	label := tierLabel(tier)
	if u.Name != "" {
		// Display name comes from the provider profile; strip any markup
		// before it lands in the header.
		label = label + " · " + stripHTML.Sanitize(u.Name)
	}
	return ChipResponse{
		Tier:     tier,
		Label:    label,
		Link:     "/account",
		Fragment: renderChip(tier, label),
	}
}
