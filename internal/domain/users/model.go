package users

import (
	"encoding/json"

	"membership-app/internal/domain/tiers"
)

// User is the single normalized shape the rest of the model works with.
// It is produced by the adapters in this package; nothing past the boundary
// should ever look at raw profile JSON again.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Tier  string `json:"tier"`

	// Entitlements, when non-empty, overrides the tier default set.
	Entitlements []string `json:"entitlements,omitempty"`
}

// Anonymous is the zero-value visitor: not logged in, free tier.
var Anonymous = User{Tier: tiers.TierFree}

// LoggedIn reports whether the user carries any identity marker.
func (u User) LoggedIn() bool {
	return u.ID != "" || u.Email != ""
}

// TierOf returns the user's effective tier. Visitors without identity
// markers are always free, regardless of any tier field on the record.
func TierOf(u User) string {
	if !u.LoggedIn() {
		return tiers.TierFree
	}
	return tiers.Normalize(u.Tier)
}

// rawProfile accepts the field spellings that have accumulated in stored
// profiles and provider payloads over time.
type rawProfile struct {
	ID           string   `json:"id"`
	Sub          string   `json:"sub"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Tier         string   `json:"tier"`
	PlanTier     string   `json:"planTier"`
	Plan         string   `json:"plan"`
	Entitlements []string `json:"entitlements"`
}

// normalize collapses a shape-flexible profile record into a User.
// Field priority for the tier is tier > planTier > plan.
func normalize(raw rawProfile) User {
	id := raw.ID
	if id == "" {
		id = raw.Sub
	}

	tier := raw.Tier
	if tier == "" {
		tier = raw.PlanTier
	}
	if tier == "" {
		tier = raw.Plan
	}

	return User{
		ID:           id,
		Email:        raw.Email,
		Name:         raw.Name,
		Tier:         tiers.Normalize(tier),
		Entitlements: raw.Entitlements,
	}
}

// FromJSON decodes a serialized profile record. Absent or malformed data
// degrades to the anonymous user, never an error.
func FromJSON(data []byte) User {
	if len(data) == 0 {
		return Anonymous
	}
	var raw rawProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return Anonymous
	}
	return normalize(raw)
}
