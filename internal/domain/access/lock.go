package access

import (
	"membership-app/internal/domain/entitlements"
	"membership-app/internal/domain/tiers"
	"membership-app/internal/domain/users"
)

// LockReason says which remediation unlocks a denied region.
type LockReason string

const (
	ReasonSignInRequired  LockReason = "sign_in_required"
	ReasonUpgradeRequired LockReason = "upgrade_required"
	ReasonNotEntitled     LockReason = "not_entitled"
)

// LockState is the UX-facing access decision for one region or feature.
type LockState struct {
	Locked       bool       `json:"locked"`
	Reason       LockReason `json:"reason,omitempty"`
	RequiredTier string     `json:"required_tier,omitempty"`
	CurrentTier  string     `json:"current_tier"`
}

// MeetsTier reports whether the user satisfies a minimum tier. An empty
// minimum is public and always passes; a visitor who is not signed in never
// meets a non-empty minimum, whatever their cached tier says.
func MeetsTier(u users.User, minTier string) bool {
	if minTier == "" {
		return true
	}
	if !u.LoggedIn() {
		return false
	}
	return tiers.Rank(users.TierOf(u)) >= tiers.Rank(minTier)
}

// LockStateFor resolves the lock state for a region gated by a feature
// and/or a minimum tier. Decision order:
// 1. not signed in -> sign_in_required
// 2. minimum tier not met -> upgrade_required
// 3. feature not entitled -> not_entitled
// A missing sign-in always wins over a missing entitlement.
func LockStateFor(u users.User, feature string, minTier string) LockState {
	current := users.TierOf(u)

	if (feature != "" || minTier != "") && !u.LoggedIn() {
		return LockState{
			Locked:       true,
			Reason:       ReasonSignInRequired,
			RequiredTier: requiredFor(feature, minTier),
			CurrentTier:  current,
		}
	}

	if minTier != "" && !MeetsTier(u, minTier) {
		return LockState{
			Locked:       true,
			Reason:       ReasonUpgradeRequired,
			RequiredTier: minTier,
			CurrentTier:  current,
		}
	}

	if feature != "" && !entitlements.HasFeature(u, feature) {
		return LockState{
			Locked:       true,
			Reason:       ReasonNotEntitled,
			RequiredTier: entitlements.TierOfFeature(feature),
			CurrentTier:  current,
		}
	}

	return LockState{CurrentTier: current}
}

// requiredFor picks the tier to advertise on a sign_in_required lock: the
// explicit minimum when given, else the feature's owning tier.
func requiredFor(feature, minTier string) string {
	if minTier != "" {
		return minTier
	}
	return entitlements.TierOfFeature(feature)
}
