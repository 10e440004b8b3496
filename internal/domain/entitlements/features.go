package entitlements

import (
	"membership-app/internal/domain/tiers"
	"membership-app/internal/domain/users"
)

// Feature identifiers for gated product areas.
const (
	FeatureArchiveSearch      = "archive_search"
	FeatureDailyBriefing      = "daily_briefing"
	FeatureFrameworkLibrary   = "framework_library"
	FeatureSituationSimulator = "situation_simulator"
	FeatureScenarioExport     = "scenario_export"
)

// Feature pairs an identifier with the tier that owns it, so lock messaging
// never has to guess which upgrade unlocks a feature.
type Feature struct {
	Name string
	Tier string
}

// Catalog is the full feature table. A tier's default set is every feature
// whose owning tier ranks at or below it, so higher tiers are supersets of
// lower ones.
var Catalog = []Feature{
	{FeatureArchiveSearch, tiers.TierFree},
	{FeatureDailyBriefing, tiers.TierCore},
	{FeatureFrameworkLibrary, tiers.TierCore},
	{FeatureSituationSimulator, tiers.TierEdge},
	{FeatureScenarioExport, tiers.TierEdge},
}

// TierOfFeature returns the owning tier for a feature, or "" when the
// feature is unknown.
func TierOfFeature(name string) string {
	for _, f := range Catalog {
		if f.Name == name {
			return f.Tier
		}
	}
	return ""
}

// DefaultSet returns the features a tier is entitled to by default.
func DefaultSet(tier string) []string {
	rank := tiers.Rank(tier)
	var set []string
	for _, f := range Catalog {
		if tiers.Rank(f.Tier) <= rank {
			set = append(set, f.Name)
		}
	}
	return set
}

// EntitlementsOf resolves a user's effective feature set: the explicit
// override when present and non-empty, else the default set for their tier.
func EntitlementsOf(u users.User) []string {
	if len(u.Entitlements) > 0 {
		return u.Entitlements
	}
	return DefaultSet(users.TierOf(u))
}

// HasFeature reports whether the user is entitled to a feature.
func HasFeature(u users.User, feature string) bool {
	for _, name := range EntitlementsOf(u) {
		if name == feature {
			return true
		}
	}
	return false
}
