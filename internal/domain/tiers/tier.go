package tiers

import "strings"

// Tier constants (single source of truth)
const (
	TierFree = "free"
	TierCore = "core"
	TierEdge = "edge"
)

// Rank returns the ordering position of a tier. Higher rank includes lower.
// Unknown tiers rank as free.
func Rank(tier string) int {
	switch tier {
	case TierCore:
		return 2
	case TierEdge:
		return 3
	default:
		return 1
	}
}

// Normalize maps a raw tier string (including legacy plan names still found
// in older profile records) onto the canonical tier set.
// Priority:
// 1. Canonical value as-is
// 2. Legacy synonym mapping
// 3. Fallback to free (most restrictive)
func Normalize(raw string) string {
	tier := strings.ToLower(strings.TrimSpace(raw))
	switch tier {
	case TierFree, TierCore, TierEdge:
		return tier
	}

	switch tier {
	case "basic", "starter":
		return TierFree
	case "standard", "plus", "member":
		return TierCore
	case "pro", "premium", "max":
		return TierEdge
	}

	return TierFree
}

// Valid reports whether raw is already a canonical tier name.
func Valid(raw string) bool {
	switch raw {
	case TierFree, TierCore, TierEdge:
		return true
	}
	return false
}
