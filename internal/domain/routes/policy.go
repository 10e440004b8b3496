package routes

import (
	"strings"

	"membership-app/internal/domain/access"
	"membership-app/internal/domain/tiers"
	"membership-app/internal/domain/users"
)

// Policy gates every path under a prefix behind a minimum tier.
type Policy struct {
	Prefix  string
	MinTier string
}

// Table is the site's route policy table. Order only matters for breaking
// ties between equal-length prefixes; specificity is decided at match time.
var Table = []Policy{
	{"/tools/", tiers.TierFree},
	{"/tools/framework-", tiers.TierCore},
	{"/core/", tiers.TierCore},
	{"/edge/", tiers.TierEdge},
	{"/account", tiers.TierFree},
}

// PolicyFor selects the policy whose prefix is the longest match for path,
// or nil when no policy matches. Equal-length prefixes break by declaration
// order: first declared wins.
func PolicyFor(path string) *Policy {
	return policyIn(Table, path)
}

func policyIn(table []Policy, path string) *Policy {
	var best *Policy
	for i := range table {
		p := &table[i]
		if path != p.Prefix && !strings.HasPrefix(path, p.Prefix) {
			continue
		}
		if best == nil || len(p.Prefix) > len(best.Prefix) {
			best = p
		}
	}
	return best
}

// CanAccess reports whether the user may load a path. Unmatched paths are
// public.
func CanAccess(u users.User, path string) bool {
	p := PolicyFor(path)
	if p == nil {
		return true
	}
	return access.MeetsTier(u, p.MinTier)
}
