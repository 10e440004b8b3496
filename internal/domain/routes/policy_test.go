package routes

import (
	"testing"

	"membership-app/internal/domain/tiers"
	"membership-app/internal/domain/users"
)

func TestPolicyForLongestPrefixWins(t *testing.T) {
	// /tools/ is free but the framework pages underneath are core.
	p := PolicyFor("/tools/framework-1")
	if p == nil {
		t.Fatal("expected a policy for /tools/framework-1")
	}
	if p.MinTier != tiers.TierCore {
		t.Errorf("MinTier = %q, want core (longest prefix)", p.MinTier)
	}

	p = PolicyFor("/tools/checklist")
	if p == nil || p.MinTier != tiers.TierFree {
		t.Errorf("plain tools page should match the /tools/ policy, got %+v", p)
	}
}

func TestPolicyForUnmatched(t *testing.T) {
	for _, path := range []string{"/", "/about", "/pricing"} {
		if p := PolicyFor(path); p != nil {
			t.Errorf("PolicyFor(%q) = %+v, want nil", path, p)
		}
	}
}

func TestPolicyForExactPrefixMatch(t *testing.T) {
	if p := PolicyFor("/account"); p == nil || p.MinTier != tiers.TierFree {
		t.Errorf("exact match on /account failed, got %+v", p)
	}
}

func TestPolicyTieBreakFirstDeclared(t *testing.T) {
	table := []Policy{
		{"/x/", tiers.TierCore},
		{"/x/", tiers.TierEdge},
	}
	p := policyIn(table, "/x/page")
	if p == nil || p.MinTier != tiers.TierCore {
		t.Errorf("equal-length prefixes should break first-declared, got %+v", p)
	}
}

func TestCanAccess(t *testing.T) {
	anon := users.Anonymous
	free := users.User{ID: "u1", Tier: tiers.TierFree}
	edge := users.User{ID: "u2", Tier: tiers.TierEdge}

	cases := []struct {
		name string
		u    users.User
		path string
		want bool
	}{
		{"anonymous unmatched path", anon, "/about", true},
		{"anonymous edge briefing", anon, "/edge/briefing", false},
		{"anonymous free-gated tools", anon, "/tools/checklist", false},
		{"free user tools", free, "/tools/checklist", true},
		{"free user framework page", free, "/tools/framework-1", false},
		{"edge user edge briefing", edge, "/edge/briefing", true},
	}
	for _, tc := range cases {
		if got := CanAccess(tc.u, tc.path); got != tc.want {
			t.Errorf("%s: CanAccess = %v, want %v", tc.name, got, tc.want)
		}
	}
}
