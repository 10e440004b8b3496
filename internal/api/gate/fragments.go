package gate

import (
	"html/template"
	"net/url"
	"strings"

	"membership-app/config"
	"membership-app/internal/domain/access"
	"membership-app/internal/domain/tiers"

	"github.com/microcosm-cc/bluemonday"
)

var stripHTML = bluemonday.StrictPolicy()

var badgeTmpl = template.Must(template.New("badge").Parse(
	`<span class="lock-badge" data-reason="{{.Reason}}" title="{{.Message}}">🔒</span>`))

var overlayTmpl = template.Must(template.New("overlay").Parse(
	`<div class="lock-overlay" data-reason="{{.Reason}}">` +
		`<div class="lock-card">` +
		`<h3>{{.Title}}</h3>` +
		`<p>{{.Message}}</p>` +
		`<a class="lock-cta" href="{{.URL}}">{{.Label}}</a>` +
		`</div></div>`))

var chipTmpl = template.Must(template.New("chip").Parse(
	`<span class="tier-chip tier-{{.Tier}}">{{.Label}}</span>`))

func tierLabel(tier string) string {
	switch tier {
	case tiers.TierCore:
		return "Core"
	case tiers.TierEdge:
		return "Edge"
	default:
		return "Free"
	}
}

// actionFor picks the remediation for a lock: sign-in for anonymous
// visitors, upgrade otherwise. The region path rides along as `next` so the
// visitor lands back where they were.
func actionFor(ls access.LockState, fromPath string) *ActionDTO {
	if !ls.Locked {
		return nil
	}

	next := ""
	if fromPath != "" {
		next = "?next=" + url.QueryEscape(fromPath)
	}

	if ls.Reason == access.ReasonSignInRequired {
		return &ActionDTO{
			Kind:  "sign_in",
			Label: "Sign in",
			URL:   config.SIGNIN_PATH + next,
		}
	}

	target := config.UPGRADE_PATH + next
	if ls.RequiredTier != "" {
		sep := "?"
		if next != "" {
			sep = "&"
		}
		target += sep + "tier=" + ls.RequiredTier
	}
	label := "Upgrade"
	if ls.RequiredTier != "" {
		label = "Upgrade to " + tierLabel(ls.RequiredTier)
	}
	return &ActionDTO{Kind: "upgrade", Label: label, URL: target}
}

func lockMessage(ls access.LockState) string {
	switch ls.Reason {
	case access.ReasonSignInRequired:
		return "Sign in to view this section."
	case access.ReasonUpgradeRequired:
		return "This section needs the " + tierLabel(ls.RequiredTier) + " plan."
	case access.ReasonNotEntitled:
		if ls.RequiredTier != "" {
			return "This feature is part of the " + tierLabel(ls.RequiredTier) + " plan."
		}
		return "Your plan does not include this feature."
	}
	return ""
}

func lockTitle(ls access.LockState) string {
	if ls.Reason == access.ReasonSignInRequired {
		return "Members only"
	}
	return tierLabel(ls.RequiredTier) + " feature"
}

func renderBadge(ls access.LockState) string {
	var b strings.Builder
	_ = badgeTmpl.Execute(&b, map[string]string{
		"Reason":  string(ls.Reason),
		"Message": lockMessage(ls),
	})
	return b.String()
}

func renderOverlay(ls access.LockState, action *ActionDTO) string {
	data := map[string]string{
		"Reason":  string(ls.Reason),
		"Title":   lockTitle(ls),
		"Message": lockMessage(ls),
		"Label":   "",
		"URL":     "",
	}
	if action != nil {
		data["Label"] = action.Label
		data["URL"] = action.URL
	}
	var b strings.Builder
	_ = overlayTmpl.Execute(&b, data)
	return b.String()
}

func renderChip(tier, label string) string {
	var b strings.Builder
	_ = chipTmpl.Execute(&b, map[string]string{
		"Tier":  tier,
		"Label": stripHTML.Sanitize(label),
	})
	return b.String()
}
