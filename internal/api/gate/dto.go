package gate

// Region gate modes. Hide removes the region from layout, disable keeps it
// visible but inert behind a lock badge, overlay covers it with a card
// explaining the lock.
const (
	ModeHide    = "hide"
	ModeDisable = "disable"
	ModeOverlay = "overlay"
)

type RegionRequest struct {
	Feature string `json:"feature"`
	MinTier string `json:"min_tier"`
	Mode    string `json:"mode"`
}

type ActionDTO struct {
	Kind  string `json:"kind"` // sign_in | upgrade
	Label string `json:"label"`
	URL   string `json:"url"`
}

type RegionResponse struct {
	Locked       bool       `json:"locked"`
	Reason       string     `json:"reason,omitempty"`
	RequiredTier string     `json:"required_tier,omitempty"`
	CurrentTier  string     `json:"current_tier"`
	Mode         string     `json:"mode"`
	Action       *ActionDTO `json:"action,omitempty"`

	// Fragment is the pre-rendered HTML the client drops into the region:
	// empty for hide, a badge for disable, a card for overlay.
	Fragment string `json:"fragment"`
}

type ChipResponse struct {
	Tier     string `json:"tier"`
	Guest    bool   `json:"guest"`
	Label    string `json:"label"`
	Link     string `json:"link"` // sign-in for guests, profile otherwise
	Fragment string `json:"fragment"`
}
