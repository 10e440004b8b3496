package content

import "time"

// Page is one piece of gated site content (a briefing, a tool page).
// Which tiers may load it is decided by the route policy table, not here.
type Page struct {
	ID      uint   `gorm:"primaryKey"`
	Path    string `gorm:"not null;uniqueIndex:idx_pages_path"`
	Title   string
	Summary string
	Body    string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
