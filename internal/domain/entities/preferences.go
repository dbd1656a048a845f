package entities

import (
	"slices"
	"time"
)

// Preferences stores the per-user state that the web app kept in local storage.
type Preferences struct {
	UserID       int64
	DarkMode     bool
	Bookmarks    []int           // card indexes in bookmark order
	Achievements map[string]bool // unlocked achievement keys
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewPreferences creates a Preferences instance with default values.
func NewPreferences(userID int64) *Preferences {
	now := time.Now()
	return &Preferences{
		UserID:       userID,
		DarkMode:     true,
		Bookmarks:    []int{},
		Achievements: map[string]bool{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsBookmarked reports whether the card index is bookmarked.
func (p *Preferences) IsBookmarked(cardIndex int) bool {
	return slices.Contains(p.Bookmarks, cardIndex)
}

// ToggleBookmark adds or removes a card index and reports whether it is now bookmarked.
func (p *Preferences) ToggleBookmark(cardIndex int) bool {
	if i := slices.Index(p.Bookmarks, cardIndex); i >= 0 {
		p.Bookmarks = slices.Delete(p.Bookmarks, i, i+1)
		return false
	}
	p.Bookmarks = append(p.Bookmarks, cardIndex)
	return true
}

// Unlock marks an achievement as unlocked and reports whether it was new.
func (p *Preferences) Unlock(key string) bool {
	if p.Achievements == nil {
		p.Achievements = map[string]bool{}
	}
	if p.Achievements[key] {
		return false
	}
	p.Achievements[key] = true
	return true
}
