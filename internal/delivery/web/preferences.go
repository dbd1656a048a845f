package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

type preferencesResponse struct {
	UserID       int64    `json:"user_id"`
	DarkMode     bool     `json:"dark_mode"`
	Bookmarks    []int    `json:"bookmarks"`
	Achievements []string `json:"achievements"`
}

type bookmarkResponse struct {
	CardIndex  int                    `json:"card_index"`
	Bookmarked bool                   `json:"bookmarked"`
	Unlocked   []entities.Achievement `json:"unlocked"`
}

// GetPreferences handles GET /api/users/{userID}.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.prefs.GetOrCreate(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := preferencesResponse{UserID: p.UserID, DarkMode: p.DarkMode, Bookmarks: p.Bookmarks, Achievements: []string{}}
	if resp.Bookmarks == nil {
		resp.Bookmarks = []int{}
	}
	for _, a := range entities.Achievements {
		if p.Achievements[a.Key] {
			resp.Achievements = append(resp.Achievements, a.Key)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ToggleTheme handles POST /api/users/{userID}/theme.
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dark, err := h.prefs.ToggleDarkMode(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"dark_mode": dark})
}

// ListBookmarks handles GET /api/users/{userID}/bookmarks.
func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	cards, err := h.prefs.Bookmarks(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cardsResponse{Cards: nonNil(cards)})
}

// ToggleBookmark handles POST /api/users/{userID}/bookmarks/{index}.
func (h *Handler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	index, err := intParam(r, "index")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	bookmarked, unlocked, err := h.prefs.ToggleBookmark(r.Context(), userID, index)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if unlocked == nil {
		unlocked = []entities.Achievement{}
	}
	writeJSON(w, http.StatusOK, bookmarkResponse{CardIndex: index, Bookmarked: bookmarked, Unlocked: unlocked})
}

// ListAchievements handles GET /api/users/{userID}/achievements.
func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	statuses, err := h.prefs.Achievements(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func userIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid user id", errBadRequest)
	}
	return id, nil
}
