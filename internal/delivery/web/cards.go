package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

type cardsResponse struct {
	Category string          `json:"category,omitempty"`
	Title    string          `json:"title,omitempty"`
	Query    string          `json:"query,omitempty"`
	Cards    []entities.Card `json:"cards"`
}

// ListCards handles GET /api/cards?category=.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	cards, err := h.cards.GetByCategory(r.Context(), category)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	c := entities.CardCategory(category)
	if category == "" {
		c = entities.CategoryAll
	}
	writeJSON(w, http.StatusOK, cardsResponse{Category: string(c), Title: c.Title(), Cards: nonNil(cards)})
}

// RandomCard handles GET /api/cards/random.
func (h *Handler) RandomCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.cards.GetRandom(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// SearchCards handles GET /api/cards/search?q=.
func (h *Handler) SearchCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	cards, err := h.cards.Search(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cardsResponse{Query: q, Cards: nonNil(cards)})
}

// GetCard handles GET /api/cards/{index}.
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	card, err := h.cards.GetByIndex(r.Context(), index)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func intParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", errBadRequest, name)
	}
	return v, nil
}

func nonNil(cards []entities.Card) []entities.Card {
	if cards == nil {
		return []entities.Card{}
	}
	return cards
}
