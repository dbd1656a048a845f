package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/repository"
)

const maxSearchResults = 10

// cardAt returns the card at position pos of a category listing and the listing size.
func (h *Handler) cardAt(ctx context.Context, category entities.CardCategory, pos int) (entities.Card, int, error) {
	cards, err := h.cards.GetByCategory(ctx, string(category))
	if err != nil {
		return entities.Card{}, 0, err
	}
	if pos < 0 || pos >= len(cards) {
		return entities.Card{}, len(cards), repository.ErrCardNotFound
	}
	return cards[pos], len(cards), nil
}

func (h *Handler) isBookmarked(ctx context.Context, userID int64, cardIndex int) (bool, error) {
	p, err := h.prefs.GetOrCreate(ctx, userID)
	if err != nil {
		return false, err
	}
	return p.IsBookmarked(cardIndex), nil
}

func (h *Handler) randomCardHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		card, err := h.cards.GetRandom(ctx)
		if err != nil {
			return err
		}

		all, err := h.cards.GetByCategory(ctx, string(entities.CategoryAll))
		if err != nil {
			return err
		}

		bookmarked, err := h.isBookmarked(ctx, userID, card.Index)
		if err != nil {
			return err
		}

		// Deck order equals the "all" listing order, so the card index is its position.
		text, kb := renderCard(card, entities.CategoryAll, card.Index, len(all), bookmarked)
		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return nil
	}
}

func (h *Handler) searchHandler(query string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		query = strings.TrimSpace(query)
		if query == "" {
			h.send(newHTMLMessage(chatID, esc(msgSearchUsage)))
			return nil
		}

		cards, err := h.cards.Search(ctx, query)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			h.send(newHTMLMessage(chatID, fmt.Sprintf(msgNothingFound, esc(query))))
			return nil
		}

		header := fmt.Sprintf("🔎 <b>%d</b> result(s) for %s", len(cards), bold(query))
		if len(cards) > maxSearchResults {
			cards = cards[:maxSearchResults]
			header += fmt.Sprintf("\n<i>Showing the first %d.</i>", maxSearchResults)
		}

		text, kb := renderCardList(header, cards)
		msg := newHTMLMessage(chatID, text)
		if kb != nil {
			msg.ReplyMarkup = *kb
		}
		h.send(msg)
		return nil
	}
}

func (h *Handler) bookmarksHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		cards, err := h.prefs.Bookmarks(ctx, userID)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			h.send(newHTMLMessage(chatID, msgNoBookmarks))
			return nil
		}

		text, kb := renderCardList(fmt.Sprintf("<b>⭐ Bookmarks</b> · %d", len(cards)), cards)
		msg := newHTMLMessage(chatID, text)
		if kb != nil {
			msg.ReplyMarkup = *kb
		}
		h.send(msg)
		return nil
	}
}

// cardsCallbackHandler handles "cards:menu" and "cards:show:<category>:<pos>".
func (h *Handler) cardsCallbackHandler(cb *tgbotapi.CallbackQuery, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if data.param(0) != cardsShow {
			text, kb := renderCategoryMenu()
			h.edit(cb, text, &kb)
			return nil
		}

		category := entities.CardCategory(data.param(1))
		pos, ok := data.intParam(2)
		if !ok {
			return nil
		}
		return h.showCard(ctx, cb, category, pos)
	}
}

// bookmarkCallbackHandler handles "bm:<category>:<pos>".
func (h *Handler) bookmarkCallbackHandler(cb *tgbotapi.CallbackQuery, data callbackData, notice *string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		category := entities.CardCategory(data.param(0))
		pos, ok := data.intParam(1)
		if !ok {
			return nil
		}

		card, _, err := h.cardAt(ctx, category, pos)
		if err != nil {
			if errors.Is(err, repository.ErrCardNotFound) || errors.Is(err, entities.ErrInvalidCategory) {
				return nil
			}
			return err
		}

		bookmarked, unlocked, err := h.prefs.ToggleBookmark(ctx, cb.From.ID, card.Index)
		if err != nil {
			return err
		}

		*notice = "Removed from bookmarks"
		if bookmarked {
			*notice = "Bookmarked ⭐"
		}
		for _, a := range unlocked {
			h.send(newHTMLMessage(chatID, achievementText(a.Name, a.Description)))
		}

		return h.showCard(ctx, cb, category, pos)
	}
}

func (h *Handler) showCard(ctx context.Context, cb *tgbotapi.CallbackQuery, category entities.CardCategory, pos int) error {
	card, total, err := h.cardAt(ctx, category, pos)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) || errors.Is(err, entities.ErrInvalidCategory) {
			text, kb := renderCategoryMenu()
			h.edit(cb, text, &kb)
			return nil
		}
		return err
	}

	bookmarked, err := h.isBookmarked(ctx, cb.From.ID, card.Index)
	if err != nil {
		return err
	}

	text, kb := renderCard(card, category, pos, total, bookmarked)
	h.edit(cb, text, &kb)
	return nil
}
