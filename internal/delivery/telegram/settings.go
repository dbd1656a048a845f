package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) settingsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		p, err := h.prefs.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		text, kb := renderSettings(p.DarkMode)
		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return nil
	}
}

// settingsCallbackHandler handles "settings:menu" and "settings:theme".
func (h *Handler) settingsCallbackHandler(cb *tgbotapi.CallbackQuery, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		var dark bool
		switch data.param(0) {
		case settingsTheme:
			var err error
			if dark, err = h.prefs.ToggleDarkMode(ctx, cb.From.ID); err != nil {
				return err
			}
		default:
			p, err := h.prefs.GetOrCreate(ctx, cb.From.ID)
			if err != nil {
				return err
			}
			dark = p.DarkMode
		}

		text, kb := renderSettings(dark)
		h.edit(cb, text, &kb)
		return nil
	}
}

func (h *Handler) achievementsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		statuses, err := h.prefs.Achievements(ctx, userID)
		if err != nil {
			return err
		}
		h.send(newHTMLMessage(chatID, renderAchievements(statuses)))
		return nil
	}
}
