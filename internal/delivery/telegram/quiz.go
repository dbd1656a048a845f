package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/service"
)

// engine returns the user's quiz engine, creating it on first use.
func (h *Handler) engine(userID, chatID int64) *service.QuizEngine {
	return h.engines.GetOrCreate(userID, func() *service.QuizEngine {
		opts := []service.QuizOption{
			service.WithSelector(h.selector),
			service.WithFinishHook(func(r entities.QuizResults) {
				h.recordQuiz(userID, chatID, r)
			}),
		}
		if h.opts.Observer != nil {
			opts = append(opts, service.WithObserver(h.opts.Observer))
		}
		return service.NewQuizEngine(h.bank, opts...)
	})
}

func (h *Handler) recordQuiz(userID, chatID int64, r entities.QuizResults) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	unlocked, err := h.prefs.RecordQuiz(ctx, userID, r)
	if err != nil {
		h.logger.Error("failed to record quiz achievements",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}

	for _, a := range unlocked {
		h.send(newHTMLMessage(chatID, achievementText(a.Name, a.Description)))
	}
}

func (h *Handler) quizMenuHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb := renderLevelMenu(h.bank)
		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return nil
	}
}

// quizCallbackHandler handles every "quiz:*" button. Buttons that act on a
// running session are only accepted from the user's current quiz message.
func (h *Handler) quizCallbackHandler(cb *tgbotapi.CallbackQuery, data callbackData, notice *string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		userID := cb.From.ID

		switch data.param(0) {
		case quizMenu:
			text, kb := renderLevelMenu(h.bank)
			h.edit(cb, text, &kb)
			return nil

		case quizLevel:
			level, err := entities.ParseLevel(data.param(1))
			if err != nil {
				*notice = err.Error()
				return nil
			}
			text, kb := renderCountMenu(level, h.bank.Size(level), h.opts.CountOptions, h.opts.DefaultCount)
			h.edit(cb, text, &kb)
			return nil

		case quizCount:
			level, err := entities.ParseLevel(data.param(1))
			if err != nil {
				*notice = err.Error()
				return nil
			}
			count, ok := data.intParam(2)
			if !ok {
				count = h.opts.DefaultCount
			}

			v, err := h.engine(userID, chatID).Start(ctx, level, count)
			if err != nil {
				if errors.Is(err, service.ErrInvalidCount) {
					*notice = err.Error()
					return nil
				}
				return err
			}

			h.replaceQuizMessage(userID, chatID, cb.Message.MessageID)
			text, kb := renderQuiz(v, h.bank)
			h.edit(cb, text, &kb)
			return nil
		}

		ref, ok := h.messages.Get(userID)
		e, hasEngine := h.engines.Get(userID)
		if !ok || !hasEngine || ref.ChatID != chatID || ref.MessageID != cb.Message.MessageID {
			*notice = msgQuizInactive
			h.stripKeyboard(chatID, cb.Message.MessageID)
			return nil
		}

		var (
			v   service.QuizView
			err error
		)
		switch data.param(0) {
		case quizAnswer:
			i, ok := data.intParam(1)
			if !ok {
				return nil
			}
			v, err = e.SelectAnswer(i)
		case quizNext:
			v, err = e.Next()
		case quizPrevious:
			v, err = e.Previous()
		case quizFinish:
			v, err = e.Finish()
		case quizRestart:
			v, err = e.Restart(ctx)
		case quizReview:
			v, err = e.Review()
		case quizQuit:
			v = e.View()
			if v.State == entities.QuizInProgress {
				kb := quitConfirmKeyboard()
				h.edit(cb, renderQuestion(v)+"\n\n"+msgQuitConfirm, &kb)
				return nil
			}
			v = e.BackToSelect()
		case quizQuitYes:
			v, err = e.Quit(true)
		case quizQuitNo:
			v = e.View()
		case quizBackToMenu:
			v = e.BackToSelect()
		default:
			h.logger.Debug("unknown quiz callback", zap.String("data", data.Raw))
			return nil
		}

		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			*notice = msgNoActiveQuiz
		case errors.Is(err, service.ErrAnswerOutOfRange):
			*notice = err.Error()
			return nil
		case err != nil:
			return err
		}

		if v.State == entities.QuizIdle {
			h.messages.Delete(userID)
		}

		text, kb := renderQuiz(v, h.bank)
		h.edit(cb, text, &kb)
		return nil
	}
}

// quizKeyHandler lets users drive a running quiz with text replies. The
// updated question is posted as a new message that becomes the quiz message.
func (h *Handler) quizKeyHandler(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		key, ok := parseQuizKey(text)
		if !ok {
			h.send(newHTMLMessage(chatID, msgUnknownCommand))
			return nil
		}

		e, ok := h.engines.Get(userID)
		if !ok || e.State() == entities.QuizIdle {
			h.send(newHTMLMessage(chatID, msgNoActiveQuiz))
			return nil
		}

		v, err := e.HandleKey(key)
		if err != nil {
			return err
		}

		body, kb := renderQuiz(v, h.bank)
		msg := newHTMLMessage(chatID, body)
		msg.ReplyMarkup = kb

		sent, err := h.bot.Send(msg)
		if err != nil {
			return err
		}
		h.replaceQuizMessage(userID, chatID, sent.MessageID)
		return nil
	}
}

// replaceQuizMessage makes messageID the user's quiz message and strips the
// keyboard of the previous one.
func (h *Handler) replaceQuizMessage(userID, chatID int64, messageID int) {
	if prev, ok := h.messages.Get(userID); ok && (prev.ChatID != chatID || prev.MessageID != messageID) {
		h.stripKeyboard(prev.ChatID, prev.MessageID)
	}
	h.messages.Store(userID, chatID, messageID)
}

func (h *Handler) stripKeyboard(chatID int64, messageID int) {
	h.send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	}))
}

// parseQuizKey maps a text reply onto an engine key.
func parseQuizKey(text string) (string, bool) {
	switch t := strings.ToLower(strings.TrimSpace(text)); t {
	case "1", "2", "3", "4":
		return t, true
	case "a", "b", "c", "d":
		return string(rune('1' + t[0] - 'a')), true
	case ">", "next", "n":
		return service.KeyArrowRight, true
	case "<", "prev", "previous", "p":
		return service.KeyArrowLeft, true
	default:
		return "", false
	}
}
