package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/api-learning-hub/internal/service"
	"github.com/aliskhannn/api-learning-hub/internal/storage"
)

// Options tunes the bot.
type Options struct {
	CountOptions []int
	DefaultCount int
	Observer     service.QuizObserver
}

type Handler struct {
	bot      BotAPI
	logger   *zap.Logger
	bank     QuestionBank
	cards    CardService
	prefs    PreferencesService
	opts     Options
	selector *service.QuestionSelector
	engines  *storage.SessionStorage[int64, *service.QuizEngine]
	messages *storage.MessageStorage
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	bank QuestionBank,
	cards CardService,
	prefs PreferencesService,
	opts Options,
) *Handler {
	h := &Handler{
		bot:      bot,
		logger:   logger,
		bank:     bank,
		cards:    cards,
		prefs:    prefs,
		opts:     opts,
		selector: service.NewQuestionSelector(),
		messages: storage.NewMessageStorage(),
	}
	h.engines = storage.NewSessionStorage[int64, *service.QuizEngine](func(userID int64, e *service.QuizEngine) {
		e.Close()
		h.messages.Delete(userID)
	})
	return h
}

// Sessions exposes the per-user engines to the sweeper.
func (h *Handler) Sessions() *storage.SessionStorage[int64, *service.QuizEngine] {
	return h.engines
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start", "help":
			h.send(newHTMLMessage(chatID, welcomeText))

		case "quiz":
			_ = h.withErrorHandling(h.quizMenuHandler())(ctx, chatID)

		case "cards":
			text, kb := renderCategoryMenu()
			msg := newHTMLMessage(chatID, text)
			msg.ReplyMarkup = kb
			h.send(msg)

		case "random":
			_ = h.withErrorHandling(h.randomCardHandler(userID))(ctx, chatID)

		case "search":
			_ = h.withErrorHandling(h.searchHandler(update.Message.CommandArguments()))(ctx, chatID)

		case "bookmarks":
			_ = h.withErrorHandling(h.bookmarksHandler(userID))(ctx, chatID)

		case "achievements":
			_ = h.withErrorHandling(h.achievementsHandler(userID))(ctx, chatID)

		case "settings":
			_ = h.withErrorHandling(h.settingsHandler(userID))(ctx, chatID)

		default:
			h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(h.quizKeyHandler(userID, update.Message.Text))(ctx, chatID)
}

// handleCallback dispatches inline keyboard presses and always answers the
// callback so the client stops showing its spinner.
func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	notice := ""

	if cb.Message != nil {
		data := decodeCallback(cb.Data)
		chatID := cb.Message.Chat.ID

		var fn HandlerFunc
		switch data.Action {
		case actionQuiz:
			fn = h.quizCallbackHandler(cb, data, &notice)
		case actionCards:
			fn = h.cardsCallbackHandler(cb, data)
		case actionBookmark:
			fn = h.bookmarkCallbackHandler(cb, data, &notice)
		case actionSettings:
			fn = h.settingsCallbackHandler(cb, data)
		case actionAchievements:
			fn = h.achievementsHandler(cb.From.ID)
		default:
			h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		}

		if fn != nil {
			_ = h.withErrorHandling(fn)(ctx, chatID)
		}
	}

	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, notice)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		// Editing a message into identical content is rejected by Telegram.
		if strings.Contains(err.Error(), "message is not modified") {
			return
		}
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// edit replaces the message a callback came from.
func (h *Handler) edit(cb *tgbotapi.CallbackQuery, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	h.send(newHTMLEdit(cb.Message.Chat.ID, cb.Message.MessageID, text, kb))
}
