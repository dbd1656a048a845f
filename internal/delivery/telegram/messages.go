// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgInternalError     = "Something went wrong. Please try again later."
	msgUnknownCommand    = "Unknown command. Send /help to see what I can do."
	msgChooseLevel       = "<b>🧠 API Quiz</b>\n\nChoose a level:"
	msgQuitConfirm       = "⚠️ <b>Quit this quiz?</b> Your progress will be lost."
	msgQuizInactive      = "This quiz is no longer active."
	msgNoActiveQuiz      = "You have no quiz running. Start one with /quiz."
	msgNoBookmarks       = "You have no bookmarks yet. Open /cards and tap ☆ to save a card."
	msgSearchUsage       = "Usage: /search <text>, for example /search patch"
	msgNothingFound      = "Nothing found for <b>%s</b>."
	msgChooseCategory    = "<b>🗂 Flashcards</b>\n\nPick a category:"
	msgAchievementPrefix = "🏅 <b>Achievement unlocked:</b> %s\n<i>%s</i>"
)

const welcomeText = `<b>👋 Welcome to API Learning Hub!</b>

Practise REST and HTTP fundamentals right here in Telegram.

/quiz — take a timed quiz (beginner, intermediate or advanced)
/cards — browse viva flashcards by category
/random — show a random flashcard
/search <i>text</i> — search the flashcards
/bookmarks — your saved flashcards
/achievements — badges you have earned
/settings — switch between dark and light theme
/help — show this message

During a quiz you can also reply with <b>1</b>-<b>4</b> or <b>A</b>-<b>D</b> to answer and <b>&gt;</b> / <b>&lt;</b> to move between questions.`

// esc escapes plain text for HTML parse mode.
func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

func bold(s string) string {
	return "<b>" + esc(s) + "</b>"
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	return msg
}

// newHTMLEdit replaces the text of a message and its keyboard. A nil keyboard removes it.
func newHTMLEdit(chatID int64, msgID int, text string, kb *tgbotapi.InlineKeyboardMarkup) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true
	if kb != nil {
		edit.ReplyMarkup = kb
	}
	return edit
}

// buildProgressBar creates a text progress bar for a percentage.
func buildProgressBar(percent, length int) string {
	filled := percent * length / 100
	filled = max(0, min(filled, length))
	return strings.Repeat("▰", filled) + strings.Repeat("▱", length-filled)
}

func achievementText(title, description string) string {
	return fmt.Sprintf(msgAchievementPrefix, esc(title), esc(description))
}
