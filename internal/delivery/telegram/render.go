package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/service"
)

const progressBarLength = 10

var levelIcons = map[entities.Level]string{
	entities.LevelBeginner:     "🟢",
	entities.LevelIntermediate: "🟡",
	entities.LevelAdvanced:     "🔴",
}

// renderLevelMenu builds the level picker.
func renderLevelMenu(bank QuestionBank) (string, tgbotapi.InlineKeyboardMarkup) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, level := range entities.Levels {
		label := fmt.Sprintf("%s %s · %d questions", levelIcons[level], level.Title(), bank.Size(level))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildQuizLevelCallback(level)),
		))
	}
	return msgChooseLevel, tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderCountMenu builds the question count picker for a level. Options
// larger than the bank are shown capped to the bank size.
func renderCountMenu(level entities.Level, size int, options []int, defaultCount int) (string, tgbotapi.InlineKeyboardMarkup) {
	text := fmt.Sprintf("<b>%s %s</b>\n\nHow many questions? The bank has %d.",
		levelIcons[level], esc(level.Title()), size)

	var row []tgbotapi.InlineKeyboardButton
	seen := make(map[int]bool, len(options))
	for _, n := range options {
		count := min(n, size)
		if count < 1 || seen[count] {
			continue
		}
		seen[count] = true

		label := strconv.Itoa(count)
		if n == defaultCount {
			label = "• " + label + " •"
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildQuizCountCallback(level, count)))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Levels", buildQuizCallback(quizMenu)),
		),
	)
	return text, kb
}

// renderQuiz renders a quiz view. Idle views render the level picker.
func renderQuiz(v service.QuizView, bank QuestionBank) (string, tgbotapi.InlineKeyboardMarkup) {
	switch v.State {
	case entities.QuizFinished:
		return renderResults(v), resultsKeyboard()
	case entities.QuizInProgress, entities.QuizReviewing:
		return renderQuestion(v), questionKeyboard(v)
	default:
		return renderLevelMenu(bank)
	}
}

func renderQuestion(v service.QuizView) string {
	var sb strings.Builder

	title := esc(v.Title)
	if v.State == entities.QuizReviewing {
		title += " · review"
	}
	fmt.Fprintf(&sb, "<b>%s</b>\n", title)
	fmt.Fprintf(&sb, "Question %d/%d · ⏱ %s · ✅ %s\n", v.Number, v.Total, v.ElapsedText, v.ScoreText)
	fmt.Fprintf(&sb, "%s %d%%\n\n", buildProgressBar(v.Progress, progressBarLength), v.Progress)
	fmt.Fprintf(&sb, "%s\n\n", bold(v.Question))

	for _, o := range v.Options {
		mark := "▫️"
		switch {
		case o.Correct:
			mark = "✅"
		case o.Incorrect:
			mark = "❌"
		}
		text := esc(o.Text)
		if o.Selected {
			text = "<u>" + text + "</u>"
		}
		fmt.Fprintf(&sb, "%s <b>%s.</b> %s\n", mark, o.Letter, text)
	}

	if v.Explanation != "" {
		fmt.Fprintf(&sb, "\n💡 <i>%s</i>", esc(v.Explanation))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func renderResults(v service.QuizView) string {
	r := v.Results
	if r == nil {
		return esc(v.Title)
	}

	return fmt.Sprintf(
		"<b>%s</b>\n\n<b>%s</b>\n%s\n\n%s %d%%\n\n✅ Correct: %d\n❌ Incorrect: %d\n⏱ Time: %s\n🎯 Score: %s",
		esc(v.Title),
		esc(r.Title),
		esc(r.Message),
		buildProgressBar(r.Percentage, progressBarLength),
		r.Percentage,
		r.Correct,
		r.Incorrect,
		r.ElapsedText,
		r.Fraction,
	)
}

func questionKeyboard(v service.QuizView) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if v.State == entities.QuizInProgress && !v.Answered {
		var row []tgbotapi.InlineKeyboardButton
		for i, o := range v.Options {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(o.Letter, buildQuizAnswerCallback(i)))
		}
		rows = append(rows, row)
	}

	var nav []tgbotapi.InlineKeyboardButton
	if v.CanPrevious {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildQuizCallback(quizPrevious)))
	}
	if v.CanNext {
		label := "Next ▶️"
		if v.IsLast {
			label = "Finish 🏁"
			if v.State == entities.QuizReviewing {
				label = "Results 📊"
			}
		}
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(label, buildQuizCallback(quizNext)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	if v.State == entities.QuizInProgress {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏁 Finish now", buildQuizCallback(quizFinish)),
			tgbotapi.NewInlineKeyboardButtonData("✖️ Quit", buildQuizCallback(quizQuit)),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Levels", buildQuizCallback(quizBackToMenu)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func resultsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 Review answers", buildQuizCallback(quizReview)),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Try again", buildQuizCallback(quizRestart)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Levels", buildQuizCallback(quizBackToMenu)),
			tgbotapi.NewInlineKeyboardButtonData("🏅 Achievements", buildAchievementsCallback()),
		),
	)
}

func quitConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes, quit", buildQuizCallback(quizQuitYes)),
			tgbotapi.NewInlineKeyboardButtonData("Keep going", buildQuizCallback(quizQuitNo)),
		),
	)
}

// renderCategoryMenu builds the flashcard category picker.
func renderCategoryMenu() (string, tgbotapi.InlineKeyboardMarkup) {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 "+entities.CategoryAll.Title(), buildCardCallback(entities.CategoryAll, 0)),
		),
	}

	var row []tgbotapi.InlineKeyboardButton
	for _, c := range entities.CardCategories {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Title(), buildCardCallback(c, 0)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return msgChooseCategory, tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderCard renders the card at position pos of a category listing.
func renderCard(card entities.Card, category entities.CardCategory, pos, total int, bookmarked bool) (string, tgbotapi.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"<b>%s</b> · card %d/%d\n\n❓ %s\n\n💡 <tg-spoiler>%s</tg-spoiler>",
		esc(category.Title()), pos+1, total,
		bold(card.Question),
		esc(card.Answer),
	)

	var nav []tgbotapi.InlineKeyboardButton
	if pos > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️", buildCardCallback(category, pos-1)))
	}
	if pos < total-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("▶️", buildCardCallback(category, pos+1)))
	}

	star := "☆ Bookmark"
	if bookmarked {
		star = "★ Bookmarked"
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(star, buildBookmarkCallback(category, pos)),
		tgbotapi.NewInlineKeyboardButtonData("« Categories", buildCardsMenuCallback()),
	))

	return text, tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderCardList renders a list of cards with a button opening each one.
func renderCardList(header string, cards []entities.Card) (string, *tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, c := range cards {
		fmt.Fprintf(&sb, "\n%d. %s <i>(%s)</i>", i+1, esc(c.Question), esc(c.Category.Title()))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%d. %s", i+1, truncate(c.Question, 40)),
				buildCardCallback(entities.CategoryAll, c.Index),
			),
		))
	}

	if len(rows) == 0 {
		return sb.String(), nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return sb.String(), &kb
}

func renderAchievements(statuses []service.AchievementStatus) string {
	var sb strings.Builder
	unlocked := 0
	for _, s := range statuses {
		if s.Unlocked {
			unlocked++
		}
	}

	fmt.Fprintf(&sb, "<b>🏅 Achievements</b> · %d/%d\n", unlocked, len(statuses))
	for _, s := range statuses {
		mark := "🔒"
		if s.Unlocked {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "\n%s %s\n<i>%s</i>", mark, bold(s.Name), esc(s.Description))
	}
	return sb.String()
}

func renderSettings(darkMode bool) (string, tgbotapi.InlineKeyboardMarkup) {
	theme, next := "🌙 Dark", "☀️ Switch to light"
	if !darkMode {
		theme, next = "☀️ Light", "🌙 Switch to dark"
	}

	text := fmt.Sprintf("<b>⚙️ Settings</b>\n\nTheme: <b>%s</b>\n<i>The theme also applies to the web app background.</i>", theme)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(next, buildSettingsCallback(settingsTheme)),
		),
	)
	return text, kb
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
