package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/service"
)

func buttons(kb tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			out = append(out, b.Text)
		}
	}
	return out
}

func questionView() service.QuizView {
	return service.QuizView{
		State:       entities.QuizInProgress,
		Title:       "Beginner Quiz",
		Number:      1,
		Total:       5,
		Question:    "Which method is idempotent?",
		ScoreText:   "0/0",
		ElapsedText: "0:07",
		Progress:    20,
		Options: []service.OptionView{
			{Letter: "A", Text: "POST"},
			{Letter: "B", Text: "PUT"},
			{Letter: "C", Text: "PATCH <maybe>"},
			{Letter: "D", Text: "CONNECT"},
		},
	}
}

func TestRenderQuestionUnanswered(t *testing.T) {
	v := questionView()

	text := renderQuestion(v)
	assert.Contains(t, text, "Question 1/5")
	assert.Contains(t, text, "⏱ 0:07")
	assert.Contains(t, text, "PATCH &lt;maybe&gt;")
	assert.NotContains(t, text, "💡")

	kb := questionKeyboard(v)
	assert.Equal(t, []string{"A", "B", "C", "D", "🏁 Finish now", "✖️ Quit"}, buttons(kb))
}

func TestRenderQuestionAnswered(t *testing.T) {
	v := questionView()
	v.Answered, v.Replay, v.CanNext, v.CanPrevious = true, true, true, true
	v.Explanation = "PUT replaces the resource."
	v.Options[0].Selected, v.Options[0].Incorrect = true, true
	v.Options[1].Correct = true

	text := renderQuestion(v)
	assert.Contains(t, text, "❌ <b>A.</b> <u>POST</u>")
	assert.Contains(t, text, "✅ <b>B.</b> PUT")
	assert.Contains(t, text, "💡 <i>PUT replaces the resource.</i>")

	kb := questionKeyboard(v)
	assert.Equal(t, []string{"◀️ Previous", "Next ▶️", "🏁 Finish now", "✖️ Quit"}, buttons(kb))

	v.IsLast = true
	assert.Contains(t, buttons(questionKeyboard(v)), "Finish 🏁")

	v.State = entities.QuizReviewing
	assert.Equal(t, []string{"◀️ Previous", "Results 📊", "« Levels"}, buttons(questionKeyboard(v)))
}

func TestRenderResults(t *testing.T) {
	v := service.QuizView{
		State: entities.QuizFinished,
		Title: "Beginner Quiz",
		Results: &service.ResultsView{
			Percentage:  67,
			Fraction:    "2/3",
			Correct:     2,
			Incorrect:   1,
			ElapsedText: "1:05",
			Title:       entities.TierAverage.Title(),
			Message:     entities.TierAverage.Message(),
		},
	}

	text, kb := renderQuiz(v, nil)
	assert.Contains(t, text, "67%")
	assert.Contains(t, text, "Score: 2/3")
	assert.Contains(t, text, "Time: 1:05")
	assert.Contains(t, buttons(kb), "🔍 Review answers")
	assert.Contains(t, buttons(kb), "🔄 Try again")
}

func TestRenderCountMenuCapsToBank(t *testing.T) {
	_, kb := renderCountMenu(entities.LevelBeginner, 10, []int{5, 10, 15, 20}, 10)
	assert.Equal(t, []string{"5", "• 10 •", "« Levels"}, buttons(kb))

	require.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "quiz:count:beginner:10", *kb.InlineKeyboard[0][1].CallbackData)
}

func TestRenderCard(t *testing.T) {
	card := entities.Card{Index: 3, Category: entities.CategoryMethods, Question: "What is HEAD?", Answer: "GET without a body"}

	text, kb := renderCard(card, entities.CategoryMethods, 0, 7, false)
	assert.Contains(t, text, "card 1/7")
	assert.Contains(t, text, "<tg-spoiler>GET without a body</tg-spoiler>")
	assert.Equal(t, []string{"▶️", "☆ Bookmark", "« Categories"}, buttons(kb))

	_, kb = renderCard(card, entities.CategoryMethods, 6, 7, true)
	assert.Equal(t, []string{"◀️", "★ Bookmarked", "« Categories"}, buttons(kb))
}

func TestBuildProgressBar(t *testing.T) {
	assert.Equal(t, "▱▱▱▱▱▱▱▱▱▱", buildProgressBar(0, 10))
	assert.Equal(t, "▰▰▰▰▰▱▱▱▱▱", buildProgressBar(50, 10))
	assert.Equal(t, "▰▰▰▰▰▰▰▰▰▰", buildProgressBar(120, 10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
