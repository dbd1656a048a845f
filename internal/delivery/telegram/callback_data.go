package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

// Callback action constants.
const (
	actionQuiz         = "quiz"
	actionCards        = "cards"
	actionBookmark     = "bm"
	actionSettings     = "settings"
	actionAchievements = "achievements"
)

// Quiz sub-actions.
const (
	quizMenu       = "menu"
	quizLevel      = "level"
	quizCount      = "count"
	quizAnswer     = "answer"
	quizNext       = "next"
	quizPrevious   = "prev"
	quizFinish     = "finish"
	quizQuit       = "quit"
	quizQuitYes    = "quit_yes"
	quizQuitNo     = "quit_no"
	quizRestart    = "restart"
	quizReview     = "review"
	quizBackToMenu = "back"
)

// Cards sub-actions.
const (
	cardsMenu = "menu"
	cardsShow = "show"
)

// Settings sub-actions.
const (
	settingsMenu  = "menu"
	settingsTheme = "theme"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 || parts[0] == "" {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	return n, err == nil
}

func buildQuizCallback(subAction string, params ...string) string {
	return callbackData{
		Action: actionQuiz,
		Params: append([]string{subAction}, params...),
	}.encode()
}

func buildQuizLevelCallback(level entities.Level) string {
	return buildQuizCallback(quizLevel, string(level))
}

func buildQuizCountCallback(level entities.Level, count int) string {
	return buildQuizCallback(quizCount, string(level), strconv.Itoa(count))
}

func buildQuizAnswerCallback(index int) string {
	return buildQuizCallback(quizAnswer, strconv.Itoa(index))
}

func buildCardsMenuCallback() string {
	return callbackData{Action: actionCards, Params: []string{cardsMenu}}.encode()
}

// buildCardCallback opens the card at position pos of a category listing.
func buildCardCallback(category entities.CardCategory, pos int) string {
	return callbackData{
		Action: actionCards,
		Params: []string{cardsShow, string(category), strconv.Itoa(pos)},
	}.encode()
}

// buildBookmarkCallback toggles the bookmark of the card shown at position pos.
func buildBookmarkCallback(category entities.CardCategory, pos int) string {
	return callbackData{
		Action: actionBookmark,
		Params: []string{string(category), strconv.Itoa(pos)},
	}.encode()
}

func buildSettingsCallback(subAction string) string {
	return callbackData{Action: actionSettings, Params: []string{subAction}}.encode()
}

func buildAchievementsCallback() string {
	return actionAchievements
}
