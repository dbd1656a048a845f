package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

func TestCallbackDataRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		action string
		params []string
	}{
		{name: "quiz level", data: buildQuizLevelCallback(entities.LevelAdvanced), action: actionQuiz, params: []string{quizLevel, "advanced"}},
		{name: "quiz count", data: buildQuizCountCallback(entities.LevelBeginner, 10), action: actionQuiz, params: []string{quizCount, "beginner", "10"}},
		{name: "quiz answer", data: buildQuizAnswerCallback(3), action: actionQuiz, params: []string{quizAnswer, "3"}},
		{name: "card", data: buildCardCallback(entities.CategoryStatus, 4), action: actionCards, params: []string{cardsShow, "status", "4"}},
		{name: "bookmark", data: buildBookmarkCallback(entities.CategoryAll, 20), action: actionBookmark, params: []string{"all", "20"}},
		{name: "settings", data: buildSettingsCallback(settingsTheme), action: actionSettings, params: []string{settingsTheme}},
		{name: "achievements", data: buildAchievementsCallback(), action: actionAchievements, params: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := decodeCallback(tt.data)
			assert.Equal(t, tt.action, cd.Action)
			assert.Equal(t, tt.params, cd.Params)
			assert.Equal(t, tt.data, cd.encode())
			assert.LessOrEqual(t, len(tt.data), 64, "telegram limits callback data to 64 bytes")
		})
	}
}

func TestCallbackDataParams(t *testing.T) {
	cd := decodeCallback("cards:show:auth:x")

	assert.Equal(t, "auth", cd.param(1))
	assert.Equal(t, "", cd.param(5))
	assert.Equal(t, "", cd.param(-1))

	_, ok := cd.intParam(2)
	assert.False(t, ok)

	n, ok := decodeCallback("quiz:answer:2").intParam(1)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	assert.Empty(t, decodeCallback("").Action)
}

func TestParseQuizKey(t *testing.T) {
	tests := []struct {
		text string
		key  string
		ok   bool
	}{
		{text: "1", key: "1", ok: true},
		{text: " 4 ", key: "4", ok: true},
		{text: "a", key: "1", ok: true},
		{text: "D", key: "4", ok: true},
		{text: ">", key: "ArrowRight", ok: true},
		{text: "Next", key: "ArrowRight", ok: true},
		{text: "<", key: "ArrowLeft", ok: true},
		{text: "5", ok: false},
		{text: "hello", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			key, ok := parseQuizKey(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}
