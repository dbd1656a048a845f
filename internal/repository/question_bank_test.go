package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

func TestQuestionBank_Embedded(t *testing.T) {
	bank, err := NewQuestionBank("")
	require.NoError(t, err)

	assert.Equal(t, 10, bank.Size(entities.LevelBeginner))
	assert.Equal(t, 15, bank.Size(entities.LevelIntermediate))
	assert.Equal(t, 20, bank.Size(entities.LevelAdvanced))
	assert.Equal(t, 0, bank.Size(entities.Level("expert")))

	levels := bank.Levels()
	require.Len(t, levels, 3)
	assert.Equal(t, "Beginner", levels[0].Title)
}

func TestQuestionBank_GetQuestionsReturnsCopy(t *testing.T) {
	bank, err := NewQuestionBank("")
	require.NoError(t, err)
	ctx := context.Background()

	first, err := bank.GetQuestions(ctx, entities.LevelBeginner)
	require.NoError(t, err)
	want := first[0].Options[0]

	first[0].Options[0] = "mutated"
	first[0], first[1] = first[1], first[0]

	again, err := bank.GetQuestions(ctx, entities.LevelBeginner)
	require.NoError(t, err)
	assert.Equal(t, want, again[0].Options[0])
	assert.NotEqual(t, first[0].Text, again[0].Text)
}

func TestQuestionBank_UnknownLevel(t *testing.T) {
	bank, err := NewQuestionBank("")
	require.NoError(t, err)

	_, err = bank.GetQuestions(context.Background(), entities.Level("expert"))
	require.ErrorIs(t, err, entities.ErrInvalidLevel)
}

func TestParseQuestionBank_Validation(t *testing.T) {
	valid := `{"text":"q","options":["a","b","c","d"],"correct_index":1,"explanation":"e"}`

	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{`},
		{name: "unknown level", data: `{"levels":{"expert":[` + valid + `]}}`},
		{name: "missing level", data: `{"levels":{"beginner":[` + valid + `],"advanced":[` + valid + `]}}`},
		{name: "three options", data: `{"levels":{"beginner":[{"text":"q","options":["a","b","c"],"correct_index":0}],"intermediate":[` + valid + `],"advanced":[` + valid + `]}}`},
		{name: "correct index out of range", data: `{"levels":{"beginner":[{"text":"q","options":["a","b","c","d"],"correct_index":4}],"intermediate":[` + valid + `],"advanced":[` + valid + `]}}`},
		{name: "empty level", data: `{"levels":{"beginner":[],"intermediate":[` + valid + `],"advanced":[` + valid + `]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuestionBank([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	bank, err := ParseQuestionBank([]byte(`{"levels":{"beginner":[` + valid + `],"intermediate":[` + valid + `],"advanced":[` + valid + `]}}`))
	require.NoError(t, err)
	assert.Equal(t, 1, bank.Size(entities.LevelAdvanced))
}
