package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestBank(t *testing.T) {
	out, err := run(t, "", "bank")
	require.NoError(t, err)
	assert.Contains(t, out, "beginner")
	assert.Contains(t, out, "10 questions")
	assert.Contains(t, out, "20 questions")

	out, err = run(t, "", "bank", "--level", "beginner")
	require.NoError(t, err)
	assert.Contains(t, out, "10. ")
	assert.Equal(t, 10, strings.Count(out, "   * "), "one correct option per question")

	_, err = run(t, "", "bank", "--level", "expert")
	assert.Error(t, err)
}

func TestPlay(t *testing.T) {
	out, err := run(t, "a\nn\nb\nn\nr\nn\nx\n", "play", "--level", "beginner", "--count", "2", "--seed", "7")
	require.NoError(t, err)

	assert.Contains(t, out, "question 1/2")
	assert.Contains(t, out, "question 2/2")
	assert.Contains(t, out, "Beginner Quiz results")
	assert.Contains(t, out, "(review)")
}

func TestPlayQuitNeedsConfirmation(t *testing.T) {
	out, err := run(t, "q\nn\nq\ny\n", "play", "--count", "3", "--seed", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "still playing")
	assert.Contains(t, out, "quiz discarded")
}

func TestPlayRejectsInvalidCount(t *testing.T) {
	_, err := run(t, "", "play", "--count", "0")
	assert.Error(t, err)
}

func TestParticles(t *testing.T) {
	out, err := run(t, "", "particles", "--width", "400", "--height", "300", "--theme", "light")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Equal(t, 20, strings.Count(out, "<circle"))

	path := filepath.Join(t.TempDir(), "bg.svg")
	_, err = run(t, "", "particles", "--out", path, "--frames", "5")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 80, strings.Count(string(data), "<circle"))

	_, err = run(t, "", "particles", "--theme", "sepia")
	assert.Error(t, err)
}

func TestCards(t *testing.T) {
	out, err := run(t, "", "cards", "--category", "methods")
	require.NoError(t, err)
	assert.Equal(t, 7, strings.Count(out, "[HTTP Methods]"))

	out, err = run(t, "", "cards", "--search", "PATCH", "--answers")
	require.NoError(t, err)
	assert.Contains(t, out, "What is the difference between PUT and PATCH?")

	out, err = run(t, "", "cards", "--search", "zzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing found")

	_, err = run(t, "", "cards", "--category", "cooking")
	assert.Error(t, err)
}
