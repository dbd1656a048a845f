// Command quizctl works with the learning content from a terminal: it lists
// the question bank, plays quizzes, renders the particle background and
// browses flashcards.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/api-learning-hub/internal/app"
	"github.com/aliskhannn/api-learning-hub/internal/config"
)

type globalFlags struct {
	questionsPath string
	cardsPath     string
	verbose       bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           "quizctl",
		Short:         "API Learning Hub from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.questionsPath, "questions", "", "Question bank JSON file (defaults to the embedded bank)")
	cmd.PersistentFlags().StringVar(&flags.cardsPath, "cards", "", "Flashcard YAML file (defaults to the embedded deck)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log diagnostics to stderr")

	cmd.AddCommand(
		bankCmd(&flags),
		playCmd(&flags),
		particlesCmd(&flags),
		cardsCmd(&flags),
	)

	return cmd
}

func (f *globalFlags) logger() *zap.Logger {
	if !f.verbose {
		return zap.NewNop()
	}
	lg, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return lg
}

func (f *globalFlags) content() (*app.Content, error) {
	content, err := app.LoadContent(config.Quiz{QuestionsPath: f.questionsPath, CardsPath: f.cardsPath})
	if err != nil {
		return nil, err
	}
	f.logger().Debug("content loaded",
		zap.String("questions", f.questionsPath),
		zap.String("cards", f.cardsPath),
		zap.Int("card_count", content.Cards.Count()),
	)
	return content, nil
}
