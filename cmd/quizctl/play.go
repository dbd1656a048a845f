package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/service"
)

const playHelp = `keys: 1-4 or a-d answer · n/enter next · p previous · f finish · r review · s restart · q quit · x exit`

func playCmd(flags *globalFlags) *cobra.Command {
	var (
		level string
		count int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := flags.content()
			if err != nil {
				return err
			}

			lvl, err := entities.ParseLevel(level)
			if err != nil {
				return err
			}

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			engine := service.NewQuizEngine(content.Bank,
				service.WithSelector(service.NewQuestionSelectorWithRand(rand.New(rand.NewSource(seed)))),
				service.WithTickInterval(time.Hour),
			)
			defer engine.Close()

			v, err := engine.Start(cmd.Context(), lvl, count)
			if err != nil {
				return err
			}

			return play(cmd.Context(), engine, v, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", string(entities.LevelBeginner), "Level: beginner, intermediate, advanced")
	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of questions")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Shuffle seed (0 picks one from the clock)")

	return cmd
}

// play reads one command per line until the user exits or input ends.
func play(ctx context.Context, engine *service.QuizEngine, v service.QuizView, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, playHelp)
	printView(out, v)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		var err error
		switch input := strings.ToLower(strings.TrimSpace(scanner.Text())); input {
		case "x", "exit":
			return nil
		case "1", "2", "3", "4":
			v, err = engine.HandleKey(input)
		case "a", "b", "c", "d":
			v, err = engine.HandleKey(string(rune('1' + input[0] - 'a')))
		case "", "n":
			v, err = engine.HandleKey(service.KeyEnter)
		case "p":
			v, err = engine.HandleKey(service.KeyArrowLeft)
		case "f":
			v, err = engine.Finish()
		case "r":
			v, err = engine.Review()
		case "s":
			v, err = engine.Restart(ctx)
		case "q":
			fmt.Fprint(out, "quit this quiz? [y/N] ")
			confirmed := scanner.Scan() && strings.EqualFold(strings.TrimSpace(scanner.Text()), "y")
			v, err = engine.Quit(confirmed)
			if v.State == entities.QuizIdle {
				fmt.Fprintln(out, "quiz discarded")
				return nil
			}
		case "h", "?":
			fmt.Fprintln(out, playHelp)
			continue
		default:
			fmt.Fprintf(out, "unknown key %q\n", input)
			continue
		}

		switch {
		case errors.Is(err, service.ErrQuitNotConfirmed):
			fmt.Fprintln(out, "still playing")
		case errors.Is(err, service.ErrNoActiveSession):
			fmt.Fprintln(out, "no active quiz")
			return nil
		case err != nil:
			return err
		}

		printView(out, v)
	}
}

func printView(w io.Writer, v service.QuizView) {
	switch v.State {
	case entities.QuizFinished:
		r := v.Results
		fmt.Fprintf(w, "\n== %s results ==\n%s\n%s\n", v.Title, r.Title, r.Message)
		fmt.Fprintf(w, "Score %s (%d%%) · correct %d · incorrect %d · time %s\n",
			r.Fraction, r.Percentage, r.Correct, r.Incorrect, r.ElapsedText)
		fmt.Fprintln(w, "r review · s restart · x exit")

	case entities.QuizInProgress, entities.QuizReviewing:
		mode := ""
		if v.State == entities.QuizReviewing {
			mode = " (review)"
		}
		fmt.Fprintf(w, "\n%s%s · question %d/%d · score %s · %s\n", v.Title, mode, v.Number, v.Total, v.ScoreText, v.ElapsedText)
		fmt.Fprintln(w, v.Question)
		for _, o := range v.Options {
			mark := " "
			switch {
			case o.Correct:
				mark = "✓"
			case o.Incorrect:
				mark = "✗"
			}
			fmt.Fprintf(w, " %s %s. %s\n", mark, o.Letter, o.Text)
		}
		if v.Explanation != "" {
			fmt.Fprintf(w, "  → %s\n", v.Explanation)
		}

	default:
		fmt.Fprintln(w, "no active quiz")
	}
}
