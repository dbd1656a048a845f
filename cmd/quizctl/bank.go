package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

func bankCmd(flags *globalFlags) *cobra.Command {
	var (
		level  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "bank",
		Short: "List quiz levels, or the questions of one level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := flags.content()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if level == "" {
				levels := content.Bank.Levels()
				if asJSON {
					return json.NewEncoder(out).Encode(levels)
				}
				for _, l := range levels {
					fmt.Fprintf(out, "%-13s %-13s %2d questions\n", l.Level, l.Title, l.Size)
				}
				return nil
			}

			lvl, err := entities.ParseLevel(level)
			if err != nil {
				return err
			}
			questions, err := content.Bank.GetQuestions(cmd.Context(), lvl)
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(out).Encode(questions)
			}

			for i, q := range questions {
				fmt.Fprintf(out, "%d. %s\n", i+1, q.Text)
				for j, o := range q.Options {
					mark := " "
					if j == q.CorrectIndex {
						mark = "*"
					}
					fmt.Fprintf(out, "   %s %s. %s\n", mark, entities.OptionLetter(j), o)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "Level to print (beginner, intermediate, advanced)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}
