package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/service"
)

func cardsCmd(flags *globalFlags) *cobra.Command {
	var (
		category string
		search   string
		random   bool
		answers  bool
	)

	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Browse the viva flashcards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := flags.content()
			if err != nil {
				return err
			}
			cards := service.NewCardService(content.Cards)
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch {
			case random:
				c, err := cards.GetRandom(ctx)
				if err != nil {
					return err
				}
				printCard(out, c, true)
				return nil

			case search != "":
				found, err := cards.Search(ctx, search)
				if err != nil {
					return err
				}
				if len(found) == 0 {
					fmt.Fprintf(out, "nothing found for %q\n", search)
					return nil
				}
				for _, c := range found {
					printCard(out, c, answers)
				}
				return nil

			default:
				list, err := cards.GetByCategory(ctx, category)
				if err != nil {
					return err
				}
				for _, c := range list {
					printCard(out, c, answers)
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category: all, methods, status, auth, advanced")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive search in questions and answers")
	cmd.Flags().BoolVarP(&random, "random", "r", false, "Show one random card with its answer")
	cmd.Flags().BoolVarP(&answers, "answers", "a", false, "Show answers")

	return cmd
}

func printCard(w io.Writer, c entities.Card, withAnswer bool) {
	fmt.Fprintf(w, "#%-3d [%s] %s\n", c.Index, c.Category.Title(), c.Question)
	if withAnswer {
		fmt.Fprintf(w, "     %s\n", c.Answer)
	}
}
