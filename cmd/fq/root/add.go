package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"focusquest/internal/engine"
	"focusquest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var description string
	var difficulty string
	var category string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.CreateTask(ctx, localOwner, engine.CreateTaskInput{
				Title:       args[0],
				Description: description,
				Difficulty:  engine.Difficulty(difficulty),
				Category:    engine.Category(category),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				t.Title,
				ui.DifficultyText(t.Difficulty),
				ui.Muted.Render("("+t.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "D", "", "Task description")
	cmd.Flags().StringVarP(&difficulty, "diff", "d", "easy", "Difficulty (easy|medium|hard|epic)")
	cmd.Flags().StringVarP(&category, "cat", "c", "personal", "Category (work|health|learning|personal)")

	return cmd
}
