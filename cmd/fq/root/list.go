package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusquest/internal/ui"
)

func newListCmd() *cobra.Command {
	var showDone bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := svc.ListTasks(ctx, localOwner)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTask, "Tasks"))
			shown := 0
			for _, t := range tasks {
				if t.Completed && !showDone {
					continue
				}
				shown++
				mark := "[ ]"
				if t.Completed {
					mark = ui.Good.Render("[x]")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s\n",
					mark,
					t.Title,
					ui.DifficultyText(t.Difficulty),
					ui.Muted.Render(t.Category),
					ui.Muted.Render(t.ID))
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no tasks)"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showDone, "all", "a", false, "Include completed tasks")

	return cmd
}
