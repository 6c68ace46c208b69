package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show profile, XP progress and task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := svc.Profile(ctx, localOwner)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, u.Name))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", u.Level))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Key.Render("XP:"),
				ui.ProgressBar(u.XP, u.XPToNextLevel, 30),
				ui.Muted.Render(fmt.Sprintf("%d / %d", u.XP, u.XPToNextLevel)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Energy", fmt.Sprintf("%d%%", u.Energy)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Focus time", fmt.Sprintf("%d min", u.TotalFocusMinutes)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", u.Streak))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			tasks, err := svc.ListTasks(ctx, localOwner)
			if err != nil {
				return err
			}
			open, done := 0, 0
			for _, t := range tasks {
				if t.Completed {
					done++
				} else {
					open++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d open, %d done\n", ui.Key.Render("Tasks:"), open, done)
			return nil
		},
	}

	return cmd
}
