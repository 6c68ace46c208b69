package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"focusquest/internal/engine"
	"focusquest/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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

			completed := true
			res, err := svc.UpdateTask(ctx, localOwner, args[0], engine.TaskPatch{Completed: &completed})
			if err != nil {
				return err
			}

			line := fmt.Sprintf("%s %s", ui.Good.Render(ui.IconDone+" Completed"), res.Task.Title)
			if res.XPAwarded > 0 {
				line += " " + ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPAwarded))
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			return nil
		},
	}

	return cmd
}
