package root

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"focusquest/internal/tui"
)

func newFocusCmd() *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run a focus session (completed sessions earn bonus XP)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if minutes == 0 {
				minutes = cfg.FocusMinutes
			}
			if minutes <= 0 {
				return errors.New("minutes must be positive")
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunFocus(ctx, svc, localOwner, minutes, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Session length in minutes (default from config)")

	return cmd
}
