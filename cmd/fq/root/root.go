package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"focusquest/internal/ui"
)

const Version = "0.1.0"

var configPathFlag string

var rootCmd = &cobra.Command{
	Use:           "fq",
	Short:         "focusquest: gamified task tracker with a focus timer",
	Long:          "focusquest tracks tasks and focus sessions, converting completions and focus minutes into XP and levels.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Config file path")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newDoneCmd(),
		newRmCmd(),
		newStatusCmd(),
		newFocusCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
