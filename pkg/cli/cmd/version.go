package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/litebase/memvfs/pkg/cli/components"
	"github.com/litebase/memvfs/pkg/cli/styles"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "v0.1.0"

func NewVersionCmd() *cobra.Command {
	return NewCommand("version", "Show the version number of the CLI").
		WithArgs(cobra.NoArgs).
		WithRunE(func(cmd *cobra.Command, args []string) error {
			style := lipgloss.NewStyle().
				Background(styles.PrimaryBackgroundColor).
				Foreground(styles.PrimaryForegroundColor).
				Padding(0, 1)

			fmt.Fprint(
				cmd.OutOrStdout(),
				components.Container(style.Render(fmt.Sprintf("memvfs %s", Version))),
			)

			return nil
		}).
		Build()
}
