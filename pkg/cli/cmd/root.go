package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/litebase/memvfs/pkg/cli/components"
	"github.com/litebase/memvfs/pkg/config"
	"github.com/litebase/memvfs/pkg/vfs"
	"github.com/spf13/cobra"
)

type environmentKey struct{}

// Options holds the persistent flags shared by every command.
type Options struct {
	Logger  *slog.Logger
	VFSName string
}

func addCommands(cmd *cobra.Command, options *Options) {
	cmd.AddCommand(NewExecCmd(options))
	cmd.AddCommand(NewStressCmd(options))
	cmd.AddCommand(NewVersionCmd())
}

// NewRoot builds the command tree. logger receives the lifecycle logs of the
// memory VFS; nil uses slog.Default().
func NewRoot(logger *slog.Logger) *cobra.Command {
	options := &Options{Logger: logger}

	cmd := &cobra.Command{
		Use:               "memvfs <command> [flags]",
		Short:             "In-memory SQLite databases",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Long:              `Run SQLite databases held entirely in process memory`,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := lipgloss.NewStyle().Bold(true).
				Margin(0, 0, 1).
				Render(fmt.Sprintf("memvfs - %s", Version))

			fmt.Fprint(cmd.OutOrStdout(), components.Container(
				fmt.Sprintf(
					"%s\n%s\n\n%s",
					title,
					"For help type \"memvfs help\"",
					components.TabularList([][2]string{
						{"exec", "Run SQL against a database image"},
						{"stress", "Open and close many databases at random"},
						{"version", "Show the version number"},
					}),
				),
			))

			return nil
		},
	}

	addCommands(cmd, options)

	cmd.PersistentFlags().StringVar(&options.VFSName, "vfs", "", "Name the memory VFS is registered under (defaults to MEMVFS_VFS_NAME)")

	return cmd
}

// Execute runs the command tree with the process arguments.
func Execute(ctx context.Context, logger *slog.Logger) error {
	return NewRoot(logger).ExecuteContext(ctx)
}

// openEnvironment registers the memory VFS for the duration of a command.
// The environment is closed by closeEnvironment.
func openEnvironment(options *Options) func(cmd *cobra.Command) error {
	return func(cmd *cobra.Command) error {
		c := config.NewConfig()

		if options.VFSName != "" {
			c.VFSName = options.VFSName
		}

		if err := c.Validate(); err != nil {
			return err
		}

		env := vfs.NewEnvironment(c)

		if options.Logger != nil {
			env.SetLogger(options.Logger)
		}

		if err := env.Register(); err != nil {
			return err
		}

		cmd.SetContext(context.WithValue(commandContext(cmd), environmentKey{}, env))

		return nil
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func environment(cmd *cobra.Command) *vfs.Environment {
	env, _ := commandContext(cmd).Value(environmentKey{}).(*vfs.Environment)

	return env
}

func closeEnvironment(cmd *cobra.Command) {
	if env := environment(cmd); env != nil {
		env.Close()
	}
}
