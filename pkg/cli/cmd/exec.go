package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/litebase/memvfs/pkg/cli/components"
	"github.com/litebase/memvfs/pkg/database"
	"github.com/litebase/memvfs/pkg/image"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type execOptions struct {
	dryRun bool
	format string
	name   string
}

func NewExecCmd(options *Options) *cobra.Command {
	execOpts := &execOptions{}

	return NewCommand("exec <image> [sql...]", "Run SQL against a database image").
		WithLong(`Load a database image into memory, run the given statements against it and
write the image back. A missing image starts an empty database. Each argument
is one statement whose rows are printed. Without statements, a script is read
from standard input and executed.`).
		WithArgs(cobra.MinimumNArgs(1)).
		WithFlags(func(flags *pflag.FlagSet) {
			flags.BoolVar(&execOpts.dryRun, "dry-run", false, "Do not write the image back")
			flags.StringVar(&execOpts.format, "format", "", "Image format: raw or s2 (detected from the file extension by default)")
			flags.StringVar(&execOpts.name, "name", "main.db", "Name of the database inside the memory VFS")
		}).
		WithConfigE(openEnvironment(options)).
		WithRunE(func(cmd *cobra.Command, args []string) error {
			defer closeEnvironment(cmd)

			return runExec(cmd, execOpts, args[0], args[1:])
		}).
		Build()
}

func runExec(cmd *cobra.Command, opts *execOptions, path string, statements []string) error {
	out := cmd.OutOrStdout()

	format, err := image.ParseFormat(opts.format, path)

	if err != nil {
		return err
	}

	var script string

	if len(statements) == 0 {
		input, err := io.ReadAll(cmd.InOrStdin())

		if err != nil {
			return err
		}

		script = strings.TrimSpace(string(input))
	}

	mem, err := image.Load(path, format)

	if err != nil {
		return err
	}

	db, err := database.Open(environment(cmd), opts.name, mem)

	if err != nil {
		return err
	}

	// A script may hold several statements; Exec runs all of them while a
	// query only steps the last one.
	if script != "" {
		if _, err := db.Exec(script); err != nil {
			db.Close()

			return err
		}
	}

	for _, statement := range statements {
		result, err := db.Query(statement)

		if err != nil {
			db.Close()

			return fmt.Errorf("%s: %w", statement, err)
		}

		if len(result.Columns) > 0 {
			fmt.Fprintln(out, components.Table(result.Columns, result.Strings()))
		}
	}

	h, err := db.Close()

	if err != nil {
		return err
	}

	if !h.Returned() {
		return fmt.Errorf("expected the database image back, got %s", h.State)
	}

	if opts.dryRun {
		fmt.Fprintln(out, components.InfoAlert(fmt.Sprintf("Dry run: %d bytes not written", h.Buffer.Used())))

		return nil
	}

	if err := image.Save(path, h.Buffer, format); err != nil {
		return err
	}

	fmt.Fprintln(out, components.SuccessAlert(fmt.Sprintf("Wrote %d bytes to %s (%s)", h.Buffer.Used(), path, format)))

	return nil
}
