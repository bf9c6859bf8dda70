package cmd

import (
	"fmt"
	"strconv"

	"github.com/litebase/memvfs/pkg/cli/components"
	"github.com/litebase/memvfs/pkg/stress"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewStressCmd(options *Options) *cobra.Command {
	opts := stress.Options{}

	return NewCommand("stress", "Open and close many databases at random").
		WithLong(`Open, fill and close many named databases at random from several goroutines
and check after every round that no registry entry leaked.`).
		WithArgs(cobra.NoArgs).
		WithFlags(func(flags *pflag.FlagSet) {
			flags.IntVar(&opts.Databases, "databases", 100, "Number of distinct databases")
			flags.IntVar(&opts.Iterations, "iterations", 0, "Random operations per round (default 10 per database)")
			flags.IntVar(&opts.Rounds, "rounds", 3, "Number of rounds")
			flags.IntVar(&opts.Workers, "workers", 4, "Number of concurrent workers")
			flags.Int64Var(&opts.Seed, "seed", 0, "Random seed (default time based)")
		}).
		WithConfigE(openEnvironment(options)).
		WithRunE(func(cmd *cobra.Command, args []string) error {
			defer closeEnvironment(cmd)

			report, err := stress.Run(cmd.Context(), environment(cmd), opts)

			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), components.ErrorAlert("Stress run failed"))

				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), components.Container(
				components.SuccessAlert(fmt.Sprintf("%d rounds without leaked entries", report.Rounds)),
				components.TabularList([][2]string{
					{"Opens", strconv.FormatInt(report.Opens, 10)},
					{"Inserts", strconv.FormatInt(report.Inserts, 10)},
					{"Closes", strconv.FormatInt(report.Closes, 10)},
					{"Duration", report.Duration.String()},
				}),
			))

			return nil
		}).
		Build()
}
