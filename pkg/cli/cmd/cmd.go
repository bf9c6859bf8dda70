package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type Command struct {
	// The underlying cobra command.
	command *cobra.Command
	// A configuration function that returns an error if the environment
	// cannot be prepared before running the command.
	configFuncE func(cmd *cobra.Command) error
	// A flags function that can be used to add flags to the command.
	flagsFunc func(flags *pflag.FlagSet)
}

func NewCommand(use, short string) *Command {
	return &Command{
		command: &cobra.Command{
			Use:   use,
			Short: short,
		},
	}
}

func (c *Command) Build() *cobra.Command {
	if c.flagsFunc != nil {
		c.flagsFunc(c.command.Flags())
	}

	return c.command
}

func (c *Command) WithArgs(args cobra.PositionalArgs) *Command {
	c.command.Args = args

	return c
}

func (c *Command) WithConfigE(config func(cmd *cobra.Command) error) *Command {
	c.configFuncE = config

	return c
}

func (c *Command) WithFlags(flags func(flags *pflag.FlagSet)) *Command {
	c.flagsFunc = flags

	return c
}

func (c *Command) WithLong(long string) *Command {
	c.command.Long = long

	return c
}

func (c *Command) WithRunE(run func(cmd *cobra.Command, args []string) error) *Command {
	c.command.RunE = func(cmd *cobra.Command, args []string) error {
		if c.configFuncE != nil {
			if err := c.configFuncE(cmd); err != nil {
				return err
			}
		}

		return run(cmd, args)
	}

	return c
}
