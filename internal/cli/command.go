// Package cli implements folioctl, the maintenance CLI for the post stores.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a subcommand with its own flag set
type Command struct {
	// Flags defines command-specific flags
	Flags *flag.FlagSet

	// Usage is shown after "folioctl" in help, e.g. "show <id>"
	Usage string

	// Short is a one-line description for the global help listing
	Short string

	// Exec runs the command after flags are parsed
	Exec func(ctx context.Context, env *Env, args []string) error
}

// Name returns the command name (first word of Usage)
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the short help line for the main usage display
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-34s %s", c.Usage, c.Short)
}

// PrintHelp prints "folioctl <cmd> --help" output
func (c *Command) PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: folioctl", c.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.Short)

	if c.Flags != nil && c.Flags.HasFlags() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		fmt.Fprint(w, buf.String())
	}
}

// Run parses flags and executes the command. Returns the exit code.
func (c *Command) Run(ctx context.Context, env *Env, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(env.Stdout)
			return 0
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		fmt.Fprintln(env.Stderr)
		c.PrintHelp(env.Stderr)
		return 1
	}

	if err := c.Exec(ctx, env, c.Flags.Args()); err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return 1
	}

	return 0
}
