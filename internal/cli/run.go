package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

func commands() []*Command {
	return []*Command{
		cmdList(),
		cmdShow(),
		cmdDelete(),
		cmdReconcile(),
		cmdReindex(),
		cmdExport(),
		cmdSeed(),
	}
}

// Run executes folioctl with args (without the program name). open may be
// nil, in which case services are built from configuration.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, open func(envFile string) func(context.Context) (*Services, error)) int {
	global := flag.NewFlagSet("folioctl", flag.ContinueOnError)
	global.SetOutput(&strings.Builder{})
	global.SetInterspersed(false)
	envFile := global.String("env-file", "", "Load environment from this file instead of .env")

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return 0
		}
		fmt.Fprintln(stderr, "error:", err)
		printUsage(stderr)
		return 1
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 1
	}

	if open == nil {
		open = func(envFile string) func(context.Context) (*Services, error) {
			return OpenFromConfig(envFile, stderr)
		}
	}

	env := &Env{
		Stdout: stdout,
		Stderr: stderr,
		Open:   open(*envFile),
	}
	defer func() {
		if err := env.Close(); err != nil {
			fmt.Fprintln(stderr, "warning: close:", err)
		}
	}()

	for _, cmd := range commands() {
		if cmd.Name() == rest[0] {
			return cmd.Run(ctx, env, rest[1:])
		}
	}

	fmt.Fprintf(stderr, "error: unknown command %q\n\n", rest[0])
	printUsage(stderr)
	return 1
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: folioctl [--env-file <path>] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands() {
		fmt.Fprintln(w, cmd.HelpLine())
	}
}
