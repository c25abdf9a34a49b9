// Command spamsms serves the SMS spam classifier over HTTP.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version metadata injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// errExit signals a non-zero exit after the command wrote its own error.
var errExit = errors.New("exit")

// run executes the CLI with the given args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "spamsms: %v\n", err)
		}
		return 1
	}
	return 0
}

// newRootCmd creates the root command. Without a subcommand it serves.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "spamsms",
		Short:         "SMS spam classifier API",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, stdout, stderr)
		},
	}
	root.PersistentFlags().String("config", "", "Path to a YAML config file (default: ./config.yaml or ./configs/config.yaml)")
	root.AddCommand(
		newServeCmd(stdout, stderr),
		newCheckModelCmd(stdout, stderr),
		newPredictCmd(stdout, stderr),
		newVersionCmd(stdout),
	)
	return root
}
