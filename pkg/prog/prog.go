// Package prog provides the entry point to setedit. It parses the command
// line, sets up logging and runs the chosen subcommand.
package prog

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/humidscope/setedit/pkg/logutil"
)

// Flags keeps command-line flags.
type Flags struct {
	Log string

	Schema, DB string
	Device     string
}

// Run parses command-line flags and runs the subcommand they name. It returns
// the exit status of the program.
func Run(fds [3]*os.File, args []string) int {
	f := &Flags{}
	root := newRootCommand(fds, f)
	root.SetArgs(args[1:])
	root.SetIn(fds[0])
	root.SetOut(fds[1])
	root.SetErr(fds[2])

	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var badUsage badUsageError
	var exit exitError
	switch {
	case errors.As(err, &badUsage):
		fmt.Fprint(fds[2], cmd.UsageString())
	case errors.As(err, &exit):
		return exit.exit
	}
	return 2
}

func newRootCommand(fds [3]*os.File, f *Flags) *cobra.Command {
	root := &cobra.Command{
		Use:   "setedit",
		Short: "Edit device settings over a serial console",
		Long: `setedit lists a set of named settings declared in a schema file, lets the
operator edit them one at a time over a serial console, and keeps the results
in a database file.`,
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if f.Log == "" {
				return
			}
			if err := logutil.SetOutputFile(f.Log); err != nil {
				fmt.Fprintln(fds[2], "Warning: cannot open log file:", err)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return BadUsage("missing subcommand")
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return BadUsage(err.Error())
	})
	root.PersistentFlags().StringVar(&f.Log, "log", "", "a file to write debug log to")

	root.CompletionOptions.DisableDefaultCmd = true

	for _, cmd := range []*cobra.Command{
		newEditCommand(fds, f), newShowCommand(fds, f), newResetCommand(fds, f),
	} {
		cmd.Args = noArgs
		cmd.Flags().StringVar(&f.Schema, "schema", "", "path to the schema file")
		cmd.Flags().StringVar(&f.DB, "db", "", "path to the database")
		root.AddCommand(cmd)
	}
	return root
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return BadUsage(fmt.Sprintf("unknown command or argument %q for %q", args[0], cmd.CommandPath()))
	}
	return nil
}

// BadUsage returns a special error that may be returned by a subcommand. It
// causes Run to print out a message, the usage information and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by a subcommand. It causes
// Run to exit with the given code without printing any error messages. Exit(0)
// returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
