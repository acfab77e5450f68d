package prog

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/humidscope/setedit/pkg/lineedit"
	"github.com/humidscope/setedit/pkg/term"
)

// SavedMessage is written to the operator once the settings have been saved.
const SavedMessage = "Settings saved."

// InterruptedMessage is written to stderr when a signal ends the edit session.
const InterruptedMessage = "Interrupted; settings not saved."

func newEditCommand(fds [3]*os.File, f *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit settings interactively",
		Long: `Edit lists the settings and lets the operator change them one at a time.
Choosing 0 saves the settings to the database and exits.

The session runs on --device when given, and on stdin and stdout otherwise.
Terminals are put in raw mode, where Ctrl-C is an ordinary rejected key. A
SIGINT, SIGTERM or SIGHUP ends the session without saving.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(fds, f)
		},
	}
	cmd.Flags().StringVar(&f.Device, "device", "", "serial device or terminal to run the session on")
	return cmd
}

func runEdit(fds [3]*os.File, f *Flags) error {
	sess, err := openSession(f)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	stream, err := openStream(fds, f.Device)
	if err != nil {
		return err
	}
	defer stream.Close()
	go func() {
		<-ctx.Done()
		stream.Stop()
	}()

	r := lineedit.NewReader(stream)
	sess.mgr.PrintAll(r)
	// EditConfig only returns without an error when the operator chose to save.
	if _, err := sess.mgr.EditConfig(r); err != nil {
		logger.Infof("edit session ended: %v", err)
		if ctx.Err() != nil {
			fmt.Fprintln(fds[2], InterruptedMessage)
		} else {
			fmt.Fprintln(fds[2], "Settings not saved:", err)
		}
		return Exit(1)
	}
	if err := sess.mgr.Save(sess.st); err != nil {
		return err
	}
	io.WriteString(r, SavedMessage+term.Newline)
	return nil
}

func newShowCommand(fds [3]*os.File, f *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(f)
			if err != nil {
				return err
			}
			defer sess.Close()
			sess.mgr.PrintAll(fds[1])
			return nil
		},
	}
}

func newResetCommand(fds [3]*os.File, f *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset all settings to their defaults",
		Long: `Reset writes the default value of every setting to the database, and removes
stored values of settings the schema no longer declares.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(f)
			if err != nil {
				return err
			}
			defer sess.Close()
			return runReset(fds, sess)
		},
	}
}

func runReset(fds [3]*os.File, sess *session) error {
	declared := make(map[string]bool, len(sess.schema.Settings))
	for _, it := range sess.schema.Settings {
		declared[it.Name] = true
	}
	names, err := sess.st.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		if declared[name] {
			continue
		}
		logger.Infof("removing stale value %s", name)
		if err := sess.st.DelValue(name); err != nil {
			return err
		}
	}

	sess.mgr.ApplyDefaults()
	if err := sess.mgr.Save(sess.st); err != nil {
		return err
	}
	sess.mgr.PrintAll(fds[1])
	return nil
}
